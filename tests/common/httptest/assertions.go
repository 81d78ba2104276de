//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ErrorBody mirrors the JSON written by httperr. Detail is either a
// {"kind": ...} object or, for binding failures, a list of field errors.
type ErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

// HasDetail reports whether a non-null detail was sent.
func (b ErrorBody) HasDetail() bool {
	return len(b.Detail) > 0 && string(b.Detail) != "null"
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// AssertSuccessResponse checks the status and, for 2xx, decodes into target when it is non-nil.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "body: %s", w.Body.String()) {
		return
	}
	if target != nil && expectedStatus/100 == 2 {
		assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the message contains want; empty want skips the message.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, want string) ErrorBody {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "body: %s", w.Body.String())

	var body ErrorBody
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	if want != "" {
		assert.Contains(t, body.Error.Message, want)
	}
	return body
}

// AssertErrorKind also checks detail.kind. An empty kind asserts that no detail was sent.
func AssertErrorKind(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, kind string) {
	t.Helper()

	body := AssertErrorResponse(t, w, expectedStatus, "")
	if kind == "" {
		assert.False(t, body.HasDetail(), "unexpected detail: %s", body.Detail)
		return
	}
	require.True(t, body.HasDetail(), "missing detail")
	var detail struct {
		Kind string `json:"kind"`
	}
	require.NoErrorf(t, json.Unmarshal(body.Detail, &detail), "detail: %s", body.Detail)
	assert.Equal(t, kind, detail.Kind)
}

// AssertFieldErrors checks a binding failure: every field in want must be
// reported with the given rule.
func AssertFieldErrors(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, want map[string]string) {
	t.Helper()

	body := AssertErrorResponse(t, w, expectedStatus, "")
	require.True(t, body.HasDetail(), "missing field errors")
	var got []FieldError
	require.NoErrorf(t, json.Unmarshal(body.Detail, &got), "detail: %s", body.Detail)

	rules := make(map[string]string, len(got))
	for _, fe := range got {
		rules[fe.Field] = fe.Rule
	}
	for field, rule := range want {
		if assert.Contains(t, rules, field, "field %s not reported", field) {
			assert.Equal(t, rule, rules[field], "rule for %s", field)
		}
	}
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}
