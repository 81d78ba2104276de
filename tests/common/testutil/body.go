//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body before it is sent.
type Mutation func(map[string]any)

// DtoMap turns a request DTO into its JSON object form and applies muts,
// so binding tests can send fields the DTO type itself cannot hold.
func DtoMap(t *testing.T, v any, muts ...func(map[string]any)) map[string]any {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		mut(m)
	}
	return m
}

// Field sets key, or removes it when value is nil.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}
