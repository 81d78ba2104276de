package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is matches sentinels and marks.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// Validation, NotFound, Conflict, State and Transient attach a category to err.
func Validation(err error) error { return Mark(err, ErrValidation) }
func NotFound(err error) error   { return Mark(err, ErrNotFound) }
func Conflict(err error) error   { return Mark(err, ErrConflict) }
func State(err error) error      { return Mark(err, ErrState) }
func Transient(err error) error  { return Mark(err, ErrTransientStore) }

// UserMessage returns the message of the innermost cause, which for domain
// errors is the sentinel text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return cr.UnwrapAll(err).Error()
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
