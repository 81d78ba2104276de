package errs

import "errors"

// Failure categories surfaced to callers. Specific errors are marked with
// exactly one of these so the transport layer can map them without knowing
// every sentinel.
var (
	ErrValidation     = errors.New("validation failed")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("conflict")
	ErrState          = errors.New("invalid state")
	ErrTransientStore = errors.New("store temporarily unavailable")
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindState      Kind = "state"
	KindTransient  Kind = "transient"
	KindInternal   Kind = "internal"
)

var kindMarks = []struct {
	kind Kind
	mark error
}{
	{KindValidation, ErrValidation},
	{KindNotFound, ErrNotFound},
	{KindConflict, ErrConflict},
	{KindState, ErrState},
	{KindTransient, ErrTransientStore},
}

// KindOf returns the category err is marked with, or KindInternal.
func KindOf(err error) Kind {
	for _, km := range kindMarks {
		if Is(err, km.mark) {
			return km.kind
		}
	}
	return KindInternal
}
