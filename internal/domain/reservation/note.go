package reservation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxNoteLength = 1000

var ErrNoteTooLong = errors.New("note cannot exceed 1000 characters")

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	v := strings.TrimSpace(value)
	if utf8.RuneCountInString(v) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: v}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Ptr returns nil for an empty note, matching nullable storage.
func (n Note) Ptr() *string {
	if n.IsEmpty() {
		return nil
	}
	v := n.value
	return &v
}
