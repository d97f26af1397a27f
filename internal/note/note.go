package note

import "errors"

var (
	// ErrEmpty is returned when a note is added without a title or content.
	ErrEmpty = errors.New("title and content cannot be empty")
	// ErrInvalidTitle is returned when a title would resolve outside the notes directory.
	ErrInvalidTitle = errors.New("invalid note title")
)

// Note is a named plain-text payload stored as one file per title.
type Note struct {
	Title   string
	Content string
}
