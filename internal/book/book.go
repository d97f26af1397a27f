package book

import "errors"

// ErrNotFound is returned when no book matches the given identifier.
var ErrNotFound = errors.New("book not found")

// Book represents a stored book record. Every payload field is optional.
type Book struct {
	ID      string   `json:"id"`
	Title   *string  `json:"title,omitempty"`
	Author  *string  `json:"author,omitempty"`
	Summary *string  `json:"summary,omitempty"`
	Price   *float64 `json:"price,omitempty"`
}

// Input is the request body for create and update. Absent fields stay nil:
// create stores only what was sent, update leaves them untouched.
type Input struct {
	Title   *string  `json:"title,omitempty" bson:"title,omitempty"`
	Author  *string  `json:"author,omitempty" bson:"author,omitempty"`
	Summary *string  `json:"summary,omitempty" bson:"summary,omitempty"`
	Price   *float64 `json:"price,omitempty" bson:"price,omitempty"`
}

// IsEmpty reports whether no field was supplied.
func (in Input) IsEmpty() bool {
	return in.Title == nil && in.Author == nil && in.Summary == nil && in.Price == nil
}

// Apply copies the supplied fields of in onto b.
func (in Input) Apply(b *Book) {
	if in.Title != nil {
		b.Title = in.Title
	}
	if in.Author != nil {
		b.Author = in.Author
	}
	if in.Summary != nil {
		b.Summary = in.Summary
	}
	if in.Price != nil {
		b.Price = in.Price
	}
}

// NewBook builds a book with the given id from a create request.
func NewBook(id string, in Input) Book {
	b := Book{ID: id}
	in.Apply(&b)
	return b
}
