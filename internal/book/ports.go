package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	Create(ctx context.Context, in Input) (Book, error)
	List(ctx context.Context) ([]Book, error)
	// Update applies the supplied fields and returns the document after the change.
	Update(ctx context.Context, id string, in Input) (Book, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
