package book

import (
	"context"
)

// Service provides book operations. It forwards straight to the repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new book built from the request body.
func (s *Service) Create(ctx context.Context, in Input) (Book, error) {
	return s.repo.Create(ctx, in)
}

// List returns every stored book.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// Update merges the supplied fields into the book with the given id.
func (s *Service) Update(ctx context.Context, id string, in Input) (Book, error) {
	return s.repo.Update(ctx, id, in)
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Ping checks that the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
