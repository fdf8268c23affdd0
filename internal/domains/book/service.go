package book

import (
	"context"

	"library-catalog/internal/shared"
)

// Service is what the presentation layer calls: validation and policy first,
// repository second.
type Service interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (*Book, error)

	// Filter with an empty filter is the same as List.
	Filter(ctx context.Context, f Filter) ([]Book, error)
	ByGenre(ctx context.Context, genreID int) ([]Book, error)

	// Create and Update validate the form before anything else.
	// Errors: *apperror.ValidationError, *apperror.PolicyDeniedError, *apperror.RemoteFailure
	Create(ctx context.Context, form BookForm) (*Book, error)
	Update(ctx context.Context, id string, form BookForm) (*Book, error)
	Delete(ctx context.Context, id string) (*shared.Confirmation, error)
}
