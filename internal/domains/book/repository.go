package book

import (
	"context"

	"library-catalog/internal/shared"
)

// Repository is the data access contract for books.
// Every call is one round trip to the API; nothing is cached or retried.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByID(ctx context.Context, id string) (*Book, error)

	// Filter sends the filter to GET /Book/filter and returns the server's order.
	Filter(ctx context.Context, f Filter) ([]Book, error)

	// ByGenre lists the books tagged with genreID.
	ByGenre(ctx context.Context, genreID int) ([]Book, error)

	Create(ctx context.Context, req BookRequest) (*Book, error)
	Update(ctx context.Context, id string, req BookRequest) (*Book, error)
	Delete(ctx context.Context, id string) (*shared.Confirmation, error)
}
