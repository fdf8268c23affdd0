package author

import (
	"context"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
)

// Repository - data access contract for the /Author resource
type Repository interface {
	List(ctx context.Context) ([]Author, error)
	// ListWithBookCount returns every author with BookCount filled by the server.
	ListWithBookCount(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id string) (*Author, error)
	GetBooks(ctx context.Context, id string) ([]book.Book, error)
	Create(ctx context.Context, req AuthorRequest) (*Author, error)
	Update(ctx context.Context, id string, req AuthorRequest) (*Author, error)
	Delete(ctx context.Context, id string) (*shared.Confirmation, error)
}
