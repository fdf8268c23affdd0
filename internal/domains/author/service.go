package author

import (
	"context"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
)

// Service defines business operations for authors
type Service interface {
	List(ctx context.Context) ([]Author, error)
	ListWithBookCount(ctx context.Context) ([]Author, error)
	GetByID(ctx context.Context, id string) (*Author, error)
	GetBooks(ctx context.Context, id string) ([]book.Book, error)

	// GetWithBooks reads the author and their books concurrently; either
	// failure fails the whole read.
	GetWithBooks(ctx context.Context, id string) (*AuthorWithBooks, error)

	Create(ctx context.Context, form AuthorForm) (*Author, error)
	Update(ctx context.Context, id string, form AuthorForm) (*Author, error)

	// Delete takes the author as listed (with BookCount) and refuses locally,
	// without a network call, when the author still has books.
	Delete(ctx context.Context, a Author) (*shared.Confirmation, error)
}
