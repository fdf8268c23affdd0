package user

import (
	"context"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
)

// Repository is the data access contract for users and their saved books.
type Repository interface {
	// Login exchanges credentials for a bearer token and the identity.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// Register creates a standard account. It does not return a token.
	Register(ctx context.Context, req UserRequest) (*User, error)

	// Create is Register sent with the admin's bearer, so the admin flag is honored.
	Create(ctx context.Context, req UserRequest) (*User, error)

	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, req UserRequest) (*User, error)
	Delete(ctx context.Context, id string) (*shared.Confirmation, error)

	// Saved books relation, GET/POST/DELETE /User/{id}/saved-books[/{bookId}]
	ListSaved(ctx context.Context, userID string) ([]book.Book, error)
	AddSaved(ctx context.Context, userID, bookID string) (*book.Book, error)
	RemoveSaved(ctx context.Context, userID, bookID string) (*shared.Confirmation, error)
}
