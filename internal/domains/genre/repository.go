package genre

import (
	"context"

	"library-catalog/internal/shared"
)

// Repository - /Genre resource
type Repository interface {
	List(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id int) (*Genre, error)
	Create(ctx context.Context, req GenreRequest) (*Genre, error)
	Update(ctx context.Context, id int, req GenreRequest) (*Genre, error)
	Delete(ctx context.Context, id int) (*shared.Confirmation, error)
}
