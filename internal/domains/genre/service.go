package genre

import (
	"context"

	"library-catalog/internal/shared"
)

type Service interface {
	List(ctx context.Context) ([]Genre, error)

	// ListSelectable is List without the "unknown" sentinel, for book forms.
	ListSelectable(ctx context.Context) ([]Genre, error)

	GetByID(ctx context.Context, id int) (*Genre, error)
	Create(ctx context.Context, req GenreRequest) (*Genre, error)
	Update(ctx context.Context, id int, req GenreRequest) (*Genre, error)
	Delete(ctx context.Context, id int) (*shared.Confirmation, error)
}
