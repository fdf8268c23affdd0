package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/genre"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apperror"
)

type actor struct{ a *policy.Actor }

func (s actor) Actor() *policy.Actor { return s.a }

type stubRepo struct {
	calls   int
	created genre.GenreRequest
}

func (r *stubRepo) List(context.Context) ([]genre.Genre, error) {
	r.calls++
	return []genre.Genre{{ID: 1, Name: "Unknown"}, {ID: 2, Name: "Science Fiction"}, {ID: 3, Name: "Fantasy"}}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id int) (*genre.Genre, error) {
	r.calls++
	return &genre.Genre{ID: id}, nil
}

func (r *stubRepo) Create(_ context.Context, req genre.GenreRequest) (*genre.Genre, error) {
	r.calls++
	r.created = req
	return &genre.Genre{ID: 9, Name: req.Name}, nil
}

func (r *stubRepo) Update(_ context.Context, id int, req genre.GenreRequest) (*genre.Genre, error) {
	r.calls++
	return &genre.Genre{ID: id, Name: req.Name}, nil
}

func (r *stubRepo) Delete(context.Context, int) (*shared.Confirmation, error) {
	r.calls++
	return &shared.Confirmation{}, nil
}

func TestListSelectableDropsUnknown(t *testing.T) {
	repo := &stubRepo{}
	svc := NewGenreService(repo, actor{&policy.Actor{UserID: "u", Role: policy.RoleStandard}})

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	selectable, err := svc.ListSelectable(context.Background())
	require.NoError(t, err)
	require.Len(t, selectable, 2)
	assert.Equal(t, "Science Fiction", selectable[0].Name)
	assert.Equal(t, "Fantasy", selectable[1].Name)
}

func TestCreateGenre(t *testing.T) {
	repo := &stubRepo{}
	svc := NewGenreService(repo, actor{&policy.Actor{UserID: "a", Role: policy.RoleAdmin}})

	_, err := svc.Create(context.Background(), genre.GenreRequest{Name: "   "})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name is required", verr.Field("name"))
	assert.Zero(t, repo.calls)

	g, err := svc.Create(context.Background(), genre.GenreRequest{Name: " Horror ", Description: " spooky "})
	require.NoError(t, err)
	assert.Equal(t, "Horror", g.Name)
	assert.Equal(t, "spooky", repo.created.Description)
}

func TestGenreWritesAreAdminOnly(t *testing.T) {
	repo := &stubRepo{}
	svc := NewGenreService(repo, actor{&policy.Actor{UserID: "u", Role: policy.RoleStandard}})

	_, err := svc.Create(context.Background(), genre.GenreRequest{Name: "Horror"})
	assert.ErrorIs(t, err, apperror.ErrAdminOnly)
	_, err = svc.Update(context.Background(), 2, genre.GenreRequest{Name: "Horror"})
	assert.ErrorIs(t, err, apperror.ErrAdminOnly)
	_, err = svc.Delete(context.Background(), 2)
	assert.ErrorIs(t, err, apperror.ErrAdminOnly)
	assert.Zero(t, repo.calls)
}
