package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apperror"
)

type actor struct{ a *policy.Actor }

func (s actor) Actor() *policy.Actor { return s.a }

var (
	admin    = actor{&policy.Actor{UserID: "a-1", Role: policy.RoleAdmin}}
	standard = actor{&policy.Actor{UserID: "u-1", Role: policy.RoleStandard}}
	nobody   = actor{}
)

type stubRepo struct {
	calls   map[string]int
	filters []book.Filter
	created book.BookRequest
}

func newStub() *stubRepo { return &stubRepo{calls: map[string]int{}} }

func (r *stubRepo) List(context.Context) ([]book.Book, error) {
	r.calls["list"]++
	return []book.Book{{ID: "b-1"}}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*book.Book, error) {
	r.calls["get"]++
	return &book.Book{ID: id}, nil
}

func (r *stubRepo) Filter(_ context.Context, f book.Filter) ([]book.Book, error) {
	r.calls["filter"]++
	r.filters = append(r.filters, f)
	// server order, deliberately not sorted by title
	return []book.Book{{ID: "2", Title: "Dune Messiah"}, {ID: "1", Title: "Dune"}}, nil
}

func (r *stubRepo) ByGenre(context.Context, int) ([]book.Book, error) {
	r.calls["by-genre"]++
	return nil, nil
}

func (r *stubRepo) Create(_ context.Context, req book.BookRequest) (*book.Book, error) {
	r.calls["create"]++
	r.created = req
	return &book.Book{ID: "new", Title: req.Title}, nil
}

func (r *stubRepo) Update(_ context.Context, id string, req book.BookRequest) (*book.Book, error) {
	r.calls["update"]++
	return &book.Book{ID: id, Title: req.Title}, nil
}

func (r *stubRepo) Delete(context.Context, string) (*shared.Confirmation, error) {
	r.calls["delete"]++
	return &shared.Confirmation{Message: "ok"}, nil
}

func (r *stubRepo) total() int {
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

var validForm = book.BookForm{
	Title:       " Dune ",
	AuthorID:    "au-1",
	ISBN:        "9780441013593",
	PublishYear: "1965",
	Price:       "9.99",
	GenreIDs:    []int{2},
}

func TestFilterIssuesOneQueryAndKeepsServerOrder(t *testing.T) {
	repo := newStub()
	svc := NewService(repo, standard)

	f := book.Filter{TitleSubstring: "Dune", SortBy: "publishedYear", SortOrder: book.SortDesc}
	books, err := svc.Filter(context.Background(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.total())
	require.Len(t, repo.filters, 1)
	q := repo.filters[0].Query()
	assert.Equal(t, "Dune", q.Get("searchTitle"))
	assert.Equal(t, "publishedYear", q.Get("sortBy"))
	assert.Equal(t, "desc", q.Get("sortOrder"))
	assert.Equal(t, []string{"2", "1"}, []string{books[0].ID, books[1].ID})
}

func TestEmptyFilterIsList(t *testing.T) {
	repo := newStub()
	_, err := NewService(repo, standard).Filter(context.Background(), book.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls["list"])
	assert.Zero(t, repo.calls["filter"])
}

func TestInvalidFilterNeverReachesRepository(t *testing.T) {
	repo := newStub()
	_, err := NewService(repo, standard).Filter(context.Background(), book.Filter{SortOrder: "up"})
	assert.True(t, apperror.IsValidation(err))
	assert.Zero(t, repo.total())
}

func TestReadsRequireAuthentication(t *testing.T) {
	repo := newStub()
	_, err := NewService(repo, nobody).List(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNotAuthenticated)
	assert.Zero(t, repo.total())
}

func TestCreate(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		repo := newStub()
		b, err := NewService(repo, admin).Create(context.Background(), validForm)
		require.NoError(t, err)
		assert.Equal(t, "new", b.ID)
		assert.Equal(t, "Dune", repo.created.Title)
		assert.True(t, decimal.RequireFromString("9.99").Equal(repo.created.Price))
		require.NotNil(t, repo.created.PublishYear)
		assert.Equal(t, 1965, *repo.created.PublishYear)
	})

	t.Run("standard user is denied without a call", func(t *testing.T) {
		repo := newStub()
		_, err := NewService(repo, standard).Create(context.Background(), validForm)
		assert.True(t, apperror.IsPolicyDenied(err))
		assert.ErrorIs(t, err, apperror.ErrAdminOnly)
		assert.Zero(t, repo.total())
	})

	t.Run("invalid form is rejected before policy", func(t *testing.T) {
		repo := newStub()
		form := validForm
		form.Title, form.GenreIDs, form.Price = "", nil, "-1"
		_, err := NewService(repo, standard).Create(context.Background(), form)

		var verr *apperror.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Title is required", verr.Field("title"))
		assert.Equal(t, "At least one genre is required", verr.Field("genreIds"))
		assert.Equal(t, "Price is required and must be a non-negative number", verr.Field("price"))
		assert.Zero(t, repo.total())
	})
}

func TestUpdateAndDeleteAreAdminOnly(t *testing.T) {
	repo := newStub()
	svc := NewService(repo, standard)

	_, err := svc.Update(context.Background(), "b-1", validForm)
	assert.ErrorIs(t, err, apperror.ErrAdminOnly)
	_, err = svc.Delete(context.Background(), "b-1")
	assert.ErrorIs(t, err, apperror.ErrAdminOnly)
	assert.Zero(t, repo.total())

	svc = NewService(repo, admin)
	_, err = svc.Update(context.Background(), "b-1", validForm)
	require.NoError(t, err)
	res, err := svc.Delete(context.Background(), "b-1")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Message)
}
