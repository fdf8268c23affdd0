package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author"
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
)

type stubRepo struct {
	calls    atomic.Int32
	deleted  []string
	booksErr error
	created  author.AuthorRequest
}

func (r *stubRepo) List(context.Context) ([]author.Author, error) {
	r.calls.Add(1)
	return nil, nil
}

func (r *stubRepo) ListWithBookCount(context.Context) ([]author.Author, error) {
	r.calls.Add(1)
	return []author.Author{{ID: "au-1", BookCount: 2}}, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*author.Author, error) {
	r.calls.Add(1)
	return &author.Author{ID: id, FirstName: "Frank", LastName: "Herbert"}, nil
}

func (r *stubRepo) GetBooks(_ context.Context, id string) ([]book.Book, error) {
	r.calls.Add(1)
	if r.booksErr != nil {
		return nil, r.booksErr
	}
	return []book.Book{{ID: "b-1", AuthorID: id}}, nil
}

func (r *stubRepo) Create(_ context.Context, req author.AuthorRequest) (*author.Author, error) {
	r.calls.Add(1)
	r.created = req
	return &author.Author{ID: "au-new"}, nil
}

func (r *stubRepo) Update(_ context.Context, id string, _ author.AuthorRequest) (*author.Author, error) {
	r.calls.Add(1)
	return &author.Author{ID: id}, nil
}

func (r *stubRepo) Delete(_ context.Context, id string) (*shared.Confirmation, error) {
	r.calls.Add(1)
	r.deleted = append(r.deleted, id)
	return &shared.Confirmation{Message: "deleted"}, nil
}

func TestDeleteAuthorWithBooksIsRefusedLocally(t *testing.T) {
	repo := &stubRepo{}
	svc := NewAuthorService(repo, admin)

	_, err := svc.Delete(context.Background(), author.Author{ID: "au-1", BookCount: 3})

	require.Error(t, err)
	assert.True(t, apperror.IsPolicyDenied(err))
	assert.ErrorIs(t, err, apperror.ErrAuthorHasBooks)
	assert.Contains(t, err.Error(), "3 book(s)")
	assert.Zero(t, repo.calls.Load())
}

func TestDeleteAuthorWithoutBooks(t *testing.T) {
	repo := &stubRepo{}
	res, err := NewAuthorService(repo, admin).Delete(context.Background(), author.Author{ID: "au-2"})
	require.NoError(t, err)
	assert.Equal(t, "deleted", res.Message)
	assert.Equal(t, []string{"au-2"}, repo.deleted)
}

func TestDeleteAuthorAsStandardUser(t *testing.T) {
	repo := &stubRepo{}
	_, err := NewAuthorService(repo, standard).Delete(context.Background(), author.Author{ID: "au-2"})
	assert.ErrorIs(t, err, apperror.ErrAdminOnly)
	assert.Zero(t, repo.calls.Load())
}

func TestGetWithBooks(t *testing.T) {
	repo := &stubRepo{}
	got, err := NewAuthorService(repo, standard).GetWithBooks(context.Background(), "au-1")
	require.NoError(t, err)
	assert.Equal(t, "Frank Herbert", got.Author.FullName())
	require.Len(t, got.Books, 1)
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestGetWithBooksFailsAsOne(t *testing.T) {
	repo := &stubRepo{booksErr: &apperror.RemoteFailure{Status: 500, Message: "Failed to fetch author's books"}}
	got, err := NewAuthorService(repo, standard).GetWithBooks(context.Background(), "au-1")
	assert.Nil(t, got)

	var rf *apperror.RemoteFailure
	require.True(t, errors.As(err, &rf))
	assert.Equal(t, "Failed to fetch author's books", rf.Message)
}

func TestCreateAuthorValidation(t *testing.T) {
	repo := &stubRepo{}
	svc := NewAuthorService(repo, admin)

	_, err := svc.Create(context.Background(), author.AuthorForm{FirstName: "F", BirthDate: "yesterday"})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "First name must be at least 2 characters", verr.Field("firstName"))
	assert.Equal(t, "Last name is required", verr.Field("lastName"))
	assert.Equal(t, "Invalid date", verr.Field("birthDate"))
	assert.Zero(t, repo.calls.Load())

	_, err = svc.Create(context.Background(), author.AuthorForm{FirstName: "Frank", LastName: "Herbert", BirthDate: "1920-10-08"})
	require.NoError(t, err)
	assert.Equal(t, "1920-10-08T00:00:00Z", repo.created.BirthDate)
}
