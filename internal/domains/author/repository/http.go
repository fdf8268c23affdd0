package repository

import (
	"context"
	"net/http"
	"net/url"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apiclient"
)

type httpRepository struct {
	api *apiclient.Client
}

// NewHTTPRepository - /Author over the catalog API
func NewHTTPRepository(api *apiclient.Client) author.Repository {
	return &httpRepository{api: api}
}

func (r *httpRepository) List(ctx context.Context) ([]author.Author, error) {
	var authors []author.Author
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Author",
		Fallback: author.MsgFetchAuthors,
	}, &authors)
	return authors, err
}

func (r *httpRepository) ListWithBookCount(ctx context.Context) ([]author.Author, error) {
	var authors []author.Author
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Author/with-book-count",
		Fallback: author.MsgFetchAuthorsWithCount,
	}, &authors)
	return authors, err
}

func (r *httpRepository) GetByID(ctx context.Context, id string) (*author.Author, error) {
	var a author.Author
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Author/" + url.PathEscape(id),
		Fallback: author.MsgFetchAuthor,
	}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *httpRepository) GetBooks(ctx context.Context, id string) ([]book.Book, error) {
	var books []book.Book
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Author/" + url.PathEscape(id) + "/books",
		Fallback: author.MsgFetchAuthorBooks,
	}, &books)
	return books, err
}

func (r *httpRepository) Create(ctx context.Context, req author.AuthorRequest) (*author.Author, error) {
	var a author.Author
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/Author",
		Body:     req,
		Auth:     true,
		Fallback: author.MsgCreateAuthor,
	}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *httpRepository) Update(ctx context.Context, id string, req author.AuthorRequest) (*author.Author, error) {
	var a author.Author
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPut,
		Path:     "/Author/" + url.PathEscape(id),
		Body:     req,
		Auth:     true,
		Fallback: author.MsgUpdateAuthor,
	}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *httpRepository) Delete(ctx context.Context, id string) (*shared.Confirmation, error) {
	var c shared.Confirmation
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodDelete,
		Path:     "/Author/" + url.PathEscape(id),
		Auth:     true,
		Fallback: author.MsgDeleteAuthor,
	}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
