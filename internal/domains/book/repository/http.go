package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apiclient"
)

// httpRepository implements book.Repository against the /Book resource.
type httpRepository struct {
	api *apiclient.Client
}

func NewHTTPRepository(api *apiclient.Client) book.Repository {
	return &httpRepository{api: api}
}

func (r *httpRepository) List(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Book",
		Fallback: book.MsgFetchBooks,
	}, &books)
	return books, err
}

func (r *httpRepository) GetByID(ctx context.Context, id string) (*book.Book, error) {
	var b book.Book
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Book/" + url.PathEscape(id),
		Fallback: book.MsgFetchBook,
	}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *httpRepository) Filter(ctx context.Context, f book.Filter) ([]book.Book, error) {
	var books []book.Book
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Book/filter",
		Query:    f.Query(),
		Fallback: book.MsgFilterBooks,
	}, &books)
	return books, err
}

func (r *httpRepository) ByGenre(ctx context.Context, genreID int) ([]book.Book, error) {
	var books []book.Book
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Book/by-genre/" + strconv.Itoa(genreID),
		Fallback: book.MsgBooksByGenre,
	}, &books)
	return books, err
}

func (r *httpRepository) Create(ctx context.Context, req book.BookRequest) (*book.Book, error) {
	var b book.Book
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/Book",
		Body:     req,
		Auth:     true,
		Fallback: book.MsgCreateBook,
	}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *httpRepository) Update(ctx context.Context, id string, req book.BookRequest) (*book.Book, error) {
	var b book.Book
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPut,
		Path:     "/Book/" + url.PathEscape(id),
		Body:     req,
		Auth:     true,
		Fallback: book.MsgUpdateBook,
	}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *httpRepository) Delete(ctx context.Context, id string) (*shared.Confirmation, error) {
	var c shared.Confirmation
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodDelete,
		Path:     "/Book/" + url.PathEscape(id),
		Auth:     true,
		Fallback: book.MsgDeleteBook,
	}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
