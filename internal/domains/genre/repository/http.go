package repository

import (
	"context"
	"net/http"
	"strconv"

	"library-catalog/internal/domains/genre"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apiclient"
)

type httpRepository struct {
	api *apiclient.Client
}

func NewHTTPRepository(api *apiclient.Client) genre.Repository {
	return &httpRepository{api: api}
}

func path(id int) string {
	return "/Genre/" + strconv.Itoa(id)
}

func (r *httpRepository) List(ctx context.Context) ([]genre.Genre, error) {
	var genres []genre.Genre
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/Genre",
		Fallback: genre.MsgFetchGenres,
	}, &genres)
	return genres, err
}

func (r *httpRepository) GetByID(ctx context.Context, id int) (*genre.Genre, error) {
	var g genre.Genre
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     path(id),
		Fallback: genre.MsgFetchGenre,
	}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *httpRepository) Create(ctx context.Context, req genre.GenreRequest) (*genre.Genre, error) {
	var g genre.Genre
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/Genre",
		Body:     req,
		Auth:     true,
		Fallback: genre.MsgCreateGenre,
	}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *httpRepository) Update(ctx context.Context, id int, req genre.GenreRequest) (*genre.Genre, error) {
	var g genre.Genre
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPut,
		Path:     path(id),
		Body:     req,
		Auth:     true,
		Fallback: genre.MsgUpdateGenre,
	}, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *httpRepository) Delete(ctx context.Context, id int) (*shared.Confirmation, error) {
	var c shared.Confirmation
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodDelete,
		Path:     path(id),
		Auth:     true,
		Fallback: genre.MsgDeleteGenre,
	}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
