package repository

import (
	"context"
	"net/http"
	"net/url"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/user"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apiclient"
)

// httpRepository implements user.Repository against /User.
type httpRepository struct {
	api *apiclient.Client
}

func NewHTTPRepository(api *apiclient.Client) user.Repository {
	return &httpRepository{api: api}
}

func userPath(id string) string {
	return "/User/" + url.PathEscape(id)
}

func savedPath(userID string) string {
	return userPath(userID) + "/saved-books"
}

// ========================================
// AUTHENTICATION
// ========================================

func (r *httpRepository) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	var res user.LoginResponse
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/User/login",
		Body:     req,
		Fallback: user.MsgLogin,
	}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *httpRepository) Register(ctx context.Context, req user.UserRequest) (*user.User, error) {
	return r.register(ctx, req, false)
}

func (r *httpRepository) Create(ctx context.Context, req user.UserRequest) (*user.User, error) {
	return r.register(ctx, req, true)
}

func (r *httpRepository) register(ctx context.Context, req user.UserRequest, auth bool) (*user.User, error) {
	var u user.User
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     "/User/register",
		Body:     req,
		Auth:     auth,
		Fallback: user.MsgRegister,
	}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ========================================
// ACCOUNTS
// ========================================

func (r *httpRepository) List(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     "/User",
		Auth:     true,
		Fallback: user.MsgFetchUsers,
	}, &users)
	return users, err
}

func (r *httpRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var u user.User
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     userPath(id),
		Auth:     true,
		Fallback: user.MsgFetchUser,
	}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *httpRepository) Update(ctx context.Context, id string, req user.UserRequest) (*user.User, error) {
	var u user.User
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPut,
		Path:     userPath(id),
		Body:     req,
		Auth:     true,
		Fallback: user.MsgUpdateUser,
	}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *httpRepository) Delete(ctx context.Context, id string) (*shared.Confirmation, error) {
	var c shared.Confirmation
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodDelete,
		Path:     userPath(id),
		Auth:     true,
		Fallback: user.MsgDeleteUser,
	}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ========================================
// SAVED BOOKS
// ========================================

func (r *httpRepository) ListSaved(ctx context.Context, userID string) ([]book.Book, error) {
	var books []book.Book
	err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodGet,
		Path:     savedPath(userID),
		Auth:     true,
		Fallback: user.MsgFetchSavedBooks,
	}, &books)
	return books, err
}

func (r *httpRepository) AddSaved(ctx context.Context, userID, bookID string) (*book.Book, error) {
	var b book.Book
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodPost,
		Path:     savedPath(userID) + "/" + url.PathEscape(bookID),
		Auth:     true,
		Fallback: user.MsgSaveBook,
	}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *httpRepository) RemoveSaved(ctx context.Context, userID, bookID string) (*shared.Confirmation, error) {
	var c shared.Confirmation
	if err := r.api.Do(ctx, apiclient.Request{
		Method:   http.MethodDelete,
		Path:     savedPath(userID) + "/" + url.PathEscape(bookID),
		Auth:     true,
		Fallback: user.MsgRemoveSavedBook,
	}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
