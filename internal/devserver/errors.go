package devserver

import (
	"errors"
	"net/http"

	"library-catalog/internal/shared/apperror"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrEmailTaken        = errors.New("email is already registered")
	ErrBadCredentials    = errors.New("invalid email or password")
	ErrUnknownAuthor     = errors.New("author does not exist")
	ErrUnknownGenre      = errors.New("genre does not exist")
	ErrGenreInUse        = errors.New("cannot delete genre used by books")
	ErrBookAlreadySaved  = errors.New("book is already saved")
	ErrBookNotSaved      = errors.New("book is not saved")
	ErrAdminFlagReserved = errors.New("only an admin can grant the admin flag")
)

// toHTTPStatus maps store errors to status codes
func toHTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, ErrBadCredentials):
		return http.StatusUnauthorized, "BAD_CREDENTIALS"
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrBookAlreadySaved):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, apperror.ErrAuthorHasBooks):
		return http.StatusConflict, "AUTHOR_HAS_BOOKS"
	case errors.Is(err, ErrGenreInUse):
		return http.StatusConflict, "GENRE_IN_USE"
	case errors.Is(err, apperror.ErrSelfDelete):
		return http.StatusForbidden, "SELF_DELETE"
	case errors.Is(err, ErrAdminFlagReserved):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, ErrUnknownAuthor), errors.Is(err, ErrUnknownGenre), errors.Is(err, ErrBookNotSaved):
		return http.StatusBadRequest, "BAD_REQUEST"
	case apperror.IsValidation(err):
		return http.StatusBadRequest, "VALIDATION_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
	}
}
