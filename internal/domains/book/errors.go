package book

import "errors"

var (
	ErrInvalidSortOrder   = errors.New("sort order must be asc or desc")
	ErrInvalidGenreFilter = errors.New("genre filter must be a numeric id")
)

// Fallback messages when the API gives no reason
const (
	MsgFetchBooks   = "Failed to fetch books"
	MsgFetchBook    = "Failed to fetch book"
	MsgFilterBooks  = "Failed to filter books"
	MsgBooksByGenre = "Failed to fetch books by genre"
	MsgCreateBook   = "Failed to create book"
	MsgUpdateBook   = "Failed to update book"
	MsgDeleteBook   = "Failed to delete book"
)
