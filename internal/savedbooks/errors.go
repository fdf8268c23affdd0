package savedbooks

import "errors"

var (
	// ErrAlreadySaved - Add on a pair that is already in the local set. No call was made.
	ErrAlreadySaved = errors.New("book is already saved")
	// ErrNotSaved - Remove on a pair missing from the local set. No call was made.
	ErrNotSaved = errors.New("book is not saved")
)
