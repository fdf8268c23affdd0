package user

import "errors"

var (
	// ErrAdminFlagEscalation is returned when a standard user tries to grant
	// themselves the admin flag through self-edit.
	ErrAdminFlagEscalation = errors.New("only an admin can change the admin flag")
	ErrEmptyToken          = errors.New("login response carried no token")
)

// Fallback messages when the API gives no reason
const (
	MsgLogin           = "Login failed"
	MsgRegister        = "Registration failed"
	MsgFetchUsers      = "Failed to fetch users"
	MsgFetchUser       = "Failed to fetch user"
	MsgUpdateUser      = "Failed to update user"
	MsgDeleteUser      = "Failed to delete user"
	MsgFetchSavedBooks = "Failed to fetch saved books"
	MsgSaveBook        = "Failed to save book"
	MsgRemoveSavedBook = "Failed to remove saved book"
)
