package user

import (
	"strings"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/policy"
)

// User is the account as the API returns it. The password is write-only and
// therefore has no field here; it only travels in UserRequest/LoginRequest.
type User struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	NickName   string      `json:"nickName"`
	Email      string      `json:"email"`
	IsAdmin    bool        `json:"isAdmin"`
	SavedBooks []book.Book `json:"savedBooks,omitempty"`
}

// Role is derived from the admin flag on every call, never stored.
func (u *User) Role() policy.Role {
	return policy.RoleFor(u.IsAdmin)
}

// Actor is the policy view of this user.
func (u *User) Actor() *policy.Actor {
	return &policy.Actor{UserID: u.ID, Role: u.Role()}
}

// IsWellFormed is the minimum a persisted identity must carry to be trusted.
func (u *User) IsWellFormed() bool {
	return strings.TrimSpace(u.ID) != "" && strings.TrimSpace(u.Email) != "" && strings.TrimSpace(u.Name) != ""
}

// SameEmail compares emails case-insensitively (emails are unique that way).
func SameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
