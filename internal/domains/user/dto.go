package user

import (
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/apperror"
	"library-catalog/internal/validation"
)

// ========================================
// AUTH DTOs
// ========================================

// LoginRequest - POST /User/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return apperror.FromValidation(ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Email,
			validation.Required("Email is required"),
			validation.Email("Invalid email format"),
		),
		ozzo.Field(&r.Password, validation.Required("Password is required")),
	))
}

// LoginResponse - {token, user}
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ========================================
// USER FORM
// ========================================

// UserRequest is the body of POST /User/register and PUT /User/{id}.
type UserRequest struct {
	IsAdmin  bool   `json:"isAdmin"`
	Name     string `json:"name"`
	NickName string `json:"nickName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate runs the user form rules: every field required, email shape,
// and every violated password rule reported together.
func (r UserRequest) Validate() error {
	return apperror.FromValidation(ozzo.ValidateStruct(&r,
		ozzo.Field(&r.Name, validation.Required("Name is required")),
		ozzo.Field(&r.NickName, validation.Required("Nick name is required")),
		ozzo.Field(&r.Email,
			validation.Required("Email is required"),
			validation.Email("Invalid email format"),
		),
		ozzo.Field(&r.Password,
			validation.Required("Password is required"),
			validation.StrongPassword,
		),
	))
}

// Normalize trims text fields.
func (r UserRequest) Normalize() UserRequest {
	r.Name = strings.TrimSpace(r.Name)
	r.NickName = strings.TrimSpace(r.NickName)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// RequestFromUser pre-fills an edit form. The password is never known and
// must be entered again.
func RequestFromUser(u User) UserRequest {
	return UserRequest{
		IsAdmin:  u.IsAdmin,
		Name:     u.Name,
		NickName: u.NickName,
		Email:    u.Email,
	}
}
