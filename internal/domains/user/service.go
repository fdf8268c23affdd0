package user

import (
	"context"

	"library-catalog/internal/shared"
)

// Service covers authentication and account management.
// Saved books live in the savedbooks manager, which keeps the local set.
type Service interface {
	// Login validates the credentials, calls the API and starts the session.
	Login(ctx context.Context, req LoginRequest) (*User, error)

	// Register creates the account and then logs in with the same credentials.
	Register(ctx context.Context, req UserRequest) (*User, error)

	// Logout ends the session locally; the API has no logout endpoint.
	Logout(ctx context.Context) error

	// Current returns the logged-in identity or a policy denial.
	Current(ctx context.Context) (*User, error)

	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (*User, error)

	// Update is admin-or-self. A self update replaces the session identity.
	Update(ctx context.Context, id string, req UserRequest) (*User, error)

	// Delete is admin only and never targets the acting admin.
	Delete(ctx context.Context, id string) (*shared.Confirmation, error)
}
