// Package apperror holds the four failure kinds the catalog core can produce.
//
//	ValidationError   field-level, resolved before any network call
//	PolicyDeniedError blocked locally by role or invariant, no network call
//	RemoteFailure     non-success response or transport failure from the API
//	ErrStorageCorruption  unreadable persisted session, recovered as Anonymous
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MsgAdminOnly is the text the presentation layer shows for admin-gated screens.
const MsgAdminOnly = "Access denied. Admin only."

var (
	ErrAdminOnly         = errors.New(MsgAdminOnly)
	ErrNotAuthenticated  = errors.New("not authenticated")
	ErrSessionExpired    = errors.New("session expired, please log in again")
	ErrNotOwner          = errors.New("access denied: you can only act on your own account")
	ErrSelfDelete        = errors.New("you cannot delete your own account")
	ErrAuthorHasBooks    = errors.New("cannot delete author with linked books")
	ErrStorageCorruption = errors.New("persisted session is corrupt")
)

// ============================================================
// VALIDATION
// ============================================================

// ValidationError maps form field name -> message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, "" when the field is valid.
func (e *ValidationError) Field(name string) string {
	return e.Fields[name]
}

// NewValidationError adds a single field error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// FromValidation converts an ozzo-validation result. nil stays nil, internal
// (non field) errors are returned unchanged.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for field, ferr := range verrs {
		if ferr == nil {
			continue
		}
		out.Fields[field] = ferr.Error()
	}
	if len(out.Fields) == 0 {
		return nil
	}
	return out
}

// ============================================================
// POLICY
// ============================================================

// PolicyDeniedError reports an operation blocked before reaching the network.
type PolicyDeniedError struct {
	Operation string
	Entity    string
	Reason    error
}

func (e *PolicyDeniedError) Error() string {
	return e.Reason.Error()
}

func (e *PolicyDeniedError) Unwrap() error { return e.Reason }

func Denied(op, entity string, reason error) *PolicyDeniedError {
	return &PolicyDeniedError{Operation: op, Entity: entity, Reason: reason}
}

// ============================================================
// REMOTE
// ============================================================

// RemoteFailure is any non-success outcome of a call to the catalog API.
// Status is 0 for transport failures.
type RemoteFailure struct {
	Op      string
	Status  int
	Message string
	Code    string
	Err     error
}

func (e *RemoteFailure) Error() string {
	return e.Message
}

func (e *RemoteFailure) Unwrap() error { return e.Err }

// IsUnauthorized reports a rejected or expired credential.
func (e *RemoteFailure) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

func (e *RemoteFailure) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// ============================================================
// CLASSIFICATION
// ============================================================

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPolicyDenied(err error) bool {
	var p *PolicyDeniedError
	return errors.As(err, &p)
}

func IsRemote(err error) bool {
	var r *RemoteFailure
	return errors.As(err, &r)
}

// ToErrorCode converts error to a stable code the presentation layer can switch on
func ToErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrAuthorHasBooks):
		return "AUTHOR_HAS_BOOKS"
	case errors.Is(err, ErrSelfDelete):
		return "SELF_DELETE"
	case errors.Is(err, ErrSessionExpired):
		return "SESSION_EXPIRED"
	case errors.Is(err, ErrNotAuthenticated):
		return "NOT_AUTHENTICATED"
	case IsPolicyDenied(err):
		return "POLICY_DENIED"
	case IsRemote(err):
		return "REMOTE_FAILURE"
	default:
		return "INTERNAL_ERROR"
	}
}
