// Package policy decides, without any I/O, whether an identity may perform an
// operation. Every service consults it before touching a repository.
package policy

import (
	"fmt"

	"library-catalog/internal/shared/apperror"
)

type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// RoleFor derives the role from the identity's admin flag.
func RoleFor(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleStandard
}

type Operation string

const (
	OpList   Operation = "list"
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

func (o Operation) IsWrite() bool {
	return o == OpCreate || o == OpUpdate || o == OpDelete
}

type Entity string

const (
	EntityBook       Entity = "book"
	EntityAuthor     Entity = "author"
	EntityGenre      Entity = "genre"
	EntityUser       Entity = "user"
	EntitySavedBooks Entity = "saved-books"
)

// Actor is the authenticated identity a decision is made for.
type Actor struct {
	UserID string
	Role   Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanPerform is the role-only decision table. Operations whose answer depends
// on who owns the target (user self-edit, saved books) are answered for the
// non-owner case here; use Authorize with an owner id for those.
func CanPerform(role Role, op Operation, entity Entity) bool {
	switch entity {
	case EntityBook, EntityAuthor, EntityGenre:
		if op == OpList || op == OpRead {
			return role == RoleAdmin || role == RoleStandard
		}
		return role == RoleAdmin
	case EntityUser, EntitySavedBooks:
		return role == RoleAdmin
	default:
		return false
	}
}

// Authorize answers for a concrete actor. ownerID is the user the operation
// targets ("" when the operation has no owner, e.g. listing books).
// A nil actor is Anonymous and is always refused.
func Authorize(actor *Actor, op Operation, entity Entity, ownerID string) error {
	if actor == nil {
		return apperror.Denied(string(op), string(entity), apperror.ErrNotAuthenticated)
	}
	if CanPerform(actor.Role, op, entity) {
		return nil
	}

	self := ownerID != "" && ownerID == actor.UserID
	switch entity {
	case EntityUser:
		// ownership only ever grants read and update
		if op == OpRead || op == OpUpdate {
			if self {
				return nil
			}
			if ownerID != "" {
				return apperror.Denied(string(op), string(entity), apperror.ErrNotOwner)
			}
		}
	case EntitySavedBooks:
		if self {
			return nil
		}
		return apperror.Denied(string(op), string(entity), apperror.ErrNotOwner)
	}
	return apperror.Denied(string(op), string(entity), apperror.ErrAdminOnly)
}

// AuthorizeAuthorDelete adds the referential rule on top of the admin check:
// an author that still has books is never sent to the API for deletion.
func AuthorizeAuthorDelete(actor *Actor, bookCount int) error {
	if err := Authorize(actor, OpDelete, EntityAuthor, ""); err != nil {
		return err
	}
	if bookCount > 0 {
		return apperror.Denied(string(OpDelete), string(EntityAuthor),
			fmt.Errorf("%w: author has %d book(s), remove them first", apperror.ErrAuthorHasBooks, bookCount))
	}
	return nil
}

// AuthorizeUserDelete adds "an admin cannot delete their own account".
func AuthorizeUserDelete(actor *Actor, targetID string) error {
	if err := Authorize(actor, OpDelete, EntityUser, targetID); err != nil {
		return err
	}
	if targetID == actor.UserID {
		return apperror.Denied(string(OpDelete), string(EntityUser), apperror.ErrSelfDelete)
	}
	return nil
}

// ActorSource yields the acting identity, nil when nobody is logged in.
// The session implements it.
type ActorSource interface {
	Actor() *Actor
}
