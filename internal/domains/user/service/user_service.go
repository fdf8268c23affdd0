package service

import (
	"context"
	"fmt"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apperror"
	"library-catalog/pkg/logger"
)

// Session is the part of the session the user service drives.
type Session interface {
	policy.ActorSource
	Begin(ctx context.Context, u user.User, token string) error
	Logout(ctx context.Context)
	UpdateIdentity(ctx context.Context, u user.User)
	CurrentUser() *user.User
}

// userService implement user.Service interface
type userService struct {
	repo    user.Repository
	session Session
}

func NewUserService(repo user.Repository, session Session) user.Service {
	return &userService{
		repo:    repo,
		session: session,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.User, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. EXCHANGE CREDENTIALS
	res, err := s.repo.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. START SESSION
	if err := s.session.Begin(ctx, res.User, res.Token); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return &res.User, nil
}

// Register creates a standard account and logs in as it. When an admin is
// already logged in this is admin creation: the account may be an admin
// and the admin's session is kept.
func (s *userService) Register(ctx context.Context, req user.UserRequest) (*user.User, error) {
	// 1. VALIDATE INPUT
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. ADMIN FLAG
	actor := s.session.Actor()
	creatingAsAdmin := actor != nil && actor.IsAdmin()
	if req.IsAdmin && !creatingAsAdmin {
		return nil, apperror.Denied(string(policy.OpCreate), string(policy.EntityUser), user.ErrAdminFlagEscalation)
	}

	// 3. CREATE ACCOUNT
	register := s.repo.Register
	if creatingAsAdmin {
		register = s.repo.Create
	}
	created, err := register(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info("user registered", map[string]interface{}{"user_id": created.ID, "by_admin": creatingAsAdmin})

	if creatingAsAdmin {
		return created, nil
	}

	// 4. AUTO LOGIN with the submitted credentials
	return s.Login(ctx, user.LoginRequest{Email: req.Email, Password: req.Password})
}

func (s *userService) Logout(ctx context.Context) error {
	s.session.Logout(ctx)
	return nil
}

func (s *userService) Current(_ context.Context) (*user.User, error) {
	u := s.session.CurrentUser()
	if u == nil {
		return nil, apperror.Denied(string(policy.OpRead), string(policy.EntityUser), apperror.ErrNotAuthenticated)
	}
	return u, nil
}

// ========================================
// ACCOUNTS
// ========================================

func (s *userService) List(ctx context.Context) ([]user.User, error) {
	if err := policy.Authorize(s.session.Actor(), policy.OpList, policy.EntityUser, ""); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *userService) GetByID(ctx context.Context, id string) (*user.User, error) {
	if err := policy.Authorize(s.session.Actor(), policy.OpRead, policy.EntityUser, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *userService) Update(ctx context.Context, id string, req user.UserRequest) (*user.User, error) {
	// 1. VALIDATE INPUT
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. POLICY: admin or self, and only an admin touches the admin flag
	actor := s.session.Actor()
	if err := policy.Authorize(actor, policy.OpUpdate, policy.EntityUser, id); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && req.IsAdmin {
		return nil, apperror.Denied(string(policy.OpUpdate), string(policy.EntityUser), user.ErrAdminFlagEscalation)
	}

	// 3. UPDATE
	updated, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	// 4. SELF EDIT refreshes the session identity
	if id == actor.UserID {
		s.session.UpdateIdentity(ctx, *updated)
	}
	logger.Info("user updated", map[string]interface{}{"user_id": id, "by": actor.UserID})
	return updated, nil
}

func (s *userService) Delete(ctx context.Context, id string) (*shared.Confirmation, error) {
	actor := s.session.Actor()
	if err := policy.AuthorizeUserDelete(actor, id); err != nil {
		return nil, err
	}

	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info("user deleted", map[string]interface{}{"user_id": id, "by": actor.UserID})
	return res, nil
}
