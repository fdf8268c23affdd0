package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/domains/user"
	kvstoreimpl "library-catalog/internal/infrastructure/kvstore"
	"library-catalog/internal/session"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/apperror"
)

type stubRepo struct {
	calls      map[string]int
	loginRes   *user.LoginResponse
	registered user.UserRequest
	updated    user.UserRequest
}

func newStub() *stubRepo {
	return &stubRepo{calls: map[string]int{}}
}

func (r *stubRepo) Login(_ context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	r.calls["login"]++
	if r.loginRes != nil {
		return r.loginRes, nil
	}
	return &user.LoginResponse{Token: "abc", User: user.User{ID: "u-1", Name: "X", NickName: "x", Email: req.Email}}, nil
}

func (r *stubRepo) Register(_ context.Context, req user.UserRequest) (*user.User, error) {
	r.calls["register"]++
	r.registered = req
	return &user.User{ID: "u-new", Name: req.Name, NickName: req.NickName, Email: req.Email, IsAdmin: req.IsAdmin}, nil
}

func (r *stubRepo) Create(_ context.Context, req user.UserRequest) (*user.User, error) {
	r.calls["create"]++
	r.registered = req
	return &user.User{ID: "u-new", Name: req.Name, NickName: req.NickName, Email: req.Email, IsAdmin: req.IsAdmin}, nil
}

func (r *stubRepo) List(context.Context) ([]user.User, error) {
	r.calls["list"]++
	return nil, nil
}

func (r *stubRepo) GetByID(_ context.Context, id string) (*user.User, error) {
	r.calls["get"]++
	return &user.User{ID: id}, nil
}

func (r *stubRepo) Update(_ context.Context, id string, req user.UserRequest) (*user.User, error) {
	r.calls["update"]++
	r.updated = req
	return &user.User{ID: id, Name: req.Name, NickName: req.NickName, Email: req.Email, IsAdmin: req.IsAdmin}, nil
}

func (r *stubRepo) Delete(context.Context, string) (*shared.Confirmation, error) {
	r.calls["delete"]++
	return &shared.Confirmation{Message: "User deleted successfully"}, nil
}

func (r *stubRepo) ListSaved(context.Context, string) ([]book.Book, error) { return nil, nil }
func (r *stubRepo) AddSaved(context.Context, string, string) (*book.Book, error) {
	return nil, nil
}
func (r *stubRepo) RemoveSaved(context.Context, string, string) (*shared.Confirmation, error) {
	return nil, nil
}

func (r *stubRepo) total() int {
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

var (
	standardUser = user.User{ID: "u-1", Name: "Xavier", NickName: "xy", Email: "x@y.com"}
	adminUser    = user.User{ID: "a-1", Name: "Admin", NickName: "root", Email: "admin@x.io", IsAdmin: true}
)

func newSession(t *testing.T, as *user.User) (*session.Session, *kvstoreimpl.MemoryStore) {
	t.Helper()
	store := kvstoreimpl.NewMemoryStore()
	s := session.New(store, session.Options{})
	if as != nil {
		require.NoError(t, s.Begin(context.Background(), *as, "tok"))
	}
	return s, store
}

func TestLoginStartsSession(t *testing.T) {
	ctx := context.Background()
	repo := newStub()
	repo.loginRes = &user.LoginResponse{Token: "abc", User: standardUser}
	sess, store := newSession(t, nil)

	u, err := NewUserService(repo, sess).Login(ctx, user.LoginRequest{Email: "x@y.com", Password: "Secret1!"})
	require.NoError(t, err)

	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, session.Authenticated, sess.State())
	assert.Equal(t, "u-1", sess.Actor().UserID)

	token, err := store.Get(ctx, "library-ui.authToken")
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
	_, err = store.Get(ctx, "library-ui.currentUser")
	require.NoError(t, err)
}

func TestLoginValidatesFirst(t *testing.T) {
	repo := newStub()
	sess, _ := newSession(t, nil)

	_, err := NewUserService(repo, sess).Login(context.Background(), user.LoginRequest{Email: "x@y", Password: ""})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Invalid email format", verr.Field("email"))
	assert.Equal(t, "Password is required", verr.Field("password"))
	assert.Zero(t, repo.total())
}

func TestLoginWithoutTokenStaysAnonymous(t *testing.T) {
	repo := newStub()
	repo.loginRes = &user.LoginResponse{User: standardUser}
	sess, _ := newSession(t, nil)

	_, err := NewUserService(repo, sess).Login(context.Background(), user.LoginRequest{Email: "x@y.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, user.ErrEmptyToken)
	assert.Equal(t, session.Anonymous, sess.State())
}

func TestRegisterLogsIn(t *testing.T) {
	repo := newStub()
	sess, _ := newSession(t, nil)

	u, err := NewUserService(repo, sess).Register(context.Background(), user.UserRequest{
		Name: " New Reader ", NickName: "nr", Email: "new@x.io", Password: "Secret1!",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls["register"])
	assert.Equal(t, 1, repo.calls["login"])
	assert.Equal(t, "New Reader", repo.registered.Name)
	assert.Equal(t, "new@x.io", u.Email)
	assert.True(t, sess.IsAuthenticated())
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	repo := newStub()
	sess, _ := newSession(t, nil)

	_, err := NewUserService(repo, sess).Register(context.Background(), user.UserRequest{
		Name: "N", NickName: "n", Email: "n@x.io", Password: "abc",
	})
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t,
		"Password must be at least 8 characters; Password must contain at least one uppercase letter; Password must contain at least one number",
		verr.Field("password"))
	assert.Zero(t, repo.total())
}

func TestRegisterAdminFlag(t *testing.T) {
	req := user.UserRequest{Name: "N", NickName: "n", Email: "n@x.io", Password: "Secret1!", IsAdmin: true}

	t.Run("anonymous cannot self-grant", func(t *testing.T) {
		repo := newStub()
		sess, _ := newSession(t, nil)
		_, err := NewUserService(repo, sess).Register(context.Background(), req)
		assert.ErrorIs(t, err, user.ErrAdminFlagEscalation)
		assert.Zero(t, repo.total())
	})

	t.Run("admin creates without switching session", func(t *testing.T) {
		repo := newStub()
		sess, _ := newSession(t, &adminUser)
		u, err := NewUserService(repo, sess).Register(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, u.IsAdmin)
		assert.Equal(t, 1, repo.calls["create"])
		assert.Zero(t, repo.calls["register"]+repo.calls["login"])
		assert.Equal(t, "a-1", sess.CurrentUser().ID)
	})
}

func TestStandardUserCannotListUsers(t *testing.T) {
	repo := newStub()
	sess, _ := newSession(t, &standardUser)

	_, err := NewUserService(repo, sess).List(context.Background())

	require.Error(t, err)
	assert.True(t, apperror.IsPolicyDenied(err))
	assert.Equal(t, "Access denied. Admin only.", err.Error())
	assert.Zero(t, repo.total())
}

func TestSelfEditRefreshesIdentity(t *testing.T) {
	ctx := context.Background()
	repo := newStub()
	sess, store := newSession(t, &standardUser)
	svc := NewUserService(repo, sess)

	_, err := svc.Update(ctx, "u-1", user.UserRequest{Name: "Xavier Y", NickName: "xavi", Email: "x@y.com", Password: "Secret1!"})
	require.NoError(t, err)
	assert.Equal(t, "xavi", sess.CurrentUser().NickName)

	raw, err := store.Get(ctx, sess.UserKey())
	require.NoError(t, err)
	assert.Contains(t, raw, "xavi")

	_, err = svc.Update(ctx, "u-1", user.UserRequest{Name: "X", NickName: "x", Email: "x@y.com", Password: "Secret1!", IsAdmin: true})
	assert.ErrorIs(t, err, user.ErrAdminFlagEscalation)

	_, err = svc.Update(ctx, "u-2", user.UserRequest{Name: "X", NickName: "x", Email: "o@y.com", Password: "Secret1!"})
	assert.ErrorIs(t, err, apperror.ErrNotOwner)
	assert.Equal(t, 1, repo.calls["update"])
}

func TestAdminEditOfOtherUserKeepsOwnIdentity(t *testing.T) {
	repo := newStub()
	sess, _ := newSession(t, &adminUser)

	_, err := NewUserService(repo, sess).Update(context.Background(), "u-1", user.UserRequest{Name: "Promoted", NickName: "p", Email: "x@y.com", Password: "Secret1!", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, "Admin", sess.CurrentUser().Name)
	assert.True(t, repo.updated.IsAdmin)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	repo := newStub()
	sess, _ := newSession(t, &adminUser)
	svc := NewUserService(repo, sess)

	_, err := svc.Delete(ctx, "a-1")
	assert.ErrorIs(t, err, apperror.ErrSelfDelete)
	assert.Zero(t, repo.total())

	res, err := svc.Delete(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", res.Message)
}

func TestCurrentAndLogout(t *testing.T) {
	ctx := context.Background()
	sess, _ := newSession(t, &standardUser)
	svc := NewUserService(newStub(), sess)

	u, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Current(ctx)
	assert.ErrorIs(t, err, apperror.ErrNotAuthenticated)
}
