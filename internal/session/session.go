// Package session owns the one authenticated identity of a client process.
//
// Every collaborator that needs identity, role or the bearer token receives
// the same *Session; nothing else reads the persisted keys.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/user"
	"library-catalog/internal/policy"
	"library-catalog/internal/shared/apperror"
	"library-catalog/pkg/jwt"
	"library-catalog/pkg/kvstore"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

const (
	DefaultKeyPrefix = "library-ui"

	currentUserKey = "currentUser"
	authTokenKey   = "authToken"
)

// Options tune persistence keys and expiry handling.
type Options struct {
	// KeyPrefix namespaces the two persisted entries ("<prefix>.currentUser", "<prefix>.authToken").
	KeyPrefix string

	// PreemptiveExpiry makes Token() log out, without a network call, once
	// the token's exp claim has passed.
	PreemptiveExpiry bool
	ExpiryLeeway     time.Duration

	// Now is the clock, time.Now when nil.
	Now func() time.Time
}

// Change reasons set by the session itself. Forced logouts carry their own reason.
const (
	ReasonLogin             = "login"
	ReasonLogout            = "logout"
	ReasonIdentityRefreshed = "identity refreshed"
)

// Change is delivered to listeners after every transition.
type Change struct {
	From   State
	To     State
	User   *user.User
	Reason string
}

type Session struct {
	store kvstore.Store
	opts  Options

	mu        sync.RWMutex
	user      *user.User
	token     string
	listeners []func(Change)
}

func New(store kvstore.Store, opts Options) *Session {
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{store: store, opts: opts}
}

// UserKey is the persisted key of the serialized identity.
func (s *Session) UserKey() string { return s.opts.KeyPrefix + "." + currentUserKey }

// TokenKey is the persisted key of the bearer token.
func (s *Session) TokenKey() string { return s.opts.KeyPrefix + "." + authTokenKey }

// OnChange registers fn for every state transition and identity refresh.
func (s *Session) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// ============================================================
// RESTORE
// ============================================================

// Restore loads the persisted identity and token. An incomplete, unparsable
// or expired record leaves the session Anonymous and is removed from storage.
// Only a storage backend failure is returned.
func (s *Session) Restore(ctx context.Context) error {
	rawUser, userErr := s.store.Get(ctx, s.UserKey())
	token, tokenErr := s.store.Get(ctx, s.TokenKey())

	for _, err := range []error{userErr, tokenErr} {
		if err != nil && !errors.Is(err, kvstore.ErrNotFound) {
			return fmt.Errorf("restore session: %w", err)
		}
	}
	if errors.Is(userErr, kvstore.ErrNotFound) && errors.Is(tokenErr, kvstore.ErrNotFound) {
		log.Debug().Msg("no persisted session")
		return nil
	}

	u, err := decodeIdentity(rawUser, token, userErr, tokenErr)
	if err != nil {
		log.Warn().Err(err).Str("key", s.UserKey()).Msg("discarding persisted session")
		s.clearPersisted(ctx)
		return nil
	}

	if s.opts.PreemptiveExpiry && jwt.IsExpired(token, s.opts.Now(), s.opts.ExpiryLeeway) {
		log.Info().Str("user_id", u.ID).Msg("persisted token expired, starting anonymous")
		s.clearPersisted(ctx)
		return nil
	}

	s.transition(u, token, "restored")
	return nil
}

func decodeIdentity(rawUser, token string, userErr, tokenErr error) (*user.User, error) {
	if userErr != nil || tokenErr != nil {
		return nil, fmt.Errorf("%w: identity and token must be stored together", apperror.ErrStorageCorruption)
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: empty token", apperror.ErrStorageCorruption)
	}
	var u user.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorageCorruption, err)
	}
	if !u.IsWellFormed() {
		return nil, fmt.Errorf("%w: identity is missing id, name or email", apperror.ErrStorageCorruption)
	}
	return &u, nil
}

// ============================================================
// TRANSITIONS
// ============================================================

// Begin moves to Authenticated after a successful login or registration and
// persists both entries. A persistence failure is logged; the in-memory
// session is still authenticated.
func (s *Session) Begin(ctx context.Context, u user.User, token string) error {
	if strings.TrimSpace(token) == "" {
		return user.ErrEmptyToken
	}
	u.SavedBooks = nil

	s.persist(ctx, &u, token)
	s.transition(&u, token, ReasonLogin)

	log.Info().Str("user_id", u.ID).Bool("is_admin", u.IsAdmin).Msg("session started")
	return nil
}

// Logout clears memory and storage. Logging out while Anonymous still
// clears storage.
func (s *Session) Logout(ctx context.Context) {
	s.end(ctx, ReasonLogout)
	log.Info().Msg("logged out")
}

// ForceLogout ends the session because the credential was rejected or expired.
func (s *Session) ForceLogout(ctx context.Context, reason string) {
	if s.State() == Anonymous {
		return
	}
	s.end(ctx, reason)
	log.Warn().Str("reason", reason).Msg("session ended by force")
}

// UpdateIdentity replaces the stored identity after the user edited their own
// record. It is ignored when u is not the current user.
func (s *Session) UpdateIdentity(ctx context.Context, u user.User) {
	s.mu.RLock()
	current, token := s.user, s.token
	s.mu.RUnlock()

	if current == nil || current.ID != u.ID {
		return
	}
	u.SavedBooks = nil
	s.persist(ctx, &u, token)
	s.transition(&u, token, ReasonIdentityRefreshed)
}

func (s *Session) end(ctx context.Context, reason string) {
	s.clearPersisted(ctx)
	s.transition(nil, "", reason)
}

func (s *Session) transition(u *user.User, token, reason string) {
	s.mu.Lock()
	from := stateOf(s.user)
	s.user = u
	s.token = token
	listeners := append([]func(Change){}, s.listeners...)
	s.mu.Unlock()

	change := Change{From: from, To: stateOf(u), User: cloneUser(u), Reason: reason}
	for _, fn := range listeners {
		fn(change)
	}
}

func (s *Session) persist(ctx context.Context, u *user.User, token string) {
	raw, err := json.Marshal(u)
	if err != nil {
		log.Error().Err(err).Msg("encode session identity")
		return
	}
	if err := s.store.Set(ctx, s.UserKey(), string(raw)); err != nil {
		log.Error().Err(err).Str("key", s.UserKey()).Msg("persist session identity")
		return
	}
	if err := s.store.Set(ctx, s.TokenKey(), token); err != nil {
		log.Error().Err(err).Str("key", s.TokenKey()).Msg("persist session token")
	}
}

func (s *Session) clearPersisted(ctx context.Context) {
	if err := s.store.Delete(ctx, s.UserKey(), s.TokenKey()); err != nil {
		log.Error().Err(err).Msg("clear persisted session")
	}
}

// ============================================================
// READS
// ============================================================

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateOf(s.user)
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// CurrentUser returns a copy of the identity, nil when Anonymous.
func (s *Session) CurrentUser() *user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// Role is derived from the identity each time. Anonymous reports RoleStandard
// with ok=false.
func (s *Session) Role() (policy.Role, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return policy.RoleStandard, false
	}
	return s.user.Role(), true
}

// Actor is the identity in policy terms, nil when Anonymous.
func (s *Session) Actor() *policy.Actor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	return s.user.Actor()
}

// Token returns the bearer token for an authenticated call.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	token, authenticated := s.token, s.user != nil
	s.mu.RUnlock()

	if !authenticated {
		return "", apperror.Denied("attach-token", "session", apperror.ErrNotAuthenticated)
	}
	if s.opts.PreemptiveExpiry && jwt.IsExpired(token, s.opts.Now(), s.opts.ExpiryLeeway) {
		s.ForceLogout(ctx, "token expired")
		return "", apperror.Denied("attach-token", "session", apperror.ErrSessionExpired)
	}
	return token, nil
}

// HandleUnauthorized is the HTTP client's 401 hook.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.ForceLogout(ctx, "credential rejected by api")
}

func stateOf(u *user.User) State {
	if u == nil {
		return Anonymous
	}
	return Authenticated
}

func cloneUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
