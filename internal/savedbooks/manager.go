// Package savedbooks keeps, per user, the materialized set of saved book ids
// next to the server relation. Local state only changes after the server
// confirmed the mutation.
package savedbooks

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/policy"
	"library-catalog/internal/session"
	"library-catalog/internal/shared"
	"library-catalog/pkg/requestguard"
)

// Repository is the saved-books part of the user repository.
type Repository interface {
	ListSaved(ctx context.Context, userID string) ([]book.Book, error)
	AddSaved(ctx context.Context, userID, bookID string) (*book.Book, error)
	RemoveSaved(ctx context.Context, userID, bookID string) (*shared.Confirmation, error)
}

type savedSet struct {
	ids   map[string]struct{}
	books []book.Book
}

func newSavedSet(books []book.Book) *savedSet {
	s := &savedSet{ids: make(map[string]struct{}, len(books))}
	for _, b := range books {
		if _, dup := s.ids[b.ID]; dup {
			continue
		}
		s.ids[b.ID] = struct{}{}
		s.books = append(s.books, b)
	}
	return s
}

func (s *savedSet) has(bookID string) bool {
	_, ok := s.ids[bookID]
	return ok
}

func (s *savedSet) insert(b book.Book) {
	if s.has(b.ID) {
		return
	}
	s.ids[b.ID] = struct{}{}
	s.books = append(s.books, b)
}

func (s *savedSet) remove(bookID string) {
	if !s.has(bookID) {
		return
	}
	delete(s.ids, bookID)
	for i, b := range s.books {
		if b.ID == bookID {
			s.books = append(s.books[:i], s.books[i+1:]...)
			break
		}
	}
}

type Manager struct {
	repo   Repository
	actors policy.ActorSource
	guard  *requestguard.Guard

	mu   sync.RWMutex
	sets map[string]*savedSet
}

func NewManager(repo Repository, actors policy.ActorSource) *Manager {
	return &Manager{
		repo:   repo,
		actors: actors,
		guard:  requestguard.New(),
		sets:   map[string]*savedSet{},
	}
}

// Add saves bookID for userID. A pair already in the local set returns
// ErrAlreadySaved without calling the API.
func (m *Manager) Add(ctx context.Context, userID, bookID string) (*book.Book, error) {
	if err := policy.Authorize(m.actors.Actor(), policy.OpCreate, policy.EntitySavedBooks, userID); err != nil {
		return nil, err
	}
	if m.IsSaved(userID, bookID) {
		return nil, ErrAlreadySaved
	}

	saved, err := m.repo.AddSaved(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if saved == nil || saved.ID == "" {
		saved = &book.Book{ID: bookID}
	}

	m.guard.Invalidate(userID)
	m.mu.Lock()
	m.setFor(userID).insert(*saved)
	m.mu.Unlock()

	log.Debug().Str("user_id", userID).Str("book_id", bookID).Msg("book saved")
	return saved, nil
}

// Remove unsaves bookID. A pair missing locally returns ErrNotSaved without
// calling the API.
func (m *Manager) Remove(ctx context.Context, userID, bookID string) (*shared.Confirmation, error) {
	if err := policy.Authorize(m.actors.Actor(), policy.OpDelete, policy.EntitySavedBooks, userID); err != nil {
		return nil, err
	}
	if !m.IsSaved(userID, bookID) {
		return nil, ErrNotSaved
	}

	res, err := m.repo.RemoveSaved(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	m.guard.Invalidate(userID)
	m.mu.Lock()
	m.setFor(userID).remove(bookID)
	m.mu.Unlock()

	log.Debug().Str("user_id", userID).Str("book_id", bookID).Msg("book unsaved")
	return res, nil
}

// Refresh replaces the local set with a fresh server read. If another refresh
// or a mutation for the same user started meanwhile, the result is dropped and
// requestguard.ErrSuperseded is returned.
func (m *Manager) Refresh(ctx context.Context, userID string) ([]book.Book, error) {
	if err := policy.Authorize(m.actors.Actor(), policy.OpList, policy.EntitySavedBooks, userID); err != nil {
		return nil, err
	}

	ticket := m.guard.Begin(userID)
	books, err := m.repo.ListSaved(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ticket.Current() {
		log.Debug().Str("user_id", userID).Msg("stale saved-books read dropped")
		return nil, requestguard.ErrSuperseded
	}

	set := newSavedSet(books)
	m.mu.Lock()
	m.sets[userID] = set
	m.mu.Unlock()
	return append([]book.Book(nil), set.books...), nil
}

// List returns the local saved list in insertion order.
func (m *Manager) List(userID string) []book.Book {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[userID]
	if !ok {
		return nil
	}
	return append([]book.Book(nil), set.books...)
}

// IsSaved is the O(1) membership test used while rendering book lists.
func (m *Manager) IsSaved(userID, bookID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.sets[userID]
	return ok && set.has(bookID)
}

// Loaded reports whether userID's set was ever refreshed.
func (m *Manager) Loaded(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sets[userID]
	return ok
}

// Clear drops every local set and any in-flight refresh.
func (m *Manager) Clear() {
	m.guard.Reset()
	m.mu.Lock()
	m.sets = map[string]*savedSet{}
	m.mu.Unlock()
}

// OnSessionChange clears local state when the session ends and on every
// login, including a login that replaces a live session. Callers Refresh
// the new user's set afterwards.
func (m *Manager) OnSessionChange(c session.Change) {
	if c.To == session.Anonymous || c.Reason == session.ReasonLogin {
		m.Clear()
	}
}

// must hold m.mu
func (m *Manager) setFor(userID string) *savedSet {
	set, ok := m.sets[userID]
	if !ok {
		set = newSavedSet(nil)
		m.sets[userID] = set
	}
	return set
}
