// Package requestguard drops results of reads that a newer read (or a write)
// for the same resource has overtaken.
//
//	t := guard.Begin("saved:" + userID)
//	books, err := repo.ListSaved(ctx, userID)
//	if !t.Current() { return requestguard.ErrSuperseded }
package requestguard

import (
	"errors"
	"sync"
)

// ErrSuperseded is returned by callers that discarded a stale result.
var ErrSuperseded = errors.New("result superseded by a newer request")

type Guard struct {
	mu  sync.Mutex
	gen map[string]uint64
}

func New() *Guard {
	return &Guard{gen: map[string]uint64{}}
}

// Ticket identifies one request for a key.
type Ticket struct {
	g   *Guard
	key string
	gen uint64
}

// Begin starts a request for key; every earlier ticket for key becomes stale.
func (g *Guard) Begin(key string) Ticket {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen[key]++
	return Ticket{g: g, key: key, gen: g.gen[key]}
}

// Invalidate makes every outstanding ticket for key stale.
func (g *Guard) Invalidate(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen[key]++
}

// Reset forgets every key; all outstanding tickets become stale.
func (g *Guard) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for k := range g.gen {
		g.gen[k]++
	}
}

// Current reports whether no newer request for the key has started.
func (t Ticket) Current() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	return t.g.gen[t.key] == t.gen
}
