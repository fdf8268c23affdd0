package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the persisted client-side key/value storage the session lives in.
// Implementations: Redis, JSON file, in-memory (internal/infrastructure/kvstore).
//
// There is no transaction across keys: callers write the identity and token
// one after the other and accept that two processes sharing a store can race.
type Store interface {
	// Get returns the raw value for key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key without expiry.
	Set(ctx context.Context, key, value string) error

	// Delete removes keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the backend is reachable.
	Ping(ctx context.Context) error
}
