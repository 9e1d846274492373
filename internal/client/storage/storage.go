// Package storage is the client's durable key/value storage: the place the
// session token and serialized user survive restarts and are shared between
// client processes.
//
// Three backends are provided:
//
//   - SQLite: a local file, the default. Every client process on the machine
//     sharing the file sees the same session.
//   - Redis: a shared server, for clients on several machines.
//   - Memory: process-local, for tests.
//
// Multi-key writes are atomic in every backend, so readers never observe a
// token without its user or the other way round.
package storage

import (
	"context"
	"errors"
)

// Session keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrUnavailable wraps every backend failure.
var ErrUnavailable = errors.New("storage unavailable")

type Storage interface {
	// Get returns ok=false when key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, values map[string]string) error
	// DeleteMany removes all keys atomically. Missing keys are ignored.
	DeleteMany(ctx context.Context, keys ...string) error
	Close() error
}
