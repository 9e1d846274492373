// Package metadata persists the client's small key/value records (the stored
// session token and serialized user) in the local SQLite database.
package metadata

import (
	"context"
)

// Repository reads and writes metadata rows. Get returns ok=false for a
// missing key rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
