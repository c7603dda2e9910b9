// Package secrets persists small sensitive blobs (the token pair) in the
// client's local SQLite database.
package secrets

import (
	"context"
)

type Repository interface {
	// Get returns the stored value for key, or (nil, nil) if absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every stored secret.
	Clear(ctx context.Context) error
}
