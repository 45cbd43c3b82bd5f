// Package records implements the application's persistent key-value
// storage: each key addresses one opaque document (a fully serialized
// collection or session projection), mirroring the browser local-storage
// layout the stores were designed around.
package records

import "context"

// Repository describes key-addressed access to persisted records.
// Implementations are backed by a local SQLite database.
type Repository interface {
	// Get returns the record stored under key, or (nil, nil) if absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous record.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the record under key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every record.
	Clear(ctx context.Context) error
}
