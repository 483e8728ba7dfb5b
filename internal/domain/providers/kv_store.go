package providers

import (
	"context"
)

// KeyValueStore is the persistence port the clinic records are mirrored to
type KeyValueStore interface {
	// Load returns the value stored under key. found is false when the key is absent.
	Load(ctx context.Context, key string) (value []byte, found bool, err error)

	// Save stores value under key, replacing any previous value
	Save(ctx context.Context, key string, value []byte) error

	// SaveBatch stores every entry or none of them
	SaveBatch(ctx context.Context, entries map[string][]byte) error
}
