package ports

import "context"

// KeyValueStore persists JSON values by string key.
// Get returns found=false for a missing key; callers treat unparseable values
// the same way.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}
