package keyvalue

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrInvalidEntity = errors.New("invalid key-value entity")
)

// Bucket is a byte store keyed by strings. A zero ttl keeps the entry until
// it is deleted.
type Bucket interface {
	Put(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Get returns ErrNotFound for missing or expired keys.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
