package interfaces

import (
	"context"
	"time"
)

// ICacheStore is a byte-oriented key/value cache (Redis or in-process).
type ICacheStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
