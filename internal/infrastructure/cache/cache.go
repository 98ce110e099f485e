package cache

import (
	"context"
	"fmt"
	"time"

	"motofinance/internal/usecase/interfaces"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

var (
	_ interfaces.ICacheStore = (*RedisStore)(nil)
	_ interfaces.ICacheStore = (*MemoryStore)(nil)
)

type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(opt *redis.Options) *RedisStore {
	return &RedisStore{Client: redis.NewClient(opt)}
}

// NewRedisStoreFromURL parses a redis:// URL and checks the server is reachable.
func NewRedisStoreFromURL(ctx context.Context, url string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	s := NewRedisStore(opt)
	if err := s.Client.Ping(ctx).Err(); err != nil {
		_ = s.Client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return s, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.Client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.Client.Del(ctx, key).Err()
}

func (s *RedisStore) Close() error {
	return s.Client.Close()
}

// DefaultMemoryEntries bounds a MemoryStore built with maxEntries <= 0.
const DefaultMemoryEntries = 10000

type memItem struct {
	v       []byte
	expires time.Time
}

// MemoryStore is a process-local LRU cache holding at most maxEntries keys.
// Entries are released after maxTTL even if never read again; a shorter
// per-call ttl is enforced on read. maxTTL <= 0 disables the store-wide
// expiry.
type MemoryStore struct {
	lru *expirable.LRU[string, memItem]
	now func() time.Time
}

func NewMemoryStore(maxEntries int, maxTTL time.Duration) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryStore{
		lru: expirable.NewLRU[string, memItem](maxEntries, nil, maxTTL),
		now: time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	it, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !it.expires.IsZero() && s.now().After(it.expires) {
		s.lru.Remove(key)
		return nil, false, nil
	}
	return clone(it.v), true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	it := memItem{v: clone(value)}
	if ttl > 0 {
		it.expires = s.now().Add(ttl)
	}
	s.lru.Add(key, it)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}

// Len reports the entries currently held, expired ones included until the
// background sweep releases them.
func (s *MemoryStore) Len() int {
	return s.lru.Len()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
