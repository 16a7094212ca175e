// Package session provides a small expiring key-value store for short-lived
// ceremony state, such as WebAuthn challenges. Entries live under an explicit
// identifier with a TTL; expiry is checked on every read. The primary
// implementation is backed by redis, with an in-process fallback for
// deployments that run without one.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when an identifier is absent or its entry expired.
var ErrNotFound = errors.New("session: not found or expired")

// DefaultTTL matches the five-minute challenge lifetime of the registration
// and login ceremonies.
const DefaultTTL = 5 * time.Minute

// Store holds JSON-serializable values under string identifiers with expiry.
type Store interface {
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
	Load(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, key string) error
}

// RedisStore persists entries in redis, relying on its native TTL handling.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over the given redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save marshals the value to JSON and stores it with the given TTL.
func (s *RedisStore) Save(ctx context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, ttl).Err()
}

// Load retrieves and unmarshals the value stored under key.
func (s *RedisStore) Load(ctx context.Context, key string, dest any) error {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// Delete removes the entry stored under key.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

// MemoryStore keeps entries in process memory. Each entry carries its expiry
// timestamp, which is checked on every read, so a stale challenge can never
// be consumed even though no background eviction runs.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

// Save marshals the value to JSON and stores it with the given TTL.
func (s *MemoryStore) Save(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{payload: b, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Load retrieves and unmarshals the value stored under key, evicting and
// rejecting expired entries.
func (s *MemoryStore) Load(_ context.Context, key string, dest any) error {
	s.mu.Lock()
	entry, ok := s.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		delete(s.entries, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(entry.payload, dest)
}

// Delete removes the entry stored under key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
