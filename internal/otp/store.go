package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("otp not found or expired")

// Store keeps one pending code per account key.
type Store interface {
	Save(ctx context.Context, key, code string, ttl time.Duration) error
	// Consume removes the code for key and reports whether it matched.
	Consume(ctx context.Context, key, code string) error
}

// Generate returns a random four digit code in [1000, 9999].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}

func matches(stored, code string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(key string) string {
	return "otp:" + key
}

func (s *RedisStore) Save(ctx context.Context, key, code string, ttl time.Duration) error {
	return s.client.Set(ctx, redisKey(key), code, ttl).Err()
}

func (s *RedisStore) Consume(ctx context.Context, key, code string) error {
	stored, err := s.client.Get(ctx, redisKey(key)).Result()
	if err == redis.Nil {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if !matches(stored, code) {
		return ErrNotFound
	}
	return s.client.Del(ctx, redisKey(key)).Err()
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, key, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[key] = memoryEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Consume(ctx context.Context, key, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.codes[key]
	if !exists {
		return ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.codes, key)
		return ErrNotFound
	}
	if !matches(entry.code, code) {
		return ErrNotFound
	}
	delete(s.codes, key)
	return nil
}
