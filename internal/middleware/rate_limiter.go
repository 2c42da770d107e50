package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nac-jewellers-backup/vendorAPI/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimitStore counts hits per key inside a fixed window.
type RateLimitStore interface {
	// Hit records one request for key and returns the count in the current
	// window, the new request included.
	Hit(ctx context.Context, key string, window time.Duration) (int, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incr.Val()), nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}

	e, exists := s.entries[key]
	if !exists {
		e = &rateLimitEntry{expiresAt: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

type RateLimitConfig struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

type RateLimiter struct {
	store   RateLimitStore
	enabled bool
	log     zerolog.Logger
}

func NewRateLimiter(store RateLimitStore, enabled bool, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		store:   store,
		enabled: enabled,
		log:     log,
	}
}

// RateLimit limits requests per route by client IP and by the account named
// in the body, so guessing against one account is capped across IPs. A
// store failure lets the request through.
func (r *RateLimiter) RateLimit(config RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !r.enabled || !config.Enabled {
			return c.Next()
		}

		ip := c.IP()
		if ip == "" {
			ip = c.Context().RemoteIP().String()
		}
		if !r.allow(c.Context(), fmt.Sprintf("rate_limit:%s:ip:%s", c.Path(), ip), config) {
			return tooManyRequests(c, "Too many requests from this IP")
		}

		if account := accountKey(c); account != "" {
			if !r.allow(c.Context(), fmt.Sprintf("rate_limit:%s:account:%s", c.Path(), account), config) {
				return tooManyRequests(c, "Too many requests for this account")
			}
		}

		return c.Next()
	}
}

type accountBody struct {
	TableName    string `json:"tableName"`
	MobileNumber string `json:"mobile_number"`
	ID           string `json:"id"`
}

// accountKey names the account a public account route acts on: the mobile
// number for login and verify, the record id for a password reset.
func accountKey(c *fiber.Ctx) string {
	var body accountBody
	if len(c.Body()) == 0 || c.App().Config().JSONDecoder(c.Body(), &body) != nil {
		return ""
	}

	account := strings.TrimSpace(body.MobileNumber)
	if account == "" {
		account = strings.TrimSpace(body.ID)
	}
	if account == "" {
		return ""
	}
	return body.TableName + ":" + account
}

func (r *RateLimiter) allow(ctx context.Context, key string, config RateLimitConfig) bool {
	count, err := r.store.Hit(ctx, key, config.Window)
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("rate limit store unavailable")
		return true
	}
	return count <= config.Limit
}

func tooManyRequests(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusTooManyRequests).JSON(models.Response{
		Status:  models.StatusFailure,
		Message: message,
	})
}
