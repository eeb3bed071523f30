package crm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// idempotencyTTL bounds how long a captured contact suppresses duplicates.
// A visitor restating their number across several turns of one conversation
// produces one lead, not one per turn.
const idempotencyTTL = 24 * time.Hour

// IdempotencyStore answers whether a lead key is being seen for the first
// time within the suppression window. Release undoes a FirstSeen claim so a
// failed capture does not suppress retries for the rest of the window.
type IdempotencyStore interface {
	FirstSeen(ctx context.Context, key string) bool
	Release(ctx context.Context, key string)
}

// LeadKey derives the dedup key from the session and the extracted contact
// fields. Different sessions mentioning the same contact still produce
// separate leads; the suppression is per conversation.
func LeadKey(sessionID, phone, email string) string {
	sum := sha256.Sum256([]byte(sessionID + "|" + phone + "|" + email))
	return hex.EncodeToString(sum[:])
}

// RedisIdempotencyStore shares the suppression window across replicas via
// SET NX. Redis errors fail open: a duplicate lead beats a lost one.
type RedisIdempotencyStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedisIdempotencyStore creates a Redis-backed idempotency store.
func NewRedisIdempotencyStore(rdb *redis.Client, logger *zap.Logger) *RedisIdempotencyStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisIdempotencyStore{rdb: rdb, logger: logger}
}

func (s *RedisIdempotencyStore) FirstSeen(ctx context.Context, key string) bool {
	ok, err := s.rdb.SetNX(ctx, "porchlight:lead:"+key, 1, idempotencyTTL).Result()
	if err != nil {
		s.logger.Warn("lead idempotency check failed, treating as first", zap.Error(err))
		return true
	}
	return ok
}

// Release drops the claim so the next sighting counts as first again. A
// Redis error here is logged and left alone: the key expires with its TTL.
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) {
	if err := s.rdb.Del(ctx, "porchlight:lead:"+key).Err(); err != nil {
		s.logger.Warn("lead idempotency release failed", zap.Error(err))
	}
}

// MemoryIdempotencyStore is the single-process fallback when Redis is not
// configured. Expired entries are cleaned up lazily on access.
type MemoryIdempotencyStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryIdempotencyStore creates an in-process idempotency store.
func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{seen: make(map[string]time.Time)}
}

func (s *MemoryIdempotencyStore) FirstSeen(_ context.Context, key string) bool {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	if at, ok := s.seen[key]; ok && now.Sub(at) <= idempotencyTTL {
		return false
	}
	for k, at := range s.seen {
		if now.Sub(at) > idempotencyTTL {
			delete(s.seen, k)
		}
	}
	s.seen[key] = now
	return true
}

// Release drops the claim so the next sighting counts as first again.
func (s *MemoryIdempotencyStore) Release(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.seen, key)
	s.mu.Unlock()
}
