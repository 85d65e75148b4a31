package offers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dispatch:offers:"

// openScript claims the order's round atomically: a hash whose _exp is still in
// the future means a live round exists.
// ARGV: now_ms, expires_ms, ttl_ms, courier ids...
var openScript = redis.NewScript(`
local exp = redis.call('HGET', KEYS[1], '_exp')
if exp and tonumber(exp) > tonumber(ARGV[1]) then
  return 0
end
redis.call('DEL', KEYS[1])
redis.call('HSET', KEYS[1], '_exp', ARGV[2], '_opened', ARGV[1])
for i = 4, #ARGV do
  redis.call('HSET', KEYS[1], ARGV[i], ARGV[2])
end
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// RedisStore keeps one hash per order; the key's TTL drops the round even if
// CloseAll is never called.
type RedisStore struct {
	rdb redis.UniversalClient
	now func() time.Time
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(rdb redis.UniversalClient) *RedisStore {
	return &RedisStore{rdb: rdb, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the time source; intended for tests.
func (s *RedisStore) WithClock(now func() time.Time) *RedisStore {
	if now != nil {
		s.now = now
	}
	return s
}

func key(orderID string) string { return keyPrefix + orderID }

// OpenOffers creates one offer per courier, all expiring after ttl.
func (s *RedisStore) OpenOffers(ctx context.Context, orderID string, courierIDs []int64, ttl time.Duration) error {
	if err := validateOpen(orderID, courierIDs, ttl); err != nil {
		return err
	}

	now := s.now()
	args := make([]any, 0, 3+len(courierIDs))
	args = append(args, now.UnixMilli(), now.Add(ttl).UnixMilli(), ttl.Milliseconds())
	for _, id := range courierIDs {
		args = append(args, strconv.FormatInt(id, 10))
	}

	ok, err := openScript.Run(ctx, s.rdb, []string{key(orderID)}, args...).Int()
	if err != nil {
		return fmt.Errorf("open offers for order %q: %w", orderID, err)
	}
	if ok == 0 {
		return ErrAlreadyOpen
	}
	return nil
}

// IsLive reports whether the courier holds an unexpired offer for the order.
func (s *RedisStore) IsLive(ctx context.Context, orderID string, courierID int64) (bool, error) {
	raw, err := s.rdb.HGet(ctx, key(orderID), strconv.FormatInt(courierID, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("offer lookup %q/%d: %w", orderID, courierID, err)
	}
	expMs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("offer lookup %q/%d: bad expiry %q", orderID, courierID, raw)
	}
	return s.now().UnixMilli() < expMs, nil
}

// CloseAll drops every offer of the order. Closing twice is a no-op.
func (s *RedisStore) CloseAll(ctx context.Context, orderID string) error {
	if err := s.rdb.Del(ctx, key(orderID)).Err(); err != nil {
		return fmt.Errorf("close offers for order %q: %w", orderID, err)
	}
	return nil
}

