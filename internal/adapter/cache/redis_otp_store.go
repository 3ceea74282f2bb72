package cache

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOTPStore holds short-lived admin login codes. Keeping these in
// redis rather than a process-local map means verification works no
// matter which instance receives the request.
type RedisOTPStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisOTPStore(rdb *redis.Client, ttl time.Duration) *RedisOTPStore {
	return &RedisOTPStore{rdb: rdb, ttl: ttl}
}

func (s *RedisOTPStore) Put(ctx context.Context, email, code string) error {
	return s.rdb.Set(ctx, "otp:"+email, code, s.ttl).Err()
}

// Consume checks the code for email and deletes it on match. Codes are
// single-use: a correct code can only be redeemed once.
func (s *RedisOTPStore) Consume(ctx context.Context, email, code string) (bool, error) {
	key := "otp:" + email
	stored, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	_ = s.rdb.Del(ctx, key).Err()
	return true, nil
}
