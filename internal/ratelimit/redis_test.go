package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisStorage_BadURL(t *testing.T) {
	_, err := NewRedisStorage(context.Background(), "http://not-redis")
	assert.ErrorContains(t, err, "parse redis url")
}

func TestNewRedisStorage_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := NewRedisStorage(ctx, "redis://127.0.0.1:1/0")
	assert.ErrorContains(t, err, "redis ping")
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "bidchemz:ratelimit:10.0.0.1|/api/auth/login", storageKey("10.0.0.1|/api/auth/login"))
}

func TestEmptyKeysAreNoops(t *testing.T) {
	s := NewRedisStorageFromClient(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}))
	defer s.Close()

	v, err := s.Get("")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, s.Set("", []byte("x"), time.Second))
	assert.NoError(t, s.Set("k", nil, time.Second))
	assert.NoError(t, s.Delete(""))
}
