package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeLockStore struct {
	values map[string]string
}

func newFakeLockStore() *fakeLockStore {
	return &fakeLockStore{values: map[string]string{}}
}

func (s *fakeLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if _, exists := s.values[key]; exists {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *fakeLockStore) Get(ctx context.Context, key string) (string, error) {
	value, exists := s.values[key]
	if !exists {
		return "", redis.Nil
	}
	return value, nil
}

func (s *fakeLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestRedisLockAcquireAndRelease(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "cron:lock", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	locked, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, locked)

	require.NoError(t, lock.Release(ctx))
	_, exists := store.values["cron:lock"]
	require.False(t, exists)
}

func TestRedisLockSecondAcquirerIsRejected(t *testing.T) {
	store := newFakeLockStore()
	first, err := NewRedisLock(store, "cron:lock", time.Hour)
	require.NoError(t, err)
	second, err := NewRedisLock(store, "cron:lock", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	locked, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, locked)

	locked, err = second.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, locked)
}

func TestRedisLockReleaseSkipsForeignOwner(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "cron:lock", time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	locked, err := lock.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, locked)

	// TTL expiry followed by another replica taking the lock.
	store.values["cron:lock"] = "someone-else"
	require.NoError(t, lock.Release(ctx))
	require.Equal(t, "someone-else", store.values["cron:lock"])
}

func TestRedisLockReleaseWithoutAcquireIsNoop(t *testing.T) {
	store := newFakeLockStore()
	lock, err := NewRedisLock(store, "cron:lock", time.Hour)
	require.NoError(t, err)
	require.NoError(t, lock.Release(context.Background()))
}

func TestNewRedisLockValidation(t *testing.T) {
	_, err := NewRedisLock(nil, "key", time.Hour)
	require.Error(t, err)
	_, err = NewRedisLock(newFakeLockStore(), "", time.Hour)
	require.Error(t, err)
}
