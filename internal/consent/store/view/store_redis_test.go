package view

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentflow/internal/consent/models"
	"consentflow/pkg/platform/sentinel"
	"consentflow/pkg/requestcontext"
)

func newMiniredisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client, WithMaxRetries(20)), mr
}

func TestRedisStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) viewStore {
		store, _ := newMiniredisStore(t)
		return store
	})
}

func TestRedisStore_KeyExpiresWithView(t *testing.T) {
	store, mr := newMiniredisStore(t)
	ctx := requestcontext.WithTime(context.Background(), baseTime)
	require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))

	assert.Equal(t, viewTTL, mr.TTL(viewKeyPrefix+"v1"))

	mr.FastForward(viewTTL)
	_, err := store.Get(ctx, "v1")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestRedisStore_CreateRejectsExpiredView(t *testing.T) {
	store, _ := newMiniredisStore(t)
	later := requestcontext.WithTime(context.Background(), baseTime.Add(viewTTL))
	err := store.Create(later, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL))
	assert.ErrorIs(t, err, sentinel.ErrExpired)
}

func TestRedisStore_Unavailable(t *testing.T) {
	store, mr := newMiniredisStore(t)
	mr.Close()

	_, err := store.Get(context.Background(), "v1")
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
