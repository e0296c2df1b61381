package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"consentflow/internal/consent/models"
	"consentflow/pkg/platform/sentinel"
	"consentflow/pkg/requestcontext"
)

const (
	viewKeyPrefix = "consent:view:"

	defaultMaxRetries = 3
)

// RedisStore keeps views in Redis so any instance can serve a user's action.
// Keys expire with the view.
type RedisStore struct {
	client     *redis.Client
	maxRetries int
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithMaxRetries bounds how often Update retries after losing a WATCH race.
func WithMaxRetries(n int) RedisStoreOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// NewRedis constructs a Redis-backed view store. The client lifecycle is
// managed by the caller.
func NewRedis(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:     client,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

func viewKey(id string) string {
	return viewKeyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context, v *models.View) error {
	ttl := v.ExpiresAt.Sub(requestcontext.Now(ctx))
	if ttl <= 0 {
		return sentinel.ErrExpired
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	ok, err := s.client.SetNX(ctx, viewKey(v.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	if !ok {
		return sentinel.ErrConflict
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.View, error) {
	data, err := s.client.Get(ctx, viewKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return decodeView(ctx, data)
}

// Update reads the view under WATCH, applies fn and writes the result in a
// MULTI block. A concurrent write aborts the transaction and the whole read,
// apply, write cycle is retried with fresh state.
func (s *RedisStore) Update(ctx context.Context, id string, fn func(*models.View) error) (*models.View, error) {
	key := viewKey(id)
	var updated *models.View

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
		}
		v, err := decodeView(ctx, data)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		ttl := v.ExpiresAt.Sub(requestcontext.Now(ctx))
		if ttl <= 0 {
			return sentinel.ErrNotFound
		}
		next, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal view: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = v
		return nil
	}

	for range s.maxRetries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, sentinel.ErrConflict
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, viewKey(id)).Err(); err != nil {
		return fmt.Errorf("%w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

func decodeView(ctx context.Context, data []byte) (*models.View, error) {
	var v models.View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal view: %w", err)
	}
	// Key TTL normally removes the view first; this covers clock skew between
	// instances.
	if v.Expired(requestcontext.Now(ctx)) {
		return nil, sentinel.ErrNotFound
	}
	return &v, nil
}
