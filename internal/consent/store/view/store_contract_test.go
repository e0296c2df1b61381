package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consentflow/internal/consent/models"
	dErrors "consentflow/pkg/domain-errors"
	"consentflow/pkg/platform/sentinel"
	"consentflow/pkg/requestcontext"
)

type viewStore interface {
	Create(ctx context.Context, v *models.View) error
	Get(ctx context.Context, id string) (*models.View, error)
	Update(ctx context.Context, id string, fn func(*models.View) error) (*models.View, error)
	Delete(ctx context.Context, id string) error
}

var (
	baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	viewTTL  = 15 * time.Minute
)

func testRequest() *models.AuthorizationRequest {
	return &models.AuthorizationRequest{
		ClientID:            "client-123",
		Scope:               "conversion",
		State:               "xyz",
		RedirectURI:         "https://example.com/callback",
		ResponseType:        "code",
		CodeChallenge:       "challenge",
		CodeChallengeMethod: "S256",
	}
}

func testClient() *models.ClientInfo {
	return &models.ClientInfo{
		Name:               "Test App",
		Description:        "Test Description",
		DisplayDescription: "Test Description",
		ScopeDescriptions:  []string{"Read conversions"},
	}
}

// runStoreContract checks the behaviour every view store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) viewStore) {
	ctx := requestcontext.WithTime(context.Background(), baseTime)

	t.Run("get returns a copy of the created view", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))

		got, err := store.Get(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusLoading, got.Status)
		assert.Equal(t, "client-123", got.Request.ClientID)
		assert.True(t, got.ExpiresAt.Equal(baseTime.Add(viewTTL)))

		got.Request.ClientID = "mutated"
		again, err := store.Get(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "client-123", again.Request.ClientID)
	})

	t.Run("duplicate create conflicts", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))
		err := store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL))
		assert.ErrorIs(t, err, sentinel.ErrConflict)
	})

	t.Run("missing view is not found", func(t *testing.T) {
		store := newStore(t)
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)

		_, err = store.Update(ctx, "missing", func(*models.View) error { return nil })
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("expired view is not found", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))

		later := requestcontext.WithTime(context.Background(), baseTime.Add(viewTTL+time.Second))
		_, err := store.Get(later, "v1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("update stores the transition", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))

		updated, err := store.Update(ctx, "v1", func(v *models.View) error { return v.Ready(testClient()) })
		require.NoError(t, err)
		assert.Equal(t, models.StatusReady, updated.Status)

		got, err := store.Get(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusReady, got.Status)
		assert.Equal(t, "Test App", got.Client.Name)
	})

	t.Run("rejected update writes nothing", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))

		_, err := store.Update(ctx, "v1", func(v *models.View) error { return v.Submit() })
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidState))

		got, err := store.Get(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusLoading, got.Status)
	})

	t.Run("delete removes the view", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))
		require.NoError(t, store.Delete(ctx, "v1"))
		require.NoError(t, store.Delete(ctx, "v1"))

		_, err := store.Get(ctx, "v1")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("only one concurrent submit wins", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Create(ctx, models.NewLoadingView("v1", testRequest(), baseTime, viewTTL)))
		_, err := store.Update(ctx, "v1", func(v *models.View) error { return v.Ready(testClient()) })
		require.NoError(t, err)

		const goroutines = 10
		var wg sync.WaitGroup
		var wins, rejected atomic.Int32
		for range goroutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Update(ctx, "v1", func(v *models.View) error { return v.Submit() })
				switch {
				case err == nil:
					wins.Add(1)
				case dErrors.Is(err, dErrors.CodeInvalidState), errors.Is(err, sentinel.ErrConflict):
					rejected.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		assert.Equal(t, int32(goroutines-1), rejected.Load())
	})
}
