//go:build integration

package view_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"consentflow/internal/consent/models"
	"consentflow/internal/consent/store/view"
	"consentflow/pkg/requestcontext"
	"consentflow/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *view.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = view.NewRedis(s.redis.Client)
}

func (s *RedisStoreSuite) TearDownSuite() {
	s.redis.Terminate(context.Background())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

// TestFullLifecycle walks a view through load, approval and redirect against a
// real Redis server.
func (s *RedisStoreSuite) TestFullLifecycle() {
	ctx := context.Background()
	now := requestcontext.Now(ctx)
	id := uuid.NewString()
	req := &models.AuthorizationRequest{
		ClientID:            uuid.NewString(),
		Scope:               "conversion",
		RedirectURI:         "https://example.com/cb",
		ResponseType:        "code",
		CodeChallenge:       "challenge",
		CodeChallengeMethod: "S256",
	}

	s.Require().NoError(s.store.Create(ctx, models.NewLoadingView(id, req, now, 5*time.Minute)))

	_, err := s.store.Update(ctx, id, func(v *models.View) error {
		return v.Ready(&models.ClientInfo{Name: "App", ScopeDescriptions: []string{}})
	})
	s.Require().NoError(err)
	_, err = s.store.Update(ctx, id, func(v *models.View) error { return v.Submit() })
	s.Require().NoError(err)
	_, err = s.store.Update(ctx, id, func(v *models.View) error { return v.Submit() })
	s.Require().Error(err, "second submit must lose")

	final, err := s.store.Update(ctx, id, func(v *models.View) error {
		return v.Redirect("https://example.com/cb?code=abc")
	})
	s.Require().NoError(err)
	s.Equal(models.StatusRedirecting, final.Status)
	s.Equal("https://example.com/cb?code=abc", final.RedirectURL)
}
