package guard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/guard"
	"github.com/acoruss/acoruss.github.io/internal/guard/mocks"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type stubLimiter struct {
	allow bool
	wait  time.Duration
	keys  []string
}

func (s *stubLimiter) Allow(key string) (bool, time.Duration) {
	s.keys = append(s.keys, key)
	return s.allow, s.wait
}

func enabledService() *models.Service {
	return &models.Service{ID: "svc-1", Slug: "shop", APIKey: "ak_test", Enabled: true}
}

func TestAuthorize_Success(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	limiter := &stubLimiter{allow: true}
	g := guard.New(lookup, limiter)
	ctx := context.Background()

	lookup.EXPECT().GetByAPIKey(ctx, "ak_test").Return(enabledService(), nil).Once()

	svc, err := g.Authorize(ctx, "ak_test", "10.0.0.1")

	require.NoError(t, err)
	assert.Equal(t, "svc-1", svc.ID)
	assert.Equal(t, []string{"ak_test"}, limiter.keys)
}

func TestAuthorize_MissingToken(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	g := guard.New(lookup, &stubLimiter{allow: true})

	_, err := g.Authorize(context.Background(), "", "10.0.0.1")

	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	lookup.AssertNotCalled(t, "GetByAPIKey")
}

func TestAuthorize_UnknownKey(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	g := guard.New(lookup, &stubLimiter{allow: true})
	ctx := context.Background()

	lookup.EXPECT().GetByAPIKey(ctx, "ak_nope").Return(nil, models.ErrNotFound).Once()

	_, err := g.Authorize(ctx, "ak_nope", "10.0.0.1")

	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestAuthorize_DisabledService(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	limiter := &stubLimiter{allow: true}
	g := guard.New(lookup, limiter)
	ctx := context.Background()

	svc := enabledService()
	svc.Enabled = false
	lookup.EXPECT().GetByAPIKey(ctx, "ak_test").Return(svc, nil).Once()

	_, err := g.Authorize(ctx, "ak_test", "10.0.0.1")

	assert.ErrorIs(t, err, models.ErrUnauthenticated)
	assert.Empty(t, limiter.keys)
}

func TestAuthorize_LookupError(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	g := guard.New(lookup, &stubLimiter{allow: true})
	ctx := context.Background()

	dbErr := errors.New("connection refused")
	lookup.EXPECT().GetByAPIKey(ctx, "ak_test").Return(nil, dbErr).Once()

	_, err := g.Authorize(ctx, "ak_test", "10.0.0.1")

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, models.ErrUnauthenticated)
}

func TestAuthorize_IPNotAllowedIsCheckedBeforeRateLimit(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	limiter := &stubLimiter{allow: false, wait: time.Second}
	g := guard.New(lookup, limiter)
	ctx := context.Background()

	svc := enabledService()
	svc.AllowedIPs = datatypes.JSONSlice[string]{"192.168.1.10"}
	lookup.EXPECT().GetByAPIKey(ctx, "ak_test").Return(svc, nil).Once()

	_, err := g.Authorize(ctx, "ak_test", "10.0.0.1")

	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, limiter.keys)
}

func TestAuthorize_RateLimited(t *testing.T) {
	lookup := mocks.NewMockServiceLookup(t)
	g := guard.New(lookup, &stubLimiter{allow: false, wait: 2 * time.Second})
	ctx := context.Background()

	lookup.EXPECT().GetByAPIKey(ctx, "ak_test").Return(enabledService(), nil).Once()

	_, err := g.Authorize(ctx, "ak_test", "10.0.0.1")

	assert.ErrorIs(t, err, models.ErrRateLimited)
	var rlErr *models.RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, 2*time.Second, rlErr.RetryAfter)
}
