package guard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/models"
)

// ServiceLookup resolves API keys to services.
type ServiceLookup interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*models.Service, error)
}

// Limiter is a per-key rate limiter that reports how long to wait when it
// refuses a request.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// Guard gates every API call. Checks run in a fixed order: credentials, then
// source IP, then rate limit, so a rejected token never consumes quota.
type Guard struct {
	Services ServiceLookup
	Limiter  Limiter
}

func New(services ServiceLookup, limiter Limiter) *Guard {
	return &Guard{Services: services, Limiter: limiter}
}

// Authorize returns the service behind token if it may call the API from ip.
func (g *Guard) Authorize(ctx context.Context, token, ip string) (*models.Service, error) {
	if token == "" {
		return nil, models.ErrUnauthenticated
	}

	svc, err := g.Services.GetByAPIKey(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUnauthenticated
		}
		return nil, fmt.Errorf("looking up service: %w", err)
	}
	if !svc.Enabled {
		return nil, models.ErrUnauthenticated
	}

	if !svc.AllowsIP(ip) {
		return svc, fmt.Errorf("%w: %s", models.ErrForbidden, ip)
	}

	if ok, retryAfter := g.Limiter.Allow(svc.APIKey); !ok {
		return svc, &models.RateLimitError{RetryAfter: retryAfter}
	}
	return svc, nil
}
