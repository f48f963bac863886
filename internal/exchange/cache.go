package exchange

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/metrics"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// Quote is a rate for one currency pair as seen by the cache.
type Quote struct {
	From      models.Currency
	To        models.Currency
	Rate      decimal.Decimal
	FetchedAt time.Time
	Stale     bool
}

type snapshot struct {
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// Cache keeps the latest rates per base currency. Entries younger than TTL are
// served directly. Older entries trigger a fetch, and concurrent misses for the
// same base share that fetch. If the fetch fails, an entry up to MaxStale old
// is served flagged as stale.
type Cache struct {
	source   Source
	ttl      time.Duration
	maxStale time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	entries map[models.Currency]snapshot
	group   singleflight.Group
}

func NewCache(source Source, ttl, maxStale time.Duration) *Cache {
	if maxStale < ttl {
		maxStale = ttl
	}
	return &Cache{
		source:   source,
		ttl:      ttl,
		maxStale: maxStale,
		now:      time.Now,
		entries:  make(map[models.Currency]snapshot),
	}
}

// WithClock replaces the cache's time source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// Rate returns the from->to rate.
func (c *Cache) Rate(ctx context.Context, from, to models.Currency) (Quote, error) {
	now := c.now()
	if from == to {
		return Quote{From: from, To: to, Rate: decimal.NewFromInt(1), FetchedAt: now}, nil
	}

	entry, ok := c.lookup(from)
	if ok && now.Sub(entry.fetchedAt) < c.ttl {
		if rate, found := entry.rates[string(to)]; found {
			return Quote{From: from, To: to, Rate: rate, FetchedAt: entry.fetchedAt}, nil
		}
	}

	fresh, err := c.refresh(ctx, from)
	if err == nil {
		rate, found := fresh.rates[string(to)]
		if !found {
			return Quote{}, fmt.Errorf("%w: no %s rate for %s", models.ErrRateUnavailable, to, from)
		}
		return Quote{From: from, To: to, Rate: rate, FetchedAt: fresh.fetchedAt}, nil
	}

	if ok && now.Sub(entry.fetchedAt) <= c.maxStale {
		if rate, found := entry.rates[string(to)]; found {
			logrus.WithFields(logrus.Fields{
				"from":       from,
				"to":         to,
				"fetched_at": entry.fetchedAt,
			}).Warn("serving stale exchange rate")
			return Quote{From: from, To: to, Rate: rate, FetchedAt: entry.fetchedAt, Stale: true}, nil
		}
	}
	return Quote{}, fmt.Errorf("%w: %s->%s: %v", models.ErrRateUnavailable, from, to, err)
}

func (c *Cache) lookup(base models.Currency) (snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[base]
	return entry, ok
}

// refresh fetches base once no matter how many callers are waiting. The fetch
// is detached from the first caller's cancellation so the others still get a
// result.
func (c *Cache) refresh(ctx context.Context, base models.Currency) (snapshot, error) {
	v, err, _ := c.group.Do(string(base), func() (interface{}, error) {
		rates, err := c.source.Latest(context.WithoutCancel(ctx), base)
		if err != nil {
			metrics.RateFetches.WithLabelValues("error").Inc()
			logrus.WithError(err).WithField("base", base).Error("exchange rate fetch failed")
			return snapshot{}, err
		}
		metrics.RateFetches.WithLabelValues("ok").Inc()

		entry := snapshot{rates: rates, fetchedAt: c.now()}
		c.mu.Lock()
		c.entries[base] = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return snapshot{}, err
	}
	return v.(snapshot), nil
}
