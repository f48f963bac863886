package exchange_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/acoruss/acoruss.github.io/internal/exchange"
	"github.com/acoruss/acoruss.github.io/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls   atomic.Int32
	rates   map[string]decimal.Decimal
	err     error
	release chan struct{}
}

func (f *fakeSource) Latest(ctx context.Context, base models.Currency) (map[string]decimal.Decimal, error) {
	f.calls.Add(1)
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func usdRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"KES": decimal.RequireFromString("129.50"),
	}
}

func newClock() *clock {
	return &clock{t: time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)}
}

func TestRate_SameCurrencyNeverFetches(t *testing.T) {
	src := &fakeSource{rates: usdRates()}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)

	q, err := cache.Rate(context.Background(), models.CurrencyKES, models.CurrencyKES)

	require.NoError(t, err)
	assert.True(t, q.Rate.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestRate_CachedWithinTTL(t *testing.T) {
	src := &fakeSource{rates: usdRates()}
	c := newClock()
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour).WithClock(c.now)
	ctx := context.Background()

	_, err := cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)
	require.NoError(t, err)
	c.advance(59 * time.Minute)
	q, err := cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load())
	assert.False(t, q.Stale)
	assert.True(t, q.Rate.Equal(decimal.RequireFromString("129.5")))

	c.advance(2 * time.Minute)
	_, err = cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestRate_ConcurrentMissesShareOneFetch(t *testing.T) {
	src := &fakeSource{rates: usdRates(), release: make(chan struct{})}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)
		}(i)
	}

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRate_StaleFallbackOnFetchFailure(t *testing.T) {
	src := &fakeSource{rates: usdRates()}
	c := newClock()
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour).WithClock(c.now)
	ctx := context.Background()

	_, err := cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)
	require.NoError(t, err)

	src.err = errors.New("upstream down")
	c.advance(3 * time.Hour)
	q, err := cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)

	require.NoError(t, err)
	assert.True(t, q.Stale)
	assert.True(t, q.Rate.Equal(decimal.RequireFromString("129.50")))

	c.advance(22 * time.Hour)
	_, err = cache.Rate(ctx, models.CurrencyUSD, models.CurrencyKES)
	assert.ErrorIs(t, err, models.ErrRateUnavailable)
}

func TestRate_NoCacheAndFetchFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("timeout")}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)

	_, err := cache.Rate(context.Background(), models.CurrencyNGN, models.CurrencyKES)

	assert.ErrorIs(t, err, models.ErrRateUnavailable)
}

func TestRate_MissingTargetCurrency(t *testing.T) {
	src := &fakeSource{rates: map[string]decimal.Decimal{"USD": decimal.NewFromInt(1)}}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)

	_, err := cache.Rate(context.Background(), models.CurrencyUSD, models.CurrencyKES)

	assert.ErrorIs(t, err, models.ErrRateUnavailable)
}

func TestConvert_RoundsToTwoDecimals(t *testing.T) {
	src := &fakeSource{rates: usdRates()}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)

	conv, err := exchange.Convert(context.Background(), cache, decimal.RequireFromString("25.00"), models.CurrencyUSD, models.CurrencyKES)

	require.NoError(t, err)
	assert.Equal(t, "3237.50", conv.ConvertedAmount.StringFixed(2))
	assert.True(t, conv.Applied)
	assert.Equal(t, exchange.SourceName, conv.Source)
}

func TestConvert_HalfUp(t *testing.T) {
	src := &fakeSource{rates: map[string]decimal.Decimal{"KES": decimal.RequireFromString("0.975")}}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)

	conv, err := exchange.Convert(context.Background(), cache, decimal.RequireFromString("1.00"), models.CurrencyNGN, models.CurrencyKES)

	require.NoError(t, err)
	assert.Equal(t, "0.98", conv.ConvertedAmount.StringFixed(2))
}

func TestConvert_Identity(t *testing.T) {
	src := &fakeSource{}
	cache := exchange.NewCache(src, time.Hour, 24*time.Hour)

	conv, err := exchange.Convert(context.Background(), cache, decimal.RequireFromString("2500"), models.CurrencyKES, models.CurrencyKES)

	require.NoError(t, err)
	assert.False(t, conv.Applied)
	assert.Equal(t, "2500.00", conv.ConvertedAmount.StringFixed(2))
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestOpenERAPI_Latest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v6/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"USD","rates":{"USD":1,"KES":129.5,"NGN":1530.25}}`))
	}))
	defer srv.Close()

	src := exchange.NewOpenERAPI(srv.URL+"/v6/latest/", 5*time.Second)
	rates, err := src.Latest(context.Background(), models.CurrencyUSD)

	require.NoError(t, err)
	assert.Equal(t, "129.5", rates["KES"].String())
	assert.Equal(t, "1530.25", rates["NGN"].String())
}

func TestOpenERAPI_ErrorResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"error","error-type":"unsupported-code"}`))
	}))
	defer srv.Close()

	src := exchange.NewOpenERAPI(srv.URL, 5*time.Second)
	_, err := src.Latest(context.Background(), "XXX")

	assert.ErrorContains(t, err, "unsupported-code")
}

func TestOpenERAPI_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := exchange.NewOpenERAPI(srv.URL, 5*time.Second)
	_, err := src.Latest(context.Background(), models.CurrencyUSD)

	assert.ErrorContains(t, err, "HTTP 502")
}
