package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestKeyedLimiter_SixtyFirstRequestIsRejected(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := newKeyedLimiter(60, time.Minute, clock.now)

	for i := 0; i < 60; i++ {
		ok, _ := l.Allow("ak_a")
		assert.True(t, ok, "request %d", i+1)
	}

	ok, retryAfter := l.Allow("ak_a")
	assert.False(t, ok)
	assert.Equal(t, time.Second, retryAfter)

	ok, _ = l.Allow("ak_b")
	assert.True(t, ok, "other keys have their own bucket")
}

func TestKeyedLimiter_RefillsOverTime(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := newKeyedLimiter(60, time.Minute, clock.now)

	for i := 0; i < 60; i++ {
		l.Allow("ak_a")
	}
	ok, _ := l.Allow("ak_a")
	assert.False(t, ok)

	clock.t = clock.t.Add(time.Second)
	ok, _ = l.Allow("ak_a")
	assert.True(t, ok)
	ok, _ = l.Allow("ak_a")
	assert.False(t, ok)
}

func TestKeyedLimiter_RejectionDoesNotConsumeTokens(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := newKeyedLimiter(2, 2*time.Second, clock.now)

	l.Allow("k")
	l.Allow("k")
	for i := 0; i < 5; i++ {
		ok, _ := l.Allow("k")
		assert.False(t, ok)
	}

	clock.t = clock.t.Add(time.Second)
	ok, _ := l.Allow("k")
	assert.True(t, ok)
}

func TestKeyedLimiter_EvictsIdleBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := newKeyedLimiter(60, time.Minute, clock.now)

	l.Allow("idle")
	clock.t = clock.t.Add(30 * time.Second)
	l.Allow("busy")
	clock.t = clock.t.Add(45 * time.Second)

	l.evictIdle(clock.now())

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.buckets, "idle")
	assert.Contains(t, l.buckets, "busy")
}
