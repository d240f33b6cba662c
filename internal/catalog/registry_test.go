package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_GetReusesView(t *testing.T) {
	r := NewRegistry(newFake(), ModeAll, time.Minute)

	a := r.Get("visitor-a")
	assert.Same(t, a, r.Get("visitor-a"))
	assert.NotSame(t, a, r.Get("visitor-b"))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, ModeAll, a.Snapshot().Category)
}

func TestRegistry_SweepDropsIdleViews(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(newFake(), ModePopular, 10*time.Minute)
	r.now = func() time.Time { return now }

	old := r.Get("old")
	now = now.Add(8 * time.Minute)
	r.Get("fresh")
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())
	assert.NotSame(t, old, r.Get("old"), "evicted visitor starts a new view")
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r := NewRegistry(newFake(), ModeAll, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	r.Get("x")
	assert.Eventually(t, func() bool { return r.Len() == 0 }, timeout, tick)

	cancel()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("Run did not return after cancel")
	}
}
