package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestDedup(window time.Duration, threshold int) *DedupService {
	return &DedupService{
		window:         window,
		sweepThreshold: threshold,
		entries:        make(map[string]time.Time),
	}
}

func TestDedupSuppressWithinWindow(t *testing.T) {
	svc := newTestDedup(30*time.Second, 1000)
	now := time.Now()
	key := DedupKey("203.0.113.7", "Anna")

	assert.False(t, svc.ShouldSuppress(key, now))
	svc.Record(key, now)

	assert.True(t, svc.ShouldSuppress(key, now.Add(time.Second)))
	assert.True(t, svc.ShouldSuppress(key, now.Add(29*time.Second)))
}

func TestDedupExpiresAfterWindow(t *testing.T) {
	svc := newTestDedup(30*time.Second, 1000)
	now := time.Now()
	key := DedupKey("203.0.113.7", "Anna")

	svc.Record(key, now)
	assert.False(t, svc.ShouldSuppress(key, now.Add(30*time.Second)))
	assert.False(t, svc.ShouldSuppress(key, now.Add(time.Minute)))
}

func TestDedupKeysAreIndependent(t *testing.T) {
	svc := newTestDedup(30*time.Second, 1000)
	now := time.Now()

	svc.Record(DedupKey("203.0.113.7", "Anna"), now)

	assert.False(t, svc.ShouldSuppress(DedupKey("203.0.113.8", "Anna"), now))
	assert.False(t, svc.ShouldSuppress(DedupKey("203.0.113.7", "Iryna"), now))
}

func TestDedupSweepEvictsStaleEntries(t *testing.T) {
	svc := newTestDedup(30*time.Second, 100)
	base := time.Now()

	// Fill past the threshold with entries that will be stale by sweep time.
	for i := 0; i < 100; i++ {
		svc.Record(fmt.Sprintf("10.0.0.%d|Anna", i), base)
	}
	assert.Equal(t, 100, svc.Len())

	// This insert crosses the threshold and triggers the sweep.
	svc.Record("fresh|Anna", base.Add(time.Minute))
	assert.Equal(t, 1, svc.Len())
	assert.True(t, svc.ShouldSuppress("fresh|Anna", base.Add(time.Minute)))
}

func TestDedupSweepKeepsFreshEntries(t *testing.T) {
	svc := newTestDedup(30*time.Second, 10)
	base := time.Now()

	for i := 0; i < 11; i++ {
		svc.Record(fmt.Sprintf("10.0.0.%d|Anna", i), base)
	}

	// All entries are inside the window, nothing is evicted.
	assert.Equal(t, 11, svc.Len())
}
