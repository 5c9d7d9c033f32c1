package services

import (
	"os"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
)

// DedupService is a time-windowed idempotency guard for click events, keyed
// by (client address, subject). Entries live in process memory only; a
// restart clears them, which is acceptable for best-effort abuse mitigation.
type DedupService struct {
	context.DefaultService

	window         time.Duration
	sweepThreshold int

	mutex   sync.Mutex
	entries map[string]time.Time
}

const DEDUP_SVC = "dedup_svc"

const (
	defaultDedupWindow    = 30 * time.Second
	defaultSweepThreshold = 1000
)

func (svc DedupService) Id() string {
	return DEDUP_SVC
}

func (svc *DedupService) Configure(ctx *context.Context) error {
	svc.window = defaultDedupWindow
	if raw := os.Getenv("DEDUP_WINDOW"); raw != "" {
		w, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		svc.window = w
	}

	svc.sweepThreshold = defaultSweepThreshold
	svc.entries = make(map[string]time.Time)

	return svc.DefaultService.Configure(ctx)
}

// DedupKey builds the cache key for a click from the originating network
// address and the clicked subject.
func DedupKey(clientIP, subject string) string {
	return clientIP + "|" + subject
}

// ShouldSuppress reports whether the key was recorded within the dedup
// window, in which case the event is a duplicate and must not be delivered.
func (svc *DedupService) ShouldSuppress(key string, now time.Time) bool {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	seen, ok := svc.entries[key]
	return ok && now.Sub(seen) < svc.window
}

// Record stores the key's last-seen timestamp. When the map has grown past
// the sweep threshold, all stale entries are evicted inline; this bounds
// memory without a background timer at the cost of an O(n) scan.
func (svc *DedupService) Record(key string, now time.Time) {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.entries[key] = now

	if len(svc.entries) <= svc.sweepThreshold {
		return
	}

	evicted := 0
	for k, seen := range svc.entries {
		if now.Sub(seen) >= svc.window {
			delete(svc.entries, k)
			evicted++
		}
	}
	if evicted > 0 {
		log.WithFields(log.Fields{"evicted": evicted, "remaining": len(svc.entries)}).
			Debug("Dedup cache sweep completed")
	}
}

// Len reports the current entry count.
func (svc *DedupService) Len() int {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()
	return len(svc.entries)
}
