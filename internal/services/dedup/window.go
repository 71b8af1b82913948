package dedup

import (
	"strconv"
	"sync"
	"time"
)

// maxEntries bounds the window map; stale pairs are compacted lazily
// once it is exceeded.
const maxEntries = 10000

// Window suppresses repeat alerts for the same (camera, object class)
// pair within a cooldown interval. It is a pure in-memory cache:
// absence of an entry means "never seen".
type Window struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     map[string]time.Time
}

// NewWindow creates a dedup window with the given cooldown interval
func NewWindow(cooldown time.Duration) *Window {
	return &Window{
		cooldown: cooldown,
		last:     make(map[string]time.Time),
	}
}

// ShouldEmit reports whether an alert for the pair is due and, when it
// is, records now as the new emission time. Check and record are one
// critical section so two concurrent detections for the same pair can
// never both pass.
func (w *Window) ShouldEmit(cameraID int64, objectClass string, now time.Time) bool {
	if w.cooldown <= 0 {
		return true
	}
	k := key(cameraID, objectClass)

	w.mu.Lock()
	defer w.mu.Unlock()

	if last, ok := w.last[k]; ok && now.Sub(last) < w.cooldown {
		return false
	}
	w.last[k] = now
	if len(w.last) > maxEntries {
		w.compact(now)
	}
	return true
}

// Rollback removes the emission recorded at exactly at for the pair.
// Used when the alert behind the emission failed to persist, so the
// failed attempt does not burn the cooldown window. A later emission
// for the same pair is left untouched.
func (w *Window) Rollback(cameraID int64, objectClass string, at time.Time) {
	k := key(cameraID, objectClass)

	w.mu.Lock()
	defer w.mu.Unlock()

	if last, ok := w.last[k]; ok && last.Equal(at) {
		delete(w.last, k)
	}
}

// compact drops entries whose cooldown has fully elapsed. Caller holds
// the lock.
func (w *Window) compact(now time.Time) {
	for k, ts := range w.last {
		if now.Sub(ts) >= w.cooldown {
			delete(w.last, k)
		}
	}
}

func key(cameraID int64, objectClass string) string {
	return strconv.FormatInt(cameraID, 10) + "|" + objectClass
}
