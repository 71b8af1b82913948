package dedup

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldEmit_FirstDetectionPasses(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
}

func TestShouldEmit_SuppressesWithinCooldown(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	assert.False(t, w.ShouldEmit(1, "pistol", now.Add(1*time.Second)))
	assert.False(t, w.ShouldEmit(1, "pistol", now.Add(29*time.Second)))
}

func TestShouldEmit_EmitsAtCooldownBoundary(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	assert.True(t, w.ShouldEmit(1, "pistol", now.Add(30*time.Second)))
}

func TestShouldEmit_SuppressedDetectionDoesNotExtendWindow(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	// Suppressed at t+20s; the window still ends at t+30s
	assert.False(t, w.ShouldEmit(1, "pistol", now.Add(20*time.Second)))
	assert.True(t, w.ShouldEmit(1, "pistol", now.Add(31*time.Second)))
}

func TestShouldEmit_PairsAreIndependent(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	assert.True(t, w.ShouldEmit(2, "pistol", now))
	assert.True(t, w.ShouldEmit(1, "knife", now))
	assert.False(t, w.ShouldEmit(1, "pistol", now.Add(time.Second)))
}

func TestShouldEmit_ZeroCooldownAlwaysEmits(t *testing.T) {
	w := NewWindow(0)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	assert.True(t, w.ShouldEmit(1, "pistol", now))
}

func TestShouldEmit_ConcurrentSameFrameExactlyOnePasses(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	const goroutines = 32
	var emitted atomic.Int64
	var wg sync.WaitGroup
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if w.ShouldEmit(7, "rifle", now) {
				emitted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), emitted.Load())
}

func TestRollback_ReopensWindow(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	w.Rollback(1, "pistol", now)

	// The failed emission no longer occupies the window
	assert.True(t, w.ShouldEmit(1, "pistol", now.Add(time.Second)))
}

func TestRollback_IgnoresStaleTimestamp(t *testing.T) {
	w := NewWindow(30 * time.Second)
	now := time.Now()

	assert.True(t, w.ShouldEmit(1, "pistol", now))
	assert.True(t, w.ShouldEmit(1, "pistol", now.Add(31*time.Second)))

	// Rolling back the first emission must not clear the second
	w.Rollback(1, "pistol", now)
	assert.False(t, w.ShouldEmit(1, "pistol", now.Add(32*time.Second)))
}

func TestCompact_DropsExpiredEntries(t *testing.T) {
	w := NewWindow(time.Second)
	now := time.Now()

	for i := int64(0); i < maxEntries+1; i++ {
		w.ShouldEmit(i, "knife", now)
	}
	// Every entry above is expired relative to now+2s, so this insert
	// triggers a compaction down to the single fresh entry
	w.ShouldEmit(maxEntries+2, "knife", now.Add(2*time.Second))

	w.mu.Lock()
	size := len(w.last)
	w.mu.Unlock()
	assert.Equal(t, 1, size)
}
