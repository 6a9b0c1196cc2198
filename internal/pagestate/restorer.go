package pagestate

import (
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Scroller abstracts the viewport the restoration protocol drives: the
// embedded webview in the desktop shell, or a fake in tests.
type Scroller interface {
	ScrollTo(y int64)
	Y() int64
}

const (
	// scrollTolerance is the drift, in pixels, accepted before a corrective
	// re-application is issued.
	scrollTolerance = 10
	// correctionDelay gives the layout one beat to settle before the final
	// position check.
	correctionDelay = 50 * time.Millisecond
)

// Restorer applies a saved scroll offset with a re-entrancy lock, a verified
// single-correction pass, and a bounded settle before saves resume. It never
// fails: a restoration that cannot reach its target leaves the viewport where
// the scroller put it.
type Restorer struct {
	scroller  Scroller
	logger    *log.Logger
	restoring atomic.Bool

	mu    sync.Mutex
	timer *time.Timer
}

func NewRestorer(scroller Scroller, logger *log.Logger) *Restorer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Restorer{scroller: scroller, logger: logger}
}

// Restore scrolls to targetY. It reports false when another restoration is
// already in flight; that call is a no-op. The lock is released after the
// correction pass settles.
func (r *Restorer) Restore(targetY int64) bool {
	if !r.restoring.CompareAndSwap(false, true) {
		r.logger.Printf("pagestate: restoration already in progress, skipping target=%d", targetY)
		return false
	}

	r.scroller.ScrollTo(targetY)

	drift := abs(r.scroller.Y() - targetY)
	if drift <= scrollTolerance {
		r.release()
		return true
	}

	// One corrective pass only; repeated retries were replaced by this
	// single verified re-application.
	r.logger.Printf("pagestate: scroll drifted by %d, applying correction target=%d", drift, targetY)
	r.scroller.ScrollTo(targetY)

	r.mu.Lock()
	r.timer = time.AfterFunc(correctionDelay, func() {
		if final := abs(r.scroller.Y() - targetY); final > scrollTolerance {
			r.logger.Printf("pagestate: restoration imprecise after correction target=%d drift=%d", targetY, final)
		}
		r.release()
	})
	r.mu.Unlock()
	return true
}

// Restoring reports whether a restoration holds the lock.
func (r *Restorer) Restoring() bool {
	return r.restoring.Load()
}

// Close cancels any pending settle timer and releases the lock. Safe to call
// on component teardown regardless of state.
func (r *Restorer) Close() {
	r.mu.Lock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.mu.Unlock()
	r.restoring.Store(false)
}

func (r *Restorer) release() {
	r.mu.Lock()
	r.timer = nil
	r.mu.Unlock()
	r.restoring.Store(false)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
