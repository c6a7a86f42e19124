// Package biztime is the single source of wall-clock time. All stored and
// transported timestamps are UTC.
package biztime

import (
	"sync"
	"time"
)

var (
	mu sync.RWMutex
	// nowFunc is swapped by SetNowFunc.
	nowFunc = time.Now
)

// NowUTC returns the current time in UTC.
// Use it for every timestamp that is stored or sent to clients.
func NowUTC() time.Time {
	mu.RLock()
	f := nowFunc
	mu.RUnlock()
	return f().UTC()
}

// SetNowFunc replaces the clock and returns a function restoring the previous
// one. Intended for tests.
func SetNowFunc(f func() time.Time) (restore func()) {
	mu.Lock()
	prev := nowFunc
	nowFunc = f
	mu.Unlock()
	return func() {
		mu.Lock()
		nowFunc = prev
		mu.Unlock()
	}
}
