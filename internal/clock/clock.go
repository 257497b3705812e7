package clock

import (
	"sync"
	"time"
)

// Clock provides the current instant. Components that reason about time
// (the item service's lazy expiration check, the background sweeper) each
// hold their own Clock so tests can drive them independently.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by the wall clock.
func System() Clock { return systemClock{} }

// Fake is a manually controlled Clock for deterministic tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// Fixed returns a Fake pinned to t.
func Fixed(t time.Time) *Fake {
	return &Fake{now: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the fake clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// Set pins the fake clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = t
}
