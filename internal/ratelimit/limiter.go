package ratelimit

import (
	"sync"
	"time"
)

const defaultSweepInterval = 5 * time.Minute

type counter struct {
	count         int
	windowResetAt time.Time
}

// Limiter is a fixed-window request counter keyed by composite strings
// (typically "operation:caller"). The window does not slide: once it elapses
// the next call starts a fresh one. Check and increment happen under one lock
// so concurrent calls cannot both pass on the last slot.
type Limiter struct {
	mu       sync.Mutex
	counters map[string]counter
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

// New returns a Limiter with a background sweep that evicts expired counters.
// Call Close to stop the sweep.
func New() *Limiter {
	l := NewWithClock(time.Now)
	go l.sweepLoop(defaultSweepInterval)
	return l
}

// NewWithClock returns a Limiter using the given clock and no background
// sweep. Tests use this to control time.
func NewWithClock(now func() time.Time) *Limiter {
	return &Limiter{
		counters: make(map[string]counter),
		now:      now,
		done:     make(chan struct{}),
	}
}

// Allow reports whether a call for key is admitted, allowing at most max calls
// per window. A denied call does not consume a slot.
func (l *Limiter) Allow(key string, max int, window time.Duration) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || now.After(c.windowResetAt) {
		l.counters[key] = counter{count: 1, windowResetAt: now.Add(window)}
		return true
	}
	if c.count >= max {
		return false
	}
	c.count++
	l.counters[key] = c
	return true
}

// Remaining returns how many calls are left in the current window for key.
// A key with no live window has the full budget.
func (l *Limiter) Remaining(key string, max int) int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || now.After(c.windowResetAt) {
		return max
	}
	if c.count >= max {
		return 0
	}
	return max - c.count
}

// Close stops the background sweep.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *Limiter) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.done:
			return
		}
	}
}

// sweep evicts counters whose window has elapsed so the map stays bounded by
// the number of keys active within one sweep interval.
func (l *Limiter) sweep() {
	now := l.now()
	l.mu.Lock()
	for key, c := range l.counters {
		if now.After(c.windowResetAt) {
			delete(l.counters, key)
		}
	}
	l.mu.Unlock()
}
