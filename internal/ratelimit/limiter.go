// Package ratelimit throttles login attempts on the development
// server with a fixed window per key.
package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

type Limiter struct {
	Limit  int
	Window time.Duration

	mu      sync.Mutex
	windows map[string]window
	now     func() time.Time
}

func New(limit int, windowDur time.Duration) *Limiter {
	return &Limiter{
		Limit:   limit,
		Window:  windowDur,
		windows: make(map[string]window),
		now:     time.Now,
	}
}

// Allow reports whether the attempt fits the current window, and when
// it does not, how long until the window resets.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	limit := l.Limit
	if limit <= 0 {
		limit = 5
	}
	windowDur := l.Window
	if windowDur <= 0 {
		windowDur = time.Minute
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.windows == nil {
		l.windows = make(map[string]window)
	}
	now := time.Now
	if l.now != nil {
		now = l.now
	}

	w, ok := l.windows[key]
	if !ok || !now().Before(w.resetAt) {
		l.windows[key] = window{count: 1, resetAt: now().Add(windowDur)}
		return true, 0
	}

	w.count++
	l.windows[key] = w
	if w.count > limit {
		return false, w.resetAt.Sub(now())
	}
	return true, 0
}

// Reset clears the window for a key, used after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
}
