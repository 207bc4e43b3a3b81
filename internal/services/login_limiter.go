package services

import (
	"sync"
	"time"
)

// LoginLimiter tracks failed login attempts per key within a rolling
// window. Reaching maxAttempts locks the key for the lockout duration;
// the lock and the attempt count reset automatically once it elapses.
// State is in-memory only, so a restart clears it: this is an advisory
// brake on the dashboard, not a security control.
type LoginLimiter struct {
	mu          sync.Mutex
	attempts    map[string]*attemptState
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
	now         func() time.Time
}

type attemptState struct {
	count       int
	windowStart time.Time
	lockedUntil time.Time
}

// NewLoginLimiter creates a login limiter.
// maxAttempts: failures allowed within window before locking.
// lockout: how long a locked key stays locked.
func NewLoginLimiter(maxAttempts int, window, lockout time.Duration) *LoginLimiter {
	return &LoginLimiter{
		attempts:    make(map[string]*attemptState),
		maxAttempts: maxAttempts,
		window:      window,
		lockout:     lockout,
		now:         time.Now,
	}
}

// RecordFailure counts one failed attempt for the key and returns true
// if the key is now locked.
func (l *LoginLimiter) RecordFailure(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, ok := l.attempts[key]
	if !ok {
		state = &attemptState{windowStart: now}
		l.attempts[key] = state
	}

	l.expire(state, now)

	state.count++
	if state.count >= l.maxAttempts {
		state.lockedUntil = now.Add(l.lockout)
	}

	return !state.lockedUntil.IsZero() && now.Before(state.lockedUntil)
}

// RecordSuccess clears the key's attempt history.
func (l *LoginLimiter) RecordSuccess(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
}

// IsLocked reports whether the key is currently locked out.
func (l *LoginLimiter) IsLocked(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		return false
	}

	now := l.now()
	l.expire(state, now)

	return !state.lockedUntil.IsZero() && now.Before(state.lockedUntil)
}

// Attempts reports the current failure count inside the window.
func (l *LoginLimiter) Attempts(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		return 0
	}

	l.expire(state, l.now())

	return state.count
}

// RetryAfter reports how long until a locked key unlocks, zero if not
// locked.
func (l *LoginLimiter) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.attempts[key]
	if !ok {
		return 0
	}

	remaining := state.lockedUntil.Sub(l.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// expire resets state whose lockout or window has passed.
func (l *LoginLimiter) expire(state *attemptState, now time.Time) {
	if !state.lockedUntil.IsZero() && !now.Before(state.lockedUntil) {
		state.count = 0
		state.windowStart = now
		state.lockedUntil = time.Time{}
		return
	}

	if state.lockedUntil.IsZero() && now.Sub(state.windowStart) > l.window {
		state.count = 0
		state.windowStart = now
	}
}
