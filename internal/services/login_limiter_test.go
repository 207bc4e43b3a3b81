package services

import (
	"testing"
	"time"
)

func limiterAt(maxAttempts int, window, lockout time.Duration) (*LoginLimiter, *time.Time) {
	current := time.Date(2026, time.August, 23, 10, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(maxAttempts, window, lockout)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLoginLimiter_LocksAfterMaxAttempts(t *testing.T) {
	l, _ := limiterAt(3, 15*time.Minute, 10*time.Minute)

	if l.RecordFailure("operator") {
		t.Error("Expected no lock after 1 attempt")
	}
	if l.RecordFailure("operator") {
		t.Error("Expected no lock after 2 attempts")
	}
	if !l.RecordFailure("operator") {
		t.Error("Expected lock after 3 attempts")
	}

	if !l.IsLocked("operator") {
		t.Error("Expected IsLocked to report true")
	}
	if l.RetryAfter("operator") != 10*time.Minute {
		t.Errorf("Expected 10m retry, got %v", l.RetryAfter("operator"))
	}
}

func TestLoginLimiter_AutoResetAfterLockout(t *testing.T) {
	l, current := limiterAt(3, 15*time.Minute, 10*time.Minute)

	for i := 0; i < 3; i++ {
		l.RecordFailure("operator")
	}
	if !l.IsLocked("operator") {
		t.Fatal("Expected lock")
	}

	*current = current.Add(10*time.Minute + time.Second)

	if l.IsLocked("operator") {
		t.Error("Expected lock to expire")
	}
	if got := l.Attempts("operator"); got != 0 {
		t.Errorf("Expected attempts reset to 0, got %d", got)
	}

	// A fresh failure after reset starts a new window.
	if l.RecordFailure("operator") {
		t.Error("Expected no lock on first attempt after reset")
	}
}

func TestLoginLimiter_WindowExpiryClearsAttempts(t *testing.T) {
	l, current := limiterAt(3, 15*time.Minute, 10*time.Minute)

	l.RecordFailure("operator")
	l.RecordFailure("operator")

	*current = current.Add(16 * time.Minute)

	// The stale window must not count toward the lock.
	if l.RecordFailure("operator") {
		t.Error("Expected no lock: previous attempts were outside the window")
	}
	if got := l.Attempts("operator"); got != 1 {
		t.Errorf("Expected 1 attempt in the new window, got %d", got)
	}
}

func TestLoginLimiter_SuccessClearsState(t *testing.T) {
	l, _ := limiterAt(3, 15*time.Minute, 10*time.Minute)

	l.RecordFailure("operator")
	l.RecordFailure("operator")
	l.RecordSuccess("operator")

	if got := l.Attempts("operator"); got != 0 {
		t.Errorf("Expected 0 attempts after success, got %d", got)
	}
}

func TestLoginLimiter_KeysAreIndependent(t *testing.T) {
	l, _ := limiterAt(2, 15*time.Minute, 10*time.Minute)

	l.RecordFailure("alice")
	l.RecordFailure("alice")

	if !l.IsLocked("alice") {
		t.Error("Expected alice to be locked")
	}
	if l.IsLocked("bob") {
		t.Error("Expected bob to be unaffected")
	}
}
