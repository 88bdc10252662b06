package auth

import (
	"sync"
	"time"
)

// FailureRecord represents a single failed unlock attempt
type FailureRecord struct {
	AccountID string
	Timestamp time.Time
}

// FailureTracker tracks failed unlock attempts per account
type FailureTracker interface {
	// RecordFailure records a failed unlock attempt and returns the current failure count within the time window
	RecordFailure(accountID string, timestamp time.Time) int
	// FailureCount returns the number of failures for the account within the time window ending at the given time
	FailureCount(accountID string, at time.Time) int
	// ClearFailures removes all recorded failures for the account
	ClearFailures(accountID string)
	// ShouldLockOut returns true if the failure count has reached the lockout threshold
	ShouldLockOut(failureCount int) bool
}

// LockoutSettings holds configuration for temporary unlock lockouts
type LockoutSettings struct {
	Threshold  int           // Number of failures that trigger a lockout (0 to disable)
	TimeWindow time.Duration // Time window for counting failures
}

// DefaultLockoutSettings returns the lockout configuration used when the
// caller does not provide one
func DefaultLockoutSettings() LockoutSettings {
	return LockoutSettings{
		Threshold:  5,
		TimeWindow: 5 * time.Minute,
	}
}

// nopFailureTracker is a no-operation implementation
type nopFailureTracker struct{}

var NopFailureTracker FailureTracker = &nopFailureTracker{}

func (n *nopFailureTracker) RecordFailure(accountID string, timestamp time.Time) int {
	return 0
}

func (n *nopFailureTracker) FailureCount(accountID string, at time.Time) int {
	return 0
}

func (n *nopFailureTracker) ClearFailures(accountID string) {}

func (n *nopFailureTracker) ShouldLockOut(failureCount int) bool {
	return false
}

// memoryFailureTracker implements FailureTracker using in-memory storage
type memoryFailureTracker struct {
	settings      LockoutSettings
	failures      []FailureRecord
	failuresMutex sync.Mutex
}

// NewMemoryFailureTracker creates a new in-memory failure tracker
func NewMemoryFailureTracker(settings LockoutSettings) FailureTracker {
	return &memoryFailureTracker{
		settings: settings,
		failures: make([]FailureRecord, 0),
	}
}

func (t *memoryFailureTracker) ShouldLockOut(failureCount int) bool {
	return t.settings.Threshold > 0 && failureCount >= t.settings.Threshold
}

func (t *memoryFailureTracker) RecordFailure(accountID string, timestamp time.Time) int {
	t.failuresMutex.Lock()
	defer t.failuresMutex.Unlock()

	t.failures = append(t.failures, FailureRecord{
		AccountID: accountID,
		Timestamp: timestamp,
	})

	t.pruneLocked(timestamp)

	return t.countLocked(accountID, timestamp)
}

func (t *memoryFailureTracker) FailureCount(accountID string, at time.Time) int {
	t.failuresMutex.Lock()
	defer t.failuresMutex.Unlock()

	return t.countLocked(accountID, at)
}

func (t *memoryFailureTracker) ClearFailures(accountID string) {
	t.failuresMutex.Lock()
	defer t.failuresMutex.Unlock()

	remaining := make([]FailureRecord, 0, len(t.failures))
	for _, failure := range t.failures {
		if failure.AccountID != accountID {
			remaining = append(remaining, failure)
		}
	}
	t.failures = remaining
}

// pruneLocked drops records outside the time window. Caller must hold the mutex.
func (t *memoryFailureTracker) pruneLocked(now time.Time) {
	cutoffTime := now.Add(-t.settings.TimeWindow)
	validFailures := make([]FailureRecord, 0, len(t.failures))
	for _, failure := range t.failures {
		if failure.Timestamp.After(cutoffTime) || failure.Timestamp.Equal(cutoffTime) {
			validFailures = append(validFailures, failure)
		}
	}
	t.failures = validFailures
}

// countLocked counts failures for the account within the time window. Caller must hold the mutex.
func (t *memoryFailureTracker) countLocked(accountID string, at time.Time) int {
	cutoffTime := at.Add(-t.settings.TimeWindow)
	count := 0
	for _, failure := range t.failures {
		if failure.AccountID != accountID {
			continue
		}
		if failure.Timestamp.After(cutoffTime) || failure.Timestamp.Equal(cutoffTime) {
			count++
		}
	}
	return count
}
