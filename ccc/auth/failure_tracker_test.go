package auth

import (
	"testing"
	"time"
)

func TestMemoryFailureTracker_RecordFailure(t *testing.T) {
	settings := LockoutSettings{
		Threshold:  5,
		TimeWindow: time.Hour,
	}

	tracker := NewMemoryFailureTracker(settings)
	accountID := "test-account"
	now := time.Now()

	// Test recording multiple failures
	count1 := tracker.RecordFailure(accountID, now)
	if count1 != 1 {
		t.Errorf("Expected failure count 1, got %d", count1)
	}

	count2 := tracker.RecordFailure(accountID, now.Add(1*time.Minute))
	if count2 != 2 {
		t.Errorf("Expected failure count 2, got %d", count2)
	}

	// Test failures from different accounts don't interfere
	otherCount := tracker.RecordFailure("other-account", now.Add(2*time.Minute))
	if otherCount != 1 {
		t.Errorf("Expected failure count 1 for other account, got %d", otherCount)
	}

	count3 := tracker.RecordFailure(accountID, now.Add(3*time.Minute))
	if count3 != 3 {
		t.Errorf("Expected failure count 3 for original account, got %d", count3)
	}
}

func TestMemoryFailureTracker_TimeWindow(t *testing.T) {
	settings := LockoutSettings{
		Threshold:  5,
		TimeWindow: 10 * time.Minute,
	}

	tracker := NewMemoryFailureTracker(settings)
	accountID := "test-account"
	now := time.Now()

	// Record failures within the time window
	tracker.RecordFailure(accountID, now)
	tracker.RecordFailure(accountID, now.Add(2*time.Minute))
	tracker.RecordFailure(accountID, now.Add(5*time.Minute))

	// This failure should only count the ones within the time window.
	// The cutoff time is (now+15min) - 10min = now+5min, so the failures
	// at now+5min and now+15min are counted.
	count := tracker.RecordFailure(accountID, now.Add(15*time.Minute))
	if count != 2 {
		t.Errorf("Expected failure count 2 (within time window), got %d", count)
	}
}

func TestMemoryFailureTracker_FailureCount(t *testing.T) {
	settings := LockoutSettings{
		Threshold:  3,
		TimeWindow: 10 * time.Minute,
	}

	tracker := NewMemoryFailureTracker(settings)
	accountID := "test-account"
	now := time.Now()

	if count := tracker.FailureCount(accountID, now); count != 0 {
		t.Errorf("Expected failure count 0 before any failures, got %d", count)
	}

	tracker.RecordFailure(accountID, now)
	tracker.RecordFailure(accountID, now.Add(1*time.Minute))

	if count := tracker.FailureCount(accountID, now.Add(2*time.Minute)); count != 2 {
		t.Errorf("Expected failure count 2, got %d", count)
	}

	// Counting at a later time excludes failures that left the window
	if count := tracker.FailureCount(accountID, now.Add(11*time.Minute)); count != 1 {
		t.Errorf("Expected failure count 1 after window moved, got %d", count)
	}
}

func TestMemoryFailureTracker_ClearFailures(t *testing.T) {
	settings := LockoutSettings{
		Threshold:  3,
		TimeWindow: time.Hour,
	}

	tracker := NewMemoryFailureTracker(settings)
	now := time.Now()

	tracker.RecordFailure("account-a", now)
	tracker.RecordFailure("account-a", now.Add(1*time.Minute))
	tracker.RecordFailure("account-b", now.Add(2*time.Minute))

	tracker.ClearFailures("account-a")

	if count := tracker.FailureCount("account-a", now.Add(3*time.Minute)); count != 0 {
		t.Errorf("Expected failure count 0 after clear, got %d", count)
	}

	// Clearing one account must not affect another
	if count := tracker.FailureCount("account-b", now.Add(3*time.Minute)); count != 1 {
		t.Errorf("Expected failure count 1 for unaffected account, got %d", count)
	}
}

func TestMemoryFailureTracker_ShouldLockOut(t *testing.T) {
	settings := LockoutSettings{
		Threshold:  3,
		TimeWindow: time.Hour,
	}

	tracker := NewMemoryFailureTracker(settings)

	if tracker.ShouldLockOut(2) {
		t.Error("Expected no lockout below the threshold")
	}
	if !tracker.ShouldLockOut(3) {
		t.Error("Expected lockout at the threshold")
	}
	if !tracker.ShouldLockOut(5) {
		t.Error("Expected lockout above the threshold")
	}
}

func TestMemoryFailureTracker_ThresholdDisabled(t *testing.T) {
	settings := LockoutSettings{
		Threshold:  0,
		TimeWindow: time.Hour,
	}

	tracker := NewMemoryFailureTracker(settings)

	if tracker.ShouldLockOut(100) {
		t.Error("Expected no lockout when the threshold is disabled")
	}
}

func TestNopFailureTracker(t *testing.T) {
	now := time.Now()

	if count := NopFailureTracker.RecordFailure("account", now); count != 0 {
		t.Errorf("Expected nop tracker to report count 0, got %d", count)
	}
	if count := NopFailureTracker.FailureCount("account", now); count != 0 {
		t.Errorf("Expected nop tracker to report count 0, got %d", count)
	}
	if NopFailureTracker.ShouldLockOut(100) {
		t.Error("Expected nop tracker to never lock out")
	}
}
