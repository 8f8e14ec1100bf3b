package schedule

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func TestArmReplacesPriorTimer(t *testing.T) {
	s := NewScheduler(testLogger())
	defer s.Stop()

	first := time.Now().Add(time.Hour)
	second := time.Now().Add(2 * time.Hour)

	s.Arm("scheduled_1", first, func() {})
	s.Arm("scheduled_1", second, func() {})

	if got := s.ArmedCount(); got != 1 {
		t.Fatalf("ArmedCount = %d, want 1", got)
	}
	due, ok := s.Due("scheduled_1")
	if !ok {
		t.Fatal("Due returned no entry for re-armed id")
	}
	if !due.Equal(second) {
		t.Fatalf("due = %v, want %v", due, second)
	}
}

func TestArmPastDueFiresImmediately(t *testing.T) {
	s := NewScheduler(testLogger())
	defer s.Stop()

	fired := make(chan struct{})
	s.Arm("scheduled_2", time.Now().Add(-time.Minute), func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("past-due job did not fire")
	}
	if got := s.ArmedCount(); got != 0 {
		t.Fatalf("ArmedCount after firing = %d, want 0", got)
	}
}

func TestStaleFiringKeepsReplacementArmed(t *testing.T) {
	s := NewScheduler(testLogger())
	defer s.Stop()

	s.Arm("scheduled_4", time.Now().Add(time.Hour), func() {})
	s.mu.Lock()
	stale := s.jobs["scheduled_4"]
	s.mu.Unlock()

	replacement := time.Now().Add(2 * time.Hour)
	s.Arm("scheduled_4", replacement, func() {})

	// The first timer's callback can still run after the re-arm; it must
	// leave the replacement entry in place.
	s.fire("scheduled_4", stale, func() {})

	due, ok := s.Due("scheduled_4")
	if !ok {
		t.Fatal("stale firing removed the re-armed entry")
	}
	if !due.Equal(replacement) {
		t.Fatalf("due = %v, want %v", due, replacement)
	}
	if got := s.ArmedCount(); got != 1 {
		t.Fatalf("ArmedCount = %d, want 1", got)
	}
}

func TestCancelRemovesJob(t *testing.T) {
	s := NewScheduler(testLogger())
	defer s.Stop()

	s.Arm("scheduled_3", time.Now().Add(time.Hour), func() {})
	if !s.Cancel("scheduled_3") {
		t.Fatal("Cancel = false, want true for armed job")
	}
	if s.Cancel("scheduled_3") {
		t.Fatal("Cancel = true, want false for already-cancelled job")
	}
	if got := s.ArmedCount(); got != 0 {
		t.Fatalf("ArmedCount = %d, want 0", got)
	}
}
