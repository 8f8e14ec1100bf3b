// Package schedule decides when a post goes out and makes sure the deferred
// ones go out exactly once: a pure decision function, an in-process job
// scheduler and the publish orchestrator on top of both.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

// Decision is the outcome of Decide: publish now, or at a specific time.
type Decision struct {
	Immediate bool
	At        time.Time // zero when Immediate
}

var (
	defaultBestDays    = []string{"Tuesday", "Wednesday", "Thursday"}
	defaultBestWindows = []string{"08:00-10:00", "12:00-14:00"}

	weekOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

	weekdayCaser = cases.Title(language.English)
)

const fallbackStartHour = 9

// Decide maps a performance summary and the current time to a publish
// decision. It is deterministic for fixed inputs: no clock, no randomness.
//
// The in-best-time check accepts any time at or after a window's start hour,
// including well past its end. That looseness is intentional behavior of the
// product and is pinned by a test; do not tighten it here.
func Decide(summary domain.PerformanceSummary, now time.Time) Decision {
	bestDays := canonicalWeekdays(summary.BestDays)
	if len(bestDays) == 0 {
		bestDays = defaultBestDays
	}
	bestTimes := summary.BestTimeWindows
	if len(bestTimes) == 0 {
		bestTimes = defaultBestWindows
	}

	currentDay := now.Weekday().String()
	currentHour := now.Hour()
	currentSlot := fmt.Sprintf("%02d:00-%02d:00", currentHour, (currentHour+1)%24)

	inBestDay := containsString(bestDays, currentDay)
	inBestTime := false
	for _, window := range bestTimes {
		if window == currentSlot {
			inBestTime = true
			break
		}
		if start, ok := windowStartHour(window); ok && currentHour >= start {
			inBestTime = true
			break
		}
	}

	if inBestDay && inBestTime {
		return Decision{Immediate: true}
	}

	hour := fallbackStartHour
	if len(bestTimes) > 0 {
		if start, ok := windowStartHour(bestTimes[0]); ok {
			hour = start
		}
	}

	// Scan forward from the day after today, wrapping through the week, for
	// the first best day. Today itself only comes up again a full week out.
	currentIdx := weekdayIndex(currentDay)
	for ahead := 1; ahead <= len(weekOrder); ahead++ {
		day := weekOrder[(currentIdx+ahead)%len(weekOrder)]
		if !containsString(bestDays, day) {
			continue
		}
		target := atHour(now, hour).AddDate(0, 0, ahead)
		if !target.After(now) {
			target = target.AddDate(0, 0, 7)
		}
		return Decision{At: target}
	}

	// Defensive fallback for an unmatchable day list.
	target := atHour(now, fallbackStartHour)
	if !target.After(now) {
		target = target.AddDate(0, 0, 1)
	}
	return Decision{At: target}
}

// canonicalWeekdays title-cases day names so summaries carrying "tuesday"
// still match time.Weekday naming.
func canonicalWeekdays(days []string) []string {
	if len(days) == 0 {
		return nil
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		out = append(out, weekdayCaser.String(strings.ToLower(d)))
	}
	return out
}

// windowStartHour parses the leading hour of a "HH:MM-HH:MM" window.
func windowStartHour(window string) (int, bool) {
	start, _, found := strings.Cut(window, "-")
	if !found && start == "" {
		return 0, false
	}
	hh, _, _ := strings.Cut(start, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hh))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	return hour, true
}

func weekdayIndex(day string) int {
	for i, d := range weekOrder {
		if d == day {
			return i
		}
	}
	return 0
}

func atHour(now time.Time, hour int) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
}

func containsString(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
