package domain

import (
	"strings"
	"time"
)

// ScheduleStatus is the lifecycle state of a scheduled post. Transitions are
// monotonic: pending moves to published or failed and never reverts.
type ScheduleStatus string

const (
	ScheduleStatusPending   ScheduleStatus = "pending"
	ScheduleStatusPublished ScheduleStatus = "published"
	ScheduleStatusFailed    ScheduleStatus = "failed"
)

// ScheduledPost is a draft queued for future publication.
type ScheduledPost struct {
	ID          int64
	DraftID     int64
	AccountID   int64
	ScheduledAt time.Time
	Status      ScheduleStatus
	CreatedAt   time.Time
}

// PostHistory is the append-only record of an actually-published post. It is
// never mutated after insert and feeds the performance analytics.
type PostHistory struct {
	ID             int64
	AccountID      int64
	ContentText    string
	ExternalPostID string
	Impressions    *int
	EngagementRate *float64
	PublishedAt    time.Time
	CreatedAt      time.Time
}

// HistoryTotals aggregates the whole published-post record for dashboards.
type HistoryTotals struct {
	TotalPosts        int
	TotalImpressions  int64
	AvgEngagementRate float64
}

func joinPostParts(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n\n"))
}
