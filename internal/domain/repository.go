package domain

import (
	"context"
	"time"
)

// DraftRepository persists drafts and their review-step edits.
type DraftRepository interface {
	Create(ctx context.Context, draft *Draft) (*Draft, error)
	GetByID(ctx context.Context, id int64) (*Draft, error)
	List(ctx context.Context, limit int) ([]Draft, error)
	Update(ctx context.Context, id int64, edit DraftEdit) (*Draft, error)
	SetImagePath(ctx context.Context, id int64, imagePath string) error
}

// ScheduleRepository persists scheduled posts. UpdateStatus performs the
// single monotonic pending -> published|failed transition.
type ScheduleRepository interface {
	Create(ctx context.Context, post *ScheduledPost) (*ScheduledPost, error)
	GetByID(ctx context.Context, id int64) (*ScheduledPost, error)
	ListPending(ctx context.Context) ([]ScheduledPost, error)
	UpdateStatus(ctx context.Context, id int64, status ScheduleStatus) error
}

// HistoryRepository appends and reads the published-post record. Append is
// the only writer; rows are never mutated afterwards.
type HistoryRepository interface {
	Append(ctx context.Context, record *PostHistory) (*PostHistory, error)
	ListRecent(ctx context.Context, limit int) ([]PostHistory, error)
	Totals(ctx context.Context) (HistoryTotals, error)
}

// AccountRepository persists connected LinkedIn accounts.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByType(ctx context.Context, accountType AccountType) (*Account, error)
	ListActive(ctx context.Context) ([]Account, error)
	Upsert(ctx context.Context, account *Account) (*Account, error)
	SetMemberURN(ctx context.Context, id int64, urn string) error
}

// InsightProvider reduces post history into a performance summary. It must
// never fail the pipeline; implementations degrade to a zero summary.
type InsightProvider interface {
	PerformanceInsights(ctx context.Context) (PerformanceSummary, error)
}

// ContentGenerator produces the five post parts from the optimized input,
// a rendered analytics line and the chosen strategy.
type ContentGenerator interface {
	GeneratePost(ctx context.Context, input, analytics string, strategy Strategy) (GeneratedContent, error)
}

// SocialPublisher posts the assembled text. An empty id with a nil error is
// a soft publish failure (missing account, no token, HTTP error) and must
// not abort the caller.
type SocialPublisher interface {
	Publish(ctx context.Context, accountID int64, text string) (string, error)
}

// ImageGenerator renders a draft illustration. A failed render returns an
// empty path and a user-facing message; it is never fatal to the draft.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, hook, body, visualHint string) (path string, userMessage string, err error)
}

// Clock lets schedule logic be tested with a fixed time source.
type Clock func() time.Time
