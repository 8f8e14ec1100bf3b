package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
)

// PublishStatus is the caller-visible outcome of a publish request.
type PublishStatus string

const (
	StatusPublished PublishStatus = "published"
	StatusScheduled PublishStatus = "scheduled"
)

// PublishResult reports what the orchestrator did with a draft.
type PublishResult struct {
	Status          PublishStatus
	ExternalPostID  string
	ScheduledPostID int64
	ScheduledAt     *time.Time
}

// Orchestrator drives the publish state machine: it consults the decision
// engine (or an explicit override), publishes immediately or persists a
// pending scheduled post and arms its timer, and finalizes state when the
// timer fires.
//
// There is deliberately no lock around the pending -> published transition;
// a timer racing a process restart can double-publish. Stronger guarantees
// would need a conditional status claim before the publish call.
type Orchestrator struct {
	drafts    domain.DraftRepository
	schedules domain.ScheduleRepository
	history   domain.HistoryRepository
	publisher domain.SocialPublisher
	scheduler *Scheduler
	logger    infra.Logger
	now       domain.Clock
}

// NewOrchestrator wires the orchestrator. A nil clock defaults to UTC now.
func NewOrchestrator(
	drafts domain.DraftRepository,
	schedules domain.ScheduleRepository,
	history domain.HistoryRepository,
	publisher domain.SocialPublisher,
	scheduler *Scheduler,
	logger infra.Logger,
	clock domain.Clock,
) *Orchestrator {
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &Orchestrator{
		drafts:    drafts,
		schedules: schedules,
		history:   history,
		publisher: publisher,
		scheduler: scheduler,
		logger:    logger,
		now:       clock,
	}
}

// Publish handles a publish request for a draft. An explicit override
// timestamp bypasses the decision engine; immediacy then comes down to
// override <= now. Without an override the decision engine governs.
func (o *Orchestrator) Publish(ctx context.Context, draftID, accountID int64, override *time.Time) (PublishResult, error) {
	draft, err := o.drafts.GetByID(ctx, draftID)
	if err != nil {
		return PublishResult{}, err
	}

	now := o.now()
	var immediate bool
	var at time.Time
	if override != nil {
		at = *override
		immediate = !at.After(now)
	} else {
		decision := Decide(draft.Summary, now)
		immediate, at = decision.Immediate, decision.At
		if !immediate && at.IsZero() {
			at = now.AddDate(0, 0, 1)
		}
	}

	// Due means at or before now, never strictly before.
	if immediate || !at.After(now) {
		return o.publishNow(ctx, draft, accountID)
	}

	scheduled, err := o.schedules.Create(ctx, &domain.ScheduledPost{
		DraftID:     draftID,
		AccountID:   accountID,
		ScheduledAt: at,
		Status:      domain.ScheduleStatusPending,
	})
	if err != nil {
		return PublishResult{}, fmt.Errorf("create scheduled post: %w", err)
	}
	o.ArmScheduled(scheduled)

	return PublishResult{
		Status:          StatusScheduled,
		ScheduledPostID: scheduled.ID,
		ScheduledAt:     &scheduled.ScheduledAt,
	}, nil
}

// ArmScheduled arms (or re-arms) the timer for a pending scheduled post.
// Re-arming replaces the prior timer, so an id is never armed twice.
func (o *Orchestrator) ArmScheduled(post *domain.ScheduledPost) {
	id := jobID(post.ID)
	postID := post.ID
	o.scheduler.Arm(id, post.ScheduledAt, func() {
		o.ExecuteScheduled(context.Background(), postID)
	})
}

// RestorePending re-arms every pending scheduled post, typically after a
// restart. Past-due posts fire immediately.
func (o *Orchestrator) RestorePending(ctx context.Context) error {
	pending, err := o.schedules.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("list pending scheduled posts: %w", err)
	}
	for i := range pending {
		o.ArmScheduled(&pending[i])
	}
	if len(pending) > 0 {
		o.logger.Info().Int("count", len(pending)).Msg("orchestrator: pending schedules re-armed")
	}
	return nil
}

// ExecuteScheduled runs a due scheduled post. Firing for a post that is gone
// or no longer pending is a no-op, which guards against duplicate and stale
// firings. Publish failures are absorbed into the failed status rather than
// raised; the timer path has no caller to report to, and history records the
// attempt either way.
func (o *Orchestrator) ExecuteScheduled(ctx context.Context, scheduledPostID int64) {
	post, err := o.schedules.GetByID(ctx, scheduledPostID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			o.logger.Error().Err(err).Int64("scheduled_post_id", scheduledPostID).Msg("orchestrator: load scheduled post failed")
		}
		return
	}
	if post.Status != domain.ScheduleStatusPending {
		return
	}

	draft, err := o.drafts.GetByID(ctx, post.DraftID)
	if err != nil {
		o.logger.Error().Err(err).Int64("scheduled_post_id", scheduledPostID).Msg("orchestrator: load draft failed")
		return
	}

	text := draft.FullText()
	externalID, err := o.publisher.Publish(ctx, post.AccountID, text)
	if err != nil {
		o.logger.Error().Err(err).Int64("scheduled_post_id", scheduledPostID).Msg("orchestrator: publish call failed")
		externalID = ""
	}

	status := domain.ScheduleStatusFailed
	if externalID != "" {
		status = domain.ScheduleStatusPublished
	}
	if err := o.schedules.UpdateStatus(ctx, scheduledPostID, status); err != nil {
		o.logger.Error().Err(err).Int64("scheduled_post_id", scheduledPostID).Msg("orchestrator: status update failed")
	}

	if _, err := o.history.Append(ctx, &domain.PostHistory{
		AccountID:      post.AccountID,
		ContentText:    text,
		ExternalPostID: externalID,
		PublishedAt:    o.now(),
	}); err != nil {
		o.logger.Error().Err(err).Int64("scheduled_post_id", scheduledPostID).Msg("orchestrator: history append failed")
	}

	o.logger.Info().
		Int64("scheduled_post_id", scheduledPostID).
		Str("status", string(status)).
		Str("external_post_id", externalID).
		Msg("orchestrator: scheduled publish done")
}

func (o *Orchestrator) publishNow(ctx context.Context, draft *domain.Draft, accountID int64) (PublishResult, error) {
	text := draft.FullText()
	externalID, err := o.publisher.Publish(ctx, accountID, text)
	if err != nil {
		return PublishResult{}, fmt.Errorf("publish: %w", err)
	}

	if _, err := o.history.Append(ctx, &domain.PostHistory{
		AccountID:      accountID,
		ContentText:    text,
		ExternalPostID: externalID,
		PublishedAt:    o.now(),
	}); err != nil {
		return PublishResult{}, fmt.Errorf("append history: %w", err)
	}

	o.logger.Info().
		Int64("draft_id", draft.ID).
		Str("external_post_id", externalID).
		Msg("orchestrator: published immediately")

	return PublishResult{Status: StatusPublished, ExternalPostID: externalID}, nil
}

func jobID(scheduledPostID int64) string {
	return fmt.Sprintf("scheduled_%d", scheduledPostID)
}
