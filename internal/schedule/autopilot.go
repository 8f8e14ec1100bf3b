package schedule

import (
	"context"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
)

// DraftFactory produces a persisted draft from raw input; the drafts service
// satisfies it.
type DraftFactory interface {
	Generate(ctx context.Context, rawInput string) (*domain.Draft, error)
}

// Autopilot is the recurring cadence: on each tick it generates a draft from
// an empty input (letting the pipeline pick the topic) and hands it to the
// orchestrator, which publishes now or schedules the next best slot.
type Autopilot struct {
	factory      DraftFactory
	orchestrator *Orchestrator
	accounts     domain.AccountRepository
	logger       infra.Logger
}

func NewAutopilot(factory DraftFactory, orchestrator *Orchestrator, accounts domain.AccountRepository, logger infra.Logger) *Autopilot {
	return &Autopilot{factory: factory, orchestrator: orchestrator, accounts: accounts, logger: logger}
}

// Register attaches the autopilot to the scheduler under a cron spec.
func (a *Autopilot) Register(s *Scheduler, spec string) error {
	_, err := s.AddCron(spec, func() {
		a.Run(context.Background())
	})
	return err
}

// Run executes one autopilot tick. Failures are logged, never raised: the
// next tick starts from scratch anyway.
func (a *Autopilot) Run(ctx context.Context) {
	account, err := a.accounts.GetByType(ctx, domain.AccountTypePersonal)
	if err != nil {
		a.logger.Warn().Err(err).Msg("autopilot: no connected account, skipping tick")
		return
	}

	draft, err := a.factory.Generate(ctx, "")
	if err != nil {
		a.logger.Error().Err(err).Msg("autopilot: draft generation failed")
		return
	}

	result, err := a.orchestrator.Publish(ctx, draft.ID, account.ID, nil)
	if err != nil {
		a.logger.Error().Err(err).Int64("draft_id", draft.ID).Msg("autopilot: publish failed")
		return
	}
	a.logger.Info().
		Int64("draft_id", draft.ID).
		Str("status", string(result.Status)).
		Msg("autopilot: tick done")
}
