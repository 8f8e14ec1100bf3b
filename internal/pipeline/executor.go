package pipeline

import (
	"context"
	"fmt"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
)

// Stage is one step of the pipeline. Run receives the accumulated context and
// returns a delta to merge; returning an error aborts the whole run.
type Stage interface {
	Name() string
	Run(ctx context.Context, pc Context) (Delta, error)
}

// StageError identifies which stage aborted a pipeline run.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Executor runs stages in a fixed order, merging each delta into the running
// context. On a stage failure it stops immediately and returns the context
// accumulated so far; callers may inspect it for diagnostics but must not
// treat it as complete.
type Executor struct {
	stages []Stage
	logger infra.Logger
}

// NewExecutor builds an executor over an explicit stage sequence.
func NewExecutor(logger infra.Logger, stages ...Stage) *Executor {
	return &Executor{stages: stages, logger: logger}
}

// New wires the standard sequence: insights -> optimize -> strategy ->
// generate. Image generation is intentionally not part of it; it runs
// separately against a persisted draft.
func New(logger infra.Logger, insights domain.InsightProvider, generator domain.ContentGenerator) *Executor {
	return NewExecutor(logger,
		&insightStage{provider: insights, logger: logger},
		&optimizeStage{},
		&strategyStage{},
		&generateStage{generator: generator},
	)
}

// Run executes the pipeline over the initial context.
func (e *Executor) Run(ctx context.Context, initial Context) (Context, error) {
	pc := initial
	for _, stage := range e.stages {
		delta, err := stage.Run(ctx, pc)
		if err != nil {
			e.logger.Error().Err(err).Str("stage", stage.Name()).Msg("pipeline: stage failed")
			return pc, &StageError{Stage: stage.Name(), Err: err}
		}
		pc = pc.merge(delta)
		e.logger.Debug().Str("stage", stage.Name()).Msg("pipeline: stage done")
	}
	return pc, nil
}
