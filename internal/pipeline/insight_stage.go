package pipeline

import (
	"context"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
)

// insightStage asks the insight provider for a performance summary. It must
// tolerate a missing provider and provider errors (a new account has no
// history), so it degrades to an empty summary instead of failing.
type insightStage struct {
	provider domain.InsightProvider
	logger   infra.Logger
}

func (s *insightStage) Name() string { return "insights" }

func (s *insightStage) Run(ctx context.Context, _ Context) (Delta, error) {
	if s.provider == nil {
		return Delta{Summary: &domain.PerformanceSummary{}}, nil
	}
	summary, err := s.provider.PerformanceInsights(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("pipeline: performance insights unavailable, continuing with empty summary")
		return Delta{Summary: &domain.PerformanceSummary{}}, nil
	}
	return Delta{Summary: &summary}, nil
}
