package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

const fallbackPrompt = "Share a valuable professional insight."

// generateStage delegates to the content generator. A collaborator failure
// propagates and aborts the pipeline; no draft is persisted in that case.
type generateStage struct {
	generator domain.ContentGenerator
}

func (s *generateStage) Name() string { return "generate" }

func (s *generateStage) Run(ctx context.Context, pc Context) (Delta, error) {
	input := pc.OptimizedInput
	if input == "" {
		input = fallbackPrompt
	}
	var summary domain.PerformanceSummary
	if pc.Summary != nil {
		summary = *pc.Summary
	}
	var strategy domain.Strategy
	if pc.Strategy != nil {
		strategy = *pc.Strategy
	}

	content, err := s.generator.GeneratePost(ctx, input, renderAnalytics(summary), strategy)
	if err != nil {
		return Delta{}, err
	}
	return Delta{Content: &content}, nil
}

// renderAnalytics flattens the summary into the single human-readable line
// the generation prompt expects.
func renderAnalytics(s domain.PerformanceSummary) string {
	return fmt.Sprintf("Best days: %s. Best times: %s. Ideal length: %s. Hook style: %s.",
		strings.Join(s.BestDays, ", "),
		strings.Join(s.BestTimeWindows, ", "),
		s.IdealLength,
		s.HookPattern,
	)
}
