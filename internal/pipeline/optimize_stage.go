package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

const (
	maxInputChars  = 1500
	hintThreshold  = 500
	linkedinHint   = "\n\n[Optimize for LinkedIn: short paragraphs, clear hook, one CTA.]"
	defaultTopic   = "professional growth and leadership"
	defaultPattern = "Strong opening, valuable insight."
)

// optimizeStage normalizes caller input, or synthesizes a topic prompt from
// the performance summary when no input was given. Deterministic, never fails.
type optimizeStage struct{}

func (s *optimizeStage) Name() string { return "optimize" }

func (s *optimizeStage) Run(_ context.Context, pc Context) (Delta, error) {
	return Delta{OptimizedInput: optimizeInput(pc.RawInput, pc.Summary)}, nil
}

func optimizeInput(raw string, summary *domain.PerformanceSummary) string {
	input := strings.TrimSpace(raw)
	if input != "" {
		optimized := truncateChars(input, maxInputChars)
		if len([]rune(input)) > hintThreshold {
			optimized += linkedinHint
		}
		return strings.TrimSpace(optimized)
	}

	topic := defaultTopic
	pattern := ""
	if summary != nil {
		if len(summary.TopTopics) > 0 {
			topic = summary.TopTopics[0]
		}
		pattern = summary.HookPattern
	}
	if pattern == "" {
		pattern = defaultPattern
	}
	return fmt.Sprintf("Topic to write about: %s. Style hint: %s", topic, pattern)
}

func truncateChars(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
