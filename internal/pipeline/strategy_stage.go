package pipeline

import (
	"context"
	"strings"

	"github.com/reeloomstudios/postpilot/internal/domain"
)

const (
	brandName  = "ReeloomStudios"
	defaultCTA = "question"
	// Founder-style: approachable but confident.
	defaultTone = "conversational"

	classifierWindow = 500
)

// strategyRule is one row of the ordered classifier table. Rules are
// evaluated top to bottom over the lowercased head of the optimized input;
// the first match wins.
type strategyRule struct {
	keywords      []string
	postType      string
	hookStructure string
}

var strategyRules = []strategyRule{
	{keywords: []string{"data", "number", "percent"}, postType: "data_driven", hookStructure: "stat"},
	{keywords: []string{"story", "lesson"}, postType: "story", hookStructure: "story_open"},
}

// strategyStage classifies the optimized input into a post strategy.
// Deterministic, never fails.
type strategyStage struct{}

func (s *strategyStage) Name() string { return "strategy" }

func (s *strategyStage) Run(_ context.Context, pc Context) (Delta, error) {
	st := classifyStrategy(pc.OptimizedInput)
	return Delta{Strategy: &st}, nil
}

func classifyStrategy(optimized string) domain.Strategy {
	head := strings.ToLower(truncateChars(optimized, classifierWindow))

	postType, hookStructure := "", ""
	for _, rule := range strategyRules {
		if containsAny(head, rule.keywords) {
			postType, hookStructure = rule.postType, rule.hookStructure
			break
		}
	}
	if postType == "" {
		// Default founder point of view; a literal question mark anywhere in
		// the optimized text flips the hook to a question.
		postType = "founder_pov"
		hookStructure = "story_open"
		if strings.Contains(optimized, "?") {
			hookStructure = "question"
		}
	}

	return domain.Strategy{
		PostType:      postType,
		Tone:          defaultTone,
		CTAType:       defaultCTA,
		HookStructure: hookStructure,
		Brand:         brandName,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
