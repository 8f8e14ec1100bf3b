// Package pipeline runs the fixed four-stage content pipeline: performance
// insights, input optimization, strategy selection and content generation.
// Stages never mutate shared state; each returns a delta that the executor
// merges into a fresh context value.
package pipeline

import "github.com/reeloomstudios/postpilot/internal/domain"

// Context is the value threaded through the stages. Every field is optional;
// absence means "not yet produced". A field set by its owning stage is never
// overwritten by a later merge.
type Context struct {
	RawInput       string
	Summary        *domain.PerformanceSummary
	OptimizedInput string
	Strategy       *domain.Strategy
	Content        *domain.GeneratedContent
	ImagePath      string
}

// Delta is a partial context update returned by a stage.
type Delta = Context

// merge folds a stage delta into the context, first writer wins per field.
func (c Context) merge(d Delta) Context {
	out := c
	if out.RawInput == "" {
		out.RawInput = d.RawInput
	}
	if out.Summary == nil {
		out.Summary = d.Summary
	}
	if out.OptimizedInput == "" {
		out.OptimizedInput = d.OptimizedInput
	}
	if out.Strategy == nil {
		out.Strategy = d.Strategy
	}
	if out.Content == nil {
		out.Content = d.Content
	}
	if out.ImagePath == "" {
		out.ImagePath = d.ImagePath
	}
	return out
}
