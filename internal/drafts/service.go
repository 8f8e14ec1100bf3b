// Package drafts turns a pipeline run into a persisted, reviewable draft.
package drafts

import (
	"context"
	"fmt"
	"strings"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/pipeline"
)

// Service runs the content pipeline and persists the result.
type Service struct {
	executor *pipeline.Executor
	repo     domain.DraftRepository
	logger   infra.Logger
}

func NewService(executor *pipeline.Executor, repo domain.DraftRepository, logger infra.Logger) *Service {
	return &Service{executor: executor, repo: repo, logger: logger}
}

// Generate runs the full pipeline over the caller input (which may be empty)
// and persists a draft. A stage failure aborts without persisting anything.
func (s *Service) Generate(ctx context.Context, rawInput string) (*domain.Draft, error) {
	result, err := s.executor.Run(ctx, pipeline.Context{RawInput: rawInput})
	if err != nil {
		return nil, err
	}

	draft := &domain.Draft{}
	if result.Content != nil {
		draft.Hook = result.Content.Hook
		draft.Body = result.Content.Body
		draft.CTA = result.Content.CTA
		draft.Hashtags = result.Content.Hashtags
		draft.SuggestedVisual = result.Content.SuggestedVisual
	}
	if result.Summary != nil {
		draft.Summary = *result.Summary
	}
	if result.Strategy != nil {
		draft.Strategy = *result.Strategy
	}

	created, err := s.repo.Create(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("persist draft: %w", err)
	}
	s.logger.Info().Int64("draft_id", created.ID).Msg("drafts: draft created")
	return created, nil
}

// Regenerate produces a fresh draft seeded with an existing draft's content.
// The source draft is left untouched.
func (s *Service) Regenerate(ctx context.Context, draftID int64) (*domain.Draft, error) {
	existing, err := s.repo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	seed := strings.Join([]string{existing.Hook, existing.Body, existing.CTA}, "\n\n")
	return s.Generate(ctx, seed)
}
