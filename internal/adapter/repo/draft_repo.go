// Package repo provides the PostgreSQL-backed repositories.
package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/sqlinline"
)

// DraftRepositoryPG implements domain.DraftRepository.
type DraftRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewDraftRepository(sql infra.SQLExecutor) *DraftRepositoryPG {
	return &DraftRepositoryPG{sql: sql}
}

var _ domain.DraftRepository = (*DraftRepositoryPG)(nil)

// Create inserts a draft together with its summary and strategy snapshot.
func (r *DraftRepositoryPG) Create(ctx context.Context, draft *domain.Draft) (*domain.Draft, error) {
	summaryJSON, err := json.Marshal(draft.Summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	strategyJSON, err := json.Marshal(draft.Strategy)
	if err != nil {
		return nil, fmt.Errorf("encode strategy: %w", err)
	}
	row := r.sql.QueryRow(ctx, sqlinline.QInsertDraft,
		draft.Hook,
		draft.Body,
		draft.CTA,
		draft.Hashtags,
		draft.SuggestedVisual,
		draft.ImagePath,
		summaryJSON,
		strategyJSON,
	)
	return scanDraft(row)
}

func (r *DraftRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Draft, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectDraftByID, id)
	draft, err := scanDraft(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (r *DraftRepositoryPG) List(ctx context.Context, limit int) ([]domain.Draft, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListDrafts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Draft
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *draft)
	}
	return out, rows.Err()
}

// Update applies the review-step field edits; nil fields keep their value.
func (r *DraftRepositoryPG) Update(ctx context.Context, id int64, edit domain.DraftEdit) (*domain.Draft, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateDraft, id, edit.Hook, edit.Body, edit.CTA, edit.Hashtags)
	draft, err := scanDraft(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return draft, nil
}

func (r *DraftRepositoryPG) SetImagePath(ctx context.Context, id int64, imagePath string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QSetDraftImagePath, id, imagePath)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanDraft(row pgx.Row) (*domain.Draft, error) {
	var (
		draft        domain.Draft
		summaryJSON  []byte
		strategyJSON []byte
	)
	if err := row.Scan(
		&draft.ID,
		&draft.Hook,
		&draft.Body,
		&draft.CTA,
		&draft.Hashtags,
		&draft.SuggestedVisual,
		&draft.ImagePath,
		&summaryJSON,
		&strategyJSON,
		&draft.CreatedAt,
		&draft.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if len(summaryJSON) > 0 {
		if err := json.Unmarshal(summaryJSON, &draft.Summary); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
	}
	if len(strategyJSON) > 0 {
		if err := json.Unmarshal(strategyJSON, &draft.Strategy); err != nil {
			return nil, fmt.Errorf("decode strategy: %w", err)
		}
	}
	return &draft, nil
}
