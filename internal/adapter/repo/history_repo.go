package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/sqlinline"
)

// HistoryRepositoryPG implements domain.HistoryRepository. Rows are insert
// only; nothing here mutates an existing record.
type HistoryRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewHistoryRepository(sql infra.SQLExecutor) *HistoryRepositoryPG {
	return &HistoryRepositoryPG{sql: sql}
}

var _ domain.HistoryRepository = (*HistoryRepositoryPG)(nil)

func (r *HistoryRepositoryPG) Append(ctx context.Context, record *domain.PostHistory) (*domain.PostHistory, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertPostHistory,
		record.AccountID,
		record.ContentText,
		record.ExternalPostID,
		record.Impressions,
		record.EngagementRate,
		record.PublishedAt,
	)
	return scanPostHistory(row)
}

func (r *HistoryRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.PostHistory, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListRecentPostHistory, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PostHistory
	for rows.Next() {
		record, err := scanPostHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	return out, rows.Err()
}

func (r *HistoryRepositoryPG) Totals(ctx context.Context) (domain.HistoryTotals, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QPostHistoryTotals)
	var totals domain.HistoryTotals
	if err := row.Scan(&totals.TotalPosts, &totals.TotalImpressions, &totals.AvgEngagementRate); err != nil {
		return domain.HistoryTotals{}, err
	}
	return totals, nil
}

func scanPostHistory(row pgx.Row) (*domain.PostHistory, error) {
	var record domain.PostHistory
	if err := row.Scan(
		&record.ID,
		&record.AccountID,
		&record.ContentText,
		&record.ExternalPostID,
		&record.Impressions,
		&record.EngagementRate,
		&record.PublishedAt,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}
