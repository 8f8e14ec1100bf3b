package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/sqlinline"
)

// ScheduleRepositoryPG implements domain.ScheduleRepository.
type ScheduleRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewScheduleRepository(sql infra.SQLExecutor) *ScheduleRepositoryPG {
	return &ScheduleRepositoryPG{sql: sql}
}

var _ domain.ScheduleRepository = (*ScheduleRepositoryPG)(nil)

func (r *ScheduleRepositoryPG) Create(ctx context.Context, post *domain.ScheduledPost) (*domain.ScheduledPost, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QInsertScheduledPost,
		post.DraftID,
		post.AccountID,
		post.ScheduledAt,
		post.Status,
	)
	return scanScheduledPost(row)
}

func (r *ScheduleRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.ScheduledPost, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectScheduledPostByID, id)
	post, err := scanScheduledPost(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (r *ScheduleRepositoryPG) ListPending(ctx context.Context) ([]domain.ScheduledPost, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPendingScheduledPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScheduledPost
	for rows.Next() {
		post, err := scanScheduledPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *post)
	}
	return out, rows.Err()
}

func (r *ScheduleRepositoryPG) UpdateStatus(ctx context.Context, id int64, status domain.ScheduleStatus) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateScheduledPostStatus, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanScheduledPost(row pgx.Row) (*domain.ScheduledPost, error) {
	var post domain.ScheduledPost
	if err := row.Scan(
		&post.ID,
		&post.DraftID,
		&post.AccountID,
		&post.ScheduledAt,
		&post.Status,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}
