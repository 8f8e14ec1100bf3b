package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/reeloomstudios/postpilot/internal/domain"
	"github.com/reeloomstudios/postpilot/internal/infra"
	"github.com/reeloomstudios/postpilot/internal/sqlinline"
)

// AccountRepositoryPG implements domain.AccountRepository.
type AccountRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewAccountRepository(sql infra.SQLExecutor) *AccountRepositoryPG {
	return &AccountRepositoryPG{sql: sql}
}

var _ domain.AccountRepository = (*AccountRepositoryPG)(nil)

func (r *AccountRepositoryPG) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.getOne(ctx, sqlinline.QSelectAccountByID, id)
}

func (r *AccountRepositoryPG) GetByType(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	return r.getOne(ctx, sqlinline.QSelectAccountByType, accountType)
}

func (r *AccountRepositoryPG) ListActive(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListActiveAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *account)
	}
	return out, rows.Err()
}

// Upsert keeps one account per type, refreshing tokens on reconnect.
func (r *AccountRepositoryPG) Upsert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpsertAccount,
		account.AccountType,
		account.DisplayName,
		account.MemberURN,
		account.AccessToken,
		account.RefreshToken,
		account.TokenExpiresAt,
		account.IsActive,
	)
	return scanAccount(row)
}

func (r *AccountRepositoryPG) SetMemberURN(ctx context.Context, id int64, urn string) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QSetAccountMemberURN, id, urn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AccountRepositoryPG) getOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	row := r.sql.QueryRow(ctx, query, arg)
	account, err := scanAccount(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var account domain.Account
	if err := row.Scan(
		&account.ID,
		&account.AccountType,
		&account.DisplayName,
		&account.MemberURN,
		&account.AccessToken,
		&account.RefreshToken,
		&account.TokenExpiresAt,
		&account.IsActive,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
