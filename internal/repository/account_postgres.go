package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mrprime/campaign-sync/internal/domain"
)

var accountColumns = []string{
	"email", "first_name", "last_name", "status", "warmup_status",
	"provider_code", "stat_warmup_score", "updated_at",
}

// AccountRepository implements domain.AccountRepository using PostgreSQL
type AccountRepository struct {
	systemDB *sql.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *sql.DB) domain.AccountRepository {
	return &AccountRepository{systemDB: db}
}

// UpsertMany writes one batch of accounts keyed by email
func (r *AccountRepository) UpsertMany(ctx context.Context, accounts []*domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	query := psql.Insert("accounts").Columns(accountColumns...)
	for _, a := range accounts {
		query = query.Values(
			a.Email, a.FirstName, a.LastName, a.Status, a.WarmupStatus,
			a.ProviderCode, a.WarmupScore, stamp(a.UpdatedAt),
		)
	}
	query = query.Suffix(`ON CONFLICT (email) DO UPDATE SET
		first_name = EXCLUDED.first_name,
		last_name = EXCLUDED.last_name,
		status = EXCLUDED.status,
		warmup_status = EXCLUDED.warmup_status,
		provider_code = EXCLUDED.provider_code,
		stat_warmup_score = EXCLUDED.stat_warmup_score,
		updated_at = EXCLUDED.updated_at`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.systemDB.ExecContext(ctx, sqlQuery, args...); err != nil {
		return domain.NewStoreWriteError("accounts", "upsert", err)
	}
	return nil
}

// ListByStatus returns accounts with the given status ordered by email
func (r *AccountRepository) ListByStatus(ctx context.Context, status int) ([]*domain.Account, error) {
	sqlQuery, args, err := psql.Select(accountColumns...).
		From("accounts").
		Where(sq.Eq{"status": status}).
		OrderBy("email ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		a := &domain.Account{}
		if err := rows.Scan(
			&a.Email, &a.FirstName, &a.LastName, &a.Status, &a.WarmupStatus,
			&a.ProviderCode, &a.WarmupScore, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
