package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/mrprime/campaign-sync/internal/domain"
)

// SyncRunRepository implements domain.SyncRunRepository using PostgreSQL
type SyncRunRepository struct {
	systemDB *sql.DB
}

// NewSyncRunRepository creates a new SyncRunRepository
func NewSyncRunRepository(db *sql.DB) domain.SyncRunRepository {
	return &SyncRunRepository{systemDB: db}
}

// Create records a run, generating its id when empty
func (r *SyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = domain.SyncRunStatusRunning
	}
	run.StartedAt = stamp(run.StartedAt)

	sqlQuery, args, err := psql.Insert("sync_runs").
		Columns("id", "kind", "trigger", "status", "started_at").
		Values(run.ID, string(run.Kind), string(run.Trigger), string(run.Status), run.StartedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.systemDB.ExecContext(ctx, sqlQuery, args...); err != nil {
		return domain.NewStoreWriteError("sync_runs", "insert", err)
	}
	return nil
}

// Complete stores the terminal state of a run
func (r *SyncRunRepository) Complete(ctx context.Context, run *domain.SyncRun) error {
	var result interface{}
	if run.Result != nil {
		encoded, err := run.Result.Value()
		if err != nil {
			return fmt.Errorf("failed to marshal sync result: %w", err)
		}
		result = encoded
	}

	var completedAt interface{}
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.UTC()
	}

	sqlQuery, args, err := psql.Update("sync_runs").
		Set("status", string(run.Status)).
		Set("completed_at", completedAt).
		Set("error_message", run.ErrorMessage).
		Set("result", result).
		Where(sq.Eq{"id": run.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	res, err := r.systemDB.ExecContext(ctx, sqlQuery, args...)
	if err != nil {
		return domain.NewStoreWriteError("sync_runs", "update", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return &domain.ErrNotFound{Entity: "sync run", ID: run.ID}
	}
	return nil
}

// ListRecent returns the newest runs first
func (r *SyncRunRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = domain.DefaultSyncRunLimit
	}

	sqlQuery, args, err := psql.Select(
		"id", "kind", "trigger", "status", "started_at", "completed_at", "error_message", "result",
	).
		From("sync_runs").
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	defer rows.Close()

	runs := []*domain.SyncRun{}
	for rows.Next() {
		run := &domain.SyncRun{}
		var kind, trigger, status string
		var completedAt sql.NullTime
		var errorMessage sql.NullString
		var result []byte

		if err := rows.Scan(&run.ID, &kind, &trigger, &status, &run.StartedAt, &completedAt, &errorMessage, &result); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}

		run.Kind = domain.SyncKind(kind)
		run.Trigger = domain.SyncTrigger(trigger)
		run.Status = domain.SyncRunStatus(status)
		if completedAt.Valid {
			t := completedAt.Time
			run.CompletedAt = &t
		}
		if errorMessage.Valid {
			msg := errorMessage.String
			run.ErrorMessage = &msg
		}
		if len(result) > 0 {
			run.Result = &domain.SyncResult{}
			if err := run.Result.Scan(result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal sync result: %w", err)
			}
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync run rows: %w", err)
	}
	return runs, nil
}
