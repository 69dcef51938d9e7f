package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/mrprime/campaign-sync/internal/domain"
)

var copyAngleColumns = []string{
	"to_char(month, 'YYYY-MM-DD') AS month", "campaign_name", "total_prospects", "total_replies",
	"reply_rate", "positive_replies", "prr", "booked_calls", "booked_calls_rate",
	"auto_replies", "updated_at",
}

// CopyAngleRepository implements domain.CopyAngleRepository using PostgreSQL
type CopyAngleRepository struct {
	systemDB *sql.DB
}

// NewCopyAngleRepository creates a new CopyAngleRepository
func NewCopyAngleRepository(db *sql.DB) domain.CopyAngleRepository {
	return &CopyAngleRepository{systemDB: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCopyAngle(row rowScanner) (*domain.CopyAngle, error) {
	a := &domain.CopyAngle{}
	var positive, bookedCalls sql.NullInt64
	var prr, bookedCallsRate sql.NullFloat64
	if err := row.Scan(
		&a.Month, &a.CampaignName, &a.TotalProspects, &a.TotalReplies,
		&a.ReplyRate, &positive, &prr, &bookedCalls, &bookedCallsRate,
		&a.AutoReplies, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if positive.Valid {
		a.PositiveReplies = &positive.Int64
	}
	if prr.Valid {
		a.PRR = &prr.Float64
	}
	if bookedCalls.Valid {
		a.BookedCalls = &bookedCalls.Int64
	}
	if bookedCallsRate.Valid {
		a.BookedCallsRate = &bookedCallsRate.Float64
	}
	return a, nil
}

// FindByMonthAndName returns the angle row for month, or *domain.ErrNotFound
func (r *CopyAngleRepository) FindByMonthAndName(ctx context.Context, month, name string) (*domain.CopyAngle, error) {
	sqlQuery, args, err := psql.Select(copyAngleColumns...).
		From("copy_angles_monthly").
		Where(sq.Eq{"month": month, "campaign_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	angle, err := scanCopyAngle(r.systemDB.QueryRowContext(ctx, sqlQuery, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ErrNotFound{Entity: "copy angle", ID: month + "/" + name}
		}
		return nil, fmt.Errorf("failed to get copy angle: %w", err)
	}
	return angle, nil
}

// Insert writes a new row with the computed columns only
func (r *CopyAngleRepository) Insert(ctx context.Context, angle *domain.CopyAngle) error {
	sqlQuery, args, err := psql.Insert("copy_angles_monthly").
		Columns("month", "campaign_name", "total_prospects", "total_replies", "reply_rate", "auto_replies", "updated_at").
		Values(angle.Month, angle.CampaignName, angle.TotalProspects, angle.TotalReplies, angle.ReplyRate, angle.AutoReplies, stamp(angle.UpdatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.systemDB.ExecContext(ctx, sqlQuery, args...); err != nil {
		return domain.NewStoreWriteError("copy_angles_monthly", "insert", err)
	}
	return nil
}

// UpdateComputed overwrites prospects, replies, reply rate, auto replies and the timestamp
func (r *CopyAngleRepository) UpdateComputed(ctx context.Context, angle *domain.CopyAngle) error {
	sqlQuery, args, err := psql.Update("copy_angles_monthly").
		Set("total_prospects", angle.TotalProspects).
		Set("total_replies", angle.TotalReplies).
		Set("reply_rate", angle.ReplyRate).
		Set("auto_replies", angle.AutoReplies).
		Set("updated_at", stamp(angle.UpdatedAt)).
		Where(sq.Eq{"month": angle.Month, "campaign_name": angle.CampaignName}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.systemDB.ExecContext(ctx, sqlQuery, args...); err != nil {
		return domain.NewStoreWriteError("copy_angles_monthly", "update", err)
	}
	return nil
}

// ListSince returns rows from sinceMonth onward, newest month first then by prospects
func (r *CopyAngleRepository) ListSince(ctx context.Context, sinceMonth string) ([]*domain.CopyAngle, error) {
	sqlQuery, args, err := psql.Select(copyAngleColumns...).
		From("copy_angles_monthly").
		Where(sq.GtOrEq{"month": sinceMonth}).
		OrderBy("month DESC", "total_prospects DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list copy angles: %w", err)
	}
	defer rows.Close()

	angles := []*domain.CopyAngle{}
	for rows.Next() {
		angle, err := scanCopyAngle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan copy angle: %w", err)
		}
		angles = append(angles, angle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating copy angle rows: %w", err)
	}
	return angles, nil
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}
