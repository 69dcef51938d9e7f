package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrprime/campaign-sync/internal/domain"
)

// MonthlyReportRepository implements domain.MonthlyReportRepository using PostgreSQL
type MonthlyReportRepository struct {
	systemDB *sql.DB
}

// NewMonthlyReportRepository creates a new MonthlyReportRepository
func NewMonthlyReportRepository(db *sql.DB) domain.MonthlyReportRepository {
	return &MonthlyReportRepository{systemDB: db}
}

// Upsert recomputes the month row, leaving booked_calls and booked_calls_rate untouched
func (r *MonthlyReportRepository) Upsert(ctx context.Context, report *domain.MonthlyReport) error {
	sqlQuery, args, err := psql.Insert("reporting_monthly").
		Columns(
			"month", "total_email_sent", "total_lead_contacted", "replies", "reply_rate",
			"positive_replies", "prr", "not_interested", "neutral_replies", "out_of_office",
			"auto_replies", "updated_at",
		).
		Values(
			report.Month, report.TotalEmailSent, report.TotalLeadContacted, report.Replies, report.ReplyRate,
			report.PositiveReplies, report.PRR, report.NotInterested, report.Neutral, report.OutOfOffice,
			report.AutoReplies, stamp(report.UpdatedAt),
		).
		Suffix(`ON CONFLICT (month) DO UPDATE SET
			total_email_sent = EXCLUDED.total_email_sent,
			total_lead_contacted = EXCLUDED.total_lead_contacted,
			replies = EXCLUDED.replies,
			reply_rate = EXCLUDED.reply_rate,
			positive_replies = EXCLUDED.positive_replies,
			prr = EXCLUDED.prr,
			not_interested = EXCLUDED.not_interested,
			neutral_replies = EXCLUDED.neutral_replies,
			out_of_office = EXCLUDED.out_of_office,
			auto_replies = EXCLUDED.auto_replies,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.systemDB.ExecContext(ctx, sqlQuery, args...); err != nil {
		return domain.NewStoreWriteError("reporting_monthly", "upsert", err)
	}
	return nil
}

// List returns every month, newest first
func (r *MonthlyReportRepository) List(ctx context.Context) ([]*domain.MonthlyReport, error) {
	sqlQuery, args, err := psql.Select(
		"to_char(month, 'YYYY-MM-DD') AS month", "total_email_sent", "total_lead_contacted",
		"replies", "reply_rate", "positive_replies", "prr", "booked_calls", "booked_calls_rate",
		"not_interested", "neutral_replies", "out_of_office", "auto_replies", "updated_at",
	).
		From("reporting_monthly").
		OrderBy("month DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.MonthlyReport{}
	for rows.Next() {
		m := &domain.MonthlyReport{}
		var bookedCalls sql.NullInt64
		var bookedCallsRate sql.NullFloat64
		if err := rows.Scan(
			&m.Month, &m.TotalEmailSent, &m.TotalLeadContacted,
			&m.Replies, &m.ReplyRate, &m.PositiveReplies, &m.PRR, &bookedCalls, &bookedCallsRate,
			&m.NotInterested, &m.Neutral, &m.OutOfOffice, &m.AutoReplies, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan monthly report: %w", err)
		}
		if bookedCalls.Valid {
			m.BookedCalls = &bookedCalls.Int64
		}
		if bookedCallsRate.Valid {
			m.BookedCallsRate = &bookedCallsRate.Float64
		}
		reports = append(reports, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly report rows: %w", err)
	}
	return reports, nil
}
