package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/mrprime/campaign-sync/internal/domain"
)

var dailyMetricCounterColumns = []string{
	"sent", "contacted", "new_leads_contacted", "opened", "unique_opened",
	"replies", "unique_replies", "replies_automatic", "unique_replies_automatic",
	"clicks", "unique_clicks", "opportunities", "unique_opportunities",
}

// DailyMetricRepository implements domain.DailyMetricRepository using PostgreSQL
type DailyMetricRepository struct {
	systemDB *sql.DB
}

// NewDailyMetricRepository creates a new DailyMetricRepository
func NewDailyMetricRepository(db *sql.DB) domain.DailyMetricRepository {
	return &DailyMetricRepository{systemDB: db}
}

// bucketWhere matches the row of a (date, campaign id) key, a nil id being the aggregate
func bucketWhere(date string, campaignID *string) sq.And {
	if campaignID == nil {
		return sq.And{sq.Eq{"date": date}, sq.Eq{"campaign_id": nil}}
	}
	return sq.And{sq.Eq{"date": date}, sq.Eq{"campaign_id": *campaignID}}
}

// ReplaceDay deletes the bucket row and inserts metric in one transaction
func (r *DailyMetricRepository) ReplaceDay(ctx context.Context, metric *domain.DailyMetric) error {
	deleteSQL, deleteArgs, err := psql.Delete("daily_analytics").
		Where(bucketWhere(metric.Date, metric.CampaignID)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	columns := append([]string{"date", "campaign_id"}, dailyMetricCounterColumns...)
	insertSQL, insertArgs, err := psql.Insert("daily_analytics").
		Columns(columns...).
		Values(
			metric.Date, metric.CampaignID,
			metric.Sent, metric.Contacted, metric.NewLeadsContacted, metric.Opened, metric.UniqueOpened,
			metric.Replies, metric.UniqueReplies, metric.RepliesAutomatic, metric.UniqueRepliesAutomatic,
			metric.Clicks, metric.UniqueClicks, metric.Opportunities, metric.UniqueOpportunities,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	return withTransaction(ctx, r.systemDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return domain.NewStoreWriteError("daily_analytics", "delete", err)
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return domain.NewStoreWriteError("daily_analytics", "insert", err)
		}
		return nil
	})
}

// List returns rows matching filter ordered by date, the aggregate first within a date
func (r *DailyMetricRepository) List(ctx context.Context, filter domain.DailyMetricFilter) ([]*domain.DailyMetric, error) {
	columns := append([]string{"to_char(date, 'YYYY-MM-DD') AS date", "campaign_id"}, dailyMetricCounterColumns...)
	query := psql.Select(columns...).
		From("daily_analytics").
		OrderBy("date ASC", "campaign_id ASC NULLS FIRST")

	if filter.StartDate != "" {
		query = query.Where(sq.GtOrEq{"date": filter.StartDate})
	}
	if filter.EndDate != "" {
		query = query.Where(sq.LtOrEq{"date": filter.EndDate})
	}

	switch filter.Scope {
	case domain.DailyScopeAggregate:
		query = query.Where(sq.Eq{"campaign_id": nil})
	case domain.DailyScopeCampaigns:
		query = query.Where(sq.NotEq{"campaign_id": nil})
	case domain.DailyScopeCampaign:
		query = query.Where(sq.Eq{"campaign_id": filter.CampaignID})
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily analytics: %w", err)
	}
	defer rows.Close()

	metrics := []*domain.DailyMetric{}
	for rows.Next() {
		m := &domain.DailyMetric{}
		var campaignID sql.NullString
		if err := rows.Scan(
			&m.Date, &campaignID,
			&m.Sent, &m.Contacted, &m.NewLeadsContacted, &m.Opened, &m.UniqueOpened,
			&m.Replies, &m.UniqueReplies, &m.RepliesAutomatic, &m.UniqueRepliesAutomatic,
			&m.Clicks, &m.UniqueClicks, &m.Opportunities, &m.UniqueOpportunities,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily analytics row: %w", err)
		}
		if campaignID.Valid {
			m.CampaignID = domain.StringPtr(campaignID.String)
		}
		metrics = append(metrics, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily analytics rows: %w", err)
	}
	return metrics, nil
}

// OverrideOpportunities rewrites the opportunity columns of a campaign window in one transaction
func (r *DailyMetricRepository) OverrideOpportunities(ctx context.Context, campaignID, startDate, endDate, targetDate string, total int64) error {
	zero := psql.Update("daily_analytics").
		Set("opportunities", 0).
		Set("unique_opportunities", 0).
		Where(sq.Eq{"campaign_id": campaignID}).
		Where(sq.GtOrEq{"date": startDate})
	if endDate != "" {
		zero = zero.Where(sq.LtOrEq{"date": endDate})
	}

	zeroSQL, zeroArgs, err := zero.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	return withTransaction(ctx, r.systemDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, zeroSQL, zeroArgs...); err != nil {
			return domain.NewStoreWriteError("daily_analytics", "update", err)
		}

		if total <= 0 {
			return nil
		}

		setSQL, setArgs, err := psql.Update("daily_analytics").
			Set("opportunities", total).
			Set("unique_opportunities", total).
			Where(bucketWhere(targetDate, &campaignID)).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update query: %w", err)
		}

		if _, err := tx.ExecContext(ctx, setSQL, setArgs...); err != nil {
			return domain.NewStoreWriteError("daily_analytics", "update", err)
		}
		return nil
	})
}
