package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mrprime/campaign-sync/internal/domain"
)

var campaignColumns = []string{
	"id", "name", "status", "emails_sent_count", "reply_count", "bounce_count",
	"total_opportunities", "leads_count", "contacted_count", "open_count", "updated_at",
}

// CampaignRepository implements domain.CampaignRepository using PostgreSQL
type CampaignRepository struct {
	systemDB *sql.DB
}

// NewCampaignRepository creates a new CampaignRepository
func NewCampaignRepository(db *sql.DB) domain.CampaignRepository {
	return &CampaignRepository{systemDB: db}
}

// UpsertMany writes all campaigns in a single statement
func (r *CampaignRepository) UpsertMany(ctx context.Context, campaigns []*domain.Campaign) error {
	if len(campaigns) == 0 {
		return nil
	}

	query := psql.Insert("campaigns").Columns(campaignColumns...)
	for _, c := range campaigns {
		query = query.Values(
			c.ID, c.Name, int(c.Status), c.EmailsSent, c.Replies, c.Bounced,
			c.Opportunities, c.Leads, c.Contacted, c.Opens, stamp(c.UpdatedAt),
		)
	}
	query = query.Suffix(`ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		status = EXCLUDED.status,
		emails_sent_count = EXCLUDED.emails_sent_count,
		reply_count = EXCLUDED.reply_count,
		bounce_count = EXCLUDED.bounce_count,
		total_opportunities = EXCLUDED.total_opportunities,
		leads_count = EXCLUDED.leads_count,
		contacted_count = EXCLUDED.contacted_count,
		open_count = EXCLUDED.open_count,
		updated_at = EXCLUDED.updated_at`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.systemDB.ExecContext(ctx, sqlQuery, args...); err != nil {
		return domain.NewStoreWriteError("campaigns", "upsert", err)
	}
	return nil
}

// ListByStatus returns campaigns ordered by name
func (r *CampaignRepository) ListByStatus(ctx context.Context, statuses ...domain.CampaignStatus) ([]*domain.Campaign, error) {
	query := psql.Select(campaignColumns...).From("campaigns").OrderBy("name ASC", "id ASC")
	if len(statuses) > 0 {
		values := make([]int, len(statuses))
		for i, s := range statuses {
			values[i] = int(s)
		}
		query = query.Where(sq.Eq{"status": values})
	}

	return r.list(ctx, query)
}

// ListByIDs returns the campaigns whose id is in ids
func (r *CampaignRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Campaign, error) {
	if len(ids) == 0 {
		return []*domain.Campaign{}, nil
	}

	query := psql.Select(campaignColumns...).
		From("campaigns").
		Where(sq.Expr("id = ANY(?)", pq.Array(ids))).
		OrderBy("name ASC", "id ASC")

	return r.list(ctx, query)
}

// CountByStatus counts campaigns with the given status
func (r *CampaignRepository) CountByStatus(ctx context.Context, status domain.CampaignStatus) (int, error) {
	sqlQuery, args, err := psql.Select("COUNT(*)").
		From("campaigns").
		Where(sq.Eq{"status": int(status)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := r.systemDB.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count campaigns: %w", err)
	}
	return count, nil
}

func (r *CampaignRepository) list(ctx context.Context, query sq.SelectBuilder) ([]*domain.Campaign, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.systemDB.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*domain.Campaign{}
	for rows.Next() {
		c := &domain.Campaign{}
		var status int
		if err := rows.Scan(
			&c.ID, &c.Name, &status, &c.EmailsSent, &c.Replies, &c.Bounced,
			&c.Opportunities, &c.Leads, &c.Contacted, &c.Opens, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		c.Status = domain.CampaignStatus(status)
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaign rows: %w", err)
	}
	return campaigns, nil
}
