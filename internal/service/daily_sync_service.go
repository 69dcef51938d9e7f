package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/instantly"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

// DailySyncService rebuilds the trailing window of the daily time series,
// first the aggregate bucket then one bucket per active campaign.
type DailySyncService struct {
	api       domain.OutreachAPI
	daily     domain.DailyMetricRepository
	campaigns domain.CampaignRepository
	logger    logger.Logger
	batchSize int
	now       func() time.Time
}

func NewDailySyncService(
	api domain.OutreachAPI,
	daily domain.DailyMetricRepository,
	campaigns domain.CampaignRepository,
	logger logger.Logger,
) *DailySyncService {
	return &DailySyncService{
		api:       api,
		daily:     daily,
		campaigns: campaigns,
		logger:    logger,
		batchSize: domain.CampaignFetchBatchSize,
		now:       time.Now,
	}
}

// Sync replaces every bucket in [today-days, today]
func (s *DailySyncService) Sync(ctx context.Context, days int) (*domain.DailySyncResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DailySyncService", "Sync")
	defer span.End()
	tracing.AddAttribute(ctx, "days", days)

	startDate, endDate := domain.TrailingWindow(s.now(), days)
	log := s.logger.WithField("start_date", startDate).WithField("end_date", endDate)

	aggregateDays, err := s.syncAggregate(ctx, startDate, endDate)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	active, err := s.campaigns.ListByStatus(ctx, domain.CampaignStatusActive)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to list active campaigns: %w", err)
	}

	synced, rows, err := s.syncCampaigns(ctx, active, startDate, endDate)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	result := &domain.DailySyncResult{
		AggregateDays:   aggregateDays,
		CampaignsSynced: synced,
		CampaignRows:    rows,
	}

	log.WithField("aggregate_days", result.AggregateDays).
		WithField("campaigns", result.CampaignsSynced).
		WithField("campaign_rows", result.CampaignRows).
		Info("Daily analytics synced")
	return result, nil
}

func (s *DailySyncService) syncAggregate(ctx context.Context, startDate, endDate string) (int, error) {
	rows, err := s.api.DailyAnalytics(ctx, startDate, endDate, "")
	if err != nil {
		return 0, fmt.Errorf("failed to fetch aggregate daily analytics: %w", err)
	}

	for _, row := range rows {
		if err := s.daily.ReplaceDay(ctx, dailyMetricFromAnalytics(row, nil)); err != nil {
			return 0, fmt.Errorf("failed to replace aggregate day %s: %w", row.Date, err)
		}
	}
	return len(rows), nil
}

// syncCampaigns fetches campaigns batch by batch, each batch in parallel
func (s *DailySyncService) syncCampaigns(ctx context.Context, campaigns []*domain.Campaign, startDate, endDate string) (int, int, error) {
	if len(campaigns) == 0 {
		return 0, 0, nil
	}

	pool := pond.NewPool(s.batchSize)
	defer pool.StopAndWait()

	var synced, rows atomic.Int64

	for offset := 0; offset < len(campaigns); offset += s.batchSize {
		end := offset + s.batchSize
		if end > len(campaigns) {
			end = len(campaigns)
		}

		group := pool.NewGroupContext(ctx)
		groupCtx := group.Context()

		for _, campaign := range campaigns[offset:end] {
			campaignID := campaign.ID
			group.SubmitErr(func() error {
				n, err := s.syncCampaign(groupCtx, campaignID, startDate, endDate)
				if err != nil {
					return err
				}
				if n > 0 {
					synced.Add(1)
					rows.Add(int64(n))
				}
				return nil
			})
		}

		if err := group.Wait(); err != nil {
			return 0, 0, err
		}
	}

	return int(synced.Load()), int(rows.Load()), nil
}

func (s *DailySyncService) syncCampaign(ctx context.Context, campaignID, startDate, endDate string) (int, error) {
	days, err := s.api.DailyAnalytics(ctx, startDate, endDate, campaignID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch daily analytics for campaign %s: %w", campaignID, err)
	}

	for _, day := range days {
		if err := s.daily.ReplaceDay(ctx, dailyMetricFromAnalytics(day, domain.StringPtr(campaignID))); err != nil {
			return 0, fmt.Errorf("failed to replace day %s for campaign %s: %w", day.Date, campaignID, err)
		}
	}
	return len(days), nil
}

func dailyMetricFromAnalytics(d instantly.DailyAnalytics, campaignID *string) *domain.DailyMetric {
	return &domain.DailyMetric{
		Date:                   d.Date,
		CampaignID:             campaignID,
		Sent:                   d.Sent,
		Contacted:              d.Contacted,
		NewLeadsContacted:      d.NewLeadsContacted,
		Opened:                 d.Opened,
		UniqueOpened:           d.UniqueOpened,
		Replies:                d.Replies,
		UniqueReplies:          d.UniqueReplies,
		RepliesAutomatic:       d.RepliesAutomatic,
		UniqueRepliesAutomatic: d.UniqueRepliesAutomatic,
		Clicks:                 d.Clicks,
		UniqueClicks:           d.UniqueClicks,
		Opportunities:          d.Opportunities,
		UniqueOpportunities:    d.UniqueOpportunities,
	}
}
