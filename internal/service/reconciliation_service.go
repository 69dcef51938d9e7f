package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

// ReconciliationService aligns the per-day opportunity sums of each active
// campaign with the platform's month-to-date total.
type ReconciliationService struct {
	api    domain.OutreachAPI
	daily  domain.DailyMetricRepository
	logger logger.Logger
	now    func() time.Time
}

func NewReconciliationService(api domain.OutreachAPI, daily domain.DailyMetricRepository, logger logger.Logger) *ReconciliationService {
	return &ReconciliationService{
		api:    api,
		daily:  daily,
		logger: logger,
		now:    time.Now,
	}
}

// Reconcile returns the number of campaigns whose month rows were rewritten
func (s *ReconciliationService) Reconcile(ctx context.Context) (int, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ReconciliationService", "Reconcile")
	defer span.End()

	monthStart, today := domain.MonthToDate(s.now())

	records, err := s.api.CampaignAnalytics(ctx, monthStart, today)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, fmt.Errorf("failed to fetch month-to-date campaign analytics: %w", err)
	}

	fixed := 0
	for _, record := range records {
		if domain.CampaignStatus(record.CampaignStatus) != domain.CampaignStatusActive {
			continue
		}

		rows, err := s.daily.List(ctx, domain.DailyMetricFilter{
			StartDate:  monthStart,
			Scope:      domain.DailyScopeCampaign,
			CampaignID: record.CampaignID,
		})
		if err != nil {
			tracing.MarkSpanError(ctx, err)
			return 0, fmt.Errorf("failed to read daily rows for campaign %s: %w", record.CampaignID, err)
		}
		if len(rows) == 0 {
			continue
		}

		var sum int64
		latest := rows[0].Date
		for _, row := range rows {
			sum += row.Opportunities
			if row.Date > latest {
				latest = row.Date
			}
		}
		if sum == record.TotalOpportunities {
			continue
		}

		if err := s.daily.OverrideOpportunities(ctx, record.CampaignID, monthStart, "", latest, record.TotalOpportunities); err != nil {
			tracing.MarkSpanError(ctx, err)
			return 0, fmt.Errorf("failed to reconcile opportunities for campaign %s: %w", record.CampaignID, err)
		}

		s.logger.WithField("campaign_id", record.CampaignID).
			WithField("daily_sum", sum).
			WithField("api_total", record.TotalOpportunities).
			WithField("target_date", latest).
			Info("Reconciled campaign opportunities")
		fixed++
	}

	tracing.AddAttribute(ctx, "fixed", fixed)
	return fixed, nil
}
