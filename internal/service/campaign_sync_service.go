package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/instantly"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

// CampaignSyncService overwrites the lifetime snapshot of every campaign
type CampaignSyncService struct {
	api    domain.OutreachAPI
	repo   domain.CampaignRepository
	logger logger.Logger
	now    func() time.Time
}

func NewCampaignSyncService(api domain.OutreachAPI, repo domain.CampaignRepository, logger logger.Logger) *CampaignSyncService {
	return &CampaignSyncService{
		api:    api,
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Sync fetches lifetime analytics and upserts one row per campaign
func (s *CampaignSyncService) Sync(ctx context.Context) (int, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CampaignSyncService", "Sync")
	defer span.End()

	records, err := s.api.CampaignAnalytics(ctx, "", "")
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, fmt.Errorf("failed to fetch campaign analytics: %w", err)
	}
	if len(records) == 0 {
		s.logger.Info("No campaigns returned by the outreach API")
		return 0, nil
	}

	now := s.now().UTC()
	campaigns := make([]*domain.Campaign, 0, len(records))
	for _, r := range records {
		campaigns = append(campaigns, campaignFromAnalytics(r, now))
	}

	if err := s.repo.UpsertMany(ctx, campaigns); err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, fmt.Errorf("failed to upsert campaigns: %w", err)
	}

	tracing.AddAttribute(ctx, "campaigns", len(campaigns))
	s.logger.WithField("count", len(campaigns)).Info("Campaign snapshots synced")
	return len(campaigns), nil
}

func campaignFromAnalytics(r instantly.CampaignAnalytics, now time.Time) *domain.Campaign {
	return &domain.Campaign{
		ID:            r.CampaignID,
		Name:          r.CampaignName,
		Status:        domain.CampaignStatus(r.CampaignStatus),
		EmailsSent:    r.EmailsSentCount,
		Replies:       r.ReplyCount,
		Bounced:       r.BouncedCount,
		Opportunities: r.TotalOpportunities,
		Leads:         r.LeadsCount,
		Contacted:     r.ContactedCount,
		Opens:         r.OpenCount,
		UpdatedAt:     now,
	}
}
