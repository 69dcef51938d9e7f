package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

// CopyAngleService rolls this month's per-campaign activity up by copy angle
type CopyAngleService struct {
	campaigns domain.CampaignRepository
	daily     domain.DailyMetricRepository
	angles    domain.CopyAngleRepository
	logger    logger.Logger
	now       func() time.Time
}

func NewCopyAngleService(
	campaigns domain.CampaignRepository,
	daily domain.DailyMetricRepository,
	angles domain.CopyAngleRepository,
	logger logger.Logger,
) *CopyAngleService {
	return &CopyAngleService{
		campaigns: campaigns,
		daily:     daily,
		angles:    angles,
		logger:    logger,
		now:       time.Now,
	}
}

type campaignActivity struct {
	contacted int64
	replies   int64
	auto      int64
}

// Sync returns the number of angles written for the current month
func (s *CopyAngleService) Sync(ctx context.Context) (int, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "CopyAngleService", "Sync")
	defer span.End()

	now := s.now().UTC()
	monthStart, today := domain.MonthToDate(now)

	campaigns, err := s.campaigns.ListByStatus(ctx, domain.CampaignStatusActive, domain.CampaignStatusCompleted)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	rows, err := s.daily.List(ctx, domain.DailyMetricFilter{
		StartDate: monthStart,
		EndDate:   today,
		Scope:     domain.DailyScopeCampaigns,
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, fmt.Errorf("failed to read campaign daily rows: %w", err)
	}

	activity := make(map[string]*campaignActivity)
	for _, row := range rows {
		a, ok := activity[*row.CampaignID]
		if !ok {
			a = &campaignActivity{}
			activity[*row.CampaignID] = a
		}
		a.contacted += row.NewLeadsContacted
		a.replies += row.UniqueReplies
		a.auto += row.UniqueRepliesAutomatic
	}

	totals := make(map[string]*campaignActivity)
	for _, c := range campaigns {
		a, ok := activity[c.ID]
		if !ok || a.contacted == 0 {
			continue
		}
		angle := domain.DeriveCopyAngle(c.Name)
		t, ok := totals[angle]
		if !ok {
			t = &campaignActivity{}
			totals[angle] = t
		}
		t.contacted += a.contacted
		t.replies += a.replies
		t.auto += a.auto
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := totals[name]
		angle := &domain.CopyAngle{
			Month:          monthStart,
			CampaignName:   name,
			TotalProspects: t.contacted,
			TotalReplies:   t.replies,
			ReplyRate:      domain.ReplyRate(t.replies, t.contacted),
			AutoReplies:    t.auto,
			UpdatedAt:      now,
		}
		if err := s.write(ctx, angle); err != nil {
			tracing.MarkSpanError(ctx, err)
			return 0, err
		}
	}

	tracing.AddAttribute(ctx, "angles", len(names))
	s.logger.WithField("month", monthStart).WithField("count", len(names)).Info("Copy angles synced")
	return len(names), nil
}

func (s *CopyAngleService) write(ctx context.Context, angle *domain.CopyAngle) error {
	_, err := s.angles.FindByMonthAndName(ctx, angle.Month, angle.CampaignName)
	var notFound *domain.ErrNotFound
	switch {
	case err == nil:
		if err := s.angles.UpdateComputed(ctx, angle); err != nil {
			return fmt.Errorf("failed to update copy angle %q: %w", angle.CampaignName, err)
		}
	case errors.As(err, &notFound):
		if err := s.angles.Insert(ctx, angle); err != nil {
			return fmt.Errorf("failed to insert copy angle %q: %w", angle.CampaignName, err)
		}
	default:
		return fmt.Errorf("failed to look up copy angle %q: %w", angle.CampaignName, err)
	}
	return nil
}
