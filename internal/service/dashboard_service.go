package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

const weeklyKPIDays = 7

// DashboardService answers the read-only queries behind the dashboard.
// Activity figures always sum per-campaign buckets, so campaigns paused
// since the start of the window still count.
type DashboardService struct {
	campaigns domain.CampaignRepository
	accounts  domain.AccountRepository
	daily     domain.DailyMetricRepository
	reports   domain.MonthlyReportRepository
	angles    domain.CopyAngleRepository
	now       func() time.Time
}

func NewDashboardService(
	campaigns domain.CampaignRepository,
	accounts domain.AccountRepository,
	daily domain.DailyMetricRepository,
	reports domain.MonthlyReportRepository,
	angles domain.CopyAngleRepository,
) *DashboardService {
	return &DashboardService{
		campaigns: campaigns,
		accounts:  accounts,
		daily:     daily,
		reports:   reports,
		angles:    angles,
		now:       time.Now,
	}
}

var _ domain.DashboardService = (*DashboardService)(nil)

// GetKPIs summarises the month to date
func (s *DashboardService) GetKPIs(ctx context.Context) (*domain.KPISummary, error) {
	since, _ := domain.MonthToDate(s.now())
	return s.kpis(ctx, "GetKPIs", since)
}

// GetWeeklyKPIs summarises the last seven days
func (s *DashboardService) GetWeeklyKPIs(ctx context.Context) (*domain.KPISummary, error) {
	since, _ := domain.TrailingWindow(s.now(), weeklyKPIDays)
	return s.kpis(ctx, "GetWeeklyKPIs", since)
}

func (s *DashboardService) kpis(ctx context.Context, method, since string) (*domain.KPISummary, error) {
	return tracing.TraceMethodWithResult(ctx, "DashboardService", method, func(ctx context.Context) (*domain.KPISummary, error) {
		rows, err := s.daily.List(ctx, domain.DailyMetricFilter{StartDate: since, Scope: domain.DailyScopeCampaigns})
		if err != nil {
			return nil, fmt.Errorf("failed to read daily rows: %w", err)
		}

		active, err := s.campaigns.CountByStatus(ctx, domain.CampaignStatusActive)
		if err != nil {
			return nil, fmt.Errorf("failed to count active campaigns: %w", err)
		}

		summary := &domain.KPISummary{Since: since, ActiveCampaigns: active}
		for _, row := range rows {
			summary.Contacted += row.NewLeadsContacted
			summary.Replies += row.UniqueReplies
			summary.Opportunities += row.Opportunities
		}
		summary.ReplyRate = domain.ReplyRate(summary.Replies, summary.Contacted)
		return summary, nil
	})
}

// ListCampaignPerformance sums per-campaign activity since a date, month to
// date when since is empty. Campaigns without activity are dropped.
func (s *DashboardService) ListCampaignPerformance(ctx context.Context, since string) ([]*domain.CampaignPerformance, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DashboardService", "ListCampaignPerformance")
	defer span.End()

	if since == "" {
		since, _ = domain.MonthToDate(s.now())
	}

	rows, err := s.daily.List(ctx, domain.DailyMetricFilter{StartDate: since, Scope: domain.DailyScopeCampaigns})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to read daily rows: %w", err)
	}

	byCampaign := make(map[string]*domain.CampaignPerformance)
	ids := make([]string, 0)
	for _, row := range rows {
		perf, ok := byCampaign[*row.CampaignID]
		if !ok {
			perf = &domain.CampaignPerformance{ID: *row.CampaignID}
			byCampaign[perf.ID] = perf
			ids = append(ids, perf.ID)
		}
		perf.Sent += row.Sent
		perf.Contacted += row.NewLeadsContacted
		perf.Replies += row.UniqueReplies
		perf.AutoReplies += row.UniqueRepliesAutomatic
		perf.Opportunities += row.Opportunities
	}

	result := make([]*domain.CampaignPerformance, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	campaigns, err := s.campaigns.ListByIDs(ctx, ids)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to load campaigns: %w", err)
	}

	for _, c := range campaigns {
		perf := byCampaign[c.ID]
		if perf == nil || (perf.Contacted == 0 && perf.Replies == 0 && perf.Opportunities == 0) {
			continue
		}
		perf.Name = c.Name
		perf.Status = c.Status
		perf.ReplyRate = domain.ReplyRate(perf.Replies, perf.Contacted)
		result = append(result, perf)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Contacted > result[j].Contacted
	})
	return result, nil
}

func (s *DashboardService) GetDailySeries(ctx context.Context, days int) ([]*domain.DailyPoint, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DashboardService", "GetDailySeries")
	defer span.End()

	since, _ := domain.MonthToDate(s.now())
	if days > 0 {
		since, _ = domain.TrailingWindow(s.now(), days)
	}

	rows, err := s.daily.List(ctx, domain.DailyMetricFilter{StartDate: since, Scope: domain.DailyScopeCampaigns})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to read daily rows: %w", err)
	}

	byDate := make(map[string]*domain.DailyPoint)
	points := make([]*domain.DailyPoint, 0)
	for _, row := range rows {
		point, ok := byDate[row.Date]
		if !ok {
			point = &domain.DailyPoint{Date: row.Date}
			byDate[row.Date] = point
			points = append(points, point)
		}
		point.Sent += row.NewLeadsContacted
		point.Replies += row.UniqueReplies
		point.Opportunities += row.Opportunities
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points, nil
}

// GetWarmupHealth buckets active mailboxes by warmup score
func (s *DashboardService) GetWarmupHealth(ctx context.Context) (*domain.WarmupSummary, error) {
	return tracing.TraceMethodWithResult(ctx, "DashboardService", "GetWarmupHealth", func(ctx context.Context) (*domain.WarmupSummary, error) {
		accounts, err := s.accounts.ListByStatus(ctx, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}

		summary := &domain.WarmupSummary{Total: len(accounts)}
		if len(accounts) == 0 {
			return summary, nil
		}

		var total float64
		for _, a := range accounts {
			total += a.WarmupScore
			switch a.Health() {
			case domain.WarmupHealthy:
				summary.Healthy++
			case domain.WarmupGood:
				summary.Good++
			default:
				summary.Warning++
			}
		}
		summary.AvgScore = domain.Round(total/float64(len(accounts)), 1)
		return summary, nil
	})
}

func (s *DashboardService) ListMonthlyReports(ctx context.Context) ([]*domain.MonthlyReport, error) {
	return tracing.TraceMethodWithResult(ctx, "DashboardService", "ListMonthlyReports", func(ctx context.Context) ([]*domain.MonthlyReport, error) {
		reports, err := s.reports.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list monthly reports: %w", err)
		}
		return reports, nil
	})
}

// ListCopyAngles returns the last months of copy-angle rollups, the current
// month included
func (s *DashboardService) ListCopyAngles(ctx context.Context, months int) ([]*domain.CopyAngleView, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "DashboardService", "ListCopyAngles")
	defer span.End()

	if months <= 0 {
		months = domain.DefaultCopyAngleMonths
	}

	angles, err := s.angles.ListSince(ctx, domain.MonthsAgo(s.now(), months-1))
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to list copy angles: %w", err)
	}

	views := make([]*domain.CopyAngleView, 0, len(angles))
	for _, a := range angles {
		views = append(views, &domain.CopyAngleView{CopyAngle: a, AutoReplyRatio: a.ARR()})
	}
	return views, nil
}
