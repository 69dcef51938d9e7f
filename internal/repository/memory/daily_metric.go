package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrprime/campaign-sync/internal/domain"
)

// DailyMetricRepository keys rows by (date, campaign id) so a replace can never leave duplicates
type DailyMetricRepository struct {
	mu   sync.RWMutex
	rows map[string]domain.DailyMetric
}

func NewDailyMetricRepository() *DailyMetricRepository {
	return &DailyMetricRepository{rows: make(map[string]domain.DailyMetric)}
}

func (r *DailyMetricRepository) ReplaceDay(ctx context.Context, metric *domain.DailyMetric) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := *metric
	if metric.CampaignID != nil {
		stored.CampaignID = domain.StringPtr(*metric.CampaignID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[stored.Key()] = stored
	return nil
}

func (r *DailyMetricRepository) List(ctx context.Context, filter domain.DailyMetricFilter) ([]*domain.DailyMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.DailyMetric{}
	for _, m := range r.rows {
		if filter.Matches(&m) {
			m := m
			if m.CampaignID != nil {
				m.CampaignID = domain.StringPtr(*m.CampaignID)
			}
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out, nil
}

func (r *DailyMetricRepository) OverrideOpportunities(ctx context.Context, campaignID, startDate, endDate, targetDate string, total int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	filter := domain.DailyMetricFilter{
		StartDate:  startDate,
		EndDate:    endDate,
		Scope:      domain.DailyScopeCampaign,
		CampaignID: campaignID,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for key, m := range r.rows {
		if filter.Matches(&m) {
			m.Opportunities = 0
			m.UniqueOpportunities = 0
			r.rows[key] = m
		}
	}

	if total <= 0 {
		return nil
	}
	target := domain.DailyMetric{Date: targetDate, CampaignID: &campaignID}
	if m, ok := r.rows[target.Key()]; ok {
		m.Opportunities = total
		m.UniqueOpportunities = total
		r.rows[target.Key()] = m
	}
	return nil
}

// Len returns the number of stored rows
func (r *DailyMetricRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rows)
}
