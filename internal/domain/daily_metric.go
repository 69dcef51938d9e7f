package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_daily_metric_repository.go -package mocks github.com/mrprime/campaign-sync/internal/domain DailyMetricRepository

const (
	// FullSyncDays is the trailing window rebuilt by a full run
	FullSyncDays = 31
	// LightRefreshDays is the trailing window rebuilt by a refresh
	LightRefreshDays = 8
	// CampaignFetchBatchSize bounds concurrent per-campaign daily fetches
	CampaignFetchBatchSize = 10
)

// DailyMetric is one day of counters. A nil CampaignID is the cross-campaign aggregate bucket.
type DailyMetric struct {
	Date                   string  `json:"date"`
	CampaignID             *string `json:"campaign_id"`
	Sent                   int64   `json:"sent"`
	Contacted              int64   `json:"contacted"`
	NewLeadsContacted      int64   `json:"new_leads_contacted"`
	Opened                 int64   `json:"opened"`
	UniqueOpened           int64   `json:"unique_opened"`
	Replies                int64   `json:"replies"`
	UniqueReplies          int64   `json:"unique_replies"`
	RepliesAutomatic       int64   `json:"replies_automatic"`
	UniqueRepliesAutomatic int64   `json:"unique_replies_automatic"`
	Clicks                 int64   `json:"clicks"`
	UniqueClicks           int64   `json:"unique_clicks"`
	Opportunities          int64   `json:"opportunities"`
	UniqueOpportunities    int64   `json:"unique_opportunities"`
}

// IsAggregate reports whether the row is the cross-campaign bucket
func (m *DailyMetric) IsAggregate() bool {
	return m.CampaignID == nil
}

// Key identifies the bucket a row replaces
func (m *DailyMetric) Key() string {
	if m.CampaignID == nil {
		return m.Date + "|"
	}
	return m.Date + "|" + *m.CampaignID
}

// DailyMetricScope selects which buckets a list call returns
type DailyMetricScope string

const (
	// DailyScopeAggregate selects rows with a nil campaign id
	DailyScopeAggregate DailyMetricScope = "aggregate"
	// DailyScopeCampaigns selects every per-campaign row
	DailyScopeCampaigns DailyMetricScope = "campaigns"
	// DailyScopeCampaign selects the rows of DailyMetricFilter.CampaignID
	DailyScopeCampaign DailyMetricScope = "campaign"
)

// DailyMetricFilter bounds are inclusive YYYY-MM-DD dates, empty means open
type DailyMetricFilter struct {
	StartDate  string
	EndDate    string
	Scope      DailyMetricScope
	CampaignID string
}

// Matches applies the filter to a single row
func (f DailyMetricFilter) Matches(m *DailyMetric) bool {
	if f.StartDate != "" && m.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && m.Date > f.EndDate {
		return false
	}
	switch f.Scope {
	case DailyScopeAggregate:
		return m.CampaignID == nil
	case DailyScopeCampaigns:
		return m.CampaignID != nil
	case DailyScopeCampaign:
		return m.CampaignID != nil && *m.CampaignID == f.CampaignID
	}
	return true
}

type DailyMetricRepository interface {
	// ReplaceDay removes the existing row for (date, campaign id) and inserts metric
	ReplaceDay(ctx context.Context, metric *DailyMetric) error
	// List returns matching rows ordered by date then campaign id
	List(ctx context.Context, filter DailyMetricFilter) ([]*DailyMetric, error)
	// OverrideOpportunities zeroes both opportunity counters on every row of the
	// campaign inside [startDate, endDate] then, when total > 0, writes total onto
	// the row dated targetDate. An empty endDate leaves the window open.
	OverrideOpportunities(ctx context.Context, campaignID, startDate, endDate, targetDate string, total int64) error
}

// DailySyncResult summarises a time-series rebuild
type DailySyncResult struct {
	AggregateDays   int `json:"aggregateDays"`
	CampaignsSynced int `json:"campaignsSynced"`
	CampaignRows    int `json:"campaignRows"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
