package service

import (
	"context"
	"testing"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/repository/memory"
	"github.com/stretchr/testify/require"
)

// fixedNow is mid-June so the month window is 2025-06-01..2025-06-15
var fixedNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func seedCampaigns(t *testing.T, store *memory.Store, campaigns ...*domain.Campaign) {
	t.Helper()
	require.NoError(t, store.Campaigns.UpsertMany(context.Background(), campaigns))
}

func seedDaily(t *testing.T, store *memory.Store, rows ...*domain.DailyMetric) {
	t.Helper()
	for _, row := range rows {
		require.NoError(t, store.DailyMetrics.ReplaceDay(context.Background(), row))
	}
}

func campaignRow(date, campaignID string, contacted, replies, auto, opps int64) *domain.DailyMetric {
	return &domain.DailyMetric{
		Date:                   date,
		CampaignID:             domain.StringPtr(campaignID),
		Sent:                   contacted * 2,
		NewLeadsContacted:      contacted,
		UniqueReplies:          replies,
		UniqueRepliesAutomatic: auto,
		Opportunities:          opps,
		UniqueOpportunities:    opps,
	}
}

func listCampaignRows(t *testing.T, store *memory.Store, campaignID string) []*domain.DailyMetric {
	t.Helper()
	rows, err := store.DailyMetrics.List(context.Background(), domain.DailyMetricFilter{
		Scope:      domain.DailyScopeCampaign,
		CampaignID: campaignID,
	})
	require.NoError(t, err)
	return rows
}
