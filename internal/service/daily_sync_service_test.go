package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/domain/mocks"
	"github.com/mrprime/campaign-sync/internal/repository/memory"
	"github.com/mrprime/campaign-sync/pkg/instantly"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDailySyncService(t *testing.T, api domain.OutreachAPI, store *memory.Store) *DailySyncService {
	svc := NewDailySyncService(api, store.DailyMetrics, store.Campaigns, logger.NewTestLogger(t))
	svc.now = clock
	return svc
}

func TestDailySyncService_SyncIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	seedCampaigns(t, store,
		&domain.Campaign{ID: "c1", Name: "Alpha", Status: domain.CampaignStatusActive},
		&domain.Campaign{ID: "c2", Name: "Beta", Status: domain.CampaignStatusPaused},
	)

	api := mocks.NewMockOutreachAPI(ctrl)
	api.EXPECT().DailyAnalytics(gomock.Any(), "2025-05-15", "2025-06-15", "").Return([]instantly.DailyAnalytics{
		{Date: "2025-06-14", Sent: 100, NewLeadsContacted: 40, UniqueReplies: 3},
		{Date: "2025-06-15", Sent: 80, NewLeadsContacted: 30, UniqueReplies: 2},
	}, nil).Times(2)
	api.EXPECT().DailyAnalytics(gomock.Any(), "2025-05-15", "2025-06-15", "c1").Return([]instantly.DailyAnalytics{
		{Date: "2025-06-13", Sent: 10, Opportunities: 1, UniqueOpportunities: 1},
		{Date: "2025-06-14", Sent: 20},
		{Date: "2025-06-15", Sent: 30},
	}, nil).Times(2)

	svc := newDailySyncService(t, api, store)

	first, err := svc.Sync(context.Background(), domain.FullSyncDays)
	require.NoError(t, err)
	assert.Equal(t, &domain.DailySyncResult{AggregateDays: 2, CampaignsSynced: 1, CampaignRows: 3}, first)

	before, err := store.DailyMetrics.List(context.Background(), domain.DailyMetricFilter{})
	require.NoError(t, err)
	require.Len(t, before, 5)

	second, err := svc.Sync(context.Background(), domain.FullSyncDays)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	after, err := store.DailyMetrics.List(context.Background(), domain.DailyMetricFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, 5, store.DailyMetrics.Len())

	aggregate, err := store.DailyMetrics.List(context.Background(), domain.DailyMetricFilter{Scope: domain.DailyScopeAggregate})
	require.NoError(t, err)
	require.Len(t, aggregate, 2)
	assert.Nil(t, aggregate[0].CampaignID)
	assert.Equal(t, int64(40), aggregate[0].NewLeadsContacted)
}

func TestDailySyncService_SyncLightRefreshWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	api := mocks.NewMockOutreachAPI(ctrl)
	api.EXPECT().DailyAnalytics(gomock.Any(), "2025-06-07", "2025-06-15", "").Return([]instantly.DailyAnalytics{}, nil)

	result, err := newDailySyncService(t, api, store).Sync(context.Background(), domain.LightRefreshDays)
	require.NoError(t, err)
	assert.Equal(t, &domain.DailySyncResult{}, result)
}

func TestDailySyncService_SyncBatchesCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	for i := 0; i < 23; i++ {
		seedCampaigns(t, store, &domain.Campaign{ID: fmt.Sprintf("c%02d", i), Status: domain.CampaignStatusActive})
	}

	api := mocks.NewMockOutreachAPI(ctrl)
	api.EXPECT().DailyAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), "").Return(nil, nil)
	api.EXPECT().DailyAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Not("")).
		DoAndReturn(func(_ context.Context, _, _ string, campaignID string) ([]instantly.DailyAnalytics, error) {
			// c00 had no activity in the window
			if campaignID == "c00" {
				return []instantly.DailyAnalytics{}, nil
			}
			return []instantly.DailyAnalytics{{Date: "2025-06-10"}, {Date: "2025-06-11"}}, nil
		}).Times(23)

	result, err := newDailySyncService(t, api, store).Sync(context.Background(), domain.FullSyncDays)
	require.NoError(t, err)
	assert.Equal(t, 0, result.AggregateDays)
	assert.Equal(t, 22, result.CampaignsSynced)
	assert.Equal(t, 44, result.CampaignRows)
	assert.Equal(t, 44, store.DailyMetrics.Len())
}

func TestDailySyncService_SyncErrors(t *testing.T) {
	t.Run("aggregate fetch failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api := mocks.NewMockOutreachAPI(ctrl)
		api.EXPECT().DailyAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return(nil, &instantly.RemoteAPIError{Path: "/campaigns/analytics/daily", StatusCode: 502, StatusText: "Bad Gateway"})

		_, err := newDailySyncService(t, api, memory.NewStore()).Sync(context.Background(), domain.FullSyncDays)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch aggregate daily analytics")
	})

	t.Run("campaign fetch failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		store := memory.NewStore()
		seedCampaigns(t, store, &domain.Campaign{ID: "c1", Status: domain.CampaignStatusActive})

		api := mocks.NewMockOutreachAPI(ctrl)
		api.EXPECT().DailyAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), "").Return(nil, nil)
		api.EXPECT().DailyAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), "c1").Return(nil, errors.New("timeout"))

		_, err := newDailySyncService(t, api, store).Sync(context.Background(), domain.FullSyncDays)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch daily analytics for campaign c1")
	})

	t.Run("replace failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		api := mocks.NewMockOutreachAPI(ctrl)
		daily := mocks.NewMockDailyMetricRepository(ctrl)
		svc := NewDailySyncService(api, daily, memory.NewCampaignRepository(), logger.NewTestLogger(t))
		svc.now = clock

		api.EXPECT().DailyAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), "").
			Return([]instantly.DailyAnalytics{{Date: "2025-06-15"}}, nil)
		daily.EXPECT().ReplaceDay(gomock.Any(), gomock.Any()).
			Return(domain.NewStoreWriteError("daily_analytics", "insert", errors.New("disk full")))

		_, err := svc.Sync(context.Background(), domain.FullSyncDays)
		require.Error(t, err)
		var writeErr *domain.StoreWriteError
		assert.True(t, errors.As(err, &writeErr))
	})
}
