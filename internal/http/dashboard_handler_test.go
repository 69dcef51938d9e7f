package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/domain/mocks"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDashboardHandlerTest(t *testing.T) (*mocks.MockDashboardService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockDashboardService(ctrl)

	handler := NewDashboardHandler(svc, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return svc, mux
}

func TestDashboardHandler_KPIs(t *testing.T) {
	svc, mux := setupDashboardHandlerTest(t)

	svc.EXPECT().GetKPIs(gomock.Any()).Return(&domain.KPISummary{
		Since:           "2025-06-01",
		Contacted:       360,
		Replies:         12,
		Opportunities:   3,
		ReplyRate:       3.33,
		ActiveCampaigns: 2,
	}, nil)
	svc.EXPECT().GetWeeklyKPIs(gomock.Any()).Return(&domain.KPISummary{Since: "2025-06-08", Contacted: 260}, nil)

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	kpis, ok := decodeBody(t, w)["kpis"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(360), kpis["contacted"])
	assert.Equal(t, 3.33, kpis["replyRate"])
	assert.Equal(t, float64(2), kpis["activeCampaigns"])

	w = serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis/weekly", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	kpis = decodeBody(t, w)["kpis"].(map[string]interface{})
	assert.Equal(t, "2025-06-08", kpis["since"])
}

func TestDashboardHandler_ListCampaigns(t *testing.T) {
	t.Run("month to date by default", func(t *testing.T) {
		svc, mux := setupDashboardHandlerTest(t)

		svc.EXPECT().ListCampaignPerformance(gomock.Any(), "").Return([]*domain.CampaignPerformance{
			{ID: "c2", Name: "Agencies", Contacted: 200},
			{ID: "c1", Name: "Summer Promo", Contacted: 160},
		}, nil)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/campaigns", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		campaigns := decodeBody(t, w)["campaigns"].([]interface{})
		require.Len(t, campaigns, 2)
		assert.Equal(t, "c2", campaigns[0].(map[string]interface{})["id"])
	})

	t.Run("since forwarded", func(t *testing.T) {
		svc, mux := setupDashboardHandlerTest(t)

		svc.EXPECT().ListCampaignPerformance(gomock.Any(), "2025-05-01").Return([]*domain.CampaignPerformance{}, nil)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/campaigns?since=2025-05-01", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid since", func(t *testing.T) {
		_, mux := setupDashboardHandlerTest(t)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/campaigns?since=last-week", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "since must be a YYYY-MM-DD date", decodeBody(t, w)["error"])
	})
}

func TestDashboardHandler_DailySeries(t *testing.T) {
	t.Run("default days", func(t *testing.T) {
		svc, mux := setupDashboardHandlerTest(t)

		svc.EXPECT().GetDailySeries(gomock.Any(), 30).Return([]*domain.DailyPoint{
			{Date: "2025-06-14", Sent: 100},
			{Date: "2025-06-15", Sent: 120},
		}, nil)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/daily", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["points"], 2)
	})

	t.Run("month to date", func(t *testing.T) {
		svc, mux := setupDashboardHandlerTest(t)

		svc.EXPECT().GetDailySeries(gomock.Any(), 0).Return([]*domain.DailyPoint{}, nil)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/daily?days=0", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative days", func(t *testing.T) {
		_, mux := setupDashboardHandlerTest(t)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/daily?days=-3", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDashboardHandler_WarmupAndReports(t *testing.T) {
	svc, mux := setupDashboardHandlerTest(t)

	svc.EXPECT().GetWarmupHealth(gomock.Any()).Return(&domain.WarmupSummary{Total: 4, Healthy: 2, Good: 1, Warning: 1, AvgScore: 78.8}, nil)
	svc.EXPECT().ListMonthlyReports(gomock.Any()).Return([]*domain.MonthlyReport{{Month: "2025-06", Replies: 10}}, nil)

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/warmup", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	warmup := decodeBody(t, w)["warmup"].(map[string]interface{})
	assert.Equal(t, 78.8, warmup["avgScore"])

	w = serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/reporting/monthly", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	reports := decodeBody(t, w)["reports"].([]interface{})
	require.Len(t, reports, 1)
	assert.Equal(t, "2025-06", reports[0].(map[string]interface{})["month"])
}

func TestDashboardHandler_CopyAngles(t *testing.T) {
	t.Run("default months", func(t *testing.T) {
		svc, mux := setupDashboardHandlerTest(t)

		svc.EXPECT().ListCopyAngles(gomock.Any(), domain.DefaultCopyAngleMonths).Return([]*domain.CopyAngleView{
			{CopyAngle: &domain.CopyAngle{Month: "2025-06", CampaignName: "Summer Promo", TotalReplies: 10, AutoReplies: 8}, AutoReplyRatio: "4.0:1"},
		}, nil)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/copy-angles", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		angles := decodeBody(t, w)["copy_angles"].([]interface{})
		require.Len(t, angles, 1)
		row := angles[0].(map[string]interface{})
		assert.Equal(t, "Summer Promo", row["campaign_name"])
		assert.Equal(t, "4.0:1", row["arr"])
	})

	t.Run("explicit months", func(t *testing.T) {
		svc, mux := setupDashboardHandlerTest(t)

		svc.EXPECT().ListCopyAngles(gomock.Any(), 3).Return([]*domain.CopyAngleView{}, nil)

		w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/copy-angles?months=3", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDashboardHandler_Errors(t *testing.T) {
	svc, mux := setupDashboardHandlerTest(t)

	svc.EXPECT().GetKPIs(gomock.Any()).Return(nil, errors.New("db down"))
	svc.EXPECT().GetWarmupHealth(gomock.Any()).Return(nil, errors.New("db down"))

	w := serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/kpis", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to get KPIs", decodeBody(t, w)["error"])

	w = serve(mux, httptest.NewRequest(http.MethodGet, "/api/dashboard/warmup", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = serve(mux, httptest.NewRequest(http.MethodPost, "/api/dashboard/kpis", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
