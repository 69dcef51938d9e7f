package http

import (
	"net/http"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
)

const defaultDailySeriesDays = 30

// DashboardHandler serves the read-only queries consumed by the dashboard
type DashboardHandler struct {
	service domain.DashboardService
	logger  logger.Logger
}

func NewDashboardHandler(service domain.DashboardService, logger logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		logger:  logger,
	}
}

func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/dashboard/kpis", h.GetKPIs)
	mux.HandleFunc("/api/dashboard/kpis/weekly", h.GetWeeklyKPIs)
	mux.HandleFunc("/api/dashboard/campaigns", h.ListCampaigns)
	mux.HandleFunc("/api/dashboard/daily", h.GetDailySeries)
	mux.HandleFunc("/api/dashboard/warmup", h.GetWarmupHealth)
	mux.HandleFunc("/api/dashboard/reporting/monthly", h.ListMonthlyReports)
	mux.HandleFunc("/api/dashboard/copy-angles", h.ListCopyAngles)
}

func (h *DashboardHandler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	kpis, err := h.service.GetKPIs(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to get KPIs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kpis": kpis})
}

func (h *DashboardHandler) GetWeeklyKPIs(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	kpis, err := h.service.GetWeeklyKPIs(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to get weekly KPIs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kpis": kpis})
}

// ListCampaigns accepts ?since=YYYY-MM-DD, month to date by default
func (h *DashboardHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	since := r.URL.Query().Get("since")
	if since != "" {
		if _, err := time.Parse(domain.DateLayout, since); err != nil {
			WriteJSONError(w, "since must be a YYYY-MM-DD date", http.StatusBadRequest)
			return
		}
	}

	campaigns, err := h.service.ListCampaignPerformance(r.Context(), since)
	if err != nil {
		h.fail(w, err, "Failed to list campaigns")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"campaigns": campaigns})
}

// GetDailySeries accepts ?days=n, 0 selects month to date
func (h *DashboardHandler) GetDailySeries(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	days, err := intParam(r, "days", defaultDailySeriesDays)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	points, err := h.service.GetDailySeries(r.Context(), days)
	if err != nil {
		h.fail(w, err, "Failed to get daily series")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"points": points})
}

func (h *DashboardHandler) GetWarmupHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	summary, err := h.service.GetWarmupHealth(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to get warmup health")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"warmup": summary})
}

func (h *DashboardHandler) ListMonthlyReports(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	reports, err := h.service.ListMonthlyReports(r.Context())
	if err != nil {
		h.fail(w, err, "Failed to list monthly reports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}

// ListCopyAngles accepts ?months=n
func (h *DashboardHandler) ListCopyAngles(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	months, err := intParam(r, "months", domain.DefaultCopyAngleMonths)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	angles, err := h.service.ListCopyAngles(r.Context(), months)
	if err != nil {
		h.fail(w, err, "Failed to list copy angles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"copy_angles": angles})
}

func (h *DashboardHandler) fail(w http.ResponseWriter, err error, message string) {
	h.logger.WithField("error", err.Error()).Error(message)
	WriteJSONError(w, message, http.StatusInternalServerError)
}
