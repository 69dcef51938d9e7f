package http

import (
	"net/http"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/http/middleware"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/ratelimiter"
)

const refreshRateNamespace = "refresh"

// SyncHandler exposes the pipeline triggers and the run history
type SyncHandler struct {
	runner domain.SyncRunner
	auth    *middleware.SecretAuth
	limiter *ratelimiter.Limiter
	logger  logger.Logger
}

func NewSyncHandler(runner domain.SyncRunner, cronSecret string, logger logger.Logger) *SyncHandler {
	return &SyncHandler{
		runner: runner,
		auth:   middleware.NewSecretAuth(cronSecret),
		logger: logger,
	}
}

// LimitRefresh throttles the public refresh trigger to limit calls per
// window and client address. A limit <= 0 leaves it unthrottled.
func (h *SyncHandler) LimitRefresh(limit int, window time.Duration) {
	if limit <= 0 {
		h.limiter = nil
		return
	}
	h.limiter = ratelimiter.New()
	h.limiter.SetPolicy(refreshRateNamespace, limit, window)
}

// RegisterRoutes registers the sync routes. The full sync and the history
// require the cron secret, the light refresh is public.
func (h *SyncHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/api/sync", h.auth.RequireSecret(http.HandlerFunc(h.Sync)))
	mux.Handle("/api/sync/runs", h.auth.RequireSecret(http.HandlerFunc(h.ListRuns)))

	var refresh http.Handler = http.HandlerFunc(h.Refresh)
	if h.limiter != nil {
		refresh = middleware.RateLimit(h.limiter, refreshRateNamespace, refresh)
	}
	mux.Handle("/api/refresh", refresh)
}

// syncResponse is the success envelope, the step results are inlined
type syncResponse struct {
	OK bool `json:"ok"`
	*domain.SyncResult
	Synced *int `json:"synced,omitempty"`
}

type syncErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Sync runs the full pipeline
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, domain.SyncKindFull)
}

// Refresh rebuilds campaign snapshots and the short daily window
func (h *SyncHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, domain.SyncKindRefresh)
}

func (h *SyncHandler) run(w http.ResponseWriter, r *http.Request, kind domain.SyncKind) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	startTime := time.Now()
	result, err := h.runner.Run(r.Context(), kind, domain.SyncTriggerHTTP)
	if err != nil {
		h.logger.WithField("error", err.Error()).
			WithField("kind", string(kind)).
			Error("Sync request failed")
		writeJSON(w, http.StatusInternalServerError, syncErrorResponse{OK: false, Error: err.Error()})
		return
	}

	resp := syncResponse{OK: true, SyncResult: result}
	if kind == domain.SyncKindRefresh {
		resp.Synced = &result.Campaigns
	}

	h.logger.WithField("kind", string(kind)).
		WithField("run_id", result.RunID).
		WithField("elapsed", time.Since(startTime).String()).
		Info("Sync request completed")
	writeJSON(w, http.StatusOK, resp)
}

// ListRuns returns the most recent runs, ?limit=n
func (h *SyncHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	limit, err := intParam(r, "limit", domain.DefaultSyncRunLimit)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	runs, err := h.runner.ListRuns(r.Context(), limit)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to list sync runs")
		WriteJSONError(w, "Failed to list sync runs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs": runs,
	})
}
