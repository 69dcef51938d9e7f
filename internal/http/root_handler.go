package http

import (
	"context"
	"net/http"
	"time"

	"github.com/mrprime/campaign-sync/pkg/logger"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type RootHandler struct {
	version string
	db      Pinger
	logger  logger.Logger
	timeout time.Duration
}

// NewRootHandler serves the service banner and health probe. db may be nil
// when repositories live in memory.
func NewRootHandler(version string, db Pinger, logger logger.Logger) *RootHandler {
	return &RootHandler{
		version: version,
		db:      db,
		logger:  logger,
		timeout: 2 * time.Second,
	}
}

func (h *RootHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.Health)
	mux.HandleFunc("/api", h.Handle)
}

func (h *RootHandler) Handle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "api running",
		"version": h.version,
	})
}

// Health answers 503 when the database does not respond
func (h *RootHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := h.db.PingContext(ctx); err != nil {
			h.logger.WithField("error", err.Error()).Error("Health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  "database unreachable",
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
