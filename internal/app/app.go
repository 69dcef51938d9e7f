package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"contrib.go.opencensus.io/integrations/ocsql"
	_ "github.com/lib/pq"

	"github.com/mrprime/campaign-sync/config"
	"github.com/mrprime/campaign-sync/internal/database"
	"github.com/mrprime/campaign-sync/internal/domain"
	httpHandler "github.com/mrprime/campaign-sync/internal/http"
	"github.com/mrprime/campaign-sync/internal/http/middleware"
	"github.com/mrprime/campaign-sync/internal/repository"
	"github.com/mrprime/campaign-sync/internal/repository/memory"
	"github.com/mrprime/campaign-sync/internal/service"
	"github.com/mrprime/campaign-sync/pkg/instantly"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/retry"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetSyncRunner() domain.SyncRunner

	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	InitTracing() error
	InitDB() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
}

// App encapsulates the application dependencies and configuration
type App struct {
	config         *config.Config
	logger         logger.Logger
	db             *sql.DB
	api            domain.OutreachAPI
	metricsHandler http.Handler

	// Repositories
	campaignRepo      domain.CampaignRepository
	accountRepo       domain.AccountRepository
	dailyMetricRepo   domain.DailyMetricRepository
	monthlyReportRepo domain.MonthlyReportRepository
	copyAngleRepo     domain.CopyAngleRepository
	syncRunRepo       domain.SyncRunRepository

	// Services
	pipeline         *service.SyncPipeline
	scheduler        *service.SyncScheduler
	dashboardService *service.DashboardService

	mux    *http.ServeMux
	server *http.Server

	serverMu      sync.RWMutex
	serverStarted chan struct{}

	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64
	requestWg       sync.WaitGroup
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithOutreachAPI replaces the Instantly client
func WithOutreachAPI(api domain.OutreachAPI) AppOption {
	return func(a *App) {
		a.api = api
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing and metrics
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	handler, err := tracing.InitTracing(tracingConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.metricsHandler = handler

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB connects to postgres and creates the schema. Memory storage skips it.
func (a *App) InitDB() error {
	if a.config.UsesMemoryStorage() {
		a.logger.Warn("Using in-memory storage, data is lost on restart")
		return nil
	}
	if a.db != nil {
		return nil
	}

	password := a.config.Database.Password
	maskedPassword := ""
	if len(password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s",
		a.config.Database.Host, a.config.Database.Port, a.config.Database.User,
		a.config.Database.SSLMode, maskedPassword, a.config.Database.DBName))

	if err := database.EnsureSystemDatabaseExists(database.GetPostgresDSN(&a.config.Database), a.config.Database.DBName); err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, database.GetSystemDSN(&a.config.Database))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := database.InitializeDatabase(context.Background(), db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings()
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	a.db = db
	return nil
}

// InitRepositories selects the postgres or in-memory repositories
func (a *App) InitRepositories() error {
	if a.config.UsesMemoryStorage() {
		store := memory.NewStore()
		a.campaignRepo = store.Campaigns
		a.accountRepo = store.Accounts
		a.dailyMetricRepo = store.DailyMetrics
		a.monthlyReportRepo = store.MonthlyReports
		a.copyAngleRepo = store.CopyAngles
		a.syncRunRepo = store.SyncRuns
		return nil
	}

	if a.db == nil {
		return errors.New("database connection is not initialized")
	}

	a.campaignRepo = repository.NewCampaignRepository(a.db)
	a.accountRepo = repository.NewAccountRepository(a.db)
	a.dailyMetricRepo = repository.NewDailyMetricRepository(a.db)
	a.monthlyReportRepo = repository.NewMonthlyReportRepository(a.db)
	a.copyAngleRepo = repository.NewCopyAngleRepository(a.db)
	a.syncRunRepo = repository.NewSyncRunRepository(a.db)
	return nil
}

// InitServices builds the upstream client, the sync steps, the pipeline,
// the scheduler and the dashboard read side
func (a *App) InitServices() error {
	if a.campaignRepo == nil {
		return errors.New("repositories are not initialized")
	}

	if a.api == nil {
		httpClient := &http.Client{Timeout: a.config.Instantly.Timeout}
		if a.config.Tracing.Enabled {
			httpClient = tracing.WrapHTTPClient(httpClient)
		}
		a.api = instantly.NewClient(a.config.Instantly.BaseURL, a.config.Instantly.APIKey, httpClient)
	}

	steps := service.SyncSteps{
		Campaigns:      service.NewCampaignSyncService(a.api, a.campaignRepo, a.logger),
		Accounts:       service.NewAccountSyncService(a.api, a.accountRepo, a.logger),
		Daily:          service.NewDailySyncService(a.api, a.dailyMetricRepo, a.campaignRepo, a.logger),
		Reconciliation: service.NewReconciliationService(a.api, a.dailyMetricRepo, a.logger),
		Replies:        service.NewReplyClassificationService(a.api, a.dailyMetricRepo, a.monthlyReportRepo, a.logger),
		CopyAngles:     service.NewCopyAngleService(a.campaignRepo, a.dailyMetricRepo, a.copyAngleRepo, a.logger),
	}

	retryConfig := retry.Config{
		MaxAttempts:  a.config.Sync.StepMaxAttempts,
		InitialDelay: a.config.Sync.StepRetryDelay,
		MaxDelay:     4 * a.config.Sync.StepRetryDelay,
		Multiplier:   2,
	}

	a.pipeline = service.NewSyncPipeline(steps, a.syncRunRepo, a.logger, retryConfig)
	a.scheduler = service.NewSyncScheduler(a.pipeline, a.logger, a.config.Sync.FullSchedule, a.config.Sync.RefreshSchedule)
	a.dashboardService = service.NewDashboardService(
		a.campaignRepo,
		a.accountRepo,
		a.dailyMetricRepo,
		a.monthlyReportRepo,
		a.copyAngleRepo,
	)

	if a.config.Sync.CronSecret == "" {
		a.logger.Warn("CRON_SECRET is empty, /api/sync rejects every request")
	}

	return nil
}

// InitHandlers registers every route on the mux
func (a *App) InitHandlers() error {
	if a.pipeline == nil || a.dashboardService == nil {
		return errors.New("services are not initialized")
	}

	var pinger httpHandler.Pinger
	if a.db != nil {
		pinger = a.db
	}

	rootHandler := httpHandler.NewRootHandler(a.config.Version, pinger, a.logger)
	syncHandler := httpHandler.NewSyncHandler(a.pipeline, a.config.Sync.CronSecret, a.logger)
	syncHandler.LimitRefresh(a.config.Sync.RefreshRateLimit, a.config.Sync.RefreshRateWindow)
	dashboardHandler := httpHandler.NewDashboardHandler(a.dashboardService, a.logger)

	rootHandler.RegisterRoutes(a.mux)
	syncHandler.RegisterRoutes(a.mux)
	dashboardHandler.RegisterRoutes(a.mux)

	if a.metricsHandler != nil {
		a.mux.Handle("/metrics", a.metricsHandler)
		a.logger.Info("Prometheus metrics exposed on /metrics")
	}

	return nil
}

// Start starts the scheduler and then blocks serving HTTP
func (a *App) Start() error {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	if a.scheduler != nil {
		if err := a.scheduler.Start(a.shutdownCtx); err != nil {
			return fmt.Errorf("failed to start sync scheduler: %w", err)
		}
	}

	if a.isShuttingDown() {
		return http.ErrServerClosed
	}

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		select {
		case <-a.serverStarted:
		default:
			close(a.serverStarted)
		}
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	server := a.server
	a.serverMu.Unlock()

	close(serverStarted)

	return server.ListenAndServe()
}

// Shutdown stops the scheduler, drains in-flight requests and closes the database
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources()
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Warn("HTTP server shutdown did not complete cleanly")
	}

	requestsDone := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(requestsDone)
	}()

	select {
	case <-requestsDone:
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).
			Warn("Shutdown timeout reached, forcing shutdown")
	}

	if cleanupErr := a.cleanupResources(); cleanupErr != nil && shutdownErr == nil {
		shutdownErr = cleanupErr
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

func (a *App) cleanupResources() error {
	if a.db == nil {
		return nil
	}

	if a.config.Tracing.Enabled {
		// RecordStats returns a stop func, not an error
		stopStats := ocsql.RecordStats(a.db, 5*time.Second)
		stopStats()
	}

	a.logger.Info("Closing database connection")
	if err := a.db.Close(); err != nil {
		a.logger.WithField("error", err.Error()).Error("Error closing database connection")
		return err
	}
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart returns true once Start created the server, false if ctx expired
func (a *App) WaitForServerStart(ctx context.Context) bool {
	for {
		a.serverMu.RLock()
		started := a.serverStarted
		created := a.server != nil
		a.serverMu.RUnlock()

		if created {
			return true
		}

		select {
		case <-started:
			if a.IsServerCreated() {
				return true
			}
		case <-ctx.Done():
			return false
		}
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).
		WithField("storage", a.config.StorageDriver).
		Info("Starting campaign sync service")

	if err := a.InitTracing(); err != nil {
		return err
	}
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetSyncRunner returns the pipeline, nil before InitServices
func (a *App) GetSyncRunner() domain.SyncRunner {
	if a.pipeline == nil {
		return nil
	}
	return a.pipeline
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of in-flight requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware refuses new requests once shutdown began and
// tracks the ones in flight
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

var _ AppInterface = (*App)(nil)
