package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
	"github.com/robfig/cron/v3"
)

const schedulerStopTimeout = 5 * time.Second

// SyncScheduler triggers pipeline runs from cron expressions. A tick is
// skipped while the previous run of the same schedule is still in flight.
type SyncScheduler struct {
	runner          domain.SyncRunner
	logger          logger.Logger
	fullSchedule    string
	refreshSchedule string
	stopTimeout     time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	cancel  context.CancelFunc
	running bool
}

func NewSyncScheduler(runner domain.SyncRunner, logger logger.Logger, fullSchedule, refreshSchedule string) *SyncScheduler {
	return &SyncScheduler{
		runner:          runner,
		logger:          logger,
		fullSchedule:    fullSchedule,
		refreshSchedule: refreshSchedule,
		stopTimeout:     schedulerStopTimeout,
	}
}

// Start registers the configured schedules and starts the cron loop. With no
// schedule configured it does nothing.
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.logger.Warn("Sync scheduler already running")
		return nil
	}
	if s.fullSchedule == "" && s.refreshSchedule == "" {
		s.logger.Info("No sync schedule configured, scheduler disabled")
		return nil
	}

	cronLog := cronLogger{logger: s.logger}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	jobCtx, cancel := context.WithCancel(ctx)
	schedules := []struct {
		spec string
		kind domain.SyncKind
	}{
		{s.fullSchedule, domain.SyncKindFull},
		{s.refreshSchedule, domain.SyncKindRefresh},
	}
	for _, sched := range schedules {
		if sched.spec == "" {
			continue
		}
		if _, err := c.AddFunc(sched.spec, s.job(jobCtx, sched.kind)); err != nil {
			cancel()
			return fmt.Errorf("invalid %s sync schedule %q: %w", sched.kind, sched.spec, err)
		}
		s.logger.WithField("kind", string(sched.kind)).
			WithField("schedule", sched.spec).
			Info("Registered sync schedule")
	}

	c.Start()
	s.cron = c
	s.cancel = cancel
	s.running = true
	return nil
}

// Stop halts the cron loop and waits for in-flight runs. Runs still going
// after the stop timeout are cancelled and awaited.
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	c, cancel := s.cron, s.cancel
	s.mu.Unlock()

	s.logger.Info("Stopping sync scheduler...")
	done := c.Stop()

	select {
	case <-done.Done():
		s.logger.Info("Sync scheduler stopped successfully")
	case <-time.After(s.stopTimeout):
		s.logger.Warn("Sync scheduler stop timeout, cancelling in-flight run")
		cancel()
		<-done.Done()
	}
	cancel()
}

func (s *SyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Entries returns the number of registered schedules
func (s *SyncScheduler) Entries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

func (s *SyncScheduler) job(ctx context.Context, kind domain.SyncKind) func() {
	return func() {
		ctx, span := tracing.StartServiceSpan(ctx, "SyncScheduler", "runScheduled")
		defer tracing.EndSpan(span, nil)

		started := time.Now()
		if _, err := s.runner.Run(ctx, kind, domain.SyncTriggerSchedule); err != nil {
			s.logger.WithField("error", err.Error()).
				WithField("kind", string(kind)).
				WithField("elapsed", time.Since(started)).
				Error("Scheduled sync run failed")
		}
	}
}

// cronLogger routes cron's own messages into the application logger
type cronLogger struct {
	logger logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).WithField("error", err.Error()).Error(msg)
}

func (l cronLogger) with(keysAndValues []interface{}) logger.Logger {
	if len(keysAndValues) == 0 {
		return l.logger
	}
	fields := make(map[string]interface{}, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.logger.WithFields(fields)
}
