package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/retry"
	"github.com/mrprime/campaign-sync/pkg/tracing"
	"golang.org/x/sync/errgroup"
)

type CampaignSyncer interface {
	Sync(ctx context.Context) (int, error)
}

type AccountSyncer interface {
	Sync(ctx context.Context) (int, error)
}

type DailySyncer interface {
	Sync(ctx context.Context, days int) (*domain.DailySyncResult, error)
}

type Reconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

type ReplyClassifier interface {
	Classify(ctx context.Context) (*domain.ReplyClassification, error)
}

type CopyAngleSyncer interface {
	Sync(ctx context.Context) (int, error)
}

// SyncSteps groups the units a pipeline run is made of
type SyncSteps struct {
	Campaigns      CampaignSyncer
	Accounts       AccountSyncer
	Daily          DailySyncer
	Reconciliation Reconciler
	Replies        ReplyClassifier
	CopyAngles     CopyAngleSyncer
}

// SyncPipeline runs the steps of a full sync or a light refresh and records
// every run in the history table.
type SyncPipeline struct {
	steps  SyncSteps
	runs   domain.SyncRunRepository
	logger logger.Logger
	retry  retry.Config
	now    func() time.Time
	newID  func() string
}

func NewSyncPipeline(steps SyncSteps, runs domain.SyncRunRepository, logger logger.Logger, retryConfig retry.Config) *SyncPipeline {
	return &SyncPipeline{
		steps:  steps,
		runs:   runs,
		logger: logger,
		retry:  retryConfig,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

var _ domain.SyncRunner = (*SyncPipeline)(nil)

// Run executes one pipeline run. Writes committed by finished steps stay in
// place when a later step fails.
func (p *SyncPipeline) Run(ctx context.Context, kind domain.SyncKind, trigger domain.SyncTrigger) (*domain.SyncResult, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "SyncPipeline", "Run")
	defer span.End()

	run := &domain.SyncRun{
		ID:        p.newID(),
		Kind:      kind,
		Trigger:   trigger,
		Status:    domain.SyncRunStatusRunning,
		StartedAt: p.now().UTC(),
	}
	tracing.AddAttribute(ctx, "run_id", run.ID)
	tracing.AddAttribute(ctx, "kind", string(kind))

	log := p.logger.WithField("run_id", run.ID).
		WithField("kind", string(kind)).
		WithField("trigger", string(trigger))

	if err := p.runs.Create(ctx, run); err != nil {
		log.WithField("error", err.Error()).Warn("Failed to record sync run start")
	}

	log.Info("Sync run started")

	result := &domain.SyncResult{RunID: run.ID, Kind: kind}
	var err error
	switch kind {
	case domain.SyncKindFull:
		err = p.runFull(ctx, log, result)
	case domain.SyncKindRefresh:
		err = p.runRefresh(ctx, log, result)
	default:
		err = fmt.Errorf("unsupported sync kind: %q", kind)
	}

	completedAt := p.now().UTC()
	run.CompletedAt = &completedAt
	if err != nil {
		message := err.Error()
		run.Status = domain.SyncRunStatusFailed
		run.ErrorMessage = &message
	} else {
		result.Timestamp = completedAt
		run.Status = domain.SyncRunStatusSucceeded
		run.Result = result
	}

	if recErr := p.runs.Complete(ctx, run); recErr != nil {
		log.WithField("error", recErr.Error()).Warn("Failed to record sync run completion")
	}
	tracing.RecordSyncRun(ctx, string(kind), string(run.Status))

	elapsed := completedAt.Sub(run.StartedAt)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		log.WithField("error", err.Error()).WithField("elapsed", elapsed).Error("Sync run failed")
		return nil, err
	}

	log.WithField("elapsed", elapsed).Info("Sync run completed")
	return result, nil
}

// ListRuns clamps limit to [1, MaxSyncRunLimit], 0 selects the default
func (p *SyncPipeline) ListRuns(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	if limit <= 0 {
		limit = domain.DefaultSyncRunLimit
	}
	if limit > domain.MaxSyncRunLimit {
		limit = domain.MaxSyncRunLimit
	}

	runs, err := p.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}

func (p *SyncPipeline) runFull(ctx context.Context, log logger.Logger, result *domain.SyncResult) error {
	var accounts, fixed, angles int

	// Phase 1: snapshots and the daily series do not read each other's writes.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.step(gctx, log, "campaigns", func(ctx context.Context) (err error) {
			result.Campaigns, err = p.steps.Campaigns.Sync(ctx)
			return err
		})
	})
	g.Go(func() error {
		return p.step(gctx, log, "accounts", func(ctx context.Context) (err error) {
			accounts, err = p.steps.Accounts.Sync(ctx)
			return err
		})
	})
	g.Go(func() error {
		return p.step(gctx, log, "daily", func(ctx context.Context) (err error) {
			result.Daily, err = p.steps.Daily.Sync(ctx, domain.FullSyncDays)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}
	result.Accounts = &accounts

	// Phase 2 reads the daily series written above.
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.step(gctx, log, "reconciliation", func(ctx context.Context) (err error) {
			fixed, err = p.steps.Reconciliation.Reconcile(ctx)
			return err
		})
	})
	g.Go(func() error {
		return p.step(gctx, log, "replies", func(ctx context.Context) (err error) {
			result.Replies, err = p.steps.Replies.Classify(ctx)
			return err
		})
	})
	g.Go(func() error {
		return p.step(gctx, log, "copy_angles", func(ctx context.Context) (err error) {
			angles, err = p.steps.CopyAngles.Sync(ctx)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}
	result.OpportunitiesFixed = &fixed
	result.CopyAngles = &angles
	return nil
}

func (p *SyncPipeline) runRefresh(ctx context.Context, log logger.Logger, result *domain.SyncResult) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.step(gctx, log, "campaigns", func(ctx context.Context) (err error) {
			result.Campaigns, err = p.steps.Campaigns.Sync(ctx)
			return err
		})
	})
	g.Go(func() error {
		return p.step(gctx, log, "daily", func(ctx context.Context) (err error) {
			result.Daily, err = p.steps.Daily.Sync(ctx, domain.LightRefreshDays)
			return err
		})
	})
	return g.Wait()
}

// step runs fn under the step retry policy and records its latency
func (p *SyncPipeline) step(ctx context.Context, log logger.Logger, name string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.StartServiceSpan(ctx, "SyncPipeline", name)
	started := time.Now()

	err := retry.WithBackoff(ctx, p.retry, log, name, fn)

	elapsed := time.Since(started)
	tracing.RecordStepLatency(ctx, name, elapsed, err)
	tracing.EndSpan(span, err)

	if err != nil {
		return fmt.Errorf("%s step failed: %w", name, err)
	}
	log.WithField("step", name).WithField("elapsed", elapsed).Debug("Sync step finished")
	return nil
}
