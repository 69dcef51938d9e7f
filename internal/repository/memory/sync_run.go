package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrprime/campaign-sync/internal/domain"
)

type SyncRunRepository struct {
	mu   sync.RWMutex
	runs map[string]domain.SyncRun
}

func NewSyncRunRepository() *SyncRunRepository {
	return &SyncRunRepository{runs: make(map[string]domain.SyncRun)}
}

func (r *SyncRunRepository) Create(ctx context.Context, run *domain.SyncRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.Status == "" {
		run.Status = domain.SyncRunStatusRunning
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.ID] = *run
	return nil
}

func (r *SyncRunRepository) Complete(ctx context.Context, run *domain.SyncRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.runs[run.ID]
	if !ok {
		return &domain.ErrNotFound{Entity: "sync run", ID: run.ID}
	}
	existing.Status = run.Status
	existing.CompletedAt = run.CompletedAt
	existing.ErrorMessage = run.ErrorMessage
	existing.Result = run.Result
	r.runs[run.ID] = existing
	return nil
}

func (r *SyncRunRepository) ListRecent(ctx context.Context, limit int) ([]*domain.SyncRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = domain.DefaultSyncRunLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.SyncRun, 0, len(r.runs))
	for _, run := range r.runs {
		run := run
		out = append(out, &run)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
