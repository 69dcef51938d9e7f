package domain

import (
	"bytes"
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

//go:generate mockgen -destination mocks/mock_sync_run_repository.go -package mocks github.com/mrprime/campaign-sync/internal/domain SyncRunRepository
//go:generate mockgen -destination mocks/mock_sync_runner.go -package mocks github.com/mrprime/campaign-sync/internal/domain SyncRunner

// SyncKind selects what a pipeline run does
type SyncKind string

const (
	// SyncKindFull runs every syncer, reconciliation and classification
	SyncKindFull SyncKind = "full"
	// SyncKindRefresh only rebuilds campaign snapshots and the short daily window
	SyncKindRefresh SyncKind = "refresh"
)

// SyncTrigger records who started a run
type SyncTrigger string

const (
	SyncTriggerHTTP     SyncTrigger = "http"
	SyncTriggerSchedule SyncTrigger = "schedule"
)

type SyncRunStatus string

const (
	SyncRunStatusRunning   SyncRunStatus = "running"
	SyncRunStatusSucceeded SyncRunStatus = "succeeded"
	SyncRunStatusFailed    SyncRunStatus = "failed"
)

// SyncResult carries the per-step outcome of a successful run. Steps that
// did not run for the kind are nil.
type SyncResult struct {
	RunID              string               `json:"runId,omitempty"`
	Kind               SyncKind             `json:"kind"`
	Timestamp          time.Time            `json:"timestamp"`
	Campaigns          int                  `json:"campaigns"`
	Accounts           *int                 `json:"accounts,omitempty"`
	Daily              *DailySyncResult     `json:"daily,omitempty"`
	OpportunitiesFixed *int                 `json:"oppsFixed,omitempty"`
	Replies            *ReplyClassification `json:"replies,omitempty"`
	CopyAngles         *int                 `json:"copyAngles,omitempty"`
}

// Value implements the driver.Valuer interface for SyncResult
func (r SyncResult) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements the sql.Scanner interface for SyncResult
func (r *SyncResult) Scan(value interface{}) error {
	if value == nil {
		*r = SyncResult{}
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = bytes.Clone(v)
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("expected []byte, got %T", value)
	}

	return json.Unmarshal(b, r)
}

// SyncRun is the persisted history entry of one pipeline run
type SyncRun struct {
	ID           string        `json:"id"`
	Kind         SyncKind      `json:"kind"`
	Trigger      SyncTrigger   `json:"trigger"`
	Status       SyncRunStatus `json:"status"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
	ErrorMessage *string       `json:"error_message,omitempty"`
	Result       *SyncResult   `json:"result,omitempty"`
}

// Duration is zero while the run is in flight
func (r *SyncRun) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

const (
	DefaultSyncRunLimit = 20
	MaxSyncRunLimit     = 100
)

type SyncRunRepository interface {
	Create(ctx context.Context, run *SyncRun) error
	// Complete stores the terminal status, completion time, error and result
	Complete(ctx context.Context, run *SyncRun) error
	// ListRecent returns the newest runs first
	ListRecent(ctx context.Context, limit int) ([]*SyncRun, error)
}

// SyncRunner executes pipeline runs
type SyncRunner interface {
	Run(ctx context.Context, kind SyncKind, trigger SyncTrigger) (*SyncResult, error)
	ListRuns(ctx context.Context, limit int) ([]*SyncRun, error)
}
