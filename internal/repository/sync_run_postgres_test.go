package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/repository/testutil"
)

func TestSyncRunRepository_Create(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sync_runs (id,kind,trigger,status,started_at) VALUES ($1,$2,$3,$4,$5)")).
		WithArgs(sqlmock.AnyArg(), "full", "http", "running", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	run := &domain.SyncRun{Kind: domain.SyncKindFull, Trigger: domain.SyncTriggerHTTP}
	require.NoError(t, NewSyncRunRepository(db).Create(context.Background(), run))

	assert.Len(t, run.ID, 36)
	assert.Equal(t, domain.SyncRunStatusRunning, run.Status)
	assert.False(t, run.StartedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepository_Complete(t *testing.T) {
	ctx := context.Background()
	completed := time.Date(2025, 6, 10, 8, 1, 0, 0, time.UTC)

	t.Run("stores the result", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE sync_runs SET status = $1, completed_at = $2, error_message = $3, result = $4 WHERE id = $5")).
			WithArgs("succeeded", completed, nil, sqlmock.AnyArg(), "run-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		run := &domain.SyncRun{
			ID:          "run-1",
			Status:      domain.SyncRunStatusSucceeded,
			CompletedAt: &completed,
			Result:      &domain.SyncResult{Kind: domain.SyncKindRefresh, Campaigns: 3},
		}
		require.NoError(t, NewSyncRunRepository(db).Complete(ctx, run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stores the failure", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		msg := "boom"
		mock.ExpectExec("UPDATE sync_runs").
			WithArgs("failed", completed, "boom", nil, "run-2").
			WillReturnResult(sqlmock.NewResult(0, 1))

		run := &domain.SyncRun{ID: "run-2", Status: domain.SyncRunStatusFailed, CompletedAt: &completed, ErrorMessage: &msg}
		require.NoError(t, NewSyncRunRepository(db).Complete(ctx, run))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown run", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectExec("UPDATE sync_runs").WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewSyncRunRepository(db).Complete(ctx, &domain.SyncRun{ID: "missing", Status: domain.SyncRunStatusFailed})
		var notFound *domain.ErrNotFound
		require.ErrorAs(t, err, &notFound)
	})
}

func TestSyncRunRepository_ListRecent(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	started := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	completed := started.Add(time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("FROM sync_runs ORDER BY started_at DESC LIMIT 20")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "kind", "trigger", "status", "started_at", "completed_at", "error_message", "result"}).
			AddRow("run-2", "refresh", "schedule", "succeeded", started, completed, nil, []byte(`{"kind":"refresh","timestamp":"2025-06-10T08:01:00Z","campaigns":3}`)).
			AddRow("run-1", "full", "http", "failed", started, completed, "Instantly API error on /accounts: 500 Internal Server Error", nil).
			AddRow("run-0", "full", "http", "running", started, nil, nil, nil))

	runs, err := NewSyncRunRepository(db).ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	require.NotNil(t, runs[0].Result)
	assert.Equal(t, 3, runs[0].Result.Campaigns)
	assert.Equal(t, domain.SyncTriggerSchedule, runs[0].Trigger)
	assert.Equal(t, time.Minute, runs[0].Duration())

	require.NotNil(t, runs[1].ErrorMessage)
	assert.Contains(t, *runs[1].ErrorMessage, "500")
	assert.Nil(t, runs[1].Result)

	assert.Nil(t, runs[2].CompletedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
