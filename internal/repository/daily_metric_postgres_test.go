package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/repository/testutil"
)

func dailyRowColumns() []string {
	return append([]string{"date", "campaign_id"}, dailyMetricCounterColumns...)
}

func TestDailyMetricRepository_ReplaceDay(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregate bucket matches null campaign id", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM daily_analytics WHERE (date = $1 AND campaign_id IS NULL)")).
			WithArgs("2025-06-10").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO daily_analytics (date,campaign_id,sent,")).
			WithArgs("2025-06-10", nil, int64(120), int64(80), int64(40), int64(0), int64(0), int64(6), int64(5), int64(2), int64(1), int64(0), int64(0), int64(1), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewDailyMetricRepository(db).ReplaceDay(ctx, &domain.DailyMetric{
			Date: "2025-06-10", Sent: 120, Contacted: 80, NewLeadsContacted: 40,
			Replies: 6, UniqueReplies: 5, RepliesAutomatic: 2, UniqueRepliesAutomatic: 1,
			Opportunities: 1, UniqueOpportunities: 1,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("campaign bucket matches campaign id", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM daily_analytics WHERE (date = $1 AND campaign_id = $2)")).
			WithArgs("2025-06-10", "c1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO daily_analytics").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewDailyMetricRepository(db).ReplaceDay(ctx, &domain.DailyMetric{Date: "2025-06-10", CampaignID: domain.StringPtr("c1")})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM daily_analytics").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO daily_analytics").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		err := NewDailyMetricRepository(db).ReplaceDay(ctx, &domain.DailyMetric{Date: "2025-06-10"})
		var writeErr *domain.StoreWriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "insert", writeErr.Op)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete failure rolls back", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM daily_analytics").WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err := NewDailyMetricRepository(db).ReplaceDay(ctx, &domain.DailyMetric{Date: "2025-06-10"})
		var writeErr *domain.StoreWriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "delete", writeErr.Op)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyMetricRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("per campaign rows in a window", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("FROM daily_analytics WHERE date >= $1 AND date <= $2 AND campaign_id IS NOT NULL ORDER BY date ASC, campaign_id ASC NULLS FIRST")).
			WithArgs("2025-06-01", "2025-06-10").
			WillReturnRows(sqlmock.NewRows(dailyRowColumns()).
				AddRow("2025-06-01", "c1", 10, 8, 4, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0).
				AddRow("2025-06-02", "c1", 12, 9, 5, 0, 0, 2, 2, 1, 1, 0, 0, 1, 1))

		rows, err := NewDailyMetricRepository(db).List(ctx, domain.DailyMetricFilter{
			StartDate: "2025-06-01", EndDate: "2025-06-10", Scope: domain.DailyScopeCampaigns,
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.NotNil(t, rows[0].CampaignID)
		assert.Equal(t, "c1", *rows[0].CampaignID)
		assert.Equal(t, int64(5), rows[1].NewLeadsContacted)
		assert.Equal(t, int64(1), rows[1].UniqueOpportunities)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("aggregate rows scan nil campaign ids", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE date >= $1 AND campaign_id IS NULL")).
			WithArgs("2025-06-01").
			WillReturnRows(sqlmock.NewRows(dailyRowColumns()).
				AddRow("2025-06-01", nil, 10, 8, 4, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0))

		rows, err := NewDailyMetricRepository(db).List(ctx, domain.DailyMetricFilter{StartDate: "2025-06-01", Scope: domain.DailyScopeAggregate})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].IsAggregate())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("single campaign", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE campaign_id = $1")).
			WithArgs("c9").
			WillReturnRows(sqlmock.NewRows(dailyRowColumns()))

		rows, err := NewDailyMetricRepository(db).List(ctx, domain.DailyMetricFilter{Scope: domain.DailyScopeCampaign, CampaignID: "c9"})
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyMetricRepository_OverrideOpportunities(t *testing.T) {
	ctx := context.Background()

	t.Run("zeroes window then writes total on target date", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE daily_analytics SET opportunities = $1, unique_opportunities = $2 WHERE campaign_id = $3 AND date >= $4 AND date <= $5")).
			WithArgs(0, 0, "c1", "2025-06-01", "2025-06-10").
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE daily_analytics SET opportunities = $1, unique_opportunities = $2 WHERE (date = $3 AND campaign_id = $4)")).
			WithArgs(int64(15), int64(15), "2025-06-09", "c1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewDailyMetricRepository(db).OverrideOpportunities(ctx, "c1", "2025-06-01", "2025-06-10", "2025-06-09", 15)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero total only clears", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE daily_analytics").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err := NewDailyMetricRepository(db).OverrideOpportunities(ctx, "c1", "2025-06-01", "2025-06-10", "2025-06-09", 0)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("write failure rolls back the pair", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE daily_analytics").WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec("UPDATE daily_analytics").WillReturnError(errors.New("serialization failure"))
		mock.ExpectRollback()

		err := NewDailyMetricRepository(db).OverrideOpportunities(ctx, "c1", "2025-06-01", "2025-06-10", "2025-06-09", 4)
		var writeErr *domain.StoreWriteError
		require.ErrorAs(t, err, &writeErr)
		assert.Equal(t, "update", writeErr.Op)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDailyMetricRepository_OverrideOpportunitiesOpenWindow(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("WHERE campaign_id = $3 AND date >= $4")).
		WithArgs(0, 0, "c1", "2025-06-01").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := NewDailyMetricRepository(db).OverrideOpportunities(context.Background(), "c1", "2025-06-01", "", "2025-06-04", 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
