package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/internal/repository/testutil"
)

var copyAngleRowColumns = []string{
	"month", "campaign_name", "total_prospects", "total_replies", "reply_rate", "positive_replies",
	"prr", "booked_calls", "booked_calls_rate", "auto_replies", "updated_at",
}

func TestCopyAngleRepository_FindByMonthAndName(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found with curated values", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta("FROM copy_angles_monthly WHERE campaign_name = $1 AND month = $2")).
			WithArgs("Summer Promo", "2025-06-01").
			WillReturnRows(sqlmock.NewRows(copyAngleRowColumns).
				AddRow("2025-06-01", "Summer Promo", 200, 8, 4.0, 3, 37.5, 2, 1.0, 1, now))

		angle, err := NewCopyAngleRepository(db).FindByMonthAndName(ctx, "2025-06-01", "Summer Promo")
		require.NoError(t, err)
		assert.Equal(t, int64(200), angle.TotalProspects)
		require.NotNil(t, angle.PositiveReplies)
		assert.Equal(t, int64(3), *angle.PositiveReplies)
		require.NotNil(t, angle.BookedCalls)
		assert.Equal(t, int64(2), *angle.BookedCalls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("FROM copy_angles_monthly").WillReturnRows(sqlmock.NewRows(copyAngleRowColumns))

		_, err := NewCopyAngleRepository(db).FindByMonthAndName(ctx, "2025-06-01", "Missing")
		var notFound *domain.ErrNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "copy angle", notFound.Entity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, cleanup := testutil.SetupMockDB(t)
		defer cleanup()

		mock.ExpectQuery("FROM copy_angles_monthly").WillReturnError(errors.New("connection lost"))

		_, err := NewCopyAngleRepository(db).FindByMonthAndName(ctx, "2025-06-01", "Any")
		require.Error(t, err)
		var notFound *domain.ErrNotFound
		assert.False(t, errors.As(err, &notFound))
	})
}

func TestCopyAngleRepository_Insert(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO copy_angles_monthly (month,campaign_name,total_prospects,total_replies,reply_rate,auto_replies,updated_at) VALUES ($1,$2,$3,$4,$5,$6,$7)")).
		WithArgs("2025-06-01", "Summer Promo", int64(200), int64(8), 4.0, int64(1), now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewCopyAngleRepository(db).Insert(context.Background(), &domain.CopyAngle{
		Month: "2025-06-01", CampaignName: "Summer Promo", TotalProspects: 200, TotalReplies: 8,
		ReplyRate: 4, AutoReplies: 1, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyAngleRepository_UpdateComputed(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE copy_angles_monthly SET total_prospects = $1, total_replies = $2, reply_rate = $3, auto_replies = $4, updated_at = $5 WHERE campaign_name = $6 AND month = $7")).
		WithArgs(int64(250), int64(10), 4.0, int64(2), now, "Summer Promo", "2025-06-01").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewCopyAngleRepository(db).UpdateComputed(context.Background(), &domain.CopyAngle{
		Month: "2025-06-01", CampaignName: "Summer Promo", TotalProspects: 250, TotalReplies: 10,
		ReplyRate: 4, AutoReplies: 2, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyAngleRepository_ListSince(t *testing.T) {
	db, mock, cleanup := testutil.SetupMockDB(t)
	defer cleanup()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE month >= $1 ORDER BY month DESC, total_prospects DESC")).
		WithArgs("2024-06-01").
		WillReturnRows(sqlmock.NewRows(copyAngleRowColumns).
			AddRow("2025-06-01", "Summer Promo", 200, 8, 4.0, nil, nil, nil, nil, 1, now).
			AddRow("2025-05-01", "Agencies", 90, 2, 2.22, 1, 50.0, nil, nil, 0, now))

	angles, err := NewCopyAngleRepository(db).ListSince(context.Background(), "2024-06-01")
	require.NoError(t, err)
	require.Len(t, angles, 2)
	assert.Nil(t, angles[0].PositiveReplies)
	assert.Nil(t, angles[0].PRR)
	require.NotNil(t, angles[1].PRR)
	assert.Equal(t, 50.0, *angles[1].PRR)
	assert.NoError(t, mock.ExpectationsWereMet())
}
