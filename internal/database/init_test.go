package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrprime/campaign-sync/internal/database/schema"
)

func TestInitializeDatabase(t *testing.T) {
	t.Run("creates tables successfully", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for range schema.TableDefinitions {
			mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		err = InitializeDatabase(context.Background(), db)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stops on first failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("CREATE TABLE IF NOT EXISTS campaigns").WillReturnError(errors.New("permission denied"))

		err = InitializeDatabase(context.Background(), db)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create table")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCleanDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"sync_runs", "copy_angles_monthly", "reporting_monthly", "daily_analytics", "accounts", "campaigns"} {
		mock.ExpectExec("DROP TABLE IF EXISTS " + table).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, CleanDatabase(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTableDefinitions(t *testing.T) {
	joined := ""
	for _, stmt := range schema.TableDefinitions {
		joined += stmt
	}

	for _, table := range []string{"campaigns", "accounts", "daily_analytics", "reporting_monthly", "copy_angles_monthly", "sync_runs"} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, joined, "COALESCE(campaign_id, '')")
}
