package testutil

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

// SetupMockDB creates a mock database connection for testing. Options are
// passed to sqlmock, the default matcher is the regexp one.
// sqlmock does not export its option type, so options are accepted as
// interface{} values and converted back to the type its constructors return.
func SetupMockDB(t *testing.T, opts ...interface{}) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(asOptions(sqlmock.MonitorPingsOption(false), opts)...)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

// ExpectationsMet fails the test when an expected statement was not executed
func ExpectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	require.NoError(t, mock.ExpectationsWereMet())
}

// asOptions converts values to the type of sample, which is only used for type inference
func asOptions[O any](sample O, opts []interface{}) []O {
	out := make([]O, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.(O))
	}
	return out
}
