package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mrprime/campaign-sync/internal/database/schema"
)

// InitializeDatabase creates all necessary database tables if they don't exist
func InitializeDatabase(ctx context.Context, db *sql.DB) error {
	for _, query := range schema.TableDefinitions {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// CleanDatabase drops every table created by InitializeDatabase
func CleanDatabase(ctx context.Context, db *sql.DB) error {
	tables := []string{
		"sync_runs",
		"copy_angles_monthly",
		"reporting_monthly",
		"daily_analytics",
		"accounts",
		"campaigns",
	}

	for _, table := range tables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
