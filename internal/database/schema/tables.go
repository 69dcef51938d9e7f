// Package schema holds the table definitions applied at startup.
package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS campaigns (
		id VARCHAR(64) PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		status INTEGER NOT NULL DEFAULT 0,
		emails_sent_count BIGINT NOT NULL DEFAULT 0,
		reply_count BIGINT NOT NULL DEFAULT 0,
		bounce_count BIGINT NOT NULL DEFAULT 0,
		total_opportunities BIGINT NOT NULL DEFAULT 0,
		leads_count BIGINT NOT NULL DEFAULT 0,
		contacted_count BIGINT NOT NULL DEFAULT 0,
		open_count BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS accounts (
		email VARCHAR(255) PRIMARY KEY,
		first_name VARCHAR(255) NOT NULL DEFAULT '',
		last_name VARCHAR(255) NOT NULL DEFAULT '',
		status INTEGER NOT NULL DEFAULT 0,
		warmup_status INTEGER NOT NULL DEFAULT 0,
		provider_code INTEGER NOT NULL DEFAULT 0,
		stat_warmup_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS daily_analytics (
		date DATE NOT NULL,
		campaign_id VARCHAR(64),
		sent BIGINT NOT NULL DEFAULT 0,
		contacted BIGINT NOT NULL DEFAULT 0,
		new_leads_contacted BIGINT NOT NULL DEFAULT 0,
		opened BIGINT NOT NULL DEFAULT 0,
		unique_opened BIGINT NOT NULL DEFAULT 0,
		replies BIGINT NOT NULL DEFAULT 0,
		unique_replies BIGINT NOT NULL DEFAULT 0,
		replies_automatic BIGINT NOT NULL DEFAULT 0,
		unique_replies_automatic BIGINT NOT NULL DEFAULT 0,
		clicks BIGINT NOT NULL DEFAULT 0,
		unique_clicks BIGINT NOT NULL DEFAULT 0,
		opportunities BIGINT NOT NULL DEFAULT 0,
		unique_opportunities BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_daily_analytics_bucket ON daily_analytics (date, COALESCE(campaign_id, ''))`,
	`CREATE INDEX IF NOT EXISTS idx_daily_analytics_campaign_date ON daily_analytics (campaign_id, date)`,
	`CREATE TABLE IF NOT EXISTS reporting_monthly (
		month DATE PRIMARY KEY,
		total_email_sent BIGINT NOT NULL DEFAULT 0,
		total_lead_contacted BIGINT NOT NULL DEFAULT 0,
		replies BIGINT NOT NULL DEFAULT 0,
		reply_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		positive_replies BIGINT NOT NULL DEFAULT 0,
		prr DOUBLE PRECISION NOT NULL DEFAULT 0,
		booked_calls BIGINT,
		booked_calls_rate DOUBLE PRECISION,
		not_interested BIGINT NOT NULL DEFAULT 0,
		neutral_replies BIGINT NOT NULL DEFAULT 0,
		out_of_office BIGINT NOT NULL DEFAULT 0,
		auto_replies BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS copy_angles_monthly (
		month DATE NOT NULL,
		campaign_name TEXT NOT NULL,
		total_prospects BIGINT NOT NULL DEFAULT 0,
		total_replies BIGINT NOT NULL DEFAULT 0,
		reply_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
		positive_replies BIGINT,
		prr DOUBLE PRECISION,
		booked_calls BIGINT,
		booked_calls_rate DOUBLE PRECISION,
		auto_replies BIGINT NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (month, campaign_name)
	)`,
	`CREATE TABLE IF NOT EXISTS sync_runs (
		id UUID PRIMARY KEY,
		kind VARCHAR(20) NOT NULL,
		trigger VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		error_message TEXT,
		result JSONB
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs (started_at DESC)`,
}
