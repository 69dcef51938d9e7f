package tracing

import (
	"context"
	"strconv"
	"time"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

var (
	MeasureSyncRuns         = stats.Int64("campaign_sync/runs", "Sync pipeline runs", stats.UnitDimensionless)
	MeasureStepLatency      = stats.Float64("campaign_sync/step_latency", "Sync step latency", stats.UnitMilliseconds)
	MeasureUpstreamRequests = stats.Int64("campaign_sync/upstream_requests", "Requests sent to the outreach API", stats.UnitDimensionless)

	KeyKind   = tag.MustNewKey("kind")
	KeyStatus = tag.MustNewKey("status")
	KeyStep   = tag.MustNewKey("step")
	KeyPath   = tag.MustNewKey("path")
)

// SyncViews aggregate the sync measures for export
var SyncViews = []*view.View{
	{
		Name:        "campaign_sync/runs_total",
		Description: "Sync pipeline runs by kind and outcome",
		Measure:     MeasureSyncRuns,
		TagKeys:     []tag.Key{KeyKind, KeyStatus},
		Aggregation: view.Count(),
	},
	{
		Name:        "campaign_sync/step_latency_ms",
		Description: "Sync step latency distribution",
		Measure:     MeasureStepLatency,
		TagKeys:     []tag.Key{KeyStep, KeyStatus},
		Aggregation: view.Distribution(50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000, 120000),
	},
	{
		Name:        "campaign_sync/upstream_requests_total",
		Description: "Outreach API requests by path and HTTP status",
		Measure:     MeasureUpstreamRequests,
		TagKeys:     []tag.Key{KeyPath, KeyStatus},
		Aggregation: view.Count(),
	},
}

// RecordSyncRun counts one finished pipeline run
func RecordSyncRun(ctx context.Context, kind, status string) {
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyKind, kind), tag.Upsert(KeyStatus, status)},
		MeasureSyncRuns.M(1),
	)
}

// RecordStepLatency records how long a pipeline step took
func RecordStepLatency(ctx context.Context, step string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyStep, step), tag.Upsert(KeyStatus, status)},
		MeasureStepLatency.M(float64(elapsed)/float64(time.Millisecond)),
	)
}

// RecordUpstreamRequest counts one outbound API call. statusCode 0 means transport failure.
func RecordUpstreamRequest(ctx context.Context, path string, statusCode int) {
	status := "transport_error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	_ = stats.RecordWithTags(ctx,
		[]tag.Mutator{tag.Upsert(KeyPath, path), tag.Upsert(KeyStatus, status)},
		MeasureUpstreamRequests.M(1),
	)
}
