package tracing

import (
	"fmt"
	"net/http"
	"strings"

	"contrib.go.opencensus.io/exporter/jaeger"
	"contrib.go.opencensus.io/exporter/prometheus"
	"contrib.go.opencensus.io/exporter/zipkin"
	"contrib.go.opencensus.io/integrations/ocsql"
	zipkinhttp "github.com/openzipkin/zipkin-go/reporter/http"
	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/trace"

	"github.com/mrprime/campaign-sync/config"
)

// InitTracing configures sampling, the trace exporter and the metrics exporter.
// When the prometheus exporter is selected its scrape handler is returned so the
// caller can mount it; otherwise the handler is nil.
func InitTracing(cfg *config.TracingConfig) (http.Handler, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	trace.ApplyConfig(trace.Config{
		DefaultSampler: trace.ProbabilitySampler(cfg.SamplingProbability),
	})

	if err := initTraceExporter(cfg); err != nil {
		return nil, err
	}

	metricsHandler, err := initMetricsExporter(cfg)
	if err != nil {
		return nil, err
	}

	if err := RegisterViews(); err != nil {
		return nil, err
	}

	return metricsHandler, nil
}

// RegisterViews registers HTTP server, database and sync views
func RegisterViews() error {
	if err := view.Register(ochttp.DefaultServerViews...); err != nil {
		return fmt.Errorf("failed to register HTTP server views: %w", err)
	}
	if err := view.Register(ocsql.DefaultViews...); err != nil {
		return fmt.Errorf("failed to register database views: %w", err)
	}
	if err := view.Register(SyncViews...); err != nil {
		return fmt.Errorf("failed to register sync views: %w", err)
	}
	return nil
}

func initTraceExporter(cfg *config.TracingConfig) error {
	switch strings.ToLower(cfg.TraceExporter) {
	case "jaeger":
		if cfg.JaegerEndpoint == "" {
			return fmt.Errorf("Jaeger endpoint is required for Jaeger exporter")
		}
		je, err := jaeger.NewExporter(jaeger.Options{
			CollectorEndpoint: cfg.JaegerEndpoint,
			ServiceName:       cfg.ServiceName,
			Process: jaeger.Process{
				ServiceName: cfg.ServiceName,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create Jaeger exporter: %w", err)
		}
		trace.RegisterExporter(je)
		return nil
	case "zipkin":
		if cfg.ZipkinEndpoint == "" {
			return fmt.Errorf("Zipkin endpoint is required for Zipkin exporter")
		}
		reporter := zipkinhttp.NewReporter(cfg.ZipkinEndpoint)
		trace.RegisterExporter(zipkin.NewExporter(reporter, nil))
		return nil
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
}

func initMetricsExporter(cfg *config.TracingConfig) (http.Handler, error) {
	switch strings.ToLower(cfg.MetricsExporter) {
	case "prometheus":
		pe, err := prometheus.NewExporter(prometheus.Options{
			Namespace: strings.ReplaceAll(cfg.ServiceName, "-", "_"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		view.RegisterExporter(pe)
		return pe, nil
	case "none", "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported metrics exporter: %s", cfg.MetricsExporter)
	}
}
