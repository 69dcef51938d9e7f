package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Instantly     InstantlyConfig
	Sync          SyncConfig
	Tracing       TracingConfig
	StorageDriver string // "postgres" or "memory"
	Environment   string
	LogLevel      string
	Version       string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// InstantlyConfig holds the outreach platform API settings
type InstantlyConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type SyncConfig struct {
	// Shared secret expected as a bearer token on the full sync trigger
	CronSecret string

	// Cron expressions for the in-process scheduler, empty disables
	FullSchedule    string
	RefreshSchedule string

	// 1 means every step runs exactly once
	StepMaxAttempts int
	StepRetryDelay  time.Duration

	// Per client address budget of the public refresh trigger, 0 disables
	RefreshRateLimit  int
	RefreshRateWindow time.Duration
}

type TracingConfig struct {
	Enabled             bool
	ServiceName         string
	SamplingProbability float64

	// Trace exporter configuration
	TraceExporter string // "jaeger", "zipkin", "none"

	JaegerEndpoint string
	ZipkinEndpoint string

	// Metrics exporter configuration
	MetricsExporter string // "prometheus", "none"
	PrometheusPort  int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "campaign_sync")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("STORAGE_DRIVER", "postgres")
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	v.SetDefault("INSTANTLY_API_URL", "https://api.instantly.ai/api/v2")
	v.SetDefault("INSTANTLY_TIMEOUT", "30s")

	v.SetDefault("SYNC_FULL_SCHEDULE", "")
	v.SetDefault("SYNC_REFRESH_SCHEDULE", "")
	v.SetDefault("SYNC_STEP_MAX_ATTEMPTS", 1)
	v.SetDefault("SYNC_STEP_RETRY_DELAY", "5s")
	v.SetDefault("SYNC_REFRESH_RATE_LIMIT", 6)
	v.SetDefault("SYNC_REFRESH_RATE_WINDOW", "1m")

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "campaign-sync")
	v.SetDefault("TRACING_SAMPLING_PROBABILITY", 0.1)
	v.SetDefault("TRACING_TRACE_EXPORTER", "none")
	v.SetDefault("TRACING_JAEGER_ENDPOINT", "http://localhost:14268/api/traces")
	v.SetDefault("TRACING_ZIPKIN_ENDPOINT", "http://localhost:9411/api/v2/spans")
	v.SetDefault("TRACING_METRICS_EXPORTER", "none")
	v.SetDefault("TRACING_PROMETHEUS_PORT", 9464)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	apiKey := v.GetString("INSTANTLY_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("INSTANTLY_API_KEY is required")
	}

	storageDriver := strings.ToLower(v.GetString("STORAGE_DRIVER"))
	if storageDriver != "postgres" && storageDriver != "memory" {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER: %s", storageDriver)
	}

	maxAttempts := v.GetInt("SYNC_STEP_MAX_ATTEMPTS")
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Instantly: InstantlyConfig{
			APIKey:  apiKey,
			BaseURL: strings.TrimRight(v.GetString("INSTANTLY_API_URL"), "/"),
			Timeout: v.GetDuration("INSTANTLY_TIMEOUT"),
		},
		Sync: SyncConfig{
			CronSecret:      v.GetString("CRON_SECRET"),
			FullSchedule:    v.GetString("SYNC_FULL_SCHEDULE"),
			RefreshSchedule: v.GetString("SYNC_REFRESH_SCHEDULE"),
			StepMaxAttempts: maxAttempts,
			StepRetryDelay:  v.GetDuration("SYNC_STEP_RETRY_DELAY"),

			RefreshRateLimit:  v.GetInt("SYNC_REFRESH_RATE_LIMIT"),
			RefreshRateWindow: v.GetDuration("SYNC_REFRESH_RATE_WINDOW"),
		},
		Tracing: TracingConfig{
			Enabled:             v.GetBool("TRACING_ENABLED"),
			ServiceName:         v.GetString("TRACING_SERVICE_NAME"),
			SamplingProbability: v.GetFloat64("TRACING_SAMPLING_PROBABILITY"),
			TraceExporter:       v.GetString("TRACING_TRACE_EXPORTER"),
			JaegerEndpoint:      v.GetString("TRACING_JAEGER_ENDPOINT"),
			ZipkinEndpoint:      v.GetString("TRACING_ZIPKIN_ENDPOINT"),
			MetricsExporter:     v.GetString("TRACING_METRICS_EXPORTER"),
			PrometheusPort:      v.GetInt("TRACING_PROMETHEUS_PORT"),
		},
		StorageDriver: storageDriver,
		Environment:   v.GetString("ENVIRONMENT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		Version:       v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesMemoryStorage reports whether repositories should be backed by process memory
func (c *Config) UsesMemoryStorage() bool {
	return c.StorageDriver == "memory"
}
