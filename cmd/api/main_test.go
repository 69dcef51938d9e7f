package main

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrprime/campaign-sync/config"
	"github.com/mrprime/campaign-sync/internal/app"
	"github.com/mrprime/campaign-sync/internal/domain/mocks"
	"github.com/mrprime/campaign-sync/pkg/logger"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		StorageDriver: "memory",
		Version:       "test",
		Server:        config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Instantly:     config.InstantlyConfig{APIKey: "test-key", Timeout: time.Second},
		Sync:          config.SyncConfig{CronSecret: "s3cret", StepMaxAttempts: 1},
	}
}

func withMockAPI(t *testing.T) NewAppFunc {
	api := mocks.NewMockOutreachAPI(gomock.NewController(t))
	return func(cfg *config.Config, opts ...app.AppOption) app.AppInterface {
		return app.NewApp(cfg, append(opts, app.WithOutreachAPI(api))...)
	}
}

func stubSignals(t *testing.T, deliver bool) {
	original := signalNotify
	t.Cleanup(func() { signalNotify = original })

	calls := 0
	signalNotify = func(c chan<- os.Signal, sig ...os.Signal) {
		calls++
		if calls == 1 && deliver {
			go func() {
				time.Sleep(100 * time.Millisecond)
				c <- syscall.SIGTERM
			}()
		}
	}
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	stubSignals(t, true)

	err := runServer(createTestConfig(), logger.NewTestLogger(t), withMockAPI(t))
	assert.NoError(t, err)
}

func TestRunServer_StartFailure(t *testing.T) {
	stubSignals(t, false)

	cfg := createTestConfig()
	cfg.Sync.RefreshSchedule = "every now and then"

	err := runServer(cfg, logger.NewTestLogger(t), withMockAPI(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh sync schedule")
}

func TestRunServer_InitializeFailure(t *testing.T) {
	stubSignals(t, false)

	cfg := createTestConfig()
	cfg.Tracing = config.TracingConfig{Enabled: true, TraceExporter: "carrier-pigeon"}

	err := runServer(cfg, logger.NewTestLogger(t), withMockAPI(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize tracing")
}
