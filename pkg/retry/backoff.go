package retry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mrprime/campaign-sync/pkg/logger"
)

// Config defines retry behavior. MaxAttempts counts the first call, so 1 disables retrying.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// NoRetry runs an operation exactly once
func NoRetry() Config {
	return Config{MaxAttempts: 1}
}

// WithBackoff executes fn until it succeeds, attempts run out or ctx is done
func WithBackoff(ctx context.Context, cfg Config, log logger.Logger, operation string, fn func(ctx context.Context) error) error {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry cancelled: %w", err)
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			if attempt > 1 {
				log.WithField("operation", operation).
					WithField("attempts", attempt).
					Info("Operation succeeded after retries")
			}
			return nil
		}

		if attempt == attempts {
			break
		}

		delay := backoffDelay(cfg, attempt)
		log.WithField("operation", operation).
			WithField("attempt", attempt).
			WithField("max_attempts", attempts).
			WithField("retry_in", delay.String()).
			WithField("error", lastErr.Error()).
			Warn("Operation failed, retrying")

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	if attempts == 1 {
		return lastErr
	}
	return fmt.Errorf("%s failed after %d attempts: %w", operation, attempts, lastErr)
}

func backoffDelay(cfg Config, attempt int) time.Duration {
	multiplier := cfg.Multiplier
	if multiplier < 1 {
		multiplier = 2
	}
	delay := float64(cfg.InitialDelay) * math.Pow(multiplier, float64(attempt-1))
	if cfg.MaxDelay > 0 && delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	return time.Duration(delay)
}
