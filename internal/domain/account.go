package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_account_repository.go -package mocks github.com/mrprime/campaign-sync/internal/domain AccountRepository

// AccountUpsertBatchSize bounds a single accounts write
const AccountUpsertBatchSize = 50

type WarmupHealth string

const (
	WarmupHealthy WarmupHealth = "healthy"
	WarmupGood    WarmupHealth = "good"
	WarmupWarning WarmupHealth = "warning"
)

// ClassifyWarmupScore maps a 0-100 warmup score to a health tier
func ClassifyWarmupScore(score float64) WarmupHealth {
	switch {
	case score >= 95:
		return WarmupHealthy
	case score >= 80:
		return WarmupGood
	default:
		return WarmupWarning
	}
}

// Account is a sending mailbox on the outreach platform
type Account struct {
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Status       int       `json:"status"`
	WarmupStatus int       `json:"warmup_status"`
	ProviderCode int       `json:"provider_code"`
	WarmupScore  float64   `json:"stat_warmup_score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (a *Account) Health() WarmupHealth {
	return ClassifyWarmupScore(a.WarmupScore)
}

type AccountRepository interface {
	UpsertMany(ctx context.Context, accounts []*Account) error
	ListByStatus(ctx context.Context, status int) ([]*Account, error)
}
