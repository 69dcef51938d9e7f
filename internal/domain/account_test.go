package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyWarmupScore(t *testing.T) {
	assert.Equal(t, WarmupHealthy, ClassifyWarmupScore(100))
	assert.Equal(t, WarmupHealthy, ClassifyWarmupScore(95))
	assert.Equal(t, WarmupGood, ClassifyWarmupScore(94.9))
	assert.Equal(t, WarmupGood, ClassifyWarmupScore(80))
	assert.Equal(t, WarmupWarning, ClassifyWarmupScore(79.99))
	assert.Equal(t, WarmupWarning, ClassifyWarmupScore(0))
}

func TestAccount_Health(t *testing.T) {
	account := &Account{Email: "a@example.com", WarmupScore: 88}
	assert.Equal(t, WarmupGood, account.Health())
}

func TestCampaignStatus_String(t *testing.T) {
	assert.Equal(t, "active", CampaignStatusActive.String())
	assert.Equal(t, "completed", CampaignStatusCompleted.String())
	assert.Equal(t, "unknown", CampaignStatus(42).String())
}
