package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_campaign_repository.go -package mocks github.com/mrprime/campaign-sync/internal/domain CampaignRepository

// CampaignStatus mirrors the platform's numeric campaign status
type CampaignStatus int

const (
	CampaignStatusDraft     CampaignStatus = 0
	CampaignStatusActive    CampaignStatus = 1
	CampaignStatusPaused    CampaignStatus = 2
	CampaignStatusCompleted CampaignStatus = 3
)

func (s CampaignStatus) String() string {
	switch s {
	case CampaignStatusDraft:
		return "draft"
	case CampaignStatusActive:
		return "active"
	case CampaignStatusPaused:
		return "paused"
	case CampaignStatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Campaign is the latest lifetime snapshot of one upstream campaign
type Campaign struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        CampaignStatus `json:"status"`
	EmailsSent    int64          `json:"emails_sent_count"`
	Replies       int64          `json:"reply_count"`
	Bounced       int64          `json:"bounce_count"`
	Opportunities int64          `json:"total_opportunities"`
	Leads         int64          `json:"leads_count"`
	Contacted     int64          `json:"contacted_count"`
	Opens         int64          `json:"open_count"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type CampaignRepository interface {
	// UpsertMany overwrites every campaign by id
	UpsertMany(ctx context.Context, campaigns []*Campaign) error
	// ListByStatus returns campaigns in any of the statuses, all campaigns when none are given
	ListByStatus(ctx context.Context, statuses ...CampaignStatus) ([]*Campaign, error)
	CountByStatus(ctx context.Context, status CampaignStatus) (int, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Campaign, error)
}
