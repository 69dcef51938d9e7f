package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_copy_angle_repository.go -package mocks github.com/mrprime/campaign-sync/internal/domain CopyAngleRepository

const copyAngleSeparator = " - "

// DeriveCopyAngle extracts the messaging angle from a campaign name such as
// "[W]C123 - US - AMZ Sellers - Summer Promo".
func DeriveCopyAngle(campaignName string) string {
	parts := strings.Split(campaignName, copyAngleSeparator)
	switch {
	case len(parts) >= 4:
		return strings.TrimSpace(strings.Join(parts[3:], copyAngleSeparator))
	case len(parts) == 3:
		return strings.TrimSpace(parts[2])
	default:
		return strings.TrimSpace(campaignName)
	}
}

// CopyAngle is the monthly rollup of every campaign sharing an angle.
// PositiveReplies, PRR, BookedCalls and BookedCallsRate are curated.
type CopyAngle struct {
	Month           string    `json:"month"`
	CampaignName    string    `json:"campaign_name"`
	TotalProspects  int64     `json:"total_prospects"`
	TotalReplies    int64     `json:"total_replies"`
	ReplyRate       float64   `json:"reply_rate"`
	AutoReplies     int64     `json:"auto_replies"`
	PositiveReplies *int64    `json:"positive_replies"`
	PRR             *float64  `json:"prr"`
	BookedCalls     *int64    `json:"booked_calls"`
	BookedCallsRate *float64  `json:"booked_calls_rate"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ARR renders the auto-reply ratio of the row
func (a *CopyAngle) ARR() string {
	return AutoReplyRatio(a.AutoReplies, a.TotalReplies)
}

type CopyAngleRepository interface {
	// FindByMonthAndName returns *ErrNotFound when no row exists
	FindByMonthAndName(ctx context.Context, month, name string) (*CopyAngle, error)
	// Insert writes a new row with computed columns only
	Insert(ctx context.Context, angle *CopyAngle) error
	// UpdateComputed overwrites the computed columns of an existing row
	UpdateComputed(ctx context.Context, angle *CopyAngle) error
	// ListSince returns rows with month >= sinceMonth, newest month first
	ListSince(ctx context.Context, sinceMonth string) ([]*CopyAngle, error)
}
