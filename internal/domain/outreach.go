package domain

import (
	"context"

	"github.com/mrprime/campaign-sync/pkg/instantly"
)

//go:generate mockgen -destination mocks/mock_outreach_api.go -package mocks github.com/mrprime/campaign-sync/internal/domain OutreachAPI

// OutreachAPI is the read-only upstream surface used by the syncers.
// *instantly.Client implements it.
type OutreachAPI interface {
	CampaignAnalytics(ctx context.Context, startDate, endDate string) ([]instantly.CampaignAnalytics, error)
	DailyAnalytics(ctx context.Context, startDate, endDate, campaignID string) ([]instantly.DailyAnalytics, error)
	ListAccounts(ctx context.Context, startingAfter string) (*instantly.AccountsPage, error)
	ListReplyEmails(ctx context.Context, sentiment int, startingAfter string) (*instantly.EmailsPage, error)
}

var _ OutreachAPI = (*instantly.Client)(nil)
