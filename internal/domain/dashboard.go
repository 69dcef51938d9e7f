package domain

import (
	"context"
)

//go:generate mockgen -destination mocks/mock_dashboard_service.go -package mocks github.com/mrprime/campaign-sync/internal/domain DashboardService

const DefaultCopyAngleMonths = 12

type KPISummary struct {
	Since           string  `json:"since"`
	Contacted       int64   `json:"contacted"`
	Replies         int64   `json:"replies"`
	Opportunities   int64   `json:"opportunities"`
	ReplyRate       float64 `json:"replyRate"`
	ActiveCampaigns int     `json:"activeCampaigns"`
}

type CampaignPerformance struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Status        CampaignStatus `json:"status"`
	Sent          int64          `json:"sent"`
	Contacted     int64          `json:"contacted"`
	Replies       int64          `json:"replies"`
	AutoReplies   int64          `json:"autoReplies"`
	Opportunities int64          `json:"opportunities"`
	ReplyRate     float64        `json:"replyRate"`
}

type DailyPoint struct {
	Date          string `json:"date"`
	Sent          int64  `json:"sent"`
	Replies       int64  `json:"replies"`
	Opportunities int64  `json:"opportunities"`
}

type WarmupSummary struct {
	Total    int     `json:"total"`
	Healthy  int     `json:"healthy"`
	Good     int     `json:"good"`
	Warning  int     `json:"warning"`
	AvgScore float64 `json:"avgScore"`
}

// CopyAngleView is a stored rollup plus its rendered ARR
type CopyAngleView struct {
	*CopyAngle
	AutoReplyRatio string `json:"arr"`
}

// DashboardService is the read side consumed by the UI
type DashboardService interface {
	GetKPIs(ctx context.Context) (*KPISummary, error)
	GetWeeklyKPIs(ctx context.Context) (*KPISummary, error)
	ListCampaignPerformance(ctx context.Context, since string) ([]*CampaignPerformance, error)
	// GetDailySeries returns one point per date, days = 0 selects month to date
	GetDailySeries(ctx context.Context, days int) ([]*DailyPoint, error)
	GetWarmupHealth(ctx context.Context) (*WarmupSummary, error)
	ListMonthlyReports(ctx context.Context) ([]*MonthlyReport, error)
	ListCopyAngles(ctx context.Context, months int) ([]*CopyAngleView, error)
}
