package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination mocks/mock_monthly_report_repository.go -package mocks github.com/mrprime/campaign-sync/internal/domain MonthlyReportRepository

// MonthlyReport is the recomputed rollup of one calendar month. BookedCalls
// and BookedCallsRate are curated by hand and never written by the sync.
type MonthlyReport struct {
	Month              string    `json:"month"`
	TotalEmailSent     int64     `json:"total_email_sent"`
	TotalLeadContacted int64     `json:"total_lead_contacted"`
	Replies            int64     `json:"replies"`
	ReplyRate          float64   `json:"reply_rate"`
	PositiveReplies    int64     `json:"positive_replies"`
	PRR                float64   `json:"prr"`
	NotInterested      int64     `json:"not_interested"`
	Neutral            int64     `json:"neutral_replies"`
	OutOfOffice        int64     `json:"out_of_office"`
	AutoReplies        int64     `json:"auto_replies"`
	BookedCalls        *int64    `json:"booked_calls"`
	BookedCallsRate    *float64  `json:"booked_calls_rate"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type MonthlyReportRepository interface {
	// Upsert writes every computed column; curated columns are left alone
	Upsert(ctx context.Context, report *MonthlyReport) error
	// List returns all months, newest first
	List(ctx context.Context) ([]*MonthlyReport, error)
}

// Sentiment values of the upstream interest status flag
const (
	SentimentPositive      = 1
	SentimentNotInterested = -1
	SentimentNeutral       = 0
)

// OutOfOfficeMarkers are matched against lower-cased neutral reply subjects
var OutOfOfficeMarkers = []string{
	"automatic reply",
	"out of office",
	"auto-reply",
	"autoreply",
	"away from office",
	"i am out of",
	"on vacation",
	"on leave",
}

// ReplyClassification is the month-to-date sentiment breakdown
type ReplyClassification struct {
	Month         string  `json:"month"`
	Positive      int     `json:"positive"`
	NotInterested int     `json:"notInterested"`
	Neutral       int     `json:"neutral"`
	OutOfOffice   int     `json:"outOfOffice"`
	Sent          int64   `json:"sent"`
	Contacted     int64   `json:"contacted"`
	Replies       int64   `json:"replies"`
	AutoReplies   int64   `json:"autoReplies"`
	ReplyRate     float64 `json:"replyRate"`
	PRR           float64 `json:"prr"`
}

// Report builds the rollup row persisted for the month
func (c *ReplyClassification) Report(now time.Time) *MonthlyReport {
	return &MonthlyReport{
		Month:              c.Month,
		TotalEmailSent:     c.Sent,
		TotalLeadContacted: c.Contacted,
		Replies:            c.Replies,
		ReplyRate:          c.ReplyRate,
		PositiveReplies:    int64(c.Positive),
		PRR:                c.PRR,
		NotInterested:      int64(c.NotInterested),
		Neutral:            int64(c.Neutral),
		OutOfOffice:        int64(c.OutOfOffice),
		AutoReplies:        c.AutoReplies,
		UpdatedAt:          now,
	}
}
