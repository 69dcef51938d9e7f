package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
	"golang.org/x/sync/errgroup"
)

// ReplyClassificationService counts this month's unique replying leads per
// sentiment and refreshes the monthly reporting rollup.
type ReplyClassificationService struct {
	api     domain.OutreachAPI
	daily   domain.DailyMetricRepository
	reports domain.MonthlyReportRepository
	logger  logger.Logger
	now     func() time.Time
}

func NewReplyClassificationService(
	api domain.OutreachAPI,
	daily domain.DailyMetricRepository,
	reports domain.MonthlyReportRepository,
	logger logger.Logger,
) *ReplyClassificationService {
	return &ReplyClassificationService{
		api:     api,
		daily:   daily,
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

// sentimentScan is the outcome of paginating one sentiment bucket
type sentimentScan struct {
	leads       map[string]struct{}
	outOfOffice map[string]struct{}
}

func (s *ReplyClassificationService) Classify(ctx context.Context) (*domain.ReplyClassification, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "ReplyClassificationService", "Classify")
	defer span.End()

	now := s.now().UTC()
	boundary := domain.MonthStart(now)
	monthStart, today := domain.MonthToDate(now)

	var positive, notInterested, neutral *sentimentScan
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		positive, err = s.scan(gctx, domain.SentimentPositive, boundary)
		return err
	})
	g.Go(func() (err error) {
		notInterested, err = s.scan(gctx, domain.SentimentNotInterested, boundary)
		return err
	})
	g.Go(func() (err error) {
		neutral, err = s.scan(gctx, domain.SentimentNeutral, boundary)
		return err
	})
	if err := g.Wait(); err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, err
	}

	rows, err := s.daily.List(ctx, domain.DailyMetricFilter{
		StartDate: monthStart,
		EndDate:   today,
		Scope:     domain.DailyScopeAggregate,
	})
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return nil, fmt.Errorf("failed to read aggregate daily rows: %w", err)
	}

	result := &domain.ReplyClassification{
		Month:         monthStart,
		Positive:      len(positive.leads),
		NotInterested: len(notInterested.leads),
		Neutral:       len(neutral.leads),
		OutOfOffice:   len(neutral.outOfOffice),
	}
	for _, row := range rows {
		result.Sent += row.Sent
		result.Contacted += row.NewLeadsContacted
		result.Replies += row.UniqueReplies
		result.AutoReplies += row.UniqueRepliesAutomatic
	}
	result.ReplyRate = domain.ReplyRate(result.Replies, result.Contacted)
	result.PRR = domain.PositiveReplyRate(int64(result.Positive), result.Replies)

	if err := s.reports.Upsert(ctx, result.Report(now)); err != nil {
		s.logger.WithField("error", err.Error()).
			WithField("month", monthStart).
			Error("Failed to upsert monthly reporting rollup")
	}

	s.logger.WithField("month", monthStart).
		WithField("positive", result.Positive).
		WithField("not_interested", result.NotInterested).
		WithField("neutral", result.Neutral).
		WithField("out_of_office", result.OutOfOffice).
		Info("Replies classified")
	return result, nil
}

// scan pages newest-first until the cursor runs out or an email predates boundary
func (s *ReplyClassificationService) scan(ctx context.Context, sentiment int, boundary time.Time) (*sentimentScan, error) {
	result := &sentimentScan{
		leads:       make(map[string]struct{}),
		outOfOffice: make(map[string]struct{}),
	}
	seen := make(map[string]bool)
	cursor := ""

	for {
		page, err := s.api.ListReplyEmails(ctx, sentiment, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list replies with sentiment %d: %w", sentiment, err)
		}

		pastBoundary := false
		for _, email := range page.Items {
			// A zero timestamp never compares as older than the boundary.
			if !email.TimestampCreated.IsZero() && email.TimestampCreated.Before(boundary) {
				pastBoundary = true
				break
			}
			if email.Lead == "" {
				continue
			}
			result.leads[email.Lead] = struct{}{}
			if sentiment == domain.SentimentNeutral && isOutOfOffice(email.Subject) {
				result.outOfOffice[email.Lead] = struct{}{}
			}
		}

		next := page.NextStartingAfter
		if pastBoundary || next == "" || seen[next] {
			return result, nil
		}
		seen[next] = true
		cursor = next
	}
}

func isOutOfOffice(subject string) bool {
	subject = strings.ToLower(subject)
	for _, marker := range domain.OutOfOfficeMarkers {
		if strings.Contains(subject, marker) {
			return true
		}
	}
	return false
}
