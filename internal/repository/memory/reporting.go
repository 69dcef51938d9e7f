package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrprime/campaign-sync/internal/domain"
)

type MonthlyReportRepository struct {
	mu      sync.RWMutex
	reports map[string]domain.MonthlyReport
}

func NewMonthlyReportRepository() *MonthlyReportRepository {
	return &MonthlyReportRepository{reports: make(map[string]domain.MonthlyReport)}
}

// Upsert keeps the curated columns of an existing month
func (r *MonthlyReportRepository) Upsert(ctx context.Context, report *domain.MonthlyReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *report
	stored.BookedCalls = nil
	stored.BookedCallsRate = nil
	if existing, ok := r.reports[report.Month]; ok {
		stored.BookedCalls = existing.BookedCalls
		stored.BookedCallsRate = existing.BookedCallsRate
	}
	r.reports[report.Month] = stored
	return nil
}

func (r *MonthlyReportRepository) List(ctx context.Context) ([]*domain.MonthlyReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.MonthlyReport, 0, len(r.reports))
	for _, m := range r.reports {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

// SetBookedCalls stands in for the manual edit of the curated columns
func (r *MonthlyReportRepository) SetBookedCalls(month string, calls int64, rate float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m := r.reports[month]
	m.Month = month
	m.BookedCalls = &calls
	m.BookedCallsRate = &rate
	r.reports[month] = m
}
