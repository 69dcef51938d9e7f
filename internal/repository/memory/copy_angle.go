package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mrprime/campaign-sync/internal/domain"
)

type CopyAngleRepository struct {
	mu     sync.RWMutex
	angles map[string]domain.CopyAngle
}

func NewCopyAngleRepository() *CopyAngleRepository {
	return &CopyAngleRepository{angles: make(map[string]domain.CopyAngle)}
}

func angleKey(month, name string) string {
	return month + "/" + name
}

func (r *CopyAngleRepository) FindByMonthAndName(ctx context.Context, month, name string) (*domain.CopyAngle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.angles[angleKey(month, name)]
	if !ok {
		return nil, &domain.ErrNotFound{Entity: "copy angle", ID: angleKey(month, name)}
	}
	return &a, nil
}

// Insert stores computed columns only, curated ones start empty
func (r *CopyAngleRepository) Insert(ctx context.Context, angle *domain.CopyAngle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := angleKey(angle.Month, angle.CampaignName)
	if _, exists := r.angles[key]; exists {
		return domain.NewStoreWriteError("copy_angles_monthly", "insert", &duplicateKeyError{key: key})
	}
	r.angles[key] = domain.CopyAngle{
		Month:          angle.Month,
		CampaignName:   angle.CampaignName,
		TotalProspects: angle.TotalProspects,
		TotalReplies:   angle.TotalReplies,
		ReplyRate:      angle.ReplyRate,
		AutoReplies:    angle.AutoReplies,
		UpdatedAt:      angle.UpdatedAt,
	}
	return nil
}

func (r *CopyAngleRepository) UpdateComputed(ctx context.Context, angle *domain.CopyAngle) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := angleKey(angle.Month, angle.CampaignName)
	existing, ok := r.angles[key]
	if !ok {
		return nil
	}
	existing.TotalProspects = angle.TotalProspects
	existing.TotalReplies = angle.TotalReplies
	existing.ReplyRate = angle.ReplyRate
	existing.AutoReplies = angle.AutoReplies
	existing.UpdatedAt = angle.UpdatedAt
	r.angles[key] = existing
	return nil
}

func (r *CopyAngleRepository) ListSince(ctx context.Context, sinceMonth string) ([]*domain.CopyAngle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.CopyAngle{}
	for _, a := range r.angles {
		if a.Month >= sinceMonth {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month > out[j].Month
		}
		if out[i].TotalProspects != out[j].TotalProspects {
			return out[i].TotalProspects > out[j].TotalProspects
		}
		return out[i].CampaignName < out[j].CampaignName
	})
	return out, nil
}

// SetCurated stands in for the manual edit of the curated columns
func (r *CopyAngleRepository) SetCurated(month, name string, positive, bookedCalls int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := angleKey(month, name)
	a := r.angles[key]
	a.Month = month
	a.CampaignName = name
	a.PositiveReplies = &positive
	a.BookedCalls = &bookedCalls
	r.angles[key] = a
}

type duplicateKeyError struct {
	key string
}

func (e *duplicateKeyError) Error() string {
	return "duplicate key " + e.key
}
