// Package memory keeps every repository in process memory. It backs
// STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
)

type CampaignRepository struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
}

func NewCampaignRepository() *CampaignRepository {
	return &CampaignRepository{campaigns: make(map[string]domain.Campaign)}
}

func (r *CampaignRepository) UpsertMany(ctx context.Context, campaigns []*domain.Campaign) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range campaigns {
		stored := *c
		if stored.UpdatedAt.IsZero() {
			stored.UpdatedAt = time.Now().UTC()
		}
		r.campaigns[c.ID] = stored
	}
	return nil
}

func (r *CampaignRepository) ListByStatus(ctx context.Context, statuses ...domain.CampaignStatus) ([]*domain.Campaign, error) {
	wanted := make(map[domain.CampaignStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}
	return r.filter(ctx, func(c domain.Campaign) bool {
		return len(wanted) == 0 || wanted[c.Status]
	})
}

func (r *CampaignRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Campaign, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return r.filter(ctx, func(c domain.Campaign) bool {
		return wanted[c.ID]
	})
}

func (r *CampaignRepository) CountByStatus(ctx context.Context, status domain.CampaignStatus) (int, error) {
	campaigns, err := r.ListByStatus(ctx, status)
	if err != nil {
		return 0, err
	}
	return len(campaigns), nil
}

// Get returns a copy of one campaign
func (r *CampaignRepository) Get(id string) (domain.Campaign, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.campaigns[id]
	return c, ok
}

func (r *CampaignRepository) filter(ctx context.Context, keep func(domain.Campaign) bool) ([]*domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Campaign{}
	for _, c := range r.campaigns {
		if keep(c) {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
