package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mrprime/campaign-sync/internal/domain"
	"github.com/mrprime/campaign-sync/pkg/logger"
	"github.com/mrprime/campaign-sync/pkg/tracing"
)

// AccountSyncService walks the cursored accounts list and upserts every mailbox
type AccountSyncService struct {
	api       domain.OutreachAPI
	repo      domain.AccountRepository
	logger    logger.Logger
	batchSize int
	now       func() time.Time
}

func NewAccountSyncService(api domain.OutreachAPI, repo domain.AccountRepository, logger logger.Logger) *AccountSyncService {
	return &AccountSyncService{
		api:       api,
		repo:      repo,
		logger:    logger,
		batchSize: domain.AccountUpsertBatchSize,
		now:       time.Now,
	}
}

func (s *AccountSyncService) Sync(ctx context.Context) (int, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "AccountSyncService", "Sync")
	defer span.End()

	accounts, err := s.fetchAll(ctx)
	if err != nil {
		tracing.MarkSpanError(ctx, err)
		return 0, err
	}
	if len(accounts) == 0 {
		return 0, nil
	}

	for batch, offset := 0, 0; offset < len(accounts); batch, offset = batch+1, offset+s.batchSize {
		end := offset + s.batchSize
		if end > len(accounts) {
			end = len(accounts)
		}
		if err := s.repo.UpsertMany(ctx, accounts[offset:end]); err != nil {
			tracing.MarkSpanError(ctx, err)
			return 0, fmt.Errorf("failed to upsert accounts batch %d (offset %d): %w", batch, offset, err)
		}
	}

	tracing.AddAttribute(ctx, "accounts", len(accounts))
	s.logger.WithField("count", len(accounts)).Info("Account snapshots synced")
	return len(accounts), nil
}

func (s *AccountSyncService) fetchAll(ctx context.Context) ([]*domain.Account, error) {
	now := s.now().UTC()
	seen := make(map[string]bool)
	var accounts []*domain.Account
	cursor := ""

	for {
		page, err := s.api.ListAccounts(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, a := range page.Items {
			accounts = append(accounts, &domain.Account{
				Email:        a.Email,
				FirstName:    a.FirstName,
				LastName:     a.LastName,
				Status:       a.Status,
				WarmupStatus: a.WarmupStatus,
				ProviderCode: a.ProviderCode,
				WarmupScore:  a.WarmupScore,
				UpdatedAt:    now,
			})
		}

		next := page.NextStartingAfter
		if next == "" {
			return accounts, nil
		}
		if seen[next] {
			s.logger.WithField("cursor", next).Warn("Accounts cursor repeated, stopping pagination")
			return accounts, nil
		}
		seen[next] = true
		cursor = next
	}
}
