package memory

import (
	"github.com/mrprime/campaign-sync/internal/domain"
)

// Store groups one instance of every repository
type Store struct {
	Campaigns      *CampaignRepository
	Accounts       *AccountRepository
	DailyMetrics   *DailyMetricRepository
	MonthlyReports *MonthlyReportRepository
	CopyAngles     *CopyAngleRepository
	SyncRuns       *SyncRunRepository
}

func NewStore() *Store {
	return &Store{
		Campaigns:      NewCampaignRepository(),
		Accounts:       NewAccountRepository(),
		DailyMetrics:   NewDailyMetricRepository(),
		MonthlyReports: NewMonthlyReportRepository(),
		CopyAngles:     NewCopyAngleRepository(),
		SyncRuns:       NewSyncRunRepository(),
	}
}

var (
	_ domain.CampaignRepository      = (*CampaignRepository)(nil)
	_ domain.AccountRepository       = (*AccountRepository)(nil)
	_ domain.DailyMetricRepository   = (*DailyMetricRepository)(nil)
	_ domain.MonthlyReportRepository = (*MonthlyReportRepository)(nil)
	_ domain.CopyAngleRepository     = (*CopyAngleRepository)(nil)
	_ domain.SyncRunRepository       = (*SyncRunRepository)(nil)
)
