package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyMetricFilter_Matches(t *testing.T) {
	aggregate := &DailyMetric{Date: "2025-06-10"}
	perCampaign := &DailyMetric{Date: "2025-06-10", CampaignID: StringPtr("c1")}
	other := &DailyMetric{Date: "2025-06-10", CampaignID: StringPtr("c2")}

	t.Run("date bounds are inclusive", func(t *testing.T) {
		f := DailyMetricFilter{StartDate: "2025-06-10", EndDate: "2025-06-10"}
		assert.True(t, f.Matches(aggregate))
		assert.False(t, DailyMetricFilter{StartDate: "2025-06-11"}.Matches(aggregate))
		assert.False(t, DailyMetricFilter{EndDate: "2025-06-09"}.Matches(aggregate))
	})

	t.Run("scopes", func(t *testing.T) {
		assert.True(t, DailyMetricFilter{Scope: DailyScopeAggregate}.Matches(aggregate))
		assert.False(t, DailyMetricFilter{Scope: DailyScopeAggregate}.Matches(perCampaign))
		assert.True(t, DailyMetricFilter{Scope: DailyScopeCampaigns}.Matches(perCampaign))
		assert.False(t, DailyMetricFilter{Scope: DailyScopeCampaigns}.Matches(aggregate))

		single := DailyMetricFilter{Scope: DailyScopeCampaign, CampaignID: "c1"}
		assert.True(t, single.Matches(perCampaign))
		assert.False(t, single.Matches(other))
		assert.False(t, single.Matches(aggregate))
	})
}

func TestDailyMetric_Key(t *testing.T) {
	assert.Equal(t, "2025-06-10|", (&DailyMetric{Date: "2025-06-10"}).Key())
	assert.Equal(t, "2025-06-10|c1", (&DailyMetric{Date: "2025-06-10", CampaignID: StringPtr("c1")}).Key())
	assert.True(t, (&DailyMetric{}).IsAggregate())
}

func TestDates(t *testing.T) {
	now := time.Date(2025, time.March, 3, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), MonthStart(now))
	assert.Equal(t, "2025-03-03", FormatDate(now))

	start, end := TrailingWindow(now, LightRefreshDays)
	assert.Equal(t, "2025-02-23", start)
	assert.Equal(t, "2025-03-03", end)

	start, end = MonthToDate(now)
	assert.Equal(t, "2025-03-01", start)
	assert.Equal(t, "2025-03-03", end)

	assert.Equal(t, "2024-03-01", MonthsAgo(now, 12))
}

func TestDates_ConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2025, time.April, 1, 2, 0, 0, 0, loc)

	assert.Equal(t, "2025-03-31", FormatDate(now))
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), MonthStart(now))
}
