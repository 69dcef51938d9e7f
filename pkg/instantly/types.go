package instantly

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

type CampaignAnalytics struct {
	CampaignID         string
	CampaignName       string
	CampaignStatus     int
	EmailsSentCount    int64
	ReplyCount         int64
	BouncedCount       int64
	TotalOpportunities int64
	LeadsCount         int64
	ContactedCount     int64
	OpenCount          int64
}

type DailyAnalytics struct {
	Date                   string
	Sent                   int64
	Contacted              int64
	NewLeadsContacted      int64
	Opened                 int64
	UniqueOpened           int64
	Replies                int64
	UniqueReplies          int64
	RepliesAutomatic       int64
	UniqueRepliesAutomatic int64
	Clicks                 int64
	UniqueClicks           int64
	Opportunities          int64
	UniqueOpportunities    int64
}

type Account struct {
	Email        string
	FirstName    string
	LastName     string
	Status       int
	WarmupStatus int
	ProviderCode int
	WarmupScore  float64
}

type AccountsPage struct {
	Items             []Account
	NextStartingAfter string
}

// Email is a received reply. TimestampCreated is zero when the API omitted it
// or sent a value that does not parse.
type Email struct {
	ID               string
	Lead             string
	Subject          string
	Sentiment        int
	TimestampCreated time.Time
}

type EmailsPage struct {
	Items             []Email
	NextStartingAfter string
}

// The helpers below are the only place where absent, null or non-numeric
// values are turned into zero.

func intField(r gjson.Result, path string) int64 {
	if v := r.Get(path); v.Type == gjson.Number {
		return v.Int()
	}
	return int64(floatField(r, path))
}

func floatField(r gjson.Result, path string) float64 {
	v := r.Get(path)
	var f float64
	switch v.Type {
	case gjson.Number:
		f = v.Num
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func stringField(r gjson.Result, path string) string {
	v := r.Get(path)
	if v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// listItems returns the array payload, accepting either a bare array or an
// object with an items array
func listItems(res gjson.Result) []gjson.Result {
	if res.IsArray() {
		return res.Array()
	}
	if items := res.Get("items"); items.IsArray() {
		return items.Array()
	}
	return nil
}

func nextCursor(res gjson.Result) string {
	if c := stringField(res, "next_starting_after"); c != "" {
		return c
	}
	return stringField(res, "pagination.next_starting_after")
}

func decodeCampaignAnalytics(res gjson.Result) []CampaignAnalytics {
	if !res.IsArray() {
		return []CampaignAnalytics{}
	}
	items := res.Array()
	out := make([]CampaignAnalytics, 0, len(items))
	for _, item := range items {
		out = append(out, CampaignAnalytics{
			CampaignID:         stringField(item, "campaign_id"),
			CampaignName:       stringField(item, "campaign_name"),
			CampaignStatus:     int(intField(item, "campaign_status")),
			EmailsSentCount:    intField(item, "emails_sent_count"),
			ReplyCount:         intField(item, "reply_count"),
			BouncedCount:       intField(item, "bounced_count"),
			TotalOpportunities: intField(item, "total_opportunities"),
			LeadsCount:         intField(item, "leads_count"),
			ContactedCount:     intField(item, "contacted_count"),
			OpenCount:          intField(item, "open_count"),
		})
	}
	return out
}

func decodeDailyAnalytics(res gjson.Result) []DailyAnalytics {
	if !res.IsArray() {
		return []DailyAnalytics{}
	}
	items := res.Array()
	out := make([]DailyAnalytics, 0, len(items))
	for _, item := range items {
		out = append(out, DailyAnalytics{
			Date:                   stringField(item, "date"),
			Sent:                   intField(item, "sent"),
			Contacted:              intField(item, "contacted"),
			NewLeadsContacted:      intField(item, "new_leads_contacted"),
			Opened:                 intField(item, "opened"),
			UniqueOpened:           intField(item, "unique_opened"),
			Replies:                intField(item, "replies"),
			UniqueReplies:          intField(item, "unique_replies"),
			RepliesAutomatic:       intField(item, "replies_automatic"),
			UniqueRepliesAutomatic: intField(item, "unique_replies_automatic"),
			Clicks:                 intField(item, "clicks"),
			UniqueClicks:           intField(item, "unique_clicks"),
			Opportunities:          intField(item, "opportunities"),
			UniqueOpportunities:    intField(item, "unique_opportunities"),
		})
	}
	return out
}

func decodeAccountsPage(res gjson.Result) *AccountsPage {
	items := listItems(res)
	page := &AccountsPage{
		Items:             make([]Account, 0, len(items)),
		NextStartingAfter: nextCursor(res),
	}
	for _, item := range items {
		page.Items = append(page.Items, Account{
			Email:        stringField(item, "email"),
			FirstName:    stringField(item, "first_name"),
			LastName:     stringField(item, "last_name"),
			Status:       int(intField(item, "status")),
			WarmupStatus: int(intField(item, "warmup_status")),
			ProviderCode: int(intField(item, "provider_code")),
			WarmupScore:  floatField(item, "stat_warmup_score"),
		})
	}
	return page
}

func decodeEmailsPage(res gjson.Result) *EmailsPage {
	items := listItems(res)
	page := &EmailsPage{
		Items:             make([]Email, 0, len(items)),
		NextStartingAfter: nextCursor(res),
	}
	for _, item := range items {
		lead := stringField(item, "lead")
		if lead == "" {
			lead = stringField(item, "from_address_email")
		}
		page.Items = append(page.Items, Email{
			ID:               stringField(item, "id"),
			Lead:             strings.ToLower(strings.TrimSpace(lead)),
			Subject:          stringField(item, "subject"),
			Sentiment:        int(intField(item, "i_status")),
			TimestampCreated: parseTimestamp(stringField(item, "timestamp_created")),
		})
	}
	return page
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000Z0700", "2006-01-02"} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}
