// Package instantly is a small read-only client for the Instantly v2 REST API.
package instantly

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/mrprime/campaign-sync/pkg/tracing"
)

const (
	DefaultBaseURL = "https://api.instantly.ai/api/v2"

	// PageSize is the largest page the API serves
	PageSize = 100
)

// HTTPClient is the subset of *http.Client the client needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient HTTPClient
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL, a nil
// httpClient selects http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient HTTPClient) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Fetch issues an authenticated GET for path and returns the parsed JSON body
func (c *Client) Fetch(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		tracing.RecordUpstreamRequest(ctx, path, 0)
		return gjson.Result{}, fmt.Errorf("failed to execute request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	tracing.RecordUpstreamRequest(ctx, path, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return gjson.Result{}, &RemoteAPIError{
			Path:       path,
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response from %s: %w", path, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return gjson.Result{}, nil
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("failed to decode response from %s: invalid JSON", path)
	}

	return gjson.ParseBytes(body), nil
}

// CampaignAnalytics returns per-campaign totals. Empty dates mean lifetime totals.
func (c *Client) CampaignAnalytics(ctx context.Context, startDate, endDate string) ([]CampaignAnalytics, error) {
	query := url.Values{}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}

	res, err := c.Fetch(ctx, "/campaigns/analytics", query)
	if err != nil {
		return nil, err
	}
	return decodeCampaignAnalytics(res), nil
}

// DailyAnalytics returns one record per day in the window. An empty campaignID
// selects the cross-campaign aggregate.
func (c *Client) DailyAnalytics(ctx context.Context, startDate, endDate, campaignID string) ([]DailyAnalytics, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	if campaignID != "" {
		query.Set("campaign_id", campaignID)
	}

	res, err := c.Fetch(ctx, "/campaigns/analytics/daily", query)
	if err != nil {
		return nil, err
	}
	return decodeDailyAnalytics(res), nil
}

// ListAccounts returns one page of sending accounts
func (c *Client) ListAccounts(ctx context.Context, startingAfter string) (*AccountsPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(PageSize))
	if startingAfter != "" {
		query.Set("starting_after", startingAfter)
	}

	res, err := c.Fetch(ctx, "/accounts", query)
	if err != nil {
		return nil, err
	}
	return decodeAccountsPage(res), nil
}

// ListReplyEmails returns one page of received emails with the given interest
// status, newest first
func (c *Client) ListReplyEmails(ctx context.Context, sentiment int, startingAfter string) (*EmailsPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(PageSize))
	query.Set("email_type", "received")
	query.Set("sort_order", "desc")
	query.Set("i_status", strconv.Itoa(sentiment))
	if startingAfter != "" {
		query.Set("starting_after", startingAfter)
	}

	res, err := c.Fetch(ctx, "/emails", query)
	if err != nil {
		return nil, err
	}
	return decodeEmailsPage(res), nil
}

func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
