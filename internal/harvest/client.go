// Package harvest is a minimal client for the Harvest v2 REST API.
package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mgarrido/harvest-export/internal/logging"
)

const defaultBaseURL = "https://api.harvestapp.com/v2"

// perPage is the service's maximum page size.
const perPage = 100

const requestTimeout = 30 * time.Second

// Client is an authenticated Harvest API client.
type Client struct {
	// BaseURL may be overridden in tests; defaults to the public API.
	BaseURL string

	accountID  string
	token      string
	userAgent  string
	httpClient *http.Client
	log        logging.Logger
}

// NewClient creates a client for the given account credentials.
func NewClient(accountID, token, userAgent string, log logging.Logger) *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		accountID:  accountID,
		token:      token,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

// ListTimeEntries fetches every time entry in [from, to] (inclusive,
// YYYY-MM-DD), following pagination until exhausted. userID, when
// non-empty, narrows results server-side. Any transport error or
// non-200 status on any page fails the whole fetch; no partial result
// is returned.
func (c *Client) ListTimeEntries(ctx context.Context, from, to, userID string) ([]TimeEntry, error) {
	var all []TimeEntry
	total := 0
	page := 1
	for {
		entries, next, totalEntries, err := c.fetchPage(ctx, from, to, userID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
		total = totalEntries
		c.log.Debugf("fetched page %d (%d entries)", page, len(entries))
		if next == nil {
			break
		}
		page = *next
	}
	c.log.Infof("fetched %d time entries from %s to %s (API reports %d total)", len(all), from, to, total)
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, from, to, userID string, page int) ([]TimeEntry, *int, int, error) {
	q := url.Values{
		"from":     {from},
		"to":       {to},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	if userID != "" {
		q.Set("user_id", userID)
	}
	endpoint := c.BaseURL + "/time_entries?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Harvest-Account-ID", c.accountID)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("harvest API request failed on page %d: %w", page, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, nil, 0, fmt.Errorf("reading response body on page %d: %w", page, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, nil, 0, fmt.Errorf("harvest API error %d on page %d: %s", resp.StatusCode, page, string(body))
	}

	var pr timeEntriesResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, nil, 0, fmt.Errorf("decoding harvest response on page %d: %w", page, err)
	}
	return pr.TimeEntries, pr.NextPage, pr.TotalEntries, nil
}
