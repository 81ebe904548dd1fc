package gdelt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arthsutra/bazaar-harvester/pkg/httpclient"
)

const (
	// DefaultBaseURL is the GDELT DOC 2.0 article search endpoint.
	DefaultBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

	// DefaultMaxRecords is the per-call record cap requested from the API.
	DefaultMaxRecords = 250

	defaultTimeout = 20 * time.Second

	dayFormat = "20060102"
)

// Record is one raw article entry from a GDELT ArtList response. SeenDate is
// kept verbatim; the API returns it in a compact form the harvester never
// parses.
type Record struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Domain        string `json:"domain"`
	Language      string `json:"language"`
	SourceCountry string `json:"sourcecountry"`
	SeenDate      string `json:"seendate"`
}

type artListResponse struct {
	Articles []Record `json:"articles"`
}

// Client queries the GDELT DOC API for date-bounded article lists.
type Client struct {
	http       httpclient.Client
	baseURL    string
	maxRecords int
}

// NewClient builds a GDELT client. A nil HTTP client falls back to a resty
// client with the default timeout; empty baseURL and non-positive maxRecords
// fall back to the API defaults.
func NewClient(client httpclient.Client, baseURL string, maxRecords int) *Client {
	if client == nil {
		client = httpclient.NewRestyClient(defaultTimeout)
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Client{http: client, baseURL: baseURL, maxRecords: maxRecords}
}

// Search issues one ArtList query for the single-day window starting at day.
// The window runs from day 00:00:00 to the following calendar day 23:59:59,
// sorted by recency descending. A missing articles field yields an empty
// slice; transport errors and non-200 statuses are returned as errors.
func (c *Client) Search(ctx context.Context, query string, day time.Time) ([]Record, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query is empty")
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("mode", "ArtList")
	params.Set("maxrecords", strconv.Itoa(c.maxRecords))
	params.Set("format", "json")
	params.Set("sort", "DateDesc")
	params.Set("STARTDATETIME", day.Format(dayFormat)+"000000")
	params.Set("ENDDATETIME", day.AddDate(0, 0, 1).Format(dayFormat)+"235959")

	resp, err := c.http.Get(ctx, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch gdelt articles: %w", err)
	}

	body := resp.Body()
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("gdelt returned status %d body: %s", resp.StatusCode(), responseSnippet(body))
	}

	var decoded artListResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode gdelt response: %w", err)
	}

	return decoded.Articles, nil
}

// responseSnippet returns a truncated snippet of the response body for logging.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
