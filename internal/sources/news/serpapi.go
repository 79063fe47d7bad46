// Package news fetches Google News results through SerpAPI and normalizes
// them into source records.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/logger"
)

// DefaultBaseURL is the SerpAPI search endpoint.
const DefaultBaseURL = "https://serpapi.com/search"

// Display defaults substituted for optional fields the API may omit.
const (
	PlaceholderDate    = "Date non précisée"
	PlaceholderSnippet = "Pas de description disponible."
)

// ErrMissingAPIKey signals that the news feature is unconfigured. Callers
// surface it as a distinct notice instead of an empty section.
var ErrMissingAPIKey = errors.New("news: SerpAPI key is not configured")

// Client performs Google News searches via SerpAPI (tbm=nws engine).
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// New creates a news client. An empty apiKey is allowed; every search then
// reports ErrMissingAPIKey.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Search returns up to maxResults news entries for the query. A missing API
// key yields ErrMissingAPIKey; every other failure (transport, non-200,
// malformed body) degrades to an empty result.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]core.SourceRecord, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("tbm", "nws")
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(maxResults))
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create SerpAPI request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("news fetch failed", "query", query, "error", err.Error())
		return []core.SourceRecord{}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("news search returned non-200 status", "query", query, "status", resp.StatusCode)
		return []core.SourceRecord{}, nil
	}

	var apiResponse struct {
		NewsResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Date    string `json:"date"`
			Snippet string `json:"snippet"`
		} `json:"news_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		logger.Warn("news response parse failed", "query", query, "error", err.Error())
		return []core.SourceRecord{}, nil
	}

	records := make([]core.SourceRecord, 0, len(apiResponse.NewsResults))
	for _, item := range apiResponse.NewsResults {
		if len(records) >= maxResults {
			break
		}
		rec := core.SourceRecord{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Snippet,
			DateLabel: item.Date,
		}
		if rec.DateLabel == "" {
			rec.DateLabel = PlaceholderDate
		}
		if rec.Summary == "" {
			rec.Summary = PlaceholderSnippet
		}
		records = append(records, rec)
	}

	logger.Debug("news search completed", "query", query, "results_found", len(records))
	return records, nil
}
