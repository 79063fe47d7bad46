// Package arxiv fetches recent preprints from the arXiv Atom API and
// normalizes them into source records.
package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/logger"
)

// DefaultBaseURL is the public arXiv API endpoint.
const DefaultBaseURL = "http://export.arxiv.org/api/query"

// DefaultWindowDays bounds how old a preprint may be when date filtering is
// requested.
const DefaultWindowDays = 7

// Client queries the arXiv API. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
	parser  *gofeed.Parser
	now     func() time.Time
}

// New creates an arXiv client. baseURL may be empty to use the public
// endpoint; timeout bounds every request.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		parser:  gofeed.NewParser(),
		now:     time.Now,
	}
}

// Search returns up to maxResults preprints matching the query, newest
// first. Transport failures and non-200 responses degrade to an empty
// result rather than an error; the interactive path never fails because the
// feed is unreachable.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]core.SourceRecord, error) {
	return c.search(ctx, query, maxResults, 0)
}

// SearchSince behaves like Search but drops entries published more than
// windowDays ago. Entries whose timestamp cannot be parsed are skipped
// without aborting the batch.
func (c *Client) SearchSince(ctx context.Context, query string, maxResults, windowDays int) ([]core.SourceRecord, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return c.search(ctx, query, maxResults, windowDays)
}

func (c *Client) search(ctx context.Context, query string, maxResults, windowDays int) ([]core.SourceRecord, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "lastUpdatedDate")
	params.Set("sortOrder", "descending")
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arxiv request: %w", err)
	}
	req.Header.Set("User-Agent", "AgentWatch/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("arXiv fetch failed", "query", query, "error", err.Error())
		return []core.SourceRecord{}, nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("arXiv returned non-200 status", "query", query, "status", resp.StatusCode)
		return []core.SourceRecord{}, nil
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		logger.Warn("arXiv feed parse failed", "query", query, "error", err.Error())
		return []core.SourceRecord{}, nil
	}

	var cutoff time.Time
	if windowDays > 0 {
		cutoff = c.now().AddDate(0, 0, -windowDays)
	}

	records := make([]core.SourceRecord, 0, len(feed.Items))
	for _, item := range feed.Items {
		if len(records) >= maxResults {
			break
		}
		if windowDays > 0 {
			// A nil parsed time means the source timestamp did not parse;
			// skip the entry but keep processing the batch.
			if item.PublishedParsed == nil || item.PublishedParsed.Before(cutoff) {
				continue
			}
		}
		rec := core.SourceRecord{
			Title:     CleanText(item.Title),
			Link:      item.Link,
			Summary:   CleanText(item.Description),
			DateLabel: item.Published,
		}
		if item.PublishedParsed != nil {
			rec.Published = *item.PublishedParsed
		}
		records = append(records, rec)
	}

	logger.Debug("arXiv search completed", "query", query, "results_found", len(records))
	return records, nil
}

// CleanText strips markup from a feed-provided string and collapses runs of
// whitespace. arXiv abstracts arrive with hard line breaks and occasionally
// embedded HTML.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<>") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
