package arxiv

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func atomFeed(entries string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query Results</title>
%s
</feed>`, entries)
}

func atomEntry(title, link, summary, published string) string {
	pub := ""
	if published != "" {
		pub = "<published>" + published + "</published>"
	}
	return fmt.Sprintf(`  <entry>
    <id>%s</id>
    <title>%s</title>
    <summary>%s</summary>
    <link href="%s" rel="alternate" type="text/html"/>
    %s
  </entry>`, link, title, summary, link, pub)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second), srv
}

func TestSearchParsesEntries(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		fmt.Fprint(w, atomFeed(
			atomEntry("Autonomous Agents in Hospitals", "http://arxiv.org/abs/2501.00001",
				"We study  autonomous\n agents.", "2025-01-10T12:00:00Z"),
		))
	})

	records, err := client.Search(context.Background(), "autonomous AI agents", 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if gotQuery != "all:autonomous AI agents" {
		t.Errorf("Expected search_query 'all:autonomous AI agents', got %q", gotQuery)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Title != "Autonomous Agents in Hospitals" {
		t.Errorf("Unexpected title %q", rec.Title)
	}
	if rec.Link != "http://arxiv.org/abs/2501.00001" {
		t.Errorf("Unexpected link %q", rec.Link)
	}
	if rec.Summary != "We study autonomous agents." {
		t.Errorf("Expected whitespace-collapsed summary, got %q", rec.Summary)
	}
	if rec.Published.IsZero() {
		t.Error("Expected a parsed published time")
	}
}

func TestSearchCapsResults(t *testing.T) {
	entries := ""
	for i := 0; i < 10; i++ {
		entries += atomEntry(fmt.Sprintf("Paper %d", i), fmt.Sprintf("http://arxiv.org/abs/%d", i),
			"summary", "2025-01-10T12:00:00Z") + "\n"
	}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, atomFeed(entries))
	})

	records, err := client.Search(context.Background(), "agents", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) > 3 {
		t.Errorf("Expected at most 3 records, got %d", len(records))
	}
}

func TestSearchSinceFiltersOldAndUnparseable(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, atomFeed(
			atomEntry("Fresh", "http://arxiv.org/abs/1", "s", "2025-01-14T00:00:00Z")+"\n"+
				atomEntry("Stale", "http://arxiv.org/abs/2", "s", "2024-12-01T00:00:00Z")+"\n"+
				atomEntry("NoDate", "http://arxiv.org/abs/3", "s", ""),
		))
	})
	client.now = func() time.Time { return now }

	records, err := client.SearchSince(context.Background(), "agents", 5, 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected only the fresh record, got %d", len(records))
	}
	if records[0].Title != "Fresh" {
		t.Errorf("Expected the fresh record, got %q", records[0].Title)
	}
	cutoff := now.AddDate(0, 0, -7)
	if records[0].Published.Before(cutoff) {
		t.Errorf("Returned record older than the window: %v", records[0].Published)
	}
}

func TestSearchFailsSoftOnServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	records, err := client.Search(context.Background(), "agents", 5)
	if err != nil {
		t.Fatalf("Expected fail-soft behavior, got error %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty result on server error, got %d records", len(records))
	}
}

func TestSearchFailsSoftOnUnreachableHost(t *testing.T) {
	client := New("http://127.0.0.1:1", 500*time.Millisecond)
	records, err := client.Search(context.Background(), "agents", 5)
	if err != nil {
		t.Fatalf("Expected fail-soft behavior, got error %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected empty result on transport failure, got %d records", len(records))
	}
}

func TestCleanTextStripsMarkup(t *testing.T) {
	got := CleanText("<p>Hello   <b>world</b></p>\n twice")
	if got != "Hello world twice" {
		t.Errorf("Expected cleaned text, got %q", got)
	}
}
