package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/sources/news"
)

type fakeSearcher struct {
	results []core.SourceRecord
	err     error
	queries []string
}

func (f *fakeSearcher) Search(ctx context.Context, query string, maxResults int) ([]core.SourceRecord, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func TestCombinedQuery(t *testing.T) {
	tests := []struct {
		name     string
		sel      core.FilterSelection
		expected string
	}{
		{
			name:     "all filters set",
			sel:      core.FilterSelection{Sector: "Santé", Company: "Pfizer", Keyword: "autonomous AI agents"},
			expected: "autonomous AI agents Pfizer Santé",
		},
		{
			name:     "wildcards omitted",
			sel:      core.FilterSelection{Sector: core.AllSectors, Company: core.AllCompanies, Keyword: "agents"},
			expected: "agents",
		},
		{
			name:     "empty keyword",
			sel:      core.FilterSelection{Sector: "Finance", Company: core.AllCompanies, Keyword: ""},
			expected: "Finance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CombinedQuery(tt.sel); got != tt.expected {
				t.Errorf("Expected query %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestAssembleSingleCompany(t *testing.T) {
	preprints := &fakeSearcher{results: []core.SourceRecord{{Title: "Paper", Link: "http://arxiv.org/abs/1"}}}
	newsSearcher := &fakeSearcher{results: []core.SourceRecord{{Title: "News", Link: "https://n/1"}}}
	assembler := NewAssembler(preprints, newsSearcher, 5)

	sel := core.FilterSelection{Sector: "Santé", Country: "Tous", Company: "Pfizer", Keyword: "autonomous AI agents"}
	rep := assembler.Assemble(context.Background(), sel)

	if rep.ID == "" {
		t.Error("Expected a report ID")
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("Expected a generation timestamp")
	}
	if len(rep.Scientific) != 1 || len(rep.News) != 1 {
		t.Errorf("Expected 1 scientific and 1 news record, got %d and %d", len(rep.Scientific), len(rep.News))
	}
	if rep.NewsSkipped || rep.NewsConfigMissing {
		t.Error("Expected the news section to be active")
	}
	if len(rep.Companies) != 0 {
		t.Errorf("Expected no multi-company sections, got %d", len(rep.Companies))
	}
	if len(rep.Insights) != 2 {
		t.Errorf("Expected the two Santé insights, got %d", len(rep.Insights))
	}
	if rep.CompanyNote != "🔎 Focus sur **Pfizer**" {
		t.Errorf("Unexpected company note %q", rep.CompanyNote)
	}
	if rep.CountryNote != "" {
		t.Errorf("Expected no country note, got %q", rep.CountryNote)
	}

	if len(preprints.queries) != 1 || preprints.queries[0] != "autonomous AI agents Pfizer Santé" {
		t.Errorf("Unexpected preprint queries: %v", preprints.queries)
	}
	if len(newsSearcher.queries) != 1 || newsSearcher.queries[0] != "Pfizer autonomous AI agents" {
		t.Errorf("Unexpected news queries: %v", newsSearcher.queries)
	}
}

func TestAssembleSkipsNewsForWildcardCompany(t *testing.T) {
	preprints := &fakeSearcher{}
	newsSearcher := &fakeSearcher{}
	assembler := NewAssembler(preprints, newsSearcher, 5)

	rep := assembler.Assemble(context.Background(), core.DefaultSelection())

	if !rep.NewsSkipped {
		t.Error("Expected the news section to be skipped")
	}
	if len(newsSearcher.queries) != 0 {
		t.Errorf("Expected no news query for the wildcard company, got %v", newsSearcher.queries)
	}
}

func TestAssembleMultiCompanySections(t *testing.T) {
	assembler := NewAssembler(&fakeSearcher{}, &fakeSearcher{}, 5)
	sel := core.FilterSelection{Sector: "Santé", Country: "Tous", Company: core.AllCompanies, Keyword: "agents"}

	rep := assembler.Assemble(context.Background(), sel)

	if !rep.MultiCompany() {
		t.Fatal("Expected multi-company mode")
	}
	expected := len(core.Companies) - 1
	if len(rep.Companies) != expected {
		t.Fatalf("Expected %d company sections, got %d", expected, len(rep.Companies))
	}
	// Each section resolves independently: the sector insights are shared,
	// but no section blanks out its neighbors.
	for _, section := range rep.Companies {
		if section.Company == "" {
			t.Error("Expected every section to carry its company name")
		}
	}
}

func TestAssembleNewsConfigMissing(t *testing.T) {
	newsSearcher := &fakeSearcher{err: news.ErrMissingAPIKey}
	assembler := NewAssembler(&fakeSearcher{}, newsSearcher, 5)

	sel := core.FilterSelection{Sector: "Finance", Country: "Tous", Company: "JP Morgan", Keyword: "agents"}
	rep := assembler.Assemble(context.Background(), sel)

	if !rep.NewsConfigMissing {
		t.Error("Expected NewsConfigMissing to be set")
	}
	if len(rep.News) != 0 {
		t.Errorf("Expected no news records, got %d", len(rep.News))
	}
	if len(rep.Insights) == 0 {
		t.Error("Expected the insight section to survive the missing key")
	}
}

func TestAssembleFailSoftOnAdapterErrors(t *testing.T) {
	preprints := &fakeSearcher{err: errors.New("upstream down")}
	newsSearcher := &fakeSearcher{err: errors.New("upstream down")}
	assembler := NewAssembler(preprints, newsSearcher, 5)

	sel := core.FilterSelection{Sector: "Finance", Country: "France", Company: "JP Morgan", Keyword: "agents"}
	rep := assembler.Assemble(context.Background(), sel)

	if len(rep.Scientific) != 0 || len(rep.News) != 0 {
		t.Error("Expected empty sections on adapter failure")
	}
	if len(rep.Insights) != 2 {
		t.Errorf("Expected the Finance insights despite adapter failures, got %d", len(rep.Insights))
	}
	if !strings.Contains(rep.CountryNote, "France") {
		t.Errorf("Expected the country note to survive, got %q", rep.CountryNote)
	}
	if len(rep.Recommendations) == 0 {
		t.Error("Expected recommendations over the static insights")
	}
}
