// Package core defines the domain types shared across the AgentWatch
// aggregation pipeline: filter selections, normalized source records,
// assembled reports and trends snapshots.
package core

import "time"

// Sector, country and company selectors are closed sets. The first entry of
// each list is the wildcard value shown by the dashboard.
const (
	AllSectors   = "Tous"
	AllCountries = "Tous"
	AllCompanies = "Toutes"
)

// Sectors lists the tracked business verticals.
var Sectors = []string{AllSectors, "Santé", "Finance", "Éducation", "Retail"}

// Countries lists the selectable countries.
var Countries = []string{AllCountries, "Canada", "États-Unis", "France", "Allemagne"}

// Companies lists the selectable companies.
var Companies = []string{AllCompanies, "Pfizer", "JP Morgan", "Mayo Clinic", "OpenAI", "Amazon", "Coursera", "Zara"}

// DefaultKeyword is the free-text query preloaded in the keyword field.
const DefaultKeyword = "autonomous AI agents"

// FilterSelection captures the dashboard filters for one report generation.
// It is read once per interaction and never mutated afterwards.
type FilterSelection struct {
	Sector  string `json:"sector"`  // One of Sectors
	Country string `json:"country"` // One of Countries
	Company string `json:"company"` // One of Companies
	Keyword string `json:"keyword"` // Free-text search keyword
}

// DefaultSelection returns a selection with every filter on its wildcard
// value and the default keyword.
func DefaultSelection() FilterSelection {
	return FilterSelection{
		Sector:  AllSectors,
		Country: AllCountries,
		Company: AllCompanies,
		Keyword: DefaultKeyword,
	}
}

// SourceRecord is one normalized result from an external source adapter.
type SourceRecord struct {
	Title     string    `json:"title"`     // Result title
	Link      string    `json:"link"`      // Canonical URL
	Summary   string    `json:"summary"`   // Abstract or news snippet
	Published time.Time `json:"published"` // Publication time, zero when the source gave none
	DateLabel string    `json:"date_label"` // Source-provided display date, possibly a placeholder
}

// CompanySection is one subsection of a multi-company report.
type CompanySection struct {
	Company  string   `json:"company"`  // Company name
	Insights []string `json:"insights"` // Static insights for that company's sector
}

// AssembledReport is the full output of one "generate report" action. It is
// built fresh per action and discarded after rendering or export.
type AssembledReport struct {
	ID                string           `json:"id"`                  // Unique identifier for the report
	Selection         FilterSelection  `json:"selection"`           // Filters active at generation time
	Scientific        []SourceRecord   `json:"scientific"`          // arXiv preprint results
	News              []SourceRecord   `json:"news"`                // Google News results
	NewsSkipped       bool             `json:"news_skipped"`        // True when no company is selected
	NewsConfigMissing bool             `json:"news_config_missing"` // True when the news API key is absent
	Insights          []string         `json:"insights"`            // Static insights for the selected sector
	CountryNote       string           `json:"country_note"`        // Derived note, empty when country is the wildcard
	CompanyNote       string           `json:"company_note"`        // Derived note, empty when company is the wildcard
	Companies         []CompanySection `json:"companies"`           // Per-company subsections (multi-company mode)
	Recommendations   []string         `json:"recommendations"`     // Canned recommendation sentences
	GeneratedAt       time.Time        `json:"generated_at"`        // Report generation timestamp
}

// MultiCompany reports whether the report was assembled in multi-company
// mode (one subsection per known company).
func (r AssembledReport) MultiCompany() bool {
	return r.Selection.Company == AllCompanies
}

// TrendsSnapshot holds the most recent background-refreshed records per
// sector. A snapshot is immutable once published; refreshes replace the
// whole structure rather than mutating it in place.
type TrendsSnapshot struct {
	Sectors    map[string][]SourceRecord `json:"sectors"`     // Sector key -> concatenated arXiv and news records
	LastUpdate time.Time                 `json:"last_update"` // When the snapshot was built
}
