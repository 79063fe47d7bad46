// Package report assembles strategic reports from the source adapters, the
// static insight table and the recommendation rules. Every step is
// individually fail-soft: an empty or failed section never prevents the
// remaining sections from being produced.
package report

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/insights"
	"github.com/Mnafierce/agentwatch/internal/logger"
	"github.com/Mnafierce/agentwatch/internal/recommend"
	"github.com/Mnafierce/agentwatch/internal/sources/news"
)

// PreprintSearcher is the preprint adapter contract consumed by the
// assembler.
type PreprintSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]core.SourceRecord, error)
}

// NewsSearcher is the news adapter contract consumed by the assembler.
type NewsSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]core.SourceRecord, error)
}

// Assembler builds reports for a filter selection.
type Assembler struct {
	preprints  PreprintSearcher
	news       NewsSearcher
	maxResults int
}

// NewAssembler creates an assembler over the given adapters. maxResults
// caps each section; values <= 0 fall back to 5.
func NewAssembler(preprints PreprintSearcher, newsSearcher NewsSearcher, maxResults int) *Assembler {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Assembler{preprints: preprints, news: newsSearcher, maxResults: maxResults}
}

// Assemble produces a complete report for the selection. It never returns
// an error: adapter failures degrade individual sections and the report is
// always renderable.
func (a *Assembler) Assemble(ctx context.Context, sel core.FilterSelection) core.AssembledReport {
	rep := core.AssembledReport{
		ID:          uuid.NewString(),
		Selection:   sel,
		GeneratedAt: time.Now(),
	}

	// Scientific results from the combined query.
	scientific, err := a.preprints.Search(ctx, CombinedQuery(sel), a.maxResults)
	if err != nil {
		logger.Warn("preprint search degraded to empty", "error", err.Error())
		scientific = nil
	}
	rep.Scientific = scientific

	// News only when a specific company is selected.
	if sel.Company == core.AllCompanies {
		rep.NewsSkipped = true
	} else {
		newsQuery := strings.TrimSpace(sel.Company + " " + sel.Keyword)
		results, err := a.news.Search(ctx, newsQuery, a.maxResults)
		switch {
		case errors.Is(err, news.ErrMissingAPIKey):
			rep.NewsConfigMissing = true
		case err != nil:
			logger.Warn("news search degraded to empty", "error", err.Error())
		default:
			rep.News = results
		}
	}

	// Static insights, single or multi-company mode.
	ins, countryNote, companyNote := insights.Lookup(sel.Sector, sel.Country, sel.Company)
	rep.Insights = ins
	rep.CountryNote = countryNote
	rep.CompanyNote = companyNote

	recommendInputs := append([]string(nil), ins...)
	if sel.Company == core.AllCompanies {
		rep.Companies = companySections(sel)
		for _, section := range rep.Companies {
			recommendInputs = append(recommendInputs, section.Insights...)
		}
	}

	rep.Recommendations = recommend.Recommend(sel.Sector, recommendInputs, rep.Scientific, rep.News)
	return rep
}

// CombinedQuery joins the free-text keyword with the company and sector
// filters, omitting wildcard values.
func CombinedQuery(sel core.FilterSelection) string {
	parts := []string{sel.Keyword}
	if sel.Company != core.AllCompanies && sel.Company != "" {
		parts = append(parts, sel.Company)
	}
	if sel.Sector != core.AllSectors && sel.Sector != "" {
		parts = append(parts, sel.Sector)
	}
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, " ")
}

// companySections performs one independent insight lookup per known
// company. A company without data yields an empty section; it never blanks
// out the others.
func companySections(sel core.FilterSelection) []core.CompanySection {
	sections := make([]core.CompanySection, 0, len(core.Companies)-1)
	for _, company := range core.Companies {
		if company == core.AllCompanies {
			continue
		}
		ins, _, _ := insights.Lookup(sel.Sector, sel.Country, company)
		sections = append(sections, core.CompanySection{Company: company, Insights: ins})
	}
	return sections
}
