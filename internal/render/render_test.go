package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Mnafierce/agentwatch/internal/core"
)

func sampleReport() core.AssembledReport {
	return core.AssembledReport{
		ID: "test-report",
		Selection: core.FilterSelection{
			Sector: "Santé", Country: "Tous", Company: "Pfizer", Keyword: "autonomous AI agents",
		},
		Insights: []string{
			"Pfizer investit dans des agents IA pour le suivi post-opératoire.",
			"Mayo Clinic pilote un programme IA pour le tri des patients chroniques.",
		},
		CompanyNote:     "🔎 Focus sur **Pfizer**",
		Recommendations: []string{"Recommandation : déployer Salesforce Health Cloud pour le suivi intelligent des patients."},
		GeneratedAt:     time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestReportHTMLContainsSelectionAndInsights(t *testing.T) {
	htmlDoc, err := ReportHTML(sampleReport())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, want := range []string{
		"<strong>Secteur :</strong> Santé",
		"<strong>Entreprise :</strong> Pfizer",
		"01 June 2025",
		"<li>Pfizer investit dans des agents IA pour le suivi post-opératoire.</li>",
		"Focus sur **Pfizer**",
		"Salesforce Health Cloud",
	} {
		if !strings.Contains(htmlDoc, want) {
			t.Errorf("Expected HTML to contain %q", want)
		}
	}
}

func TestReportHTMLOmitsEmptyNotes(t *testing.T) {
	rep := sampleReport()
	rep.CompanyNote = ""
	rep.CountryNote = ""
	htmlDoc, err := ReportHTML(rep)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if strings.Contains(htmlDoc, "<p></p>") {
		t.Error("Expected empty notes to be omitted entirely")
	}
}

func TestReportTextJoinsInsightsAndNotes(t *testing.T) {
	text := ReportText(sampleReport())
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 2 insights + 1 note, got %d lines: %q", len(lines), text)
	}
	if lines[2] != "🔎 Focus sur **Pfizer**" {
		t.Errorf("Expected the company note last, got %q", lines[2])
	}
}

func TestReportTextEmptyReport(t *testing.T) {
	text := ReportText(core.AssembledReport{})
	if text != "Aucune donnée disponible." {
		t.Errorf("Expected the no-data placeholder, got %q", text)
	}
}

func TestReportTextIncludesCompanySections(t *testing.T) {
	rep := core.AssembledReport{
		Companies: []core.CompanySection{
			{Company: "Pfizer", Insights: []string{"Insight A"}},
			{Company: "Zara", Insights: []string{"Insight B"}},
		},
	}
	text := ReportText(rep)
	if !strings.Contains(text, "Pfizer : Insight A") || !strings.Contains(text, "Zara : Insight B") {
		t.Errorf("Expected per-company lines, got %q", text)
	}
}

func TestReportMarkdownWritesFile(t *testing.T) {
	dir := t.TempDir()
	rep := sampleReport()
	rep.Scientific = []core.SourceRecord{{Title: "Paper", Link: "http://arxiv.org/abs/1", Summary: "abstract", DateLabel: "2025-05-30T00:00:00Z"}}
	rep.NewsConfigMissing = true

	path, err := ReportMarkdown(rep, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Expected the file under %s, got %s", dir, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected to read the report back, got %v", err)
	}
	md := string(content)
	for _, want := range []string{
		"# Rapport de veille stratégique IA – 2025-06-01",
		"[Paper](http://arxiv.org/abs/1)",
		"Clé API SerpAPI manquante",
		"🔎 Focus sur **Pfizer**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}
}

func TestTruncateCutsOnWordBoundary(t *testing.T) {
	got := truncate("alpha beta gamma", 12)
	if got != "alpha beta..." {
		t.Errorf("Expected truncation on a word boundary, got %q", got)
	}
	if truncate("short", 10) != "short" {
		t.Error("Expected short strings to pass through unchanged")
	}
}
