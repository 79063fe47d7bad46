// Package render turns an assembled report into the documents the export
// adapters consume: a standalone HTML page for PDF conversion, a condensed
// text block for the workspace export, and a markdown file for the CLI.
package render

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mnafierce/agentwatch/internal/core"
)

const reportDateLayout = "02 January 2006"

// reportHTMLTemplate mirrors the layout of the original exported PDF:
// selection fields, generation date, the key insights as a bullet list and
// the derived notes.
var reportHTMLTemplate = template.Must(template.New("report").Parse(`<html>
<head><meta charset="UTF-8"><title>Rapport de veille stratégique IA</title></head>
<body>
<h1>Rapport de veille stratégique IA</h1>
<hr>
<p><strong>Secteur :</strong> {{.Report.Selection.Sector}}</p>
<p><strong>Pays :</strong> {{.Report.Selection.Country}}</p>
<p><strong>Entreprise :</strong> {{.Report.Selection.Company}}</p>
<p><strong>Date :</strong> {{.Date}}</p>
<h2>🧠 Informations clés :</h2>
<ul>
{{range .Report.Insights}}<li>{{.}}</li>
{{end}}</ul>
{{if .Report.CountryNote}}<p>{{.Report.CountryNote}}</p>
{{end}}{{if .Report.CompanyNote}}<p>{{.Report.CompanyNote}}</p>
{{end}}{{if .Report.Recommendations}}<h2>💡 Recommandations :</h2>
<ul>
{{range .Report.Recommendations}}<li>{{.}}</li>
{{end}}</ul>
{{end}}</body>
</html>
`))

// ReportHTML renders the report as a standalone HTML document for the PDF
// converter.
func ReportHTML(rep core.AssembledReport) (string, error) {
	data := struct {
		Report core.AssembledReport
		Date   string
	}{
		Report: rep,
		Date:   rep.GeneratedAt.Format(reportDateLayout),
	}
	var sb strings.Builder
	if err := reportHTMLTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render report HTML: %w", err)
	}
	return sb.String(), nil
}

// ReportText builds the condensed text block saved to the workspace: the
// insight list joined line by line plus the derived notes.
func ReportText(rep core.AssembledReport) string {
	lines := append([]string(nil), rep.Insights...)
	for _, section := range rep.Companies {
		for _, ins := range section.Insights {
			lines = append(lines, fmt.Sprintf("%s : %s", section.Company, ins))
		}
	}
	if rep.CountryNote != "" {
		lines = append(lines, rep.CountryNote)
	}
	if rep.CompanyNote != "" {
		lines = append(lines, rep.CompanyNote)
	}
	if len(lines) == 0 {
		lines = append(lines, "Aucune donnée disponible.")
	}
	return strings.Join(lines, "\n")
}

// ReportMarkdown writes the full report as a markdown file under outputDir
// and returns its path. Used by the CLI report command.
func ReportMarkdown(rep core.AssembledReport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "reports"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	var md strings.Builder
	md.WriteString(fmt.Sprintf("# Rapport de veille stratégique IA – %s\n\n", rep.GeneratedAt.Format("2006-01-02")))
	md.WriteString(fmt.Sprintf("**Secteur :** %s · **Pays :** %s · **Entreprise :** %s\n\n",
		rep.Selection.Sector, rep.Selection.Country, rep.Selection.Company))

	md.WriteString("## 📰 Recherches scientifiques (arXiv)\n\n")
	writeRecords(&md, rep.Scientific, "Aucun article scientifique trouvé.")

	md.WriteString("## 🗞️ Actualités\n\n")
	switch {
	case rep.NewsConfigMissing:
		md.WriteString("_Clé API SerpAPI manquante : actualités désactivées._\n\n")
	case rep.NewsSkipped:
		md.WriteString("_Sélectionner une entreprise pour activer les actualités._\n\n")
	default:
		writeRecords(&md, rep.News, "Aucune actualité trouvée.")
	}

	md.WriteString("## 📄 Rapport stratégique\n\n")
	if rep.MultiCompany() {
		for _, section := range rep.Companies {
			md.WriteString(fmt.Sprintf("### 🔹 %s\n\n", section.Company))
			writeInsights(&md, section.Insights)
		}
	} else {
		writeInsights(&md, rep.Insights)
		if rep.CountryNote != "" {
			md.WriteString(rep.CountryNote + "\n\n")
		}
		if rep.CompanyNote != "" {
			md.WriteString(rep.CompanyNote + "\n\n")
		}
	}

	md.WriteString("## 💡 Recommandations\n\n")
	for _, r := range rep.Recommendations {
		md.WriteString("- " + r + "\n")
	}
	md.WriteString(fmt.Sprintf("\n🕒 Rapport généré le : **%s**\n", rep.GeneratedAt.Format(reportDateLayout)))

	filename := fmt.Sprintf("rapport_%s.md", rep.GeneratedAt.Format("2006-01-02_150405"))
	filePath := filepath.Join(outputDir, filename)
	if err := os.WriteFile(filePath, []byte(md.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report to %s: %w", filePath, err)
	}
	return filePath, nil
}

func writeRecords(md *strings.Builder, records []core.SourceRecord, emptyMsg string) {
	if len(records) == 0 {
		md.WriteString("_" + emptyMsg + "_\n\n")
		return
	}
	for _, rec := range records {
		md.WriteString(fmt.Sprintf("### [%s](%s)\n\n", rec.Title, rec.Link))
		if rec.DateLabel != "" {
			md.WriteString("📅 " + rec.DateLabel + "\n\n")
		}
		md.WriteString(truncate(rec.Summary, 400) + "\n\n")
	}
}

func writeInsights(md *strings.Builder, insights []string) {
	if len(insights) == 0 {
		md.WriteString("_Aucune donnée disponible._\n\n")
		return
	}
	for _, ins := range insights {
		md.WriteString("- " + ins + "\n")
	}
	md.WriteString("\n")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// Timestamp formats a time the way the dashboard footer displays it.
func Timestamp(t time.Time) string {
	return t.Format(reportDateLayout)
}
