package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Mnafierce/agentwatch/internal/core"
	"github.com/Mnafierce/agentwatch/internal/export"
	"github.com/Mnafierce/agentwatch/internal/render"
)

// SectorBlurb is one static "Tendances par secteur" panel entry.
type SectorBlurb struct {
	Sector string
	Lines  []string
}

// ChartValue is one bar of the hardcoded investment-growth chart.
type ChartValue struct {
	Sector  string
	Percent int
}

// sectorBlurbs reproduces the static trend panels of the dashboard.
var sectorBlurbs = []SectorBlurb{
	{
		Sector: "🏥 Santé",
		Lines: []string{
			"🧬 **Mayo Clinic** utilise des agents IA pour le tri des patients.",
			"🩺 **Pfizer** teste un agent IA autonome pour le suivi post-traitement.",
			"🧠 Étude Arxiv : \"Autonomous Medical Agents 2025\".",
		},
	},
	{
		Sector: "💰 Finance",
		Lines: []string{
			"🏦 **Goldman Sachs** implémente un agent IA pour le monitoring des risques.",
			"💸 **JP Morgan** développe un assistant IA pour l'investissement personnalisé.",
			"📈 CB Insights : +62% d'investissements IA en finance au Q1 2025.",
		},
	},
}

// chartValues holds the illustrative Q1 2025 investment-growth figures shown
// next to the trends panel.
var chartValues = []ChartValue{
	{Sector: "Santé", Percent: 48},
	{Sector: "Finance", Percent: 62},
	{Sector: "Éducation", Percent: 35},
	{Sector: "Retail", Percent: 41},
}

// DashboardData feeds the dashboard template.
type DashboardData struct {
	Selection    core.FilterSelection
	Sectors      []string
	Countries    []string
	Companies    []string
	Blurbs       []SectorBlurb
	Chart        []ChartValue
	Trends       *core.TrendsSnapshot
	TrendOrder   []string
	Notice       string
	PDFAvailable bool
	Now          time.Time
}

// ReportData feeds the report template.
type ReportData struct {
	Report core.AssembledReport
	Notice string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	data := DashboardData{
		Selection:    core.DefaultSelection(),
		Sectors:      core.Sectors,
		Countries:    core.Countries,
		Companies:    core.Companies,
		Blurbs:       sectorBlurbs,
		Chart:        chartValues,
		Trends:       s.watcher.Snapshot(),
		TrendOrder:   trendOrder(),
		Notice:       r.URL.Query().Get("notice"),
		PDFAvailable: s.pdf.Available(),
		Now:          time.Now(),
	}
	s.renderPage(w, "dashboard.html", data)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromForm(r)
	rep := s.assembler.Assemble(r.Context(), sel)
	s.renderPage(w, "report.html", ReportData{Report: rep})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.watcher.RefreshNow(r.Context())
	http.Redirect(w, r, "/?notice="+url.QueryEscape("Tendances mises à jour."), http.StatusSeeOther)
}

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromForm(r)
	rep := s.assembler.Assemble(r.Context(), sel)

	htmlDoc, err := render.ReportHTML(rep)
	if err != nil {
		s.log.Error("Failed to render report HTML", "error", err)
		http.Error(w, "Échec du rendu du rapport", http.StatusInternalServerError)
		return
	}

	pdf, err := s.pdf.Render(r.Context(), htmlDoc)
	if errors.Is(err, export.ErrConverterNotFound) {
		http.Error(w, "Convertisseur PDF introuvable sur ce serveur (Chrome/Chromium requis).", http.StatusBadGateway)
		return
	}
	if err != nil {
		s.log.Error("PDF conversion failed", "error", err)
		http.Error(w, "Échec de la génération du PDF", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="rapport_ia.pdf"`)
	if _, err := w.Write(pdf); err != nil {
		s.log.Warn("Failed to write PDF response", "error", err)
	}
}

func (s *Server) handleExportNotion(w http.ResponseWriter, r *http.Request) {
	sel := selectionFromForm(r)
	rep := s.assembler.Assemble(r.Context(), sel)

	err := s.notion.SaveReport(r.Context(), rep)
	notice := "Rapport enregistré dans le workspace Notion."
	switch {
	case errors.Is(err, export.ErrMissingCredentials):
		notice = "⚠️ Clé API ou ID Notion manquant : export désactivé."
	case err != nil:
		s.log.Error("Workspace export failed", "error", err)
		notice = "Échec de l'export vers le workspace."
	}
	s.renderPage(w, "report.html", ReportData{Report: rep, Notice: notice})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","last_trends_update":%q}`, s.watcher.Snapshot().LastUpdate.Format(time.RFC3339))
}

func (s *Server) renderPage(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, name, data); err != nil {
		s.log.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, "Erreur de rendu", http.StatusInternalServerError)
	}
}

// selectionFromForm reads the filter selection from the submitted form,
// substituting wildcard defaults for absent values.
func selectionFromForm(r *http.Request) core.FilterSelection {
	_ = r.ParseForm()
	sel := core.FilterSelection{
		Sector:  pickValue(r.FormValue("sector"), core.Sectors, core.AllSectors),
		Country: pickValue(r.FormValue("country"), core.Countries, core.AllCountries),
		Company: pickValue(r.FormValue("company"), core.Companies, core.AllCompanies),
		Keyword: r.FormValue("keyword"),
	}
	if sel.Keyword == "" {
		sel.Keyword = core.DefaultKeyword
	}
	return sel
}

// pickValue keeps the submitted value only when it belongs to the closed
// set; anything else falls back to the wildcard.
func pickValue(value string, allowed []string, fallback string) string {
	for _, v := range allowed {
		if v == value {
			return v
		}
	}
	return fallback
}

func trendOrder() []string {
	var order []string
	for _, s := range core.Sectors {
		if s != core.AllSectors {
			order = append(order, s)
		}
	}
	return order
}
