// Package recommend derives canned CRM-integration recommendations from the
// text assembled for a report. Matching uses a fixed, ordered rule table so
// the output is reproducible run to run.
package recommend

import (
	"strings"

	"github.com/Mnafierce/agentwatch/internal/core"
)

// Rule associates a sector and a conjunction of keywords with one canned
// recommendation sentence. Keywords are matched as lowercase substrings and
// every keyword of a rule must appear in the same text.
type Rule struct {
	Sector   string   // Sector the rule applies to
	Keywords []string // All must be present, case-insensitively
	Sentence string   // Appended once per matching text
}

// Fallback is emitted alone when no rule matches any input text.
const Fallback = "Aucune correspondance sectorielle détectée : envisager une étude d'opportunité Salesforce Einstein généraliste."

// rules is evaluated in order for every scanned text. The table mirrors the
// Salesforce product mapping used by the original analysts.
var rules = []Rule{
	{Sector: "Santé", Keywords: []string{"patient", "ai"}, Sentence: "Recommandation : déployer Salesforce Health Cloud pour le suivi intelligent des patients."},
	{Sector: "Santé", Keywords: []string{"diagnostic"}, Sentence: "Recommandation : connecter les agents de diagnostic à Salesforce Health Cloud."},
	{Sector: "Santé", Keywords: []string{"suivi"}, Sentence: "Recommandation : centraliser le suivi thérapeutique dans Salesforce Health Cloud."},
	{Sector: "Finance", Keywords: []string{"portefeuille"}, Sentence: "Recommandation : intégrer Salesforce Financial Services Cloud pour la gestion de portefeuille assistée par IA."},
	{Sector: "Finance", Keywords: []string{"fraude"}, Sentence: "Recommandation : coupler la détection de fraude aux alertes Salesforce Financial Services Cloud."},
	{Sector: "Finance", Keywords: []string{"risk"}, Sentence: "Recommandation : outiller le monitoring des risques avec Salesforce Financial Services Cloud."},
	{Sector: "Finance", Keywords: []string{"investment"}, Sentence: "Recommandation : piloter les parcours d'investissement via Salesforce Financial Services Cloud."},
	{Sector: "Finance", Keywords: []string{"forecast"}, Sentence: "Recommandation : alimenter les prévisions financières dans Salesforce Einstein Forecasting."},
	{Sector: "Éducation", Keywords: []string{"tutorat"}, Sentence: "Recommandation : orchestrer le tutorat personnalisé avec Salesforce Education Cloud."},
	{Sector: "Éducation", Keywords: []string{"apprentissage"}, Sentence: "Recommandation : suivre l'apprentissage adaptatif dans Salesforce Education Cloud."},
	{Sector: "Retail", Keywords: []string{"stock"}, Sentence: "Recommandation : relier la gestion de stock autonome à Salesforce Commerce Cloud."},
	{Sector: "Retail", Keywords: []string{"tendance"}, Sentence: "Recommandation : exploiter la prédiction de tendances via Salesforce Commerce Cloud."},
}

// Recommend scans the report texts in order (insights, then scientific
// results, then news results) against the rule table for the active sector
// and returns the matched sentences. Duplicate sentences across multiple
// matching texts are preserved. When nothing matches, the result is exactly
// the fallback sentence. The function is pure: identical inputs always
// produce identical output.
func Recommend(sector string, insights []string, scientific, news []core.SourceRecord) []string {
	var texts []string
	texts = append(texts, insights...)
	for _, rec := range scientific {
		texts = append(texts, rec.Title+" "+rec.Summary)
	}
	for _, rec := range news {
		texts = append(texts, rec.Title+" "+rec.Summary)
	}

	var out []string
	for _, text := range texts {
		lowered := strings.ToLower(text)
		for _, rule := range rules {
			if sector != core.AllSectors && rule.Sector != sector {
				continue
			}
			if matchesAll(lowered, rule.Keywords) {
				out = append(out, rule.Sentence)
			}
		}
	}

	if len(out) == 0 {
		return []string{Fallback}
	}
	return out
}

func matchesAll(lowered string, keywords []string) bool {
	for _, kw := range keywords {
		if !strings.Contains(lowered, kw) {
			return false
		}
	}
	return true
}
