// Package insights holds the hand-curated table of sector insights shown in
// strategic reports, plus the derived country and company notes.
package insights

import (
	"fmt"

	"github.com/Mnafierce/agentwatch/internal/core"
)

// sectorInsights maps each tracked sector to its curated insight sentences.
// The table is fixed at build time and never mutated.
var sectorInsights = map[string][]string{
	"Santé": {
		"Pfizer investit dans des agents IA pour le suivi post-opératoire.",
		"Mayo Clinic pilote un programme IA pour le tri des patients chroniques.",
	},
	"Finance": {
		"JP Morgan lance un assistant IA pour la gestion de portefeuille.",
		"Goldman Sachs utilise des IA pour la détection de fraude en temps réel.",
	},
	"Éducation": {
		"Coursera explore l'usage d'agents IA pour le tutorat personnalisé.",
		"EdTech startups lèvent 200M$ pour intégrer IA dans l'apprentissage adaptatif.",
	},
	"Retail": {
		"Amazon expérimente des agents IA autonomes dans la gestion de stock.",
		"Zara intègre un agent IA de prédiction de tendances de mode.",
	},
}

// Lookup returns the curated insights for a sector along with the derived
// country and company notes. Unknown sectors yield an empty insight list,
// not an error. The notes are independent of the sector: countryNote is
// empty unless a specific country is selected, companyNote is empty unless
// a specific company is selected.
func Lookup(sector, country, company string) (insights []string, countryNote, companyNote string) {
	insights = sectorInsights[sector]

	if country != core.AllCountries && country != "" {
		countryNote = fmt.Sprintf("📍 Activités IA repérées en **%s**", country)
	}
	if company != core.AllCompanies && company != "" {
		companyNote = fmt.Sprintf("🔎 Focus sur **%s**", company)
	}
	return insights, countryNote, companyNote
}

// Sectors returns the sector keys present in the insight table, in the
// dashboard's display order.
func Sectors() []string {
	ordered := make([]string, 0, len(sectorInsights))
	for _, s := range core.Sectors {
		if _, ok := sectorInsights[s]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
