package recommend

import (
	"reflect"
	"strings"
	"testing"

	"github.com/Mnafierce/agentwatch/internal/core"
)

func TestRecommendFallbackWhenNoKeywordMatches(t *testing.T) {
	out := Recommend("Finance", []string{"Rien de notable ce trimestre."}, nil, nil)
	if len(out) != 1 {
		t.Fatalf("Expected exactly the fallback sentence, got %d entries", len(out))
	}
	if out[0] != Fallback {
		t.Errorf("Expected fallback sentence, got %q", out[0])
	}
}

func TestRecommendPortefeuilleTriggersFinancialServicesCloud(t *testing.T) {
	insights := []string{"JP Morgan lance un assistant IA pour la gestion de portefeuille."}
	out := Recommend("Finance", insights, nil, nil)

	found := false
	for _, sentence := range out {
		if strings.Contains(sentence, "Financial Services Cloud") {
			found = true
		}
		if sentence == Fallback {
			t.Errorf("Fallback sentence must not appear alongside a match: %v", out)
		}
	}
	if !found {
		t.Errorf("Expected a Financial Services Cloud recommendation, got %v", out)
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	insights := []string{
		"JP Morgan lance un assistant IA pour la gestion de portefeuille.",
		"Goldman Sachs utilise des IA pour la détection de fraude en temps réel.",
	}
	scientific := []core.SourceRecord{{Title: "Risk-aware agents", Summary: "investment forecast models"}}

	first := Recommend("Finance", insights, scientific, nil)
	second := Recommend("Finance", insights, scientific, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output across invocations, got %v then %v", first, second)
	}
}

func TestRecommendKeepsDuplicates(t *testing.T) {
	insights := []string{
		"Un agent IA de gestion de portefeuille.",
		"Encore un outil de portefeuille automatisé.",
	}
	out := Recommend("Finance", insights, nil, nil)
	if len(out) != 2 {
		t.Fatalf("Expected one sentence per matching text, got %d", len(out))
	}
	if out[0] != out[1] {
		t.Errorf("Expected duplicate sentences to be preserved, got %v", out)
	}
}

func TestRecommendSectorGating(t *testing.T) {
	// A Finance keyword must not fire under the Santé sector.
	out := Recommend("Santé", []string{"gestion de portefeuille"}, nil, nil)
	if len(out) != 1 || out[0] != Fallback {
		t.Errorf("Expected only the fallback under a mismatched sector, got %v", out)
	}
}

func TestRecommendWildcardSectorEnablesAllRules(t *testing.T) {
	out := Recommend(core.AllSectors, []string{"gestion de portefeuille"}, nil, nil)
	if len(out) != 1 || !strings.Contains(out[0], "Financial Services Cloud") {
		t.Errorf("Expected the Finance rule to fire under the wildcard sector, got %v", out)
	}
}

func TestRecommendConjunctionKeywords(t *testing.T) {
	// The patient+ai rule needs both substrings in the same text.
	out := Recommend("Santé", []string{"Le patient attend."}, nil, nil)
	if out[0] != Fallback {
		t.Errorf("Expected no match when only one keyword of a conjunction appears, got %v", out)
	}

	out = Recommend("Santé", []string{"AI agents monitor patient recovery after surgery."}, nil, nil)
	if out[0] == Fallback {
		t.Errorf("Expected the patient+ai rule to match, got fallback")
	}
}

func TestRecommendScansNewsRecords(t *testing.T) {
	newsRecords := []core.SourceRecord{{Title: "Zara stock automation", Summary: "gestion de stock par agents"}}
	out := Recommend("Retail", nil, nil, newsRecords)
	if len(out) != 1 || !strings.Contains(out[0], "Commerce Cloud") {
		t.Errorf("Expected the Retail stock rule from news input, got %v", out)
	}
}
