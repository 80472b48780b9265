package scoring_test

import (
	"os"
	"path/filepath"
	"testing"

	"papercard/internal/scoring"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario_weights.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadScenariosPreservesDeclarationOrder(t *testing.T) {
	path := writeScenarioFile(t, `{
  "scenarios": {
    "applied": {
      "description": "practicality first",
      "weights": {"rigor": 0.1, "innovation": 0.1, "practicality": 0.5, "impact": 0.2, "readability": 0.1}
    },
    "theory": {
      "description": "innovation first",
      "weights": {"rigor": 0.3, "innovation": 0.5, "practicality": 0.05, "impact": 0.1, "readability": 0.05}
    },
    "balanced": {
      "description": "even spread",
      "weights": {"rigor": 0.2, "innovation": 0.2, "practicality": 0.2, "impact": 0.2, "readability": 0.2}
    }
  }
}`)

	scenarios, err := scoring.LoadScenarios(path)
	if err != nil {
		t.Fatalf("LoadScenarios returned error: %v", err)
	}
	if len(scenarios) != 3 {
		t.Fatalf("expected 3 scenarios, got %d", len(scenarios))
	}
	want := []string{"applied", "theory", "balanced"}
	for i, name := range want {
		if scenarios[i].Name != name {
			t.Fatalf("scenario %d = %q, want %q", i, scenarios[i].Name, name)
		}
	}
	if scenarios[0].Weights.Practicality != 0.5 {
		t.Fatalf("weights not decoded: %+v", scenarios[0].Weights)
	}
	if scenarios[1].Description != "innovation first" {
		t.Fatalf("description not decoded: %q", scenarios[1].Description)
	}
}

func TestLoadScenariosRejectsMissingDimension(t *testing.T) {
	path := writeScenarioFile(t, `{
  "scenarios": {
    "partial": {
      "description": "no readability",
      "weights": {"rigor": 0.3, "innovation": 0.3, "practicality": 0.2, "impact": 0.2}
    }
  }
}`)
	if _, err := scoring.LoadScenarios(path); err == nil {
		t.Fatal("expected error for missing weight dimension")
	}
}

func TestLoadScenariosRejectsNegativeWeight(t *testing.T) {
	path := writeScenarioFile(t, `{
  "scenarios": {
    "broken": {
      "weights": {"rigor": -0.1, "innovation": 0.3, "practicality": 0.3, "impact": 0.3, "readability": 0.2}
    }
  }
}`)
	if _, err := scoring.LoadScenarios(path); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestLoadScenariosRejectsEmptyConfig(t *testing.T) {
	path := writeScenarioFile(t, `{"scenarios": {}}`)
	if _, err := scoring.LoadScenarios(path); err == nil {
		t.Fatal("expected error for empty scenario set")
	}
}
