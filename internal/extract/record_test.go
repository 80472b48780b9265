package extract

import (
	"encoding/json"
	"strings"
	"testing"
)

func rowFor(t *testing.T, raw string, index string) map[string]string {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	row := tableRow(payload, []byte(raw), index)
	header := TableHeader()
	if len(row) != len(header) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(header))
	}
	cells := make(map[string]string, len(header))
	for i, column := range header {
		cells[column] = row[i]
	}
	return cells
}

func TestTableRowFlattensScores(t *testing.T) {
	cells := rowFor(t, `{
		"title": "T",
		"scores": {"rigor": 8, "innovation": 9.5, "practicality": 7, "impact": 6, "readability": 5, "overall": 7.6},
		"recommendation": {"level": "⭐⭐⭐⭐"}
	}`, "3")

	if cells["index"] != "3" {
		t.Fatalf("index = %q", cells["index"])
	}
	if cells["score_rigor"] != "8" || cells["score_innovation"] != "9.5" {
		t.Fatalf("dimension cells wrong: %v", cells)
	}
	if cells["overall_score"] != "7.6" || cells["recommendation_level"] != "⭐⭐⭐⭐" {
		t.Fatalf("overall cells wrong: %v", cells)
	}
}

func TestTableRowNumbersMultiElementLists(t *testing.T) {
	cells := rowFor(t, `{
		"problem": ["first question", "second question"],
		"conclusion": ["single finding"]
	}`, "")

	if cells["problem"] != "1. first question\n2. second question" {
		t.Fatalf("problem = %q", cells["problem"])
	}
	if cells["conclusion"] != "single finding" {
		t.Fatalf("single element should pass through, got %q", cells["conclusion"])
	}
}

func TestTableRowJoinsKeywordLists(t *testing.T) {
	cells := rowFor(t, `{
		"keywords": ["caching", "latency"],
		"domain_tags": ["systems"]
	}`, "")

	if cells["keywords"] != "caching, latency" {
		t.Fatalf("keywords = %q", cells["keywords"])
	}
	if cells["domain_tags"] != "systems" {
		t.Fatalf("domain_tags = %q", cells["domain_tags"])
	}
}

func TestTableRowImplementationPathKeepsDeclarationOrder(t *testing.T) {
	cells := rowFor(t, `{
		"implementation_path": {
			"z_last_alphabetically": {"keywords": ["redis", "ttl"], "description": "cache reads"},
			"a_first_alphabetically": {"keywords": [], "description": "benchmark suite"}
		}
	}`, "")

	lines := strings.Split(cells["implementation_path"], "\n")
	want := []string{
		"1. z_last_alphabetically [redis | ttl]",
		"   → cache reads",
		"2. a_first_alphabetically",
		"   → benchmark suite",
	}
	if len(lines) != len(want) {
		t.Fatalf("implementation_path:\n%s", cells["implementation_path"])
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTableRowImplementationPathLegacyString(t *testing.T) {
	cells := rowFor(t, `{"implementation_path": "already formatted"}`, "")
	if cells["implementation_path"] != "already formatted" {
		t.Fatalf("legacy string should pass through, got %q", cells["implementation_path"])
	}
}

func TestTableRowMissingFieldsAreEmpty(t *testing.T) {
	cells := rowFor(t, `{"title": "only a title"}`, "")
	for _, column := range []string{"year", "venue", "authors", "score_rigor", "overall_score"} {
		if cells[column] != "" {
			t.Fatalf("column %q should be empty, got %q", column, cells[column])
		}
	}
	if cells["title"] != "only a title" {
		t.Fatalf("title = %q", cells["title"])
	}
}
