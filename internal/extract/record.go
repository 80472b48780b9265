package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CombinedTableName is the run-wide table holding every bucket's rows with
// global indices. Bucket tables use local indices from the file name.
const CombinedTableName = "_all_papers.csv"

var tableColumns = []string{
	"index",
	"year",
	"venue",
	"authors",
	"title",
	"paper_type",
	"domain_tags",
	"keywords",
	"research_object",
	"methodology",
	"problem",
	"conclusion",
	"implementation_path",
	"contribution",
	"score_rigor",
	"score_innovation",
	"score_practicality",
	"score_impact",
	"score_readability",
	"overall_score",
	"recommendation_level",
}

// TableHeader returns the fixed, ordered column set shared by the bucket
// tables and the combined table.
func TableHeader() []string {
	header := make([]string, len(tableColumns))
	copy(header, tableColumns)
	return header
}

// tableRow flattens an extraction payload into one table row. raw is the
// decoded JSON bytes, used to recover the implementation-path dimension
// order that the generic map loses.
func tableRow(payload map[string]any, raw []byte, index string) []string {
	scores := scoreFields(payload)

	row := make([]string, 0, len(tableColumns))
	for _, column := range tableColumns {
		switch column {
		case "index":
			row = append(row, index)
		case "problem", "conclusion":
			row = append(row, formatNumbered(payload[column]))
		case "implementation_path":
			row = append(row, formatImplementationPath(payload[column], objectKeyOrder(raw, column)))
		case "keywords", "domain_tags":
			row = append(row, joinList(payload[column]))
		default:
			if value, ok := scores[column]; ok {
				row = append(row, value)
				continue
			}
			row = append(row, stringValue(payload[column]))
		}
	}
	return row
}

// scoreFields pulls the five raw dimensions and the overall value from the
// scores block, and the qualitative level from the recommendation block.
func scoreFields(payload map[string]any) map[string]string {
	scores, _ := payload["scores"].(map[string]any)
	recommendation, _ := payload["recommendation"].(map[string]any)

	return map[string]string{
		"score_rigor":          stringValue(scores["rigor"]),
		"score_innovation":     stringValue(scores["innovation"]),
		"score_practicality":   stringValue(scores["practicality"]),
		"score_impact":         stringValue(scores["impact"]),
		"score_readability":    stringValue(scores["readability"]),
		"overall_score":        stringValue(scores["overall"]),
		"recommendation_level": stringValue(recommendation["level"]),
	}
}

// formatNumbered renders a list as numbered lines; a single element or a
// plain string passes through untouched.
func formatNumbered(value any) string {
	list, ok := value.([]any)
	if !ok {
		return stringValue(value)
	}
	if len(list) == 0 {
		return ""
	}
	if len(list) == 1 {
		return stringValue(list[0])
	}
	lines := make([]string, 0, len(list))
	for i, item := range list {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, stringValue(item)))
	}
	return strings.Join(lines, "\n")
}

// formatImplementationPath renders the {dimension: {keywords, description}}
// structure as numbered "dimension [kw | kw]" lines with an arrow-prefixed
// description line. keyOrder restores the payload's declaration order.
func formatImplementationPath(value any, keyOrder []string) string {
	if value == nil {
		return ""
	}
	entries, ok := value.(map[string]any)
	if !ok {
		return stringValue(value)
	}

	var lines []string
	for i, key := range keyOrder {
		entry := entries[key]
		detail, ok := entry.(map[string]any)
		if !ok {
			lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, key, stringValue(entry)))
			continue
		}
		keywords := joinListWith(detail["keywords"], " | ")
		if keywords != "" {
			lines = append(lines, fmt.Sprintf("%d. %s [%s]", i+1, key, keywords))
		} else {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, key))
		}
		if description := strings.TrimSpace(stringValue(detail["description"])); description != "" {
			lines = append(lines, "   → "+description)
		}
	}
	return strings.Join(lines, "\n")
}

func joinList(value any) string {
	return joinListWith(value, ", ")
}

func joinListWith(value any, separator string) string {
	list, ok := value.([]any)
	if !ok {
		return stringValue(value)
	}
	parts := make([]string, 0, len(list))
	for _, item := range list {
		parts = append(parts, stringValue(item))
	}
	return strings.Join(parts, separator)
}

// stringValue renders any JSON scalar for a table cell. Numbers keep their
// source formatting where possible (integers without a trailing ".0").
func stringValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}

// objectKeyOrder returns the declaration order of the keys of the object
// stored under field at the top level of raw. Maps lose that order.
func objectKeyOrder(raw []byte, field string) []string {
	decoder := json.NewDecoder(strings.NewReader(string(raw)))

	token, err := decoder.Token()
	if err != nil {
		return nil
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil
	}

	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil
		}
		if key != field {
			var skipped json.RawMessage
			if err := decoder.Decode(&skipped); err != nil {
				return nil
			}
			continue
		}

		token, err := decoder.Token()
		if err != nil {
			return nil
		}
		if delim, ok := token.(json.Delim); !ok || delim != '{' {
			return nil
		}
		var keys []string
		for decoder.More() {
			nested, err := decoder.Token()
			if err != nil {
				return nil
			}
			name, ok := nested.(string)
			if !ok {
				return nil
			}
			var skipped json.RawMessage
			if err := decoder.Decode(&skipped); err != nil {
				return nil
			}
			keys = append(keys, name)
		}
		return keys
	}
	return nil
}
