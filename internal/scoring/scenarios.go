package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Weights is a weight vector over the five scoring dimensions.
type Weights struct {
	Rigor        float64 `json:"rigor"`
	Innovation   float64 `json:"innovation"`
	Practicality float64 `json:"practicality"`
	Impact       float64 `json:"impact"`
	Readability  float64 `json:"readability"`
}

// Scenario is a named weight vector used to recompute an alternate overall
// score without re-running extraction.
type Scenario struct {
	Name        string
	Description string
	Weights     Weights
}

type scenarioPayload struct {
	Description string              `json:"description"`
	Weights     map[string]*float64 `json:"weights"`
}

// LoadScenarios reads the scenario weights configuration. The scenarios
// JSON object is decoded token by token so declaration order is preserved;
// downstream tables emit per-scenario columns in that order.
//
// Weights must name all five dimensions and be non-negative. They are not
// required to sum to 1.0 and are never renormalized.
func LoadScenarios(path string) ([]Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario config: %w", err)
	}
	defer file.Close()

	scenarios, err := decodeScenarios(file)
	if err != nil {
		return nil, fmt.Errorf("parse scenario config %q: %w", path, err)
	}
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("scenario config %q declares no scenarios", path)
	}
	return scenarios, nil
}

func decodeScenarios(file *os.File) ([]Scenario, error) {
	decoder := json.NewDecoder(file)

	if err := expectDelim(decoder, '{'); err != nil {
		return nil, err
	}

	var scenarios []Scenario
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", keyToken)
		}
		if key != "scenarios" {
			var skipped json.RawMessage
			if err := decoder.Decode(&skipped); err != nil {
				return nil, err
			}
			continue
		}

		if err := expectDelim(decoder, '{'); err != nil {
			return nil, err
		}
		for decoder.More() {
			nameToken, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			name, ok := nameToken.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected scenario key %v", nameToken)
			}
			var payload scenarioPayload
			if err := decoder.Decode(&payload); err != nil {
				return nil, fmt.Errorf("scenario %q: %w", name, err)
			}
			weights, err := weightsFromPayload(payload.Weights)
			if err != nil {
				return nil, fmt.Errorf("scenario %q: %w", name, err)
			}
			scenarios = append(scenarios, Scenario{
				Name:        name,
				Description: payload.Description,
				Weights:     weights,
			})
		}
		if _, err := decoder.Token(); err != nil { // closing '}'
			return nil, err
		}
	}

	return scenarios, nil
}

func expectDelim(decoder *json.Decoder, want rune) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok || rune(delim) != want {
		return fmt.Errorf("expected %q, got %v", want, token)
	}
	return nil
}

func weightsFromPayload(values map[string]*float64) (Weights, error) {
	var weights Weights
	fields := map[string]*float64{
		"rigor":        &weights.Rigor,
		"innovation":   &weights.Innovation,
		"practicality": &weights.Practicality,
		"impact":       &weights.Impact,
		"readability":  &weights.Readability,
	}
	for name, dst := range fields {
		value, ok := values[name]
		if !ok || value == nil {
			return weights, fmt.Errorf("weights missing dimension %q", name)
		}
		if *value < 0 {
			return weights, fmt.Errorf("weights dimension %q is negative", name)
		}
		*dst = *value
	}
	return weights, nil
}

// Validate reports whether the weight vector is usable on its own.
func (w Weights) Validate() error {
	for _, entry := range []struct {
		name  string
		value float64
	}{
		{"rigor", w.Rigor},
		{"innovation", w.Innovation},
		{"practicality", w.Practicality},
		{"impact", w.Impact},
		{"readability", w.Readability},
	} {
		if entry.value < 0 {
			return errors.New("weights dimension " + entry.name + " is negative")
		}
	}
	return nil
}
