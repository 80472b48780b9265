package scoring

import (
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Column names the engine reads from the combined table. They match the
// header the extraction pipeline writes.
const (
	ColumnIndex        = "index"
	ColumnTitle        = "title"
	ColumnRigor        = "score_rigor"
	ColumnInnovation   = "score_innovation"
	ColumnPracticality = "score_practicality"
	ColumnImpact       = "score_impact"
	ColumnReadability  = "score_readability"
	ColumnOverall      = "overall_score"
	ColumnLevel        = "recommendation_level"
)

// ComparisonFileName is the cross-scenario comparison table, written next
// to the combined table it derives from.
const ComparisonFileName = "_all_papers_scenario_comparison.csv"

// RankingFileName returns the per-scenario ranking table file name.
func RankingFileName(scenario string) string {
	return "ranking_" + scenario + ".csv"
}

// RoundScore rounds to one decimal, half away from zero.
func RoundScore(score float64) float64 {
	return math.Round(score*10) / 10
}

// LevelFor maps an overall score to its recommendation tier.
func LevelFor(score float64) string {
	switch {
	case score >= 9.0:
		return "⭐⭐⭐⭐⭐"
	case score >= 7.5:
		return "⭐⭐⭐⭐"
	case score >= 6.0:
		return "⭐⭐⭐"
	case score >= 4.0:
		return "⭐⭐"
	default:
		return "⭐"
	}
}

// Record is one scored document row from the combined table. The original
// row is kept verbatim so ranking tables can reproduce it untouched.
type Record struct {
	Index         string
	Title         string
	Rigor         float64
	Innovation    float64
	Practicality  float64
	Impact        float64
	Readability   float64
	BaselineScore string
	BaselineLevel string
	Row           []string
}

// Overall recomputes the record's overall score under the given weights.
func (r Record) Overall(w Weights) float64 {
	score := r.Rigor*w.Rigor +
		r.Innovation*w.Innovation +
		r.Practicality*w.Practicality +
		r.Impact*w.Impact +
		r.Readability*w.Readability
	return RoundScore(score)
}

// ParseRecords converts combined-table rows into Records. A row whose five
// dimension scores cannot all be parsed is dropped with one warning naming
// its identity; empty cells count as zero, malformed cells do not.
func ParseRecords(header []string, rows [][]string, logger *slog.Logger) []Record {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		record := Record{
			Index:         cell(row, ColumnIndex),
			Title:         cell(row, ColumnTitle),
			BaselineScore: cell(row, ColumnOverall),
			BaselineLevel: cell(row, ColumnLevel),
			Row:           row,
		}

		parseFailed := false
		for _, dim := range []struct {
			column string
			dst    *float64
		}{
			{ColumnRigor, &record.Rigor},
			{ColumnInnovation, &record.Innovation},
			{ColumnPracticality, &record.Practicality},
			{ColumnImpact, &record.Impact},
			{ColumnReadability, &record.Readability},
		} {
			raw := cell(row, dim.column)
			if raw == "" {
				continue
			}
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				logger.Warn("dropping record with unparseable score",
					"index", record.Index,
					"title", record.Title,
					"column", dim.column,
					"value", raw)
				parseFailed = true
				break
			}
			*dim.dst = value
		}
		if parseFailed {
			continue
		}
		records = append(records, record)
	}
	return records
}

// Engine recomputes overall scores under every configured scenario.
type Engine struct {
	scenarios []Scenario
	topRank   int
}

// NewEngine builds an engine over the given scenarios. topRank bounds how
// many leading rows each ranking table flags.
func NewEngine(scenarios []Scenario, topRank int) *Engine {
	return &Engine{scenarios: scenarios, topRank: topRank}
}

// Scenarios returns the configured scenarios in declaration order.
func (e *Engine) Scenarios() []Scenario {
	return e.scenarios
}

// ComparisonTable builds the cross-scenario table: identity, the five raw
// dimensions, the baseline pair, then one (score, level) pair per scenario
// in declaration order.
func (e *Engine) ComparisonTable(records []Record) ([]string, [][]string) {
	header := []string{
		ColumnIndex, ColumnTitle,
		ColumnRigor, ColumnInnovation, ColumnPracticality,
		ColumnImpact, ColumnReadability,
		ColumnOverall + "_baseline", ColumnLevel + "_baseline",
	}
	for _, scenario := range e.scenarios {
		header = append(header,
			ColumnOverall+"_"+scenario.Name,
			ColumnLevel+"_"+scenario.Name)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := []string{
			record.Index, record.Title,
			formatDimension(record.Rigor),
			formatDimension(record.Innovation),
			formatDimension(record.Practicality),
			formatDimension(record.Impact),
			formatDimension(record.Readability),
			record.BaselineScore, record.BaselineLevel,
		}
		for _, scenario := range e.scenarios {
			overall := record.Overall(scenario.Weights)
			row = append(row, formatOverall(overall), LevelFor(overall))
		}
		rows = append(rows, row)
	}
	return header, rows
}

// RankingTable builds one scenario's ranking: the original columns
// verbatim, the scenario's (score, level) pair, and a rank flag marking
// the leading rows. The sort is stable so equal scores keep their input
// order.
func (e *Engine) RankingTable(originalHeader []string, records []Record, scenario Scenario) ([]string, [][]string) {
	header := make([]string, 0, len(originalHeader)+3)
	header = append(header, originalHeader...)
	header = append(header,
		ColumnOverall+"_"+scenario.Name,
		ColumnLevel+"_"+scenario.Name,
		"rank_flag")

	type scored struct {
		record  Record
		overall float64
	}
	ranked := make([]scored, 0, len(records))
	for _, record := range records {
		ranked = append(ranked, scored{record: record, overall: record.Overall(scenario.Weights)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overall > ranked[j].overall
	})

	rows := make([][]string, 0, len(ranked))
	for rank, entry := range ranked {
		row := make([]string, 0, len(header))
		row = append(row, entry.record.Row...)
		for len(row) < len(originalHeader) {
			row = append(row, "")
		}
		flag := ""
		if rank < e.topRank {
			flag = "TOP " + strconv.Itoa(rank+1)
		}
		row = append(row, formatOverall(entry.overall), LevelFor(entry.overall), flag)
		rows = append(rows, row)
	}
	return header, rows
}

func formatDimension(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatOverall(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}
