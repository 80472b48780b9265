package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"papercard/internal/extract"
	"papercard/internal/scoring"
	"papercard/internal/tabular"
)

func newScoreCommand(ctx *commandContext) *cobra.Command {
	var weightsFlag string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Recompute overall scores under every configured scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			weightsPath := cfg.Scoring.WeightsFile
			if weightsFlag != "" {
				weightsPath = weightsFlag
			}
			scenarios, err := scoring.LoadScenarios(weightsPath)
			if err != nil {
				return err
			}

			combinedPath := filepath.Join(cfg.Paths.SummaryDir, extract.CombinedTableName)
			if _, err := os.Stat(combinedPath); err != nil {
				return fmt.Errorf("combined table %q not found; run extract first", combinedPath)
			}
			header, rows, err := tabular.ReadAll(combinedPath)
			if err != nil {
				return err
			}

			records := scoring.ParseRecords(header, rows, logger)
			if len(records) == 0 {
				return fmt.Errorf("combined table %q holds no scorable records", combinedPath)
			}

			engine := scoring.NewEngine(scenarios, cfg.Scoring.TopRankCount)

			comparisonPath := filepath.Join(cfg.Paths.SummaryDir, scoring.ComparisonFileName)
			comparisonHeader, comparisonRows := engine.ComparisonTable(records)
			if err := tabular.WriteFile(comparisonPath, comparisonHeader, comparisonRows); err != nil {
				return err
			}

			rankingsDir := cfg.RankingsDir()
			for _, scenario := range engine.Scenarios() {
				rankingHeader, rankingRows := engine.RankingTable(header, records, scenario)
				rankingPath := filepath.Join(rankingsDir, scoring.RankingFileName(scenario.Name))
				if err := tabular.WriteFile(rankingPath, rankingHeader, rankingRows); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scored %d record(s) under %d scenario(s).\n", len(records), len(scenarios))

			tableRows := make([][]string, 0, len(scenarios)+1)
			tableRows = append(tableRows, []string{"(comparison)", "all scenarios side by side", comparisonPath})
			for _, scenario := range scenarios {
				tableRows = append(tableRows, []string{
					scenario.Name,
					scenario.Description,
					filepath.Join(rankingsDir, scoring.RankingFileName(scenario.Name)),
				})
			}
			view := tableView{
				headers: []string{"Scenario", "Description", "Output"},
				rows:    tableRows,
				aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft},
			}
			fmt.Fprintln(out, view.render())
			fmt.Fprintf(out, "Top %d rows in each ranking carry a rank flag.\n", cfg.Scoring.TopRankCount)
			return nil
		},
	}

	cmd.Flags().StringVar(&weightsFlag, "weights", "", "Scenario weights file (overrides the configured path)")
	return cmd
}
