package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"papercard/internal/renumber"
)

func newRenumberCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "renumber",
		Short: "Assign numeric prefixes to unnumbered documents",
		Long: "Assigns per-bucket numeric file-name prefixes (01_, 02_, ...) to documents " +
			"that lack one, continuing past each bucket's current maximum. Unnumbered " +
			"documents are ordered by modification time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runner := &renumber.Runner{
				InboxDir:   cfg.Paths.InboxDir,
				Extensions: cfg.Workflow.SourceExtensions,
				DryRun:     dryRun,
			}
			result, err := runner.Run()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(result.Renamed) == 0 && len(result.Skipped) == 0 {
				fmt.Fprintln(out, "All documents are already numbered.")
				return nil
			}

			verb := "Renamed"
			if dryRun {
				verb = "Would rename"
			}
			for _, rename := range result.Renamed {
				fmt.Fprintf(out, "%s %s/%s -> %s\n", verb, rename.Bucket, rename.OldName, rename.NewName)
			}
			for _, rename := range result.Skipped {
				fmt.Fprintf(out, "Skipped %s/%s: %s already exists\n", rename.Bucket, rename.OldName, rename.NewName)
			}
			fmt.Fprintf(out, "%d rename(s), %d skipped.\n", len(result.Renamed), len(result.Skipped))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show planned renames without applying them")
	return cmd
}
