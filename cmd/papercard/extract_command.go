package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"papercard/internal/catalog"
	"papercard/internal/config"
	"papercard/internal/extract"
	"papercard/internal/plan"
	"papercard/internal/runlock"
	"papercard/internal/scan"
	"papercard/internal/services/llm"
	"papercard/internal/textpull"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		allFlag          bool
		overwriteAllFlag bool
		selectFlag       string
		yesFlag          bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Run the extraction pipeline over selected buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			if err := checkRequiredFiles(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			buckets, err := catalog.LoadBuckets(cfg.Paths.ThemesFile)
			if err != nil {
				return err
			}
			if len(buckets) == 0 {
				fmt.Fprintln(out, "Warning: the bucket catalog declares no buckets.")
			}
			sync, err := catalog.EnsureFolders(cfg.Paths.InboxDir, buckets)
			if err != nil {
				return err
			}
			if len(sync.Created) > 0 {
				fmt.Fprintf(out, "Created %d bucket folder(s): %s\n", len(sync.Created), strings.Join(sync.Created, ", "))
			}

			scanner := &scan.Scanner{
				InboxDir:    cfg.Paths.InboxDir,
				ArtifactDir: cfg.Paths.ArtifactDir,
				Extensions:  cfg.Workflow.SourceExtensions,
			}
			folders, strays, err := scanner.Scan()
			if err != nil {
				return err
			}
			printFolderStatus(out, folders, strays, scan.EmptyBucketCount(buckets, folders))
			if len(folders) == 0 {
				fmt.Fprintln(out, "Nothing to do.")
				return nil
			}

			runPlan, err := buildPlan(cmd, folders, overwriteAllFlag, selectFlag, yesFlag)
			if err != nil {
				return err
			}
			if runPlan.Empty() {
				fmt.Fprintln(out, "Nothing to do.")
				return nil
			}

			client := llm.NewClient(llm.Config{
				APIKey:         cfg.LLM.APIKey,
				BaseURL:        cfg.LLM.BaseURL,
				Model:          cfg.LLM.Model,
				TimeoutSeconds: cfg.LLM.TimeoutSeconds,
			})
			fmt.Fprint(out, "Checking inference service... ")
			if err := client.HealthCheck(cmd.Context()); err != nil {
				fmt.Fprintln(out, "failed")
				return fmt.Errorf("inference service unreachable: %w", err)
			}
			fmt.Fprintln(out, "ok")

			release, err := runlock.Acquire(filepath.Join(cfg.Paths.LogDir, "papercard.lock"))
			if err != nil {
				return err
			}
			defer release()

			promptTemplate, err := os.ReadFile(cfg.Paths.PromptFile)
			if err != nil {
				return fmt.Errorf("read prompt template: %w", err)
			}
			themeText, err := os.ReadFile(cfg.Paths.ThemesFile)
			if err != nil {
				return fmt.Errorf("read bucket catalog: %w", err)
			}

			runID := uuid.NewString()
			logger = logger.With("run_id", runID)
			logger.Info("extraction run starting",
				"buckets", len(runPlan.Indices),
				"overwrite", runPlan.Overwrite)

			texts := textpull.NewService(cfg.PdftotextBinary(), cfg.Workflow.MaxDocumentChars)
			pipeline := extract.NewPipeline(
				client,
				texts,
				cfg.Paths.ArtifactDir,
				cfg.Paths.SummaryDir,
				time.Duration(cfg.Workflow.RequestIntervalSeconds)*time.Second,
				extract.NewErrorLog(cfg.Paths.ErrorLog),
				logger,
			)

			var totals extract.Stats
			globalIndex := 1
			for _, index := range runPlan.Indices {
				folder := folders[index]
				if !runPlan.Overwrite && folder.Pending == 0 {
					continue
				}
				fmt.Fprintf(out, "\nProcessing %s (%d total, %d pending)\n", folder.Name, folder.Total, folder.Pending)

				stats, next, err := pipeline.RunFolder(cmd.Context(), folder, string(promptTemplate), string(themeText), runPlan.Overwrite, globalIndex)
				if err != nil {
					return err
				}
				globalIndex = next
				totals = totals.Add(stats)
				fmt.Fprintf(out, "  done: %d succeeded, %d skipped, %d failed\n", stats.Success, stats.Skip, stats.Fail)
			}

			printRunSummary(out, cfg, totals)
			logger.Info("extraction run finished",
				"success", totals.Success,
				"skip", totals.Skip,
				"fail", totals.Fail)
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Process every bucket with pending documents (default)")
	cmd.Flags().BoolVar(&overwriteAllFlag, "overwrite-all", false, "Reprocess every document, replacing existing artifacts")
	cmd.Flags().StringVar(&selectFlag, "select", "", "Bucket selector, e.g. \"1,3-5,7\"")
	cmd.Flags().BoolVar(&yesFlag, "yes", false, "Answer prompts with their default instead of asking")
	cmd.MarkFlagsMutuallyExclusive("all", "overwrite-all", "select")

	return cmd
}

func checkRequiredFiles(cfg *config.Config) error {
	var missing []string
	for _, required := range []struct {
		label string
		path  string
	}{
		{"prompt template", cfg.Paths.PromptFile},
		{"bucket catalog", cfg.Paths.ThemesFile},
	} {
		if _, err := os.Stat(required.path); err != nil {
			missing = append(missing, fmt.Sprintf("%s (%s)", required.label, required.path))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, "; "))
	}
	return nil
}

func buildPlan(cmd *cobra.Command, folders []scan.FolderStatus, overwriteAll bool, selector string, yes bool) (plan.Plan, error) {
	switch {
	case overwriteAll:
		// --yes stands in for the secondary confirmation the full
		// overwrite requires.
		confirmed := yes
		if !yes {
			var err error
			confirmed, err = confirm(cmd, false, false, "Reprocess every document and overwrite existing artifacts?")
			if err != nil {
				return plan.Plan{}, err
			}
		}
		if !confirmed {
			return plan.Plan{}, nil
		}
		return plan.AllOverwrite(folders), nil

	case selector != "":
		indices, err := plan.ParseSelector(selector, len(folders))
		if err != nil {
			return plan.Plan{}, err
		}
		overwrite := false
		if plan.HasProcessed(folders, indices) {
			// Default is skip-existing; the choice covers the whole subset.
			overwrite, err = confirm(cmd, yes, false, "Some selected buckets already have results. Overwrite them?")
			if err != nil {
				return plan.Plan{}, err
			}
		}
		return plan.Subset(indices, overwrite), nil

	default:
		return plan.AllPending(folders), nil
	}
}

// confirm asks a yes/no question on the terminal. With --yes, or when
// stdin is not a terminal, the default answer is used without asking.
func confirm(cmd *cobra.Command, yes, defaultAnswer bool, question string) (bool, error) {
	if yes {
		return defaultAnswer, nil
	}
	stdin, ok := cmd.InOrStdin().(*os.File)
	if ok && !isatty.IsTerminal(stdin.Fd()) && !isatty.IsCygwinTerminal(stdin.Fd()) {
		return defaultAnswer, nil
	}

	suffix := "[y/N]"
	if defaultAnswer {
		suffix = "[Y/n]"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s ", question, suffix)

	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return defaultAnswer, nil
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	case "":
		return defaultAnswer, nil
	default:
		return false, nil
	}
}

func printRunSummary(out io.Writer, cfg *config.Config, totals extract.Stats) {
	fmt.Fprintln(out)
	view := tableView{
		headers: []string{"Outcome", "Count"},
		rows: [][]string{
			{"Succeeded", strconv.Itoa(totals.Success)},
			{"Skipped", strconv.Itoa(totals.Skip)},
			{"Failed", strconv.Itoa(totals.Fail)},
		},
		footer: []string{"Total", strconv.Itoa(totals.Success + totals.Skip + totals.Fail)},
		aligns: []columnAlignment{alignLeft, alignRight},
	}
	fmt.Fprintln(out, view.render())
	fmt.Fprintf(out, "Artifacts: %s\n", cfg.Paths.ArtifactDir)
	fmt.Fprintf(out, "Tables:    %s\n", cfg.Paths.SummaryDir)
	if totals.Fail > 0 {
		fmt.Fprintf(out, "Errors:    %s\n", cfg.Paths.ErrorLog)
	}
}
