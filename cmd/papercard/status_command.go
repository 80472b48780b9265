package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/width"

	"papercard/internal/catalog"
	"papercard/internal/scan"
)

const maxBucketNameWidth = 40

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show bucket processing status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			buckets, err := catalog.LoadBuckets(cfg.Paths.ThemesFile)
			if err != nil {
				return err
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

			out := cmd.OutOrStdout()
			printFolderStatus(out, folders, strays, scan.EmptyBucketCount(buckets, folders))
			return nil
		},
	}
}

func printFolderStatus(out io.Writer, folders []scan.FolderStatus, strays []string, emptyBuckets int) {
	if len(folders) == 0 {
		fmt.Fprintln(out, "No documents found in any bucket.")
	} else {
		rows := make([][]string, 0, len(folders))
		var totalDocs, totalProcessed, totalPending int
		for i, folder := range folders {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				truncateDisplayWidth(folder.Name, maxBucketNameWidth),
				strconv.Itoa(folder.Total),
				strconv.Itoa(folder.Processed),
				strconv.Itoa(folder.Pending),
			})
			totalDocs += folder.Total
			totalProcessed += folder.Processed
			totalPending += folder.Pending
		}
		view := tableView{
			headers: []string{"#", "Bucket", "Total", "Processed", "Pending"},
			rows:    rows,
			footer: []string{
				"", "Total",
				strconv.Itoa(totalDocs),
				strconv.Itoa(totalProcessed),
				strconv.Itoa(totalPending),
			},
			aligns: []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
		}
		fmt.Fprintln(out, view.render())
	}

	if emptyBuckets > 0 {
		fmt.Fprintf(out, "%d catalog bucket(s) contain no documents yet.\n", emptyBuckets)
	}

	if len(strays) > 0 {
		fmt.Fprintf(out, "Warning: %d document(s) sit outside any bucket and will not be processed:\n", len(strays))
		shown := strays
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, stray := range shown {
			fmt.Fprintf(out, "  - %s\n", filepath.Base(stray))
		}
		if len(strays) > len(shown) {
			fmt.Fprintf(out, "  ... and %d more\n", len(strays)-len(shown))
		}
	}
}

// truncateDisplayWidth trims s to a terminal display width, counting wide
// and fullwidth runes as two columns.
func truncateDisplayWidth(s string, max int) string {
	if displayWidth(s) <= max {
		return s
	}
	var builder strings.Builder
	used := 0
	for _, r := range s {
		w := runeDisplayWidth(r)
		if used+w > max-1 {
			break
		}
		builder.WriteRune(r)
		used += w
	}
	return builder.String() + "…"
}

func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeDisplayWidth(r)
	}
	return total
}

func runeDisplayWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}
