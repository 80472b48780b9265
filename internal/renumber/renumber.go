// Package renumber assigns numeric file-name prefixes to documents that
// lack one. Each bucket numbers independently; new prefixes continue past
// the bucket's current maximum, and unnumbered documents are ordered by
// modification time so earlier arrivals get lower numbers.
package renumber

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"papercard/internal/docname"
)

// Rename is one planned or applied prefix assignment.
type Rename struct {
	Bucket  string
	OldName string
	NewName string
}

// Result summarizes one run over the inbox tree.
type Result struct {
	Renamed []Rename
	Skipped []Rename // target name already taken
}

// Runner renumbers documents under the inbox root.
type Runner struct {
	InboxDir   string
	Extensions []string
	DryRun     bool
}

// Run walks every bucket directory and assigns prefixes to unnumbered
// documents. In dry-run mode the planned renames are returned without
// touching the filesystem.
func (r *Runner) Run() (Result, error) {
	var result Result

	entries, err := os.ReadDir(r.InboxDir)
	if err != nil {
		return result, fmt.Errorf("read inbox %q: %w", r.InboxDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := r.runBucket(entry.Name(), &result); err != nil {
			return result, err
		}
	}
	return result, nil
}

type candidate struct {
	name    string
	modTime time.Time
}

func (r *Runner) runBucket(bucket string, result *Result) error {
	dir := filepath.Join(r.InboxDir, bucket)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read bucket %q: %w", bucket, err)
	}

	maxNumber := 0
	var unnumbered []candidate
	for _, entry := range entries {
		if entry.IsDir() || !r.matchesExtension(entry.Name()) {
			continue
		}
		if value := docname.PrefixValue(entry.Name()); value > 0 {
			if value > maxNumber {
				maxNumber = value
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("stat %q: %w", entry.Name(), err)
		}
		unnumbered = append(unnumbered, candidate{name: entry.Name(), modTime: info.ModTime()})
	}

	sort.SliceStable(unnumbered, func(i, j int) bool {
		return unnumbered[i].modTime.Before(unnumbered[j].modTime)
	})

	for _, doc := range unnumbered {
		maxNumber++
		rename := Rename{
			Bucket:  bucket,
			OldName: doc.name,
			NewName: fmt.Sprintf("%02d_%s", maxNumber, doc.name),
		}

		target := filepath.Join(dir, rename.NewName)
		if _, err := os.Stat(target); err == nil {
			result.Skipped = append(result.Skipped, rename)
			continue
		}

		if !r.DryRun {
			if err := os.Rename(filepath.Join(dir, rename.OldName), target); err != nil {
				return fmt.Errorf("rename %q: %w", rename.OldName, err)
			}
		}
		result.Renamed = append(result.Renamed, rename)
	}
	return nil
}

func (r *Runner) matchesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range r.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
