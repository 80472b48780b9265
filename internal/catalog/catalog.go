package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Parse extracts the ordered bucket names from the theme catalog text.
// A bucket declaration is a line that, after trimming, starts with a
// single "#" followed by a space. Deeper headings ("##", "###", ...) are
// section structure inside the catalog, not bucket names. An input with
// no declarations yields an empty list; callers treat that as "zero
// buckets" and warn rather than fail.
func Parse(content string) []string {
	var buckets []string
	seen := map[string]struct{}{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "# ") {
			continue
		}
		name := strings.TrimSpace(line[2:])
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		buckets = append(buckets, name)
	}
	return buckets
}

// LoadBuckets reads the theme catalog file and parses its bucket names.
func LoadBuckets(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme catalog: %w", err)
	}
	return Parse(string(content)), nil
}

// SyncResult reports the outcome of a folder synchronization pass.
type SyncResult struct {
	Created  []string
	Existing []string
}

// EnsureFolders creates one inbox subdirectory per bucket name, leaving
// existing directories untouched.
func EnsureFolders(inboxDir string, buckets []string) (SyncResult, error) {
	var result SyncResult
	for _, bucket := range buckets {
		dir := filepath.Join(inboxDir, bucket)
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
			result.Existing = append(result.Existing, bucket)
			continue
		case err == nil:
			return result, fmt.Errorf("bucket path %q exists and is not a directory", dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return result, fmt.Errorf("create bucket directory %q: %w", dir, err)
		}
		result.Created = append(result.Created, bucket)
	}
	return result, nil
}
