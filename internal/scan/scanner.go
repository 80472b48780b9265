package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"papercard/internal/docname"
)

// Document is one source document inside a bucket directory.
type Document struct {
	Path string
	Name string
	Stem string
}

// FolderStatus captures one bucket's processing state at scan time. It is
// built fresh on every scan and never mutated afterwards.
type FolderStatus struct {
	Name      string
	Path      string
	Total     int
	Processed int
	Pending   int
	Documents []Document
}

// Scanner walks the inbox root and classifies its contents.
type Scanner struct {
	InboxDir    string
	ArtifactDir string
	Extensions  []string
}

// ArtifactPath returns the JSON artifact location for a document stem in a
// bucket. Artifact existence is the sole signal that a document has been
// processed.
func ArtifactPath(artifactDir, bucket, stem string) string {
	return filepath.Join(artifactDir, bucket, stem+".json")
}

// Scan returns the buckets that contain at least one document, sorted by
// name, plus the stray documents found directly under the inbox root.
// Buckets with zero documents are omitted; callers derive the empty-bucket
// count by diffing against the catalog list.
func (s *Scanner) Scan() ([]FolderStatus, []string, error) {
	entries, err := os.ReadDir(s.InboxDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read inbox %q: %w", s.InboxDir, err)
	}

	var folders []FolderStatus
	var strays []string

	for _, entry := range entries {
		if !entry.IsDir() {
			if s.matchesExtension(entry.Name()) {
				strays = append(strays, filepath.Join(s.InboxDir, entry.Name()))
			}
			continue
		}

		folder, err := s.scanBucket(entry.Name())
		if err != nil {
			return nil, nil, err
		}
		if folder.Total == 0 {
			continue
		}
		folders = append(folders, folder)
	}

	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, strays, nil
}

func (s *Scanner) scanBucket(name string) (FolderStatus, error) {
	dir := filepath.Join(s.InboxDir, name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FolderStatus{}, fmt.Errorf("read bucket %q: %w", dir, err)
	}

	folder := FolderStatus{Name: name, Path: dir}
	for _, entry := range entries {
		if entry.IsDir() || !s.matchesExtension(entry.Name()) {
			continue
		}
		folder.Documents = append(folder.Documents, Document{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
			Stem: docname.Stem(entry.Name()),
		})
	}
	sort.Slice(folder.Documents, func(i, j int) bool {
		return folder.Documents[i].Name < folder.Documents[j].Name
	})

	folder.Total = len(folder.Documents)
	for _, doc := range folder.Documents {
		if _, err := os.Stat(ArtifactPath(s.ArtifactDir, name, doc.Stem)); err == nil {
			folder.Processed++
		}
	}
	folder.Pending = folder.Total - folder.Processed
	return folder, nil
}

func (s *Scanner) matchesExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range s.Extensions {
		if ext == candidate {
			return true
		}
	}
	return false
}

// EmptyBucketCount reports how many catalog buckets are absent from the
// scanned folder list, either because the directory does not exist or
// because it holds no documents.
func EmptyBucketCount(buckets []string, folders []FolderStatus) int {
	present := make(map[string]struct{}, len(folders))
	for _, folder := range folders {
		present[folder.Name] = struct{}{}
	}
	count := 0
	for _, bucket := range buckets {
		if _, ok := present[bucket]; !ok {
			count++
		}
	}
	return count
}
