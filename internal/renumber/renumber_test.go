package renumber_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"papercard/internal/renumber"
)

func writeDoc(t *testing.T, dir, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func TestRunContinuesPastExistingNumbers(t *testing.T) {
	inbox := t.TempDir()
	bucket := filepath.Join(inbox, "caching")
	if err := os.MkdirAll(bucket, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	writeDoc(t, bucket, "03_already.pdf", base)
	writeDoc(t, bucket, "older.pdf", base.Add(1*time.Minute))
	writeDoc(t, bucket, "newer.pdf", base.Add(2*time.Minute))

	runner := &renumber.Runner{InboxDir: inbox, Extensions: []string{".pdf"}}
	result, err := runner.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Renamed) != 2 {
		t.Fatalf("expected 2 renames, got %+v", result)
	}
	if result.Renamed[0].NewName != "04_older.pdf" || result.Renamed[1].NewName != "05_newer.pdf" {
		t.Fatalf("unexpected rename order: %+v", result.Renamed)
	}

	for _, name := range []string{"03_already.pdf", "04_older.pdf", "05_newer.pdf"} {
		if _, err := os.Stat(filepath.Join(bucket, name)); err != nil {
			t.Fatalf("expected %q to exist: %v", name, err)
		}
	}
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	inbox := t.TempDir()
	bucket := filepath.Join(inbox, "caching")
	if err := os.MkdirAll(bucket, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeDoc(t, bucket, "plain.pdf", time.Now())

	runner := &renumber.Runner{InboxDir: inbox, Extensions: []string{".pdf"}, DryRun: true}
	result, err := runner.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Renamed) != 1 || result.Renamed[0].NewName != "01_plain.pdf" {
		t.Fatalf("unexpected plan: %+v", result)
	}
	if _, err := os.Stat(filepath.Join(bucket, "plain.pdf")); err != nil {
		t.Fatal("dry run must not rename files")
	}
}

func TestRunIgnoresOtherExtensions(t *testing.T) {
	inbox := t.TempDir()
	bucket := filepath.Join(inbox, "caching")
	if err := os.MkdirAll(bucket, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeDoc(t, bucket, "notes.docx", time.Now())

	runner := &renumber.Runner{InboxDir: inbox, Extensions: []string{".pdf"}}
	result, err := runner.Run()
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(result.Renamed) != 0 {
		t.Fatalf("docx should be ignored: %+v", result)
	}
}
