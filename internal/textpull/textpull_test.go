package textpull_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"papercard/internal/textpull"
)

type fakeRunner struct {
	output  []byte
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.output, f.err
}

func TestExtractPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "01_notes.txt")
	if err := os.WriteFile(path, []byte("  hello paper  "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	service := textpull.NewService("pdftotext", 100)
	text, err := service.Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "hello paper" {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestExtractPDFUsesRunner(t *testing.T) {
	runner := &fakeRunner{output: []byte("pdf body text")}
	service := textpull.NewService("pdftotext", 100, textpull.WithRunner(runner))

	text, err := service.Extract(context.Background(), "/papers/01_study.pdf")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if text != "pdf body text" {
		t.Fatalf("unexpected text: %q", text)
	}
	if runner.gotName != "pdftotext" {
		t.Fatalf("unexpected binary: %q", runner.gotName)
	}
	if runner.gotArgs[len(runner.gotArgs)-1] != "-" {
		t.Fatalf("expected stdout output arg, got %v", runner.gotArgs)
	}
}

func TestExtractPDFRunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("binary not found")}
	service := textpull.NewService("pdftotext", 100, textpull.WithRunner(runner))

	if _, err := service.Extract(context.Background(), "x.pdf"); err == nil {
		t.Fatal("expected runner error to propagate")
	}
}

func TestExtractTruncatesWithMarker(t *testing.T) {
	runner := &fakeRunner{output: []byte(strings.Repeat("a", 50))}
	service := textpull.NewService("pdftotext", 10, textpull.WithRunner(runner))

	text, err := service.Extract(context.Background(), "x.pdf")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !strings.HasSuffix(text, textpull.TruncationMarker) {
		t.Fatalf("missing truncation marker: %q", text)
	}
	if !strings.HasPrefix(text, strings.Repeat("a", 10)) {
		t.Fatalf("unexpected prefix: %q", text)
	}
	if strings.Count(text, "a") != 10 {
		t.Fatalf("expected 10 kept characters, got %d", strings.Count(text, "a"))
	}
}

func TestExtractEmptyDocumentFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("   \n  "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	service := textpull.NewService("pdftotext", 100)
	if _, err := service.Extract(context.Background(), path); err == nil {
		t.Fatal("expected error for empty document")
	}
}
