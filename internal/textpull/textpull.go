// Package textpull turns source documents into plain text for prompt
// assembly. PDF documents go through the external pdftotext binary; plain
// text formats are read directly. Output is truncated to a fixed
// character budget so prompts stay inside the model's context.
package textpull

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// TruncationMarker is appended whenever extracted text exceeds the budget.
const TruncationMarker = "[text truncated]"

// CommandRunner executes an external binary and returns its stdout.
// Injected so tests can avoid the real pdftotext.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	var stderr strings.Builder
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}

// Service extracts document text with a rune budget.
type Service struct {
	binary   string
	maxChars int
	runner   CommandRunner
}

// Option customizes the service.
type Option func(*Service)

// WithRunner overrides how external binaries are invoked.
func WithRunner(runner CommandRunner) Option {
	return func(s *Service) {
		if runner != nil {
			s.runner = runner
		}
	}
}

// NewService constructs a text extraction service. binary is the
// pdftotext executable name; maxChars bounds the returned text.
func NewService(binary string, maxChars int, opts ...Option) *Service {
	service := &Service{
		binary:   binary,
		maxChars: maxChars,
		runner:   execRunner{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Extract returns the document's plain text, truncated to the configured
// budget with TruncationMarker appended when the budget is exceeded.
func (s *Service) Extract(ctx context.Context, path string) (string, error) {
	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		output, err := s.runner.Run(ctx, s.binary, "-layout", "-enc", "UTF-8", path, "-")
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		text = string(output)
	default:
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read document: %w", err)
		}
		text = string(raw)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("document %q produced no text", filepath.Base(path))
	}
	return s.truncate(text), nil
}

func (s *Service) truncate(text string) string {
	if s.maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= s.maxChars {
		return text
	}
	return string(runes[:s.maxChars]) + "\n\n" + TruncationMarker
}
