// Package extract runs the per-document extraction pipeline: pull text,
// prompt the model, persist the JSON artifact, and append one row to the
// bucket table and the combined table. Processing is strictly sequential
// and resumable; a document with an existing artifact is skipped unless
// overwrite is requested.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"papercard/internal/docname"
	"papercard/internal/scan"
	"papercard/internal/scoring"
	"papercard/internal/services/llm"
	"papercard/internal/tabular"
)

const systemPrompt = "You are a professional academic paper analysis assistant. " +
	"Follow the JSON schema given in the user prompt exactly and output only JSON, " +
	"with no additional commentary."

// themePlaceholder marks where the prompt template receives the bucket
// catalog text.
const themePlaceholder = "{THEME_BUCKETS}"

// weightsPlaceholder marks where the prompt template receives the scoring
// weight guidance. Templates without the placeholder get the guidance
// appended instead.
const weightsPlaceholder = "{SCORING_WEIGHTS}"

// Completer produces one JSON completion per call. Satisfied by llm.Client.
type Completer interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// TextExtractor turns a document path into bounded plain text. Satisfied
// by textpull.Service.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Stats counts per-document outcomes for one folder run.
type Stats struct {
	Success int
	Skip    int
	Fail    int
}

// Add merges two folder runs' outcomes.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Success: s.Success + other.Success,
		Skip:    s.Skip + other.Skip,
		Fail:    s.Fail + other.Fail,
	}
}

// Pipeline processes buckets one document at a time.
type Pipeline struct {
	completer   Completer
	texts       TextExtractor
	artifactDir string
	summaryDir  string
	interval    time.Duration
	errors      *ErrorLog
	logger      *slog.Logger
	weights     scoring.WeightsProvider
	sleep       func(time.Duration)
}

// Option customizes the pipeline.
type Option func(*Pipeline)

// WithSleeper overrides the inter-request throttle. Tests use this to run
// without real delays.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(p *Pipeline) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// WithWeightsProvider overrides how per-bucket scoring weights are
// resolved for prompt guidance. The default provider returns the standard
// vector for every bucket.
func WithWeightsProvider(provider scoring.WeightsProvider) Option {
	return func(p *Pipeline) {
		if provider != nil {
			p.weights = provider
		}
	}
}

// NewPipeline wires the pipeline's collaborators together.
func NewPipeline(
	completer Completer,
	texts TextExtractor,
	artifactDir, summaryDir string,
	interval time.Duration,
	errors *ErrorLog,
	logger *slog.Logger,
	opts ...Option,
) *Pipeline {
	pipeline := &Pipeline{
		completer:   completer,
		texts:       texts,
		artifactDir: artifactDir,
		summaryDir:  summaryDir,
		interval:    interval,
		errors:      errors,
		logger:      logger,
		weights:     scoring.NewStaticProvider(scoring.DefaultWeights()),
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(pipeline)
	}
	return pipeline
}

// BuildPrompt substitutes the bucket catalog into the template and appends
// the document text.
func BuildPrompt(template, themeText, documentText string) string {
	prompt := strings.ReplaceAll(template, themePlaceholder, themeText)
	return prompt + "\n\n---\n\nThe full document text follows. Extract the requested fields from it:\n\n" + documentText + "\n"
}

// ApplyScoringWeights injects the bucket's weight vector into the template
// so the model computes the overall score with the weights the scoring
// layer will later assume. Templates without the placeholder get the
// guidance appended.
func ApplyScoringWeights(template string, weights scoring.Weights) string {
	guidance := fmt.Sprintf(
		"Weight the overall score as: rigor %.2f, innovation %.2f, practicality %.2f, impact %.2f, readability %.2f.",
		weights.Rigor, weights.Innovation, weights.Practicality, weights.Impact, weights.Readability)
	if strings.Contains(template, weightsPlaceholder) {
		return strings.ReplaceAll(template, weightsPlaceholder, guidance)
	}
	return template + "\n\n" + guidance
}

// RunFolder processes one bucket. globalStart is the next global index to
// assign; the returned int is the value the next bucket should start from.
// Per-document failures are logged and counted, never propagated; the
// returned error covers only setup failures (directories, table headers).
func (p *Pipeline) RunFolder(
	ctx context.Context,
	folder scan.FolderStatus,
	promptTemplate, themeText string,
	overwrite bool,
	globalStart int,
) (Stats, int, error) {
	var stats Stats
	globalIndex := globalStart

	artifactFolder := filepath.Join(p.artifactDir, folder.Name)
	if err := os.MkdirAll(artifactFolder, 0o755); err != nil {
		return stats, globalIndex, fmt.Errorf("create artifact folder: %w", err)
	}

	bucketTable := filepath.Join(p.summaryDir, folder.Name+".csv")
	combinedTable := filepath.Join(p.summaryDir, CombinedTableName)

	// Overwrite rebuilds the bucket table from scratch. The combined table
	// is append-only across runs and is never deleted.
	if overwrite {
		if err := os.Remove(bucketTable); err != nil && !os.IsNotExist(err) {
			return stats, globalIndex, fmt.Errorf("reset bucket table: %w", err)
		}
	}
	if err := tabular.EnsureFile(bucketTable, TableHeader()); err != nil {
		return stats, globalIndex, err
	}
	if err := tabular.EnsureFile(combinedTable, TableHeader()); err != nil {
		return stats, globalIndex, err
	}

	weights, err := p.weights.ForDomain(folder.Name)
	if err != nil {
		p.logger.Warn("weights lookup failed, using defaults",
			"bucket", folder.Name,
			"error", err)
		weights = scoring.DefaultWeights()
	}
	promptTemplate = ApplyScoringWeights(promptTemplate, weights)

	var toProcess []scan.Document
	for _, document := range folder.Documents {
		artifactPath := scan.ArtifactPath(p.artifactDir, folder.Name, document.Stem)
		if !overwrite {
			if _, err := os.Stat(artifactPath); err == nil {
				stats.Skip++
				continue
			}
		}
		toProcess = append(toProcess, document)
	}
	if len(toProcess) == 0 {
		return stats, globalIndex, nil
	}

	for i, document := range toProcess {
		p.logger.Info("processing document",
			"bucket", folder.Name,
			"document", document.Name,
			"position", fmt.Sprintf("%d/%d", i+1, len(toProcess)))

		if err := p.processDocument(ctx, folder.Name, document, promptTemplate, themeText, globalIndex); err != nil {
			stats.Fail++
			p.logger.Warn("document failed",
				"bucket", folder.Name,
				"document", document.Name,
				"error", err)
			if logErr := p.errors.Record(document.Name, err.Error()); logErr != nil {
				p.logger.Warn("error log append failed", "error", logErr)
			}
		} else {
			stats.Success++
			globalIndex++
		}

		if i < len(toProcess)-1 && p.interval > 0 {
			p.sleep(p.interval)
		}
	}

	return stats, globalIndex, nil
}

func (p *Pipeline) processDocument(
	ctx context.Context,
	bucket string,
	document scan.Document,
	promptTemplate, themeText string,
	globalIndex int,
) error {
	text, err := p.texts.Extract(ctx, document.Path)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	content, err := p.completer.CompleteJSON(ctx, systemPrompt, BuildPrompt(promptTemplate, themeText, text))
	if err != nil {
		return err
	}

	var raw json.RawMessage
	if err := llm.DecodeLLMJSON(content, &raw); err != nil {
		return err
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("parse model response: %w", err)
	}
	// A bare "null" decodes into a nil map; treat it like any other
	// non-object response so the document fails instead of the run.
	if payload == nil {
		return fmt.Errorf("parse model response: not a JSON object")
	}
	payload["source_folder"] = bucket

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	artifactPath := scan.ArtifactPath(p.artifactDir, bucket, document.Stem)
	if err := os.WriteFile(artifactPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	// Table appends happen after the artifact write. If an append fails the
	// document counts as failed but its artifact stays on disk; a later
	// overwrite run reconciles the tables.
	localIndex := docname.NumberPrefix(document.Name)
	bucketTable := filepath.Join(p.summaryDir, bucket+".csv")
	combinedTable := filepath.Join(p.summaryDir, CombinedTableName)

	if err := tabular.AppendRow(bucketTable, tableRow(payload, raw, localIndex)); err != nil {
		return err
	}
	if err := tabular.AppendRow(combinedTable, tableRow(payload, raw, strconv.Itoa(globalIndex))); err != nil {
		return err
	}

	p.logger.Info("document persisted",
		"bucket", bucket,
		"document", document.Name,
		"local_index", localIndex,
		"global_index", globalIndex)
	return nil
}
