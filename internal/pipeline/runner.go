// File path: internal/pipeline/runner.go
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/adityakulkarni/reportforge/internal/common"
	"github.com/adityakulkarni/reportforge/internal/common/telemetry"
	"github.com/adityakulkarni/reportforge/internal/extract"
	"github.com/adityakulkarni/reportforge/internal/llm"
	"github.com/adityakulkarni/reportforge/internal/prompt"
	"github.com/adityakulkarni/reportforge/internal/report"
)

// Config carries the completion parameters shared by all pipeline stages.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Runner drives the staged generation flow against a single provider.
type Runner struct {
	provider llm.Provider
	cfg      Config
}

// Outcome is the full result of one pipeline run.
type Outcome struct {
	Content            string
	Metrics            report.QualityMetrics
	Suggestions        []string
	Compliance         report.ComplianceResult
	EnhanceDegraded    bool
	ComplianceDegraded bool
}

func NewRunner(provider llm.Provider, cfg Config) *Runner {
	return &Runner{provider: provider, cfg: cfg}
}

// Run executes the four stages in order. Only the initial generation is
// fatal; later stages fall back to the best content produced so far.
func (r *Runner) Run(ctx context.Context, student report.StudentData, refText string, outline []extract.OutlineEntry) (*Outcome, error) {
	logger := common.Logger()
	opts := llm.Options{
		Model:       r.cfg.Model,
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	}

	genPrompt, err := prompt.Compose(student, refText, outline)
	if err != nil {
		return nil, fmt.Errorf("compose generation prompt: %w", err)
	}
	genStart := time.Now()
	content, err := r.provider.Complete(ctx, genPrompt, opts)
	telemetry.RecordStage("generate", time.Since(genStart))
	if err != nil {
		return nil, fmt.Errorf("generate report content: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("generate report content: provider returned empty completion")
	}
	logger.Info("pipeline: draft generated", "provider", r.provider.Name(), "chars", len(content))

	outcome := &Outcome{Content: content}
	outcome.Metrics, outcome.Suggestions = scoreContent(content, student.Topic)

	enhanceStart := time.Now()
	enhanced, err := r.enhance(ctx, content, outcome.Metrics, outcome.Suggestions, opts)
	telemetry.RecordStage("enhance", time.Since(enhanceStart))
	if err != nil {
		logger.Warn("pipeline: enhancement degraded", "error", err)
		outcome.EnhanceDegraded = true
	} else {
		outcome.Content = enhanced
		outcome.Metrics, outcome.Suggestions = scoreContent(enhanced, student.Topic)
	}

	validateStart := time.Now()
	compliance, err := r.validate(ctx, outcome.Content, opts)
	telemetry.RecordStage("validate", time.Since(validateStart))
	if err != nil {
		logger.Warn("pipeline: compliance check degraded", "error", err)
		outcome.ComplianceDegraded = true
		compliance = defaultCompliance()
	}
	outcome.Compliance = compliance

	outcome.Content = formatContent(outcome.Content, compliance.Score, compliance.QualityScore)
	logger.Info("pipeline: run complete",
		"overall", outcome.Metrics.Overall,
		"compliance", compliance.Score,
		"quality", compliance.QualityScore)
	return outcome, nil
}

// enhance asks the provider to rewrite the draft against its own metrics.
// An empty or marker-less rewrite counts as a failure so a truncated
// completion can never replace a structurally complete draft.
func (r *Runner) enhance(ctx context.Context, draft string, metrics report.QualityMetrics, suggestions []string, opts llm.Options) (string, error) {
	p, err := prompt.ComposeEnhancement(draft, metrics, suggestions)
	if err != nil {
		return "", fmt.Errorf("compose enhancement prompt: %w", err)
	}
	enhanced, err := r.provider.Complete(ctx, p, opts)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(enhanced) == "" {
		return "", fmt.Errorf("provider returned empty enhancement")
	}
	if len(enhanced) < len(draft)/2 {
		return "", fmt.Errorf("enhancement shorter than half the draft (%d < %d chars)", len(enhanced), len(draft)/2)
	}
	return enhanced, nil
}

// validate runs the compliance prompt and parses its fixed-format answer.
func (r *Runner) validate(ctx context.Context, content string, opts llm.Options) (report.ComplianceResult, error) {
	p, err := prompt.ComposeCompliance(content)
	if err != nil {
		return report.ComplianceResult{}, fmt.Errorf("compose compliance prompt: %w", err)
	}
	raw, err := r.provider.Complete(ctx, p, opts)
	if err != nil {
		return report.ComplianceResult{}, err
	}
	return parseCompliance(raw), nil
}
