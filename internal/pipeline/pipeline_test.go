// File path: internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adityakulkarni/reportforge/internal/llm"
	"github.com/adityakulkarni/reportforge/internal/report"
)

// scriptProvider returns one scripted response per Complete call.
type scriptProvider struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (s *scriptProvider) Complete(ctx context.Context, prompt string, opts llm.Options) (string, error) {
	idx := s.calls
	s.calls++
	s.prompts = append(s.prompts, prompt)
	var err error
	if idx < len(s.errs) {
		err = s.errs[idx]
	}
	var resp string
	if idx < len(s.responses) {
		resp = s.responses[idx]
	}
	return resp, err
}

func (s *scriptProvider) Name() string { return "script" }

func testStudent() report.StudentData {
	return report.StudentData{
		Name:       "Asha Rao",
		RollNumber: "42",
		College:    "Government Polytechnic Pune",
		Topic:      "IoT-based Smart Irrigation System",
		Branch:     "Computer Engineering",
	}
}

const draftBody = `## AIMS_AND_BENEFITS
- Automate irrigation using sensor feedback

## RATIONALE
The system monitors soil moisture with an IoT sensor network and controls
the pump through an algorithm running on embedded hardware.

## CONCLUSION
The irrigation controller architecture performed as designed.`

const complianceBlock = `COMPLIANCE_SCORE: 88
IS_COMPLIANT: YES
ISSUES:
- none significant
RECOMMENDATIONS:
- add more references
QUALITY_SCORE: 90`

func TestRunHappyPath(t *testing.T) {
	enhanced := draftBody + "\n\n## OUTPUTS\nA tested prototype with database logging."
	provider := &scriptProvider{responses: []string{draftBody, enhanced, complianceBlock}}
	runner := NewRunner(provider, Config{Model: "test-model", Temperature: 0.5, MaxTokens: 1000})

	outcome, err := runner.Run(context.Background(), testStudent(), "reference text", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if provider.calls != 3 {
		t.Fatalf("expected 3 provider calls, got %d", provider.calls)
	}
	if !strings.Contains(outcome.Content, "tested prototype") {
		t.Fatalf("enhanced content missing: %q", outcome.Content)
	}
	if outcome.EnhanceDegraded || outcome.ComplianceDegraded {
		t.Fatalf("unexpected degrade flags: %+v", outcome)
	}
	if outcome.Compliance.Score != 88 || !outcome.Compliance.Compliant {
		t.Fatalf("unexpected compliance: %+v", outcome.Compliance)
	}
	if outcome.Compliance.QualityScore != 90 {
		t.Fatalf("unexpected quality score: %d", outcome.Compliance.QualityScore)
	}
	if len(outcome.Compliance.Recommendations) != 1 {
		t.Fatalf("unexpected recommendations: %v", outcome.Compliance.Recommendations)
	}
}

func TestRunKeepsDraftWhenLaterStagesFail(t *testing.T) {
	boom := &llm.UpstreamError{Status: 503, Err: errors.New("backend unavailable")}
	provider := &scriptProvider{
		responses: []string{draftBody, "", ""},
		errs:      []error{nil, boom, boom},
	}
	runner := NewRunner(provider, Config{Model: "test-model"})

	outcome, err := runner.Run(context.Background(), testStudent(), "reference text", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !outcome.EnhanceDegraded || !outcome.ComplianceDegraded {
		t.Fatalf("expected degrade flags, got %+v", outcome)
	}
	if !strings.Contains(outcome.Content, "soil moisture") {
		t.Fatalf("stage-1 content lost: %q", outcome.Content)
	}
	if outcome.Compliance.Score != defaultComplianceScore || outcome.Compliance.QualityScore != defaultQualityScore {
		t.Fatalf("expected default compliance, got %+v", outcome.Compliance)
	}
	if outcome.Compliance.Compliant {
		t.Fatalf("degraded compliance must not report compliant")
	}
	if len(outcome.Compliance.Issues) != 1 {
		t.Fatalf("expected one generic issue, got %v", outcome.Compliance.Issues)
	}
}

func TestRunRejectsShortEnhancement(t *testing.T) {
	provider := &scriptProvider{responses: []string{draftBody, "too short", complianceBlock}}
	runner := NewRunner(provider, Config{Model: "test-model"})

	outcome, err := runner.Run(context.Background(), testStudent(), "reference text", nil)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !outcome.EnhanceDegraded {
		t.Fatalf("expected enhancement degrade for truncated output")
	}
	if !strings.Contains(outcome.Content, "soil moisture") {
		t.Fatalf("stage-1 content lost: %q", outcome.Content)
	}
}

func TestRunGenerationFailureIsFatal(t *testing.T) {
	provider := &scriptProvider{errs: []error{llm.ErrRateLimited}}
	runner := NewRunner(provider, Config{Model: "test-model"})

	_, err := runner.Run(context.Background(), testStudent(), "reference text", nil)
	if !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if provider.calls != 1 {
		t.Fatalf("expected a single provider call, got %d", provider.calls)
	}
}

func TestParseComplianceDefaults(t *testing.T) {
	result := parseCompliance("completely unstructured answer")
	if result.Score != defaultComplianceScore || result.QualityScore != defaultQualityScore {
		t.Fatalf("expected defaults, got %+v", result)
	}
	if result.Compliant {
		t.Fatalf("default score below threshold must not be compliant")
	}
	if len(result.Issues) != 1 {
		t.Fatalf("expected generic issue, got %v", result.Issues)
	}
}

func TestParseComplianceClampsScores(t *testing.T) {
	result := parseCompliance("COMPLIANCE_SCORE: 250\nIS_COMPLIANT: NO\nQUALITY_SCORE: 101")
	if result.Score != 100 || result.QualityScore != 100 {
		t.Fatalf("expected clamped scores, got %+v", result)
	}
	if result.Compliant {
		t.Fatalf("IS_COMPLIANT NO must win over score")
	}
}

func TestFormatContentStripsHedgingBelowThreshold(t *testing.T) {
	in := "The design is very good and the results are really solid."
	out := formatContent(in, 90, 50)
	if strings.Contains(out, "very ") || strings.Contains(out, "really ") {
		t.Fatalf("hedging not removed: %q", out)
	}
	if !strings.Contains(out, "effective") {
		t.Fatalf("weak adjective not upgraded: %q", out)
	}
}

func TestFormatContentIsStableAboveThresholds(t *testing.T) {
	in := "The design is very good.\n\nSecond paragraph."
	out := formatContent(in, 95, 95)
	if !strings.Contains(out, "very good") {
		t.Fatalf("high scores must not rewrite prose: %q", out)
	}
	if out != formatContent(in, 95, 95) {
		t.Fatalf("formatting must be deterministic")
	}
}

func TestFormatContentGatesLayoutCleanupOnCompliance(t *testing.T) {
	in := "First paragraph.  \n\n\n\nSecond paragraph."
	high := formatContent(in, 95, 95)
	if !strings.Contains(high, "\n\n\n\n") {
		t.Fatalf("compliant content must keep its layout: %q", high)
	}
	low := formatContent(in, 60, 95)
	if strings.Contains(low, "\n\n\n") {
		t.Fatalf("blank-line run not collapsed below threshold: %q", low)
	}
	if strings.Contains(low, ".  \n") {
		t.Fatalf("trailing spaces not stripped below threshold: %q", low)
	}
}

func TestScoreContentCountsMarkersAndTopic(t *testing.T) {
	metrics, suggestions := scoreContent(draftBody, "IoT-based Smart Irrigation System")
	if metrics.Completeness != 30 {
		t.Fatalf("3 of 10 markers should score 30, got %d", metrics.Completeness)
	}
	if metrics.Relevance == 0 {
		t.Fatalf("topic words present, relevance must be positive")
	}
	if len(suggestions) == 0 {
		t.Fatalf("short draft should produce suggestions")
	}
}
