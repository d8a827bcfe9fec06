// File path: internal/prompt/prompt_test.go
package prompt

import (
	"strings"
	"testing"

	"github.com/adityakulkarni/reportforge/internal/extract"
	"github.com/adityakulkarni/reportforge/internal/report"
	"github.com/adityakulkarni/reportforge/internal/sections"
)

func testStudent() report.StudentData {
	return report.StudentData{
		Name:             "Asha Rao",
		RollNumber:       "42",
		EnrollmentNumber: "EN2024042",
		College:          "Government Polytechnic Pune",
		Topic:            "IoT-based Smart Irrigation System",
		Branch:           "Computer Engineering",
	}
}

func TestComposeIsDeterministicAndComplete(t *testing.T) {
	outline := []extract.OutlineEntry{
		{Title: "Background", Level: 1},
		{Title: "Sensor Selection", Level: 2},
	}
	first, err := Compose(testStudent(), "reference text about soil moisture", outline)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	second, err := Compose(testStudent(), "reference text about soil moisture", outline)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if first != second {
		t.Fatalf("identical inputs produced different prompts")
	}

	for _, want := range []string{
		"Asha Rao",
		"EN2024042",
		"IoT-based Smart Irrigation System",
		"reference text about soil moisture",
		"Background",
		"  Sensor Selection",
	} {
		if !strings.Contains(first, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
	for _, marker := range sections.MarkerNames() {
		if !strings.Contains(first, "## "+marker) {
			t.Fatalf("prompt missing marker %s", marker)
		}
	}
}

func TestComposeSubstitutesEveryPlaceholder(t *testing.T) {
	metrics := report.QualityMetrics{TechnicalDepth: 40, AcademicQuality: 70, Completeness: 30, Relevance: 50, Overall: 47}
	gen, err := Compose(testStudent(), "reference text", nil)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	enh, err := ComposeEnhancement("## RATIONALE\ndraft body", metrics, []string{"expand methodology"})
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	comp, err := ComposeCompliance("report content")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	placeholders := []string{
		"{student}", "{topic}", "{reference}", "{outline}", "{grammar}",
		"{draft}", "{metrics}", "{suggestions}", "{content}",
	}
	for _, composed := range []string{gen, enh, comp} {
		for _, ph := range placeholders {
			if strings.Contains(composed, ph) {
				t.Fatalf("placeholder %s left uninterpolated in prompt:\n%s", ph, composed)
			}
		}
	}
}

func TestComposeTruncatesReferenceText(t *testing.T) {
	long := strings.Repeat("x", refTextLimit+500)
	prompt, err := Compose(testStudent(), long, nil)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if strings.Contains(prompt, long) {
		t.Fatalf("reference text not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("x", refTextLimit)) {
		t.Fatalf("truncated reference text missing")
	}
}

func TestComposeOmitsOutlineBlockWhenEmpty(t *testing.T) {
	prompt, err := Compose(testStudent(), "short reference", nil)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if strings.Contains(prompt, "Reference document outline") {
		t.Fatalf("outline block present without outline entries")
	}
}

func TestComposeEnhancementEmbedsAssessment(t *testing.T) {
	metrics := report.QualityMetrics{TechnicalDepth: 40, AcademicQuality: 70, Completeness: 30, Relevance: 50, Overall: 47}
	suggestions := []string{"expand the methodology section"}
	prompt, err := ComposeEnhancement("## RATIONALE\ndraft body", metrics, suggestions)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if !strings.Contains(prompt, "draft body") {
		t.Fatalf("draft missing from prompt")
	}
	if !strings.Contains(prompt, "Completeness: 30/100") {
		t.Fatalf("metrics missing from prompt")
	}
	if !strings.Contains(prompt, "- expand the methodology section") {
		t.Fatalf("suggestions missing from prompt")
	}
}

func TestComposeComplianceRequestsAnalysisBlock(t *testing.T) {
	prompt, err := ComposeCompliance("report content here")
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	for _, want := range []string{"report content here", "COMPLIANCE_SCORE:", "IS_COMPLIANT:", "QUALITY_SCORE:"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
