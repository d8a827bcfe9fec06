// File path: internal/prompt/prompt.go
// Package prompt builds the natural-language instructions sent to the
// generation service. Composition is deterministic: the same inputs always
// produce the same prompt, which keeps the pipeline testable.
package prompt

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/prompts"

	"github.com/adityakulkarni/reportforge/internal/extract"
	"github.com/adityakulkarni/reportforge/internal/report"
	"github.com/adityakulkarni/reportforge/internal/sections"
)

// refTextLimit bounds the embedded reference text so the composed prompt
// respects the generation service's context limits.
const refTextLimit = 5000

// outlineLimit bounds how many reference headings are echoed in the prompt.
const outlineLimit = 12

// The templates use single-brace placeholders, so they must be rendered
// with the f-string format rather than the Go-template default.
var generationTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{"student", "topic", "reference", "outline", "grammar"},
	Template: `You are an academic writing assistant producing an MSBTE micro-project report.

Student details:
{student}

Project topic: {topic}

Reference material extracted from the uploaded document:
{reference}

{outline}Write the complete report content now. Structure the output with EXACTLY the
following section markers, each on its own line, in this order:

{grammar}

Rules:
- Every marker must appear exactly once, spelled exactly as shown.
- Bullet sections use "- " line prefixes, one point per line.
- Target roughly 1800 words of substantive, technically grounded content.
- Maintain a formal academic register and cite recent (last three years) developments where relevant.
- Do not add markers beyond the ten listed above.`,
}

var enhancementTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{"draft", "metrics", "suggestions"},
	Template: `You are a senior technical editor improving an MSBTE micro-project report draft.

Current draft:
{draft}

Quality assessment of the draft:
{metrics}

Improvement suggestions:
{suggestions}

Rewrite the draft to address every suggestion while preserving the exact
"## MARKER" section structure of the original. Every marker present in the
draft must remain present, spelled identically. Return only the improved
report text.`,
}

var complianceTemplate = prompts.PromptTemplate{
	TemplateFormat: prompts.TemplateFormatFString,
	InputVariables: []string{"content"},
	Template: `You are an MSBTE documentation compliance auditor. Review the following
micro-project report content against the standard MSBTE micro-project
template (Annexure I proposal and Annexure II report structure).

Report content:
{content}

Respond with EXACTLY this analysis block and nothing else:

COMPLIANCE_SCORE: <integer 0-100>
IS_COMPLIANT: <YES or NO>
ISSUES:
- <issue, one per line>
RECOMMENDATIONS:
- <recommendation, one per line>
QUALITY_SCORE: <integer 0-100>`,
}

// sectionGuidance describes each marker for the generation prompt.
var sectionGuidance = map[string]string{
	sections.MarkerAims:        "3-5 bullet points: aims and benefits of the micro-project",
	sections.MarkerOutcomes:    "3-4 bullet points: course outcomes addressed",
	sections.MarkerRationale:   "one paragraph: rationale for taking up the project",
	sections.MarkerLiterature:  "one introductory paragraph followed by 4-6 bullet points reviewing prior work",
	sections.MarkerMethodology: "one or two paragraphs: methodology followed, step by step",
	sections.MarkerResources:   "short paragraph: hardware, software and other resources used",
	sections.MarkerOutputs:     "one or two paragraphs: outputs and results of the project",
	sections.MarkerSkills:      "3-5 bullet points: skills developed during the project",
	sections.MarkerApps:        "3-5 bullet points: applications of the project",
	sections.MarkerConclusion:  "one paragraph: conclusion",
}

// Compose builds the initial generation prompt from student data, extracted
// reference text, and the reference document's outline.
func Compose(student report.StudentData, refText string, outline []extract.OutlineEntry) (string, error) {
	return generationTemplate.Format(map[string]any{
		"student":   studentBlock(student),
		"topic":     strings.TrimSpace(student.Topic),
		"reference": truncate(strings.TrimSpace(refText), refTextLimit),
		"outline":   outlineBlock(outline),
		"grammar":   grammarBlock(),
	})
}

// ComposeEnhancement builds the stage-2 prompt from the previous stage's
// text and its computed assessment.
func ComposeEnhancement(prev string, metrics report.QualityMetrics, suggestions []string) (string, error) {
	return enhancementTemplate.Format(map[string]any{
		"draft":       prev,
		"metrics":     metricsBlock(metrics),
		"suggestions": suggestionBlock(suggestions),
	})
}

// ComposeCompliance builds the stage-3 compliance-auditor prompt.
func ComposeCompliance(content string) (string, error) {
	return complianceTemplate.Format(map[string]any{"content": content})
}

func studentBlock(student report.StudentData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- Name: %s\n", student.Name)
	fmt.Fprintf(&b, "- Roll number: %s\n", student.RollNumber)
	fmt.Fprintf(&b, "- Enrollment number: %s\n", student.EnrollmentNumber)
	fmt.Fprintf(&b, "- College: %s", student.College)
	if branch := strings.TrimSpace(student.Branch); branch != "" {
		fmt.Fprintf(&b, "\n- Branch: %s", branch)
	}
	if semester := strings.TrimSpace(student.Semester); semester != "" {
		fmt.Fprintf(&b, "\n- Semester: %s", semester)
	}
	if category := strings.TrimSpace(student.Category); category != "" {
		fmt.Fprintf(&b, "\n- Project category: %s", category)
	}
	if complexity := strings.TrimSpace(student.Complexity); complexity != "" {
		fmt.Fprintf(&b, "\n- Expected complexity: %s", complexity)
	}
	return b.String()
}

func outlineBlock(outline []extract.OutlineEntry) string {
	if len(outline) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Reference document outline:\n")
	for i, entry := range outline {
		if i >= outlineLimit {
			fmt.Fprintf(&b, "- (%d more headings omitted)\n", len(outline)-outlineLimit)
			break
		}
		indent := entry.Level - 1
		if indent < 0 {
			indent = 0
		}
		fmt.Fprintf(&b, "- %s%s\n", strings.Repeat("  ", indent), entry.Title)
	}
	b.WriteString("\n")
	return b.String()
}

func grammarBlock() string {
	var b strings.Builder
	for _, name := range sections.MarkerNames() {
		fmt.Fprintf(&b, "## %s\n(%s)\n", name, sectionGuidance[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

func metricsBlock(m report.QualityMetrics) string {
	return fmt.Sprintf(
		"- Technical depth: %d/100\n- Academic quality: %d/100\n- Completeness: %d/100\n- Relevance: %d/100\n- Overall: %d/100",
		m.TechnicalDepth, m.AcademicQuality, m.Completeness, m.Relevance, m.Overall,
	)
}

func suggestionBlock(suggestions []string) string {
	if len(suggestions) == 0 {
		return "- none"
	}
	var b strings.Builder
	for _, s := range suggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
