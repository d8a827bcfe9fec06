// File path: internal/docbuild/docbuild.go
// Package docbuild assembles the final MSBTE micro-project report as a
// WordprocessingML (.docx) package. The document is built directly from the
// parsed sections so output bytes are deterministic for a given input.
package docbuild

import (
	"fmt"
	"strings"

	"github.com/adityakulkarni/reportforge/internal/report"
	"github.com/adityakulkarni/reportforge/internal/sections"
)

// paragraph is one block-level element of the generated document. An empty
// Style renders as body text; PageBreak inserts a break before the text run.
type paragraph struct {
	Style     string
	Text      string
	PageBreak bool
}

const (
	styleTitle    = "Title"
	styleHeading1 = "Heading1"
	styleHeading2 = "Heading2"
	styleList     = "ListParagraph"
)

// headingStyles maps outline levels 1 through 6 to the named styles that
// styles.xml defines.
var headingStyles = []string{
	styleHeading1, styleHeading2, "Heading3", "Heading4", "Heading5", "Heading6",
}

// headingStyle resolves a heading level to a style; out-of-range levels
// fall back to level 2.
func headingStyle(level int) string {
	if level < 1 || level > len(headingStyles) {
		return styleHeading2
	}
	return headingStyles[level-1]
}

func heading(level int, text string) paragraph {
	return paragraph{Style: headingStyle(level), Text: text}
}

// Assemble renders the full report document and returns the .docx bytes.
// Compliance may be nil when validation degraded; the certificate page then
// omits the compliance note.
func Assemble(parsed sections.ParsedSections, student report.StudentData, compliance *report.ComplianceResult) ([]byte, error) {
	paras := coverPage(student)
	paras = append(paras, indexPage()...)
	paras = append(paras, annexureOne(parsed, student)...)
	paras = append(paras, annexureTwo(parsed, student)...)
	if compliance != nil && compliance.Compliant {
		paras = append(paras, paragraph{Text: fmt.Sprintf(
			"This report follows the prescribed micro-project format (compliance score %d/100).",
			compliance.Score)})
	}
	return writePackage(paras)
}

func coverPage(student report.StudentData) []paragraph {
	paras := []paragraph{
		{Style: styleTitle, Text: "MICRO-PROJECT REPORT"},
		heading(2, student.Topic),
		{Text: ""},
		{Text: "Submitted by: " + student.Name},
		{Text: "Roll Number: " + student.RollNumber},
	}
	if student.EnrollmentNumber != "" {
		paras = append(paras, paragraph{Text: "Enrollment Number: " + student.EnrollmentNumber})
	}
	paras = append(paras,
		paragraph{Text: "Branch: " + student.Branch},
	)
	if student.Semester != "" {
		paras = append(paras, paragraph{Text: "Semester: " + student.Semester})
	}
	paras = append(paras,
		paragraph{Text: ""},
		paragraph{Text: student.College},
		paragraph{Text: "Maharashtra State Board of Technical Education"},
	)
	return paras
}

func indexPage() []paragraph {
	entries := []string{
		"Annexure I: Micro-Project Proposal",
		"1.1 Aims and Benefits of the Micro-Project",
		"1.2 Course Outcomes Addressed",
		"1.3 Proposed Methodology",
		"Annexure II: Micro-Project Report",
		"2.1 Rationale",
		"2.2 Literature Review",
		"2.3 Actual Methodology Followed",
		"2.4 Actual Resources Used",
		"2.5 Outputs and Conclusion",
		"2.6 Skills Developed",
		"2.7 Applications of the Micro-Project",
	}
	paras := []paragraph{{Style: headingStyle(1), Text: "INDEX", PageBreak: true}}
	for _, entry := range entries {
		paras = append(paras, paragraph{Style: styleList, Text: entry})
	}
	return paras
}

func annexureOne(parsed sections.ParsedSections, student report.StudentData) []paragraph {
	paras := []paragraph{
		{Style: headingStyle(1), Text: "ANNEXURE I: MICRO-PROJECT PROPOSAL", PageBreak: true},
		heading(2, student.Topic),
		heading(2, "1.1 Aims and Benefits of the Micro-Project"),
	}
	paras = appendBullets(paras, parsed.AimsBenefits)
	paras = append(paras, heading(2, "1.2 Course Outcomes Addressed"))
	paras = appendBullets(paras, parsed.CourseOutcomes)
	paras = append(paras, heading(2, "1.3 Proposed Methodology"))
	paras = appendBody(paras, parsed.Methodology)
	return paras
}

func annexureTwo(parsed sections.ParsedSections, student report.StudentData) []paragraph {
	paras := []paragraph{
		{Style: headingStyle(1), Text: "ANNEXURE II: MICRO-PROJECT REPORT", PageBreak: true},
		heading(2, student.Topic),
		heading(2, "2.1 Rationale"),
	}
	paras = appendBody(paras, parsed.Rationale)
	paras = append(paras, heading(2, "2.2 Literature Review"))
	paras = appendBody(paras, parsed.LiteratureIntro)
	paras = appendBullets(paras, parsed.LiteraturePoints)
	paras = append(paras, heading(2, "2.3 Actual Methodology Followed"))
	paras = appendBody(paras, parsed.Methodology)
	paras = append(paras, heading(2, "2.4 Actual Resources Used"))
	paras = appendBody(paras, parsed.ResourcesUsed)
	paras = append(paras, heading(2, "2.5 Outputs and Conclusion"))
	paras = appendBody(paras, parsed.Outputs)
	paras = appendBody(paras, parsed.Conclusion)
	paras = append(paras, heading(2, "2.6 Skills Developed"))
	paras = appendBullets(paras, parsed.SkillsDeveloped)
	paras = append(paras, heading(2, "2.7 Applications of the Micro-Project"))
	paras = appendBullets(paras, parsed.Applications)
	return paras
}

// appendBody splits free text on blank lines so each chunk renders as its
// own paragraph rather than one run with embedded newlines.
func appendBody(paras []paragraph, body string) []paragraph {
	for _, chunk := range strings.Split(body, "\n\n") {
		chunk = strings.TrimSpace(strings.ReplaceAll(chunk, "\n", " "))
		if chunk != "" {
			paras = append(paras, paragraph{Text: chunk})
		}
	}
	return paras
}

func appendBullets(paras []paragraph, items []string) []paragraph {
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			paras = append(paras, paragraph{Style: styleList, Text: "• " + item})
		}
	}
	return paras
}
