// File path: internal/extract/pdf.go
package extract

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/adityakulkarni/reportforge/internal/common"
)

// printableRunRe approximates text content from raw PDF bytes when real
// parsing fails: runs of printable ASCII at least four characters long.
var printableRunRe = regexp.MustCompile(`[ -~]{4,}`)

// numberedLineRe matches outline-like numbered lines ("1.", "2.3", "4)").
var numberedLineRe = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`)

// extractPDF prefers structured extraction via ledongthuc/pdf and degrades
// to a printable-character scan over the raw bytes.
func extractPDF(data []byte) *Result {
	logger := common.Logger()
	text, err := pdfPlainText(data)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			logger.Warn("extract: pdf parse failed, falling back to printable scan", "error", err)
		}
		text = printableScan(data)
	}
	text = normalizeWhitespace(text)
	return &Result{
		Text: text,
		Structure: DocumentStructure{
			Outline:         guessHeadings(text),
			DefaultFontSize: 12,
			HasTOC:          containsTOCLine(text),
		},
	}
}

func pdfPlainText(data []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = ErrInvalidPayload
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func printableScan(data []byte) string {
	runs := printableRunRe.FindAll(data, -1)
	parts := make([]string, 0, len(runs))
	for _, run := range runs {
		parts = append(parts, string(run))
	}
	return strings.Join(parts, "\n")
}

// guessHeadings treats short all-caps or numbered lines as headings. This is
// a heuristic, not a guarantee.
func guessHeadings(text string) []OutlineEntry {
	var outline []OutlineEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 80 {
			continue
		}
		switch {
		case numberedLineRe.MatchString(line):
			outline = append(outline, OutlineEntry{Title: line, Level: numberedDepth(line)})
		case isAllCapsLine(line):
			outline = append(outline, OutlineEntry{Title: line, Level: 1})
		}
		if len(outline) >= 50 {
			break
		}
	}
	return outline
}

func numberedDepth(line string) int {
	prefix, _, _ := strings.Cut(line, " ")
	depth := strings.Count(prefix, ".") + 1
	if strings.HasSuffix(prefix, ".") || strings.HasSuffix(prefix, ")") {
		depth = strings.Count(strings.TrimRight(prefix, ".)"), ".") + 1
	}
	if depth > 6 {
		depth = 6
	}
	return depth
}

func isAllCapsLine(line string) bool {
	letters := 0
	for _, r := range line {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return letters >= 3
}

func containsTOCLine(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		normalized := strings.ToLower(strings.TrimSpace(line))
		if normalized == "table of contents" || normalized == "contents" || normalized == "index" {
			return true
		}
	}
	return false
}

// normalizeWhitespace collapses repeated blanks while preserving line
// boundaries for the heading heuristics.
func normalizeWhitespace(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r", "\n"), "\n")
	var out []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
