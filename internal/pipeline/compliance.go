// File path: internal/pipeline/compliance.go
package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adityakulkarni/reportforge/internal/common"
	"github.com/adityakulkarni/reportforge/internal/report"
)

// Conservative defaults used when the auditor's analysis block is missing
// or malformed; the request still succeeds with a usable document.
const (
	defaultComplianceScore = 70
	defaultQualityScore    = 75
)

const genericComplianceIssue = "Automated compliance analysis unavailable; manual review against the MSBTE template is recommended."

var (
	complianceScoreRe = regexp.MustCompile(`(?im)^\s*COMPLIANCE_SCORE:\s*(\d{1,3})`)
	isCompliantRe     = regexp.MustCompile(`(?im)^\s*IS_COMPLIANT:\s*(YES|NO|TRUE|FALSE)`)
	qualityScoreRe    = regexp.MustCompile(`(?im)^\s*QUALITY_SCORE:\s*(\d{1,3})`)
	issuesBlockRe     = regexp.MustCompile(`(?is)(?:^|\n)\s*ISSUES:\s*\n(.*?)(?:\n\s*[A-Z_]+:|\z)`)
	recsBlockRe       = regexp.MustCompile(`(?is)(?:^|\n)\s*RECOMMENDATIONS:\s*\n(.*?)(?:\n\s*[A-Z_]+:|\z)`)
	listItemRe        = regexp.MustCompile(`(?m)^\s*[-•*]\s*(.+)$`)
)

// defaultCompliance is the fallback when the whole analysis is unusable.
func defaultCompliance() report.ComplianceResult {
	return report.ComplianceResult{
		Compliant:       false,
		Score:           defaultComplianceScore,
		Issues:          []string{genericComplianceIssue},
		Recommendations: nil,
		QualityScore:    defaultQualityScore,
	}
}

// parseCompliance extracts the fixed-format analysis block with anchored
// regular expressions. Every field independently falls back to a
// conservative default; the parse itself never fails.
func parseCompliance(raw string) report.ComplianceResult {
	logger := common.Logger()
	result := report.ComplianceResult{
		Score:        defaultComplianceScore,
		QualityScore: defaultQualityScore,
	}
	degraded := false

	if m := complianceScoreRe.FindStringSubmatch(raw); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			result.Score = clampScore(score)
		}
	} else {
		degraded = true
	}
	if m := qualityScoreRe.FindStringSubmatch(raw); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			result.QualityScore = clampScore(score)
		}
	} else {
		degraded = true
	}
	if m := isCompliantRe.FindStringSubmatch(raw); m != nil {
		answer := strings.ToUpper(m[1])
		result.Compliant = answer == "YES" || answer == "TRUE"
	} else {
		result.Compliant = result.Score >= complianceThreshold
	}

	result.Issues = parseListBlock(raw, issuesBlockRe)
	result.Recommendations = parseListBlock(raw, recsBlockRe)
	if degraded && len(result.Issues) == 0 {
		result.Issues = []string{genericComplianceIssue}
	}
	if degraded {
		logger.Warn("pipeline: compliance analysis malformed, using defaults",
			"score", result.Score, "quality", result.QualityScore)
	}
	return result
}

// parseListBlock finds a labelled block and returns its bullet lines.
func parseListBlock(raw string, blockRe *regexp.Regexp) []string {
	m := blockRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	var items []string
	for _, m := range listItemRe.FindAllStringSubmatch(m[1], -1) {
		item := strings.TrimSpace(m[1])
		if item != "" && !strings.HasPrefix(item, "<") {
			items = append(items, item)
		}
	}
	return items
}
