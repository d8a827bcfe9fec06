// File path: internal/pipeline/format.go
package pipeline

import (
	"regexp"
	"strings"
)

// Scores at or above these thresholds skip the corresponding cleanup pass.
const (
	complianceThreshold = 80
	qualityThreshold    = 85
)

var (
	markerLineRe    = regexp.MustCompile(`(?m)^\s*(##\s*[A-Z_]+\s*:?)\s*$`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)
	trailingSpaceRe = regexp.MustCompile(`(?m)[ \t]+$`)
	hedgeWordRe     = regexp.MustCompile(`(?i)\b(very|really|quite|basically|actually|just|simply)\s+`)
)

// weakAdjectives maps vague wording to more precise academic phrasing.
// Replacement is whole-word and case-insensitive, applied only when the
// quality score falls below the threshold.
var weakAdjectives = map[string]string{
	"good": "effective",
	"bad":  "suboptimal",
	"big":  "substantial",
	"nice": "well-suited",
}

// formatContent is the final stage. It is fully deterministic and makes no
// network calls, so it never degrades the pipeline. Content that already
// scores at or above both thresholds passes through untouched apart from
// outer trimming.
func formatContent(content string, compliance, quality int) string {
	out := content
	if compliance < complianceThreshold {
		out = normalizeMarkers(normalizeLayout(out))
	}
	if quality < qualityThreshold {
		out = tightenProse(out)
	}
	return strings.TrimSpace(out) + "\n"
}

// normalizeLayout collapses blank-line runs and strips trailing whitespace.
func normalizeLayout(content string) string {
	out := strings.ReplaceAll(content, "\r\n", "\n")
	out = trailingSpaceRe.ReplaceAllString(out, "")
	return blankRunRe.ReplaceAllString(out, "\n\n")
}

// normalizeMarkers guarantees every section marker sits on its own line with
// exactly one blank line above it, which keeps the marker grammar parseable
// even when the upstream draft crammed markers against body text.
func normalizeMarkers(content string) string {
	out := markerLineRe.ReplaceAllString(content, "\n$1")
	return blankRunRe.ReplaceAllString(out, "\n\n")
}

// tightenProse removes hedging words and substitutes weak adjectives.
func tightenProse(content string) string {
	out := hedgeWordRe.ReplaceAllString(content, "")
	for weak, strong := range weakAdjectives {
		re := regexp.MustCompile(`(?i)\b` + weak + `\b`)
		out = re.ReplaceAllString(out, strong)
	}
	return out
}
