// File path: internal/pipeline/metrics.go
package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/adityakulkarni/reportforge/internal/report"
	"github.com/adityakulkarni/reportforge/internal/sections"
)

// targetWordCount is the expected length of a full report.
const targetWordCount = 1800

const expectedMarkers = 10

// technicalTerms feed the technical-depth heuristic. Placeholder scoring
// vocabulary, not a calibrated taxonomy.
var technicalTerms = []string{
	"system", "algorithm", "implementation", "architecture", "sensor",
	"database", "protocol", "framework", "analysis", "module", "interface",
	"optimization", "microcontroller", "network", "circuit", "automation",
	"integration", "deployment", "validation", "throughput",
}

var yearRe = regexp.MustCompile(`\b(20\d{2})\b`)

var hedgingRe = regexp.MustCompile(`\b(very|really|quite|basically|actually|just|simply)\b`)

// scoreContent computes heuristic quality metrics and improvement
// suggestions for generated text.
func scoreContent(text, topic string) (report.QualityMetrics, []string) {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)
	wordCount := len(words)

	termCount := 0
	for _, term := range technicalTerms {
		termCount += strings.Count(lower, term)
	}
	technicalDepth := clampScore(termCount * 1000 / max(wordCount, 1))

	markerCount := sections.CountMarkers(text)
	completeness := clampScore(markerCount * 100 / expectedMarkers)

	relevance := topicRelevance(lower, topic)
	academic := academicQuality(lower, wordCount)

	metrics := report.QualityMetrics{
		TechnicalDepth:  technicalDepth,
		AcademicQuality: academic,
		Completeness:    completeness,
		Relevance:       relevance,
	}
	metrics.Overall = clampScore((technicalDepth + academic + completeness + relevance) / 4)

	return metrics, buildSuggestions(text, wordCount, markerCount)
}

// topicRelevance measures how many distinct topic words appear in the text.
func topicRelevance(lowerText, topic string) int {
	topicWords := strings.Fields(strings.ToLower(topic))
	if len(topicWords) == 0 {
		return 50
	}
	hits := 0
	for _, w := range topicWords {
		w = strings.Trim(w, ".,;:-")
		if len(w) < 3 {
			hits++ // short connectives don't count against relevance
			continue
		}
		if strings.Contains(lowerText, w) {
			hits++
		}
	}
	return clampScore(hits * 100 / len(topicWords))
}

func academicQuality(lowerText string, wordCount int) int {
	score := 70
	if wordCount >= 1200 {
		score += 10
	}
	if hasRecentYear(lowerText) {
		score += 10
	}
	if countHedging(lowerText) > 5 {
		score -= 10
	}
	return clampScore(score)
}

func hasRecentYear(text string) bool {
	cutoff := time.Now().Year() - 3
	for _, m := range yearRe.FindAllStringSubmatch(text, -1) {
		if year, err := strconv.Atoi(m[1]); err == nil && year >= cutoff {
			return true
		}
	}
	return false
}

func countHedging(lowerText string) int {
	return len(hedgingRe.FindAllString(lowerText, -1))
}

func buildSuggestions(text string, wordCount, markerCount int) []string {
	var suggestions []string
	if wordCount < targetWordCount*6/10 {
		suggestions = append(suggestions, fmt.Sprintf(
			"content is shorter than expected (%d words against a %d-word target); expand every section with concrete detail", wordCount, targetWordCount))
	}
	if markerCount < expectedMarkers {
		suggestions = append(suggestions, fmt.Sprintf(
			"missing section markers: only %d of %d present; reproduce all ten markers exactly", markerCount, expectedMarkers))
	}
	if !hasRecentYear(strings.ToLower(text)) {
		suggestions = append(suggestions, "no recent-year references found; cite developments from the last three years")
	}
	return suggestions
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
