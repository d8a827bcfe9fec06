// File path: internal/sections/sections.go
// Package sections extracts named report sections from generated text using
// the fixed `## MARKER` grammar, with heading heuristics as a fallback when
// no markers are present at all. Missing markers yield empty defaults: the
// generation service's output is not contractually guaranteed to match the
// grammar, so the parser never fails.
package sections

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
)

// Marker names, in the order they are requested from the generation service.
// The first two populate Annexure I; the remaining eight populate Annexure II.
const (
	MarkerAims        = "AIMS_AND_BENEFITS"
	MarkerOutcomes    = "COURSE_OUTCOMES"
	MarkerRationale   = "RATIONALE"
	MarkerLiterature  = "LITERATURE_REVIEW"
	MarkerMethodology = "METHODOLOGY"
	MarkerResources   = "RESOURCES_USED"
	MarkerOutputs     = "OUTPUTS"
	MarkerSkills      = "SKILLS_DEVELOPED"
	MarkerApps        = "APPLICATIONS"
	MarkerConclusion  = "CONCLUSION"
)

// MarkerNames returns the ten marker names in canonical order.
func MarkerNames() []string {
	return []string{
		MarkerAims, MarkerOutcomes, MarkerRationale, MarkerLiterature,
		MarkerMethodology, MarkerResources, MarkerOutputs, MarkerSkills,
		MarkerApps, MarkerConclusion,
	}
}

// ParsedSections is the fixed schema recovered from generated text. Bullet
// fields hold ordered lists; the rest are single text blocks. Absent markers
// leave zero values.
type ParsedSections struct {
	AimsBenefits     []string `json:"aimsBenefits"`
	CourseOutcomes   []string `json:"courseOutcomes"`
	Rationale        string   `json:"rationale"`
	LiteratureIntro  string   `json:"literatureIntro"`
	LiteraturePoints []string `json:"literaturePoints"`
	Methodology      string   `json:"methodology"`
	ResourcesUsed    string   `json:"resourcesUsed"`
	Outputs          string   `json:"outputs"`
	SkillsDeveloped  []string `json:"skillsDeveloped"`
	Applications     []string `json:"applications"`
	Conclusion       string   `json:"conclusion"`
}

var (
	markerRes     map[string]*regexp.Regexp
	markerResOnce sync.Once

	anyMarkerRe = regexp.MustCompile(`(?m)^\s*##\s*[A-Z][A-Z_ ]+`)
	bulletRe    = regexp.MustCompile(`^\s*(?:[•\-*]|[a-zA-Z]\)|\d+[.)])\s*`)
)

func markerRegexps() map[string]*regexp.Regexp {
	markerResOnce.Do(func() {
		markerRes = make(map[string]*regexp.Regexp, 10)
		for _, name := range MarkerNames() {
			// Section body runs from the marker line to the next `##` or
			// end of input; non-greedy, case-insensitive, multiline.
			// The \b keeps OUTPUTS from matching inside OUTPUTS_SUMMARY.
			pattern := fmt.Sprintf(`(?is)##\s*%s\b\s*:?\s*(.*?)(?:\n\s*##|\z)`, regexp.QuoteMeta(name))
			markerRes[name] = regexp.MustCompile(pattern)
		}
	})
	return markerRes
}

// HasMarkers reports whether the text contains any `## MARKER` lines.
func HasMarkers(text string) bool {
	return anyMarkerRe.MatchString(text)
}

// CountMarkers returns how many of the ten expected markers are present.
func CountMarkers(text string) int {
	count := 0
	for _, re := range markerRegexps() {
		if re.MatchString(text) {
			count++
		}
	}
	return count
}

// Parse recovers the fixed section schema from generated text.
func Parse(text string) ParsedSections {
	body := func(name string) string {
		m := markerRegexps()[name].FindStringSubmatch(text)
		if len(m) < 2 {
			return ""
		}
		return strings.TrimSpace(m[1])
	}

	parsed := ParsedSections{
		AimsBenefits:    splitBullets(body(MarkerAims)),
		CourseOutcomes:  splitBullets(body(MarkerOutcomes)),
		Rationale:       body(MarkerRationale),
		Methodology:     body(MarkerMethodology),
		ResourcesUsed:   body(MarkerResources),
		Outputs:         body(MarkerOutputs),
		SkillsDeveloped: splitBullets(body(MarkerSkills)),
		Applications:    splitBullets(body(MarkerApps)),
		Conclusion:      body(MarkerConclusion),
	}
	parsed.LiteratureIntro, parsed.LiteraturePoints = parseLiterature(body(MarkerLiterature))
	return parsed
}

// splitBullets keeps lines that look like bullets and strips their prefixes.
func splitBullets(block string) []string {
	if block == "" {
		return nil
	}
	var items []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if bulletRe.MatchString(line) {
			item := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
			if item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}

// parseLiterature treats the first non-empty, non-bullet line as the intro
// paragraph; bullet lines and colon-bearing lines become literature points.
func parseLiterature(block string) (string, []string) {
	if block == "" {
		return "", nil
	}
	var intro string
	var points []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		isBullet := bulletRe.MatchString(line)
		if intro == "" && !isBullet {
			intro = line
			continue
		}
		switch {
		case isBullet:
			item := strings.TrimSpace(bulletRe.ReplaceAllString(line, ""))
			if item != "" {
				points = append(points, item)
			}
		case strings.Contains(line, ":"):
			points = append(points, line)
		}
	}
	return intro, points
}

// Heading is a heuristic outline entry from unmarked text.
type Heading struct {
	Title string
	Level int
	Body  string
}

var numericHeadingRe = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s+\S`)

// ParseHeadings is the fallback path used when generated text carries no
// markers at all: ALL-CAPS short lines and numeric-prefixed lines are
// treated as headings, with the interleaved text as their bodies.
func ParseHeadings(text string) []Heading {
	var headings []Heading
	var body strings.Builder
	flush := func() {
		if len(headings) > 0 {
			headings[len(headings)-1].Body = strings.TrimSpace(body.String())
		}
		body.Reset()
	}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		switch {
		case numericHeadingRe.MatchString(line) && len(line) <= 80:
			flush()
			prefix, _, _ := strings.Cut(line, " ")
			level := strings.Count(strings.TrimRight(prefix, ".)"), ".") + 1
			if level > 6 {
				level = 6
			}
			headings = append(headings, Heading{Title: line, Level: level})
		case isShortAllCaps(line):
			flush()
			headings = append(headings, Heading{Title: line, Level: 1})
		default:
			body.WriteString(line)
			body.WriteByte('\n')
		}
	}
	flush()
	return headings
}

func isShortAllCaps(line string) bool {
	if len(line) > 60 {
		return false
	}
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
