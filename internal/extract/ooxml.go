// File path: internal/extract/ooxml.go
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/adityakulkarni/reportforge/internal/common"
)

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// extractDOCX walks word/document.xml collecting w:t runs, heading styles,
// and font-size declarations.
func extractDOCX(data []byte) *Result {
	logger := common.Logger()
	result := &Result{Structure: DocumentStructure{DefaultFontSize: 12}}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Warn("extract: docx is not a readable zip archive", "error", err)
		return result
	}
	doc := openArchiveFile(reader, "word/document.xml")
	if doc == nil {
		logger.Warn("extract: word/document.xml missing from archive")
		return result
	}
	defer doc.Close()

	decoder := xml.NewDecoder(doc)
	var (
		lines          []string
		sizes          []float64
		currentText    strings.Builder
		inParagraph    bool
		paragraphStyle string
		paragraphSize  float64
	)

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				currentText.Reset()
				paragraphStyle = ""
				paragraphSize = 0
			case "pStyle":
				if inParagraph {
					paragraphStyle = attrValue(t, "val")
				}
			case "sz":
				// w:sz stores half-points.
				if v, err := strconv.ParseFloat(attrValue(t, "val"), 64); err == nil && v > 0 {
					size := v / 2
					sizes = append(sizes, size)
					if inParagraph && paragraphSize == 0 {
						paragraphSize = size
					}
				}
			case "fldSimple":
				if strings.Contains(strings.ToUpper(attrValue(t, "instr")), "TOC") {
					result.Structure.HasTOC = true
				}
			}
		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := strings.TrimSpace(currentText.String())
				if text == "" {
					continue
				}
				lines = append(lines, text)
				if strings.HasPrefix(strings.ToUpper(paragraphStyle), "TOC") || strings.EqualFold(text, "table of contents") {
					result.Structure.HasTOC = true
				}
				if level := headingStyleLevel(paragraphStyle); level > 0 {
					result.Structure.Outline = append(result.Structure.Outline, OutlineEntry{
						Title:    text,
						Level:    level,
						FontSize: paragraphSize,
					})
				}
			}
		}
	}

	result.Text = strings.Join(lines, "\n")
	if avg := averageSize(sizes); avg > 0 {
		result.Structure.DefaultFontSize = avg
	}
	fillOutlineSizes(result.Structure.Outline, result.Structure.DefaultFontSize)
	return result
}

// extractPPTX reads ppt/slides/slideN.xml in slide order, collecting a:t
// runs; title placeholder shapes become level-1 outline entries.
func extractPPTX(data []byte) *Result {
	logger := common.Logger()
	result := &Result{Structure: DocumentStructure{DefaultFontSize: 18}}

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		logger.Warn("extract: pptx is not a readable zip archive", "error", err)
		return result
	}

	type slideFile struct {
		nr   int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range reader.File {
		if m := slideNameRe.FindStringSubmatch(f.Name); m != nil {
			nr, _ := strconv.Atoi(m[1])
			slides = append(slides, slideFile{nr: nr, file: f})
		}
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].nr < slides[j].nr })

	var lines []string
	var sizes []float64
	for _, slide := range slides {
		rc, err := slide.file.Open()
		if err != nil {
			continue
		}
		slideLines, slideSizes, titles := parseSlide(rc)
		rc.Close()
		lines = append(lines, slideLines...)
		sizes = append(sizes, slideSizes...)
		for _, title := range titles {
			result.Structure.Outline = append(result.Structure.Outline, OutlineEntry{Title: title, Level: 1})
		}
	}

	result.Text = strings.Join(lines, "\n")
	if avg := averageSize(sizes); avg > 0 {
		result.Structure.DefaultFontSize = avg
	}
	fillOutlineSizes(result.Structure.Outline, result.Structure.DefaultFontSize)
	result.Structure.HasTOC = containsTOCLine(result.Text)
	return result
}

// parseSlide walks one slide's XML. Shapes carrying a title placeholder
// (ph type="title" or "ctrTitle") contribute outline titles.
func parseSlide(r io.Reader) (lines []string, sizes []float64, titles []string) {
	decoder := xml.NewDecoder(r)
	var (
		currentText strings.Builder
		inText      bool
		shapeTitled bool
		shapeText   strings.Builder
	)
	flushShape := func() {
		text := strings.TrimSpace(shapeText.String())
		if text != "" && shapeTitled {
			title, _, _ := strings.Cut(text, "\n")
			titles = append(titles, strings.TrimSpace(title))
		}
		shapeText.Reset()
		shapeTitled = false
	}
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "sp":
				flushShape()
			case "ph":
				switch attrValue(t, "type") {
				case "title", "ctrTitle":
					shapeTitled = true
				}
			case "t":
				inText = true
				currentText.Reset()
			case "rPr", "defRPr":
				// a:rPr sz stores hundredths of a point.
				if v, err := strconv.ParseFloat(attrValue(t, "sz"), 64); err == nil && v > 0 {
					sizes = append(sizes, v/100)
				}
			}
		case xml.CharData:
			if inText {
				currentText.Write(t)
			}
		case xml.EndElement:
			if t.Name.Local == "t" && inText {
				inText = false
				text := strings.TrimSpace(currentText.String())
				if text != "" {
					lines = append(lines, text)
					shapeText.WriteString(text)
					shapeText.WriteByte('\n')
				}
			}
		}
	}
	flushShape()
	return lines, sizes, titles
}

// headingStyleLevel extracts the heading level from a paragraph style name,
// e.g. "Heading1" -> 1, "Title" -> 1.
func headingStyleLevel(style string) int {
	lower := strings.ToLower(style)
	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}
	if strings.HasPrefix(lower, "heading") {
		rest := lower[len("heading"):]
		if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
			return int(rest[0] - '0')
		}
	}
	return 0
}

func openArchiveFile(reader *zip.Reader, name string) io.ReadCloser {
	for _, f := range reader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			return rc
		}
	}
	return nil
}

func attrValue(el xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

func averageSize(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	var total float64
	for _, s := range sizes {
		total += s
	}
	return total / float64(len(sizes))
}

func fillOutlineSizes(outline []OutlineEntry, fallback float64) {
	for i := range outline {
		if outline[i].FontSize == 0 {
			outline[i].FontSize = fallback
		}
	}
}
