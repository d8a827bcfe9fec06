// File path: internal/extract/extract_test.go
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

func zipBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestExtractGarbageBytesReturnsPlaceholder(t *testing.T) {
	garbage := encode([]byte{0x00, 0x01, 0x02, 0x03, 0xff, 0xfe})
	for _, mime := range SupportedTypes() {
		result, err := Extract(garbage, mime)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", mime, err)
		}
		if result.Text == "" {
			t.Fatalf("%s: expected placeholder text", mime)
		}
		if !strings.Contains(result.Text, "No readable text") {
			t.Fatalf("%s: unexpected text %q", mime, result.Text)
		}
		if len(result.Structure.Outline) != 0 {
			t.Fatalf("%s: expected empty outline, got %v", mime, result.Structure.Outline)
		}
	}
}

func TestExtractRejectsUnsupportedType(t *testing.T) {
	_, err := Extract(encode([]byte("png bytes")), "image/png")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}

func TestExtractRejectsInvalidBase64(t *testing.T) {
	_, err := Extract("not valid base64 !!!", MimePDF)
	if !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestDecodeStripsDataURLPrefix(t *testing.T) {
	payload := "data:application/pdf;base64," + encode([]byte("hello"))
	data, err := Decode(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected decoded data %q", data)
	}
}

func TestExtractDOCXReadsTextAndHeadings(t *testing.T) {
	document := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:rPr><w:sz w:val="32"/></w:rPr><w:t>Introduction</w:t></w:r></w:p>
<w:p><w:r><w:rPr><w:sz w:val="24"/></w:rPr><w:t>Soil moisture sensing for small farms.</w:t></w:r></w:p>
<w:p><w:pPr><w:pStyle w:val="Heading2"/></w:pPr><w:r><w:t>Sensor Selection</w:t></w:r></w:p>
</w:body></w:document>`
	data := zipBytes(t, map[string]string{"word/document.xml": document})

	result, err := Extract(encode(data), MimeDOCX)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(result.Text, "Soil moisture sensing for small farms.") {
		t.Fatalf("body text missing: %q", result.Text)
	}
	if len(result.Structure.Outline) != 2 {
		t.Fatalf("expected 2 outline entries, got %v", result.Structure.Outline)
	}
	if result.Structure.Outline[0].Title != "Introduction" || result.Structure.Outline[0].Level != 1 {
		t.Fatalf("unexpected first entry: %+v", result.Structure.Outline[0])
	}
	if result.Structure.Outline[1].Title != "Sensor Selection" || result.Structure.Outline[1].Level != 2 {
		t.Fatalf("unexpected second entry: %+v", result.Structure.Outline[1])
	}
	if result.Structure.Outline[0].FontSize != 16 {
		t.Fatalf("expected 16pt heading (32 half-points), got %v", result.Structure.Outline[0].FontSize)
	}
}

func TestExtractDOCXDetectsTOCField(t *testing.T) {
	document := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:fldSimple w:instr=" TOC \o &quot;1-3&quot; "/></w:p>
<w:p><w:r><w:t>Body</w:t></w:r></w:p>
</w:body></w:document>`
	data := zipBytes(t, map[string]string{"word/document.xml": document})

	result, err := Extract(encode(data), MimeDOCX)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !result.Structure.HasTOC {
		t.Fatalf("expected TOC detection")
	}
}

func TestExtractPPTXOrdersSlidesAndFindsTitles(t *testing.T) {
	slide := func(title, body string) string {
		return `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
<p:sp><p:nvSpPr><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:txBody><a:p><a:r><a:t>` + title + `</a:t></a:r></a:p></p:txBody></p:sp>
<p:sp><p:txBody><a:p><a:r><a:rPr sz="1800"/><a:t>` + body + `</a:t></a:r></a:p></p:txBody></p:sp>
</p:sld>`
	}
	data := zipBytes(t, map[string]string{
		"ppt/slides/slide2.xml":  slide("Second Slide", "second body"),
		"ppt/slides/slide1.xml":  slide("First Slide", "first body"),
		"ppt/slides/slide10.xml": slide("Tenth Slide", "tenth body"),
	})

	result, err := Extract(encode(data), MimePPTX)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	first := strings.Index(result.Text, "first body")
	second := strings.Index(result.Text, "second body")
	tenth := strings.Index(result.Text, "tenth body")
	if first < 0 || second < 0 || tenth < 0 {
		t.Fatalf("slide bodies missing from %q", result.Text)
	}
	if !(first < second && second < tenth) {
		t.Fatalf("slides out of order: %d %d %d", first, second, tenth)
	}
	if len(result.Structure.Outline) != 3 {
		t.Fatalf("expected 3 titles, got %v", result.Structure.Outline)
	}
	if result.Structure.Outline[0].Title != "First Slide" {
		t.Fatalf("unexpected first title: %q", result.Structure.Outline[0].Title)
	}
}

func TestExtractTruncatesLongText(t *testing.T) {
	long := strings.Repeat("All work and no play makes a dull report. ", 1000)
	document := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>` + long + `</w:t></w:r></w:p>
</w:body></w:document>`
	data := zipBytes(t, map[string]string{"word/document.xml": document})

	result, err := Extract(encode(data), MimeDOCX)
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if len([]rune(result.Text)) > maxTextLen {
		t.Fatalf("text not truncated: %d runes", len([]rune(result.Text)))
	}
}
