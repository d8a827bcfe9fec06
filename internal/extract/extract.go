// File path: internal/extract/extract.go
// Package extract pulls best-effort plain text and a lightweight structural
// outline out of uploaded office documents (PDF, DOCX, PPTX) supplied as
// base64 payloads. All parsers are pure Go and side-effect free: a supported
// file that yields no text produces placeholder text, never an error.
package extract

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/adityakulkarni/reportforge/internal/common"
	"github.com/adityakulkarni/reportforge/internal/common/telemetry"
)

// Supported MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// maxTextLen bounds extracted text so downstream prompts stay inside the
// generation service's context limits.
const maxTextLen = 10000

// placeholderText is returned when a supported file contains no matchable
// text, so downstream stages always receive a string.
const placeholderText = "No readable text could be extracted from the reference document. Generate the report from the student details and topic alone."

var (
	// ErrUnsupportedType rejects MIME types outside the supported set.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrInvalidPayload rejects content that is not valid base64.
	ErrInvalidPayload = errors.New("invalid base64 payload")
	// ErrFileTooLarge rejects decoded payloads over the upload limit.
	ErrFileTooLarge = errors.New("file too large")
)

// OutlineEntry is one guessed heading in the reference document.
type OutlineEntry struct {
	Title    string  `json:"title"`
	Level    int     `json:"level"`
	FontSize float64 `json:"fontSize,omitempty"`
}

// DocumentStructure is derived once per uploaded file and read-only after.
type DocumentStructure struct {
	Outline         []OutlineEntry `json:"outline"`
	DefaultFontSize float64        `json:"defaultFontSize"`
	HasTOC          bool           `json:"hasTOC"`
}

// Result is the extractor output: approximate plain text plus structure.
type Result struct {
	Text      string            `json:"text"`
	Structure DocumentStructure `json:"structure"`
}

// SupportedTypes lists the accepted MIME types.
func SupportedTypes() []string {
	return []string{MimePDF, MimeDOCX, MimePPTX}
}

// Supported reports whether the declared MIME type has a parser.
func Supported(mimeType string) bool {
	switch strings.TrimSpace(mimeType) {
	case MimePDF, MimeDOCX, MimePPTX:
		return true
	}
	return false
}

// Decode strips an optional data-URL prefix and decodes the base64 payload.
func Decode(fileContent string) ([]byte, error) {
	payload := strings.TrimSpace(fileContent)
	if idx := strings.Index(payload, ","); idx >= 0 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}

// Extract decodes the payload and dispatches on the declared MIME type.
func Extract(fileContent, mimeType string) (*Result, error) {
	if !Supported(mimeType) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, strings.TrimSpace(mimeType))
	}
	data, err := Decode(fileContent)
	if err != nil {
		return nil, err
	}
	return FromBytes(data, mimeType)
}

// FromBytes parses an already-decoded document.
func FromBytes(data []byte, mimeType string) (*Result, error) {
	logger := common.Logger()
	mime := strings.TrimSpace(mimeType)
	if !Supported(mime) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, mime)
	}

	var result *Result
	switch mime {
	case MimePDF:
		result = extractPDF(data)
	case MimeDOCX:
		result = extractDOCX(data)
	case MimePPTX:
		result = extractPPTX(data)
	}

	if strings.TrimSpace(result.Text) == "" {
		logger.Warn("extract: no text recovered, using placeholder", "mime", mime, "bytes", len(data))
		result.Text = placeholderText
	}
	result.Text = truncate(result.Text, maxTextLen)
	telemetry.RecordExtraction(mime, len(result.Text))
	logger.Debug("extract: document processed",
		"mime", mime, "chars", len(result.Text),
		"outline", len(result.Structure.Outline), "toc", result.Structure.HasTOC)
	return result, nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
