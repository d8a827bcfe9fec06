// File path: internal/api/generate_handler.go
package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/adityakulkarni/reportforge/internal/common"
	"github.com/adityakulkarni/reportforge/internal/common/telemetry"
	"github.com/adityakulkarni/reportforge/internal/docbuild"
	"github.com/adityakulkarni/reportforge/internal/extract"
	"github.com/adityakulkarni/reportforge/internal/llm"
	"github.com/adityakulkarni/reportforge/internal/report"
	"github.com/adityakulkarni/reportforge/internal/sections"
)

type generateRequest struct {
	FileContent string             `json:"fileContent"`
	FileName    string             `json:"fileName"`
	FileType    string             `json:"fileType"`
	StudentData report.StudentData `json:"studentData"`
}

type generateResponse struct {
	Success        bool                    `json:"success"`
	Content        string                  `json:"content"`
	FileName       string                  `json:"fileName"`
	QualityMetrics report.QualityMetrics   `json:"qualityMetrics"`
	Suggestions    []string                `json:"suggestions"`
	ComplianceInfo report.ComplianceResult `json:"complianceInfo"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	// Everything that can fail cheaply is checked before any provider call.
	if err := req.StudentData.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.FileContent) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("reference file content required"))
		return
	}
	if !extract.Supported(req.FileType) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q (accepted: %s)",
			extract.ErrUnsupportedType, req.FileType, strings.Join(extract.SupportedTypes(), ", ")))
		return
	}
	data, err := extract.Decode(req.FileContent)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(data) > maxUploadBytes {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: decoded size exceeds %d MB limit", extract.ErrFileTooLarge, maxUploadBytes>>20))
		return
	}

	extracted, err := extract.FromBytes(data, req.FileType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logger.Info("api: reference extracted",
		"file", req.FileName, "mime", req.FileType,
		"chars", len(extracted.Text), "outline", len(extracted.Structure.Outline))

	ctx, finishSpan := telemetry.StartSpan(r.Context(), "api.generate")
	outcome, err := s.runner.Run(ctx, req.StudentData, extracted.Text, extracted.Structure.Outline)
	if err != nil {
		finishSpan("error", err.Error())
		writeError(w, providerStatus(err), providerMessage(err))
		return
	}

	parsed := sections.Parse(outcome.Content)
	docBytes, err := docbuild.Assemble(parsed, req.StudentData, &outcome.Compliance)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("assemble document: %w", err))
		return
	}

	telemetry.RecordDocumentBuilt(len(docBytes))
	fileName := req.StudentData.DocumentFileName()
	finishSpan("file", fileName, "bytes", len(docBytes))
	logger.Info("api: report generated",
		"file", fileName, "bytes", len(docBytes),
		"markers", sections.CountMarkers(outcome.Content),
		"compliance", outcome.Compliance.Score,
		"dur", telemetry.SpanDuration(ctx))
	writeJSON(w, http.StatusOK, generateResponse{
		Success:        true,
		Content:        base64.StdEncoding.EncodeToString(docBytes),
		FileName:       fileName,
		QualityMetrics: outcome.Metrics,
		Suggestions:    outcome.Suggestions,
		ComplianceInfo: outcome.Compliance,
	})
}

// providerStatus maps pipeline errors onto HTTP status codes.
func providerStatus(err error) int {
	var upstream *llm.UpstreamError
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, llm.ErrQuotaExceeded):
		return http.StatusPaymentRequired
	case errors.Is(err, llm.ErrMissingCredential):
		return http.StatusInternalServerError
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// providerMessage rewrites well-known provider failures into messages the
// browser client shows verbatim.
func providerMessage(err error) error {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return fmt.Errorf("Rate limits exceeded. Please wait a moment and try again, or check your OpenAI plan and billing details")
	case errors.Is(err, llm.ErrQuotaExceeded):
		return fmt.Errorf("OpenAI quota exceeded. Please check your plan and billing details")
	}
	return err
}
