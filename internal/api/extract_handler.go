// File path: internal/api/extract_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/adityakulkarni/reportforge/internal/common"
	"github.com/adityakulkarni/reportforge/internal/extract"
	"github.com/adityakulkarni/reportforge/internal/sections"
)

type extractRequest struct {
	FileContent string `json:"fileContent"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
}

type extractResponse struct {
	Success   bool                      `json:"success"`
	Text      string                    `json:"text"`
	Structure extract.DocumentStructure `json:"structure"`
}

// handleExtract previews what the generator would read from an upload
// without spending any provider tokens.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if strings.TrimSpace(req.FileContent) == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("file content required"))
		return
	}
	if !extract.Supported(req.FileType) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %q", extract.ErrUnsupportedType, req.FileType))
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
	result, err := extract.FromBytes(data, req.FileType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logger.Info("api: extraction preview", "file", req.FileName, "mime", req.FileType, "chars", len(result.Text))
	writeJSON(w, http.StatusOK, extractResponse{
		Success:   true,
		Text:      result.Text,
		Structure: result.Structure,
	})
}

type defaultsResponse struct {
	AcceptedTypes []string `json:"acceptedTypes"`
	MaxFileBytes  int      `json:"maxFileBytes"`
	Markers       []string `json:"markers"`
}

func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, defaultsResponse{
		AcceptedTypes: extract.SupportedTypes(),
		MaxFileBytes:  maxUploadBytes,
		Markers:       sections.MarkerNames(),
	})
}
