package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/grocerly/receipt-scan/internal/extract"
)

// ExtractionRequest is the POST /api/extractions body. Text is the raw OCR
// transcript; OCRConfidence is the provider's optional transcription score.
type ExtractionRequest struct {
	Text          string  `json:"text"`
	OCRConfidence float64 `json:"ocr_confidence,omitempty"`
}

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// handleCreateExtraction runs the extraction engine over a posted transcript
func (s *Server) handleCreateExtraction(w http.ResponseWriter, r *http.Request) {
	var req ExtractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Error decoding extraction request", "error", err)
		corsError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		corsError(w, "Field 'text' is required", http.StatusBadRequest)
		return
	}
	if req.OCRConfidence < 0 || req.OCRConfidence > 1 {
		corsError(w, "Field 'ocr_confidence' must be between 0 and 1", http.StatusBadRequest)
		return
	}

	summary, err := s.service.ExtractReceipt(req.Text, req.OCRConfidence)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			corsError(w, "No text found in transcript", http.StatusUnprocessableEntity)
			return
		}
		slog.Error("Error extracting receipt", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
