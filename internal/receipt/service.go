package receipt

import (
	"fmt"
	"log/slog"

	"github.com/grocerly/receipt-scan/internal/extract"
)

// Extractor turns a raw OCR transcript into a structured summary.
type Extractor interface {
	ExtractScored(rawText string, ocrConfidence float64) (*extract.ReceiptSummary, error)
}

// Service handles extraction requests
type Service struct {
	extractor Extractor
}

// NewService creates a new Service
func NewService(extractor Extractor) *Service {
	return &Service{extractor: extractor}
}

// ExtractReceipt runs the extraction engine over a transcript. The OCR
// confidence is optional; pass 0 when the provider did not report one.
func (s *Service) ExtractReceipt(rawText string, ocrConfidence float64) (*extract.ReceiptSummary, error) {
	summary, err := s.extractor.ExtractScored(rawText, ocrConfidence)
	if err != nil {
		slog.Error("Failed to extract receipt",
			"text_length", len(rawText),
			"error", err,
		)
		return nil, fmt.Errorf("extracting receipt: %w", err)
	}

	slog.Info("Extracted receipt",
		"store", summary.StoreName,
		"items", len(summary.Items),
		"confidence", summary.OverallConfidence,
	)
	return summary, nil
}
