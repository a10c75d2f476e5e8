// Package extract turns a noisy OCR transcript of a grocery receipt into a
// validated, deduplicated list of purchased items with per-item confidence
// scores. It consumes plain text and performs no I/O; the OCR call and any
// persistence belong to the caller.
package extract

import (
	"errors"
	"fmt"
	"time"

	"github.com/grocerly/receipt-scan/internal/heuristics"
)

// ErrNoText indicates the transcript had no usable text to extract from.
var ErrNoText = errors.New("no text found in transcript")

// ExtractedItem is one purchased item recovered from a receipt. Price is
// the line-item total, not a unit price. Quantity is always 1: the engine
// does not infer multi-unit purchases from a single line.
type ExtractedItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// ReceiptSummary is the structured result of one extraction run. No two
// items share a normalized name. The caller owns the summary once returned.
type ReceiptSummary struct {
	StoreName         string          `json:"store_name"`
	PurchaseDate      time.Time       `json:"purchase_date"`
	TotalAmount       float64         `json:"total_amount"`
	TaxAmount         float64         `json:"tax_amount"`
	Items             []ExtractedItem `json:"items"`
	RawText           string          `json:"raw_text"`
	OverallConfidence float64         `json:"overall_confidence"`
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type defaultTimeSource struct{}

func (defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Extractor runs the extraction pipeline. It holds no state across calls
// and is safe for concurrent use.
type Extractor struct {
	rules      ruleSet
	timeSource TimeSource
}

// New creates an Extractor over the given heuristic tables.
func New(tables heuristics.Tables) *Extractor {
	return NewWithTimeSource(tables, defaultTimeSource{})
}

// NewWithTimeSource creates an Extractor with a custom time source for
// testing the date-default path.
func NewWithTimeSource(tables heuristics.Tables, ts TimeSource) *Extractor {
	return &Extractor{rules: compileRules(tables), timeSource: ts}
}

// Extract runs the pipeline over a raw transcript.
func (e *Extractor) Extract(rawText string) (*ReceiptSummary, error) {
	return e.ExtractScored(rawText, 0)
}

// ExtractScored runs the pipeline and folds an optional OCR transcription
// confidence (0 means not supplied) into the overall score. Aside from the
// date default, output is fully determined by the input.
func (e *Extractor) ExtractScored(rawText string, ocrConfidence float64) (*ReceiptSummary, error) {
	lines := splitLines(rawText)
	if !usable(lines) {
		return nil, ErrNoText
	}

	header := extractHeader(lines, e.rules.tables, e.timeSource.Now)

	candidates := segmentItems(lines, e.rules)
	if len(candidates) < e.rules.tables.FallbackThreshold {
		candidates = append(candidates, scanFallback(lines, e.rules)...)
	}

	items := make([]ExtractedItem, 0, len(candidates))
	for _, c := range candidates {
		if item, ok := buildItem(c, e.rules.tables); ok {
			items = append(items, item)
		}
	}
	items = dedupe(items)
	for i := range items {
		items[i].ID = fmt.Sprintf("item-%d", i+1)
	}

	return &ReceiptSummary{
		StoreName:         header.store,
		PurchaseDate:      header.date,
		TotalAmount:       header.total,
		TaxAmount:         header.tax,
		Items:             items,
		RawText:           rawText,
		OverallConfidence: overallConfidence(items, ocrConfidence),
	}, nil
}

// overallConfidence is the mean item confidence, averaged with the OCR
// transcription score when one was supplied.
func overallConfidence(items []ExtractedItem, ocrConfidence float64) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range items {
		sum += item.Confidence
	}
	mean := sum / float64(len(items))
	if ocrConfidence > 0 {
		return (mean + ocrConfidence) / 2
	}
	return mean
}
