package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/grocerly/receipt-scan/internal/heuristics"
)

const (
	// storeScanLines bounds the store-name scan to the top of the receipt.
	storeScanLines = 5
	// totalsScanLines bounds the totals scan to the bottom of the receipt,
	// where Total/Tax lines reliably sit. Scanning the full text risks
	// matching item-line prices.
	totalsScanLines = 10
)

var (
	reStoreSuffix = regexp.MustCompile(`(?i)(MARKET|GROCERY)\s*$`)
	reDateToken   = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	reISODate     = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	reTotalAmount = regexp.MustCompile(`(?i)\btotal\b[^0-9$]*\$?(\d+\.\d{2})`)
	reTaxAmount   = regexp.MustCompile(`(?i)\btax\b[^0-9$]*\$?(\d+\.\d{2})`)
)

type headerInfo struct {
	store string
	date  time.Time
	total float64
	tax   float64
}

func extractHeader(lines []string, tables heuristics.Tables, now func() time.Time) headerInfo {
	total, tax := scanTotals(lines)
	return headerInfo{
		store: storeName(lines, tables),
		date:  purchaseDate(lines, now),
		total: total,
		tax:   tax,
	}
}

// storeName scans the first few lines for a known retailer or a line ending
// in MARKET/GROCERY, falling back to the first line.
func storeName(lines []string, tables heuristics.Tables) string {
	if len(lines) == 0 {
		return "Unknown Store"
	}
	limit := storeScanLines
	if len(lines) < limit {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		up := strings.ToUpper(lines[i])
		for _, retailer := range tables.Retailers {
			if strings.Contains(up, retailer) {
				return lines[i]
			}
		}
		if reStoreSuffix.MatchString(lines[i]) {
			return lines[i]
		}
	}
	return lines[0]
}

// purchaseDate returns the first parseable date token anywhere in the
// transcript, or the current time. A missing date never fails extraction.
func purchaseDate(lines []string, now func() time.Time) time.Time {
	for _, line := range lines {
		if m := reDateToken.FindStringSubmatch(line); m != nil {
			if d, ok := calendarDate(m[3], m[1], m[2]); ok {
				return d
			}
		}
		if m := reISODate.FindStringSubmatch(line); m != nil {
			if d, ok := calendarDate(m[1], m[2], m[3]); ok {
				return d
			}
		}
	}
	return now()
}

// calendarDate validates year/month/day strings into a real calendar date.
func calendarDate(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	mo, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if y < 100 {
		y += 2000
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (e.g. Feb 30 -> Mar 2)
	if t.Day() != d || t.Month() != time.Month(mo) {
		return time.Time{}, false
	}
	return t, true
}

// scanTotals takes the first Total and first Tax labeled amount from the
// last few lines. Unmatched labels default to 0.
func scanTotals(lines []string) (total, tax float64) {
	start := len(lines) - totalsScanLines
	if start < 0 {
		start = 0
	}
	var haveTotal, haveTax bool
	for _, line := range lines[start:] {
		low := strings.ToLower(line)
		if !haveTotal && !strings.Contains(low, "subtotal") && !strings.Contains(low, "sub total") {
			if m := reTotalAmount.FindStringSubmatch(line); m != nil {
				total, _ = strconv.ParseFloat(m[1], 64)
				haveTotal = true
			}
		}
		if !haveTax {
			if m := reTaxAmount.FindStringSubmatch(line); m != nil {
				tax, _ = strconv.ParseFloat(m[1], 64)
				haveTax = true
			}
		}
	}
	return total, tax
}
