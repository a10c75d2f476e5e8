package extract

import "strings"

// Confidence encodes how much corroboration an emitted candidate had.
const (
	confPriceNextLine      = 0.9  // name line resolved by a price on the following line
	confPriceInline        = 0.85 // name and price on the same line
	confEstimatedMidstream = 0.7  // name flushed by a later name, price estimated
	confEstimatedTrailing  = 0.6  // name still pending at end of input, price estimated
	confFallback           = 0.5  // recovered by the permissive second pass
)

// candidate is a provisional (name, price) pair, pre-cleaning and
// pre-deduplication.
type candidate struct {
	name       string
	price      float64
	confidence float64
}

type segmentState int

const (
	stateIdle segmentState = iota
	stateAwaitingPrice
	stateTerminated
)

// segmenter walks the line list once, tolerating a name arriving with its
// price on the same line, the next line, or never. Receipts interleave
// name-only and price-only lines inconsistently across printers.
type segmenter struct {
	rules         ruleSet
	state         segmentState
	pending       string
	inItemSection bool
	out           []candidate
}

// segmentItems is the primary extraction pass.
func segmentItems(lines []string, rules ruleSet) []candidate {
	s := &segmenter{rules: rules}
	for i, line := range lines {
		if s.state == stateTerminated {
			break
		}
		s.feed(i, line)
	}
	s.finish()
	return s.out
}

func (s *segmenter) feed(index int, line string) {
	if s.rules.isEndMarker(line) {
		s.state = stateTerminated
		return
	}
	if s.rules.isSkippable(line) {
		return
	}
	if price, ok := parseBarePrice(line); ok {
		// price-only continuation: resolves a pending name, otherwise noise
		if s.state == stateAwaitingPrice {
			s.emit(s.pending, price, confPriceNextLine)
			s.clearPending()
		}
		return
	}
	if name, price, ok := parseNamePrice(line); ok {
		// a queued name that never got its price is superseded here
		s.emit(name, price, confPriceInline)
		s.clearPending()
		return
	}
	if s.sectionStart(index, line) {
		s.inItemSection = true
		return
	}
	if isNameCandidate(line) {
		if s.state == stateAwaitingPrice {
			s.flushPending(confEstimatedMidstream)
		}
		s.pending = line
		s.state = stateAwaitingPrice
	}
}

// finish flushes a name still pending at end of input, at lower confidence
// than an in-stream flush since no later line corroborated it at all.
func (s *segmenter) finish() {
	if s.state == stateAwaitingPrice {
		s.flushPending(confEstimatedTrailing)
	}
}

// sectionStart reports whether this line begins the item section: a
// recognized department header, or a long all-caps line near the top. The
// flag is advisory, to reduce false positives, never a hard gate.
func (s *segmenter) sectionStart(index int, line string) bool {
	if s.rules.isSectionHeader(line) {
		return true
	}
	if !s.inItemSection && index < storeScanLines &&
		len(line) >= 10 && line == strings.ToUpper(line) && hasLetter(line) {
		return true
	}
	return false
}

func (s *segmenter) flushPending(confidence float64) {
	price := s.rules.tables.EstimatePrice(strings.ToLower(s.pending))
	s.emit(s.pending, price, confidence)
	s.clearPending()
}

func (s *segmenter) emit(name string, price, confidence float64) {
	s.out = append(s.out, candidate{name: name, price: price, confidence: confidence})
}

func (s *segmenter) clearPending() {
	s.pending = ""
	s.state = stateIdle
}
