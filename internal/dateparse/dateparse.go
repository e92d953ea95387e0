// Package dateparse normalizes the free-text date strings found on event
// listing sites into canonical start/end instants. Each known source format
// has one recognizer; recognizers are tried in a fixed priority order and at
// most one fires per input.
package dateparse

import (
	"strings"
	"time"
)

// ParsedRange is the result of normalizing one raw date string. Either side
// may be nil: a recognizer can resolve one half of a range and fail
// validation on the other, and callers must tolerate the partial result.
type ParsedRange struct {
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// IsEmpty reports whether neither side of the range was resolved.
func (r ParsedRange) IsEmpty() bool {
	return r.Start == nil && r.End == nil
}

// Parser normalizes raw date strings. Listings routinely omit the year, so
// ReferenceYear supplies it explicitly instead of reading the wall clock;
// Local is the zone used for date-only formats that carry no zone of their
// own.
type Parser struct {
	ReferenceYear int
	Local         *time.Location
}

// NewParser creates a Parser that assumes the given year for year-less
// formats and resolves date-only ranges against the system's local zone.
func NewParser(referenceYear int) *Parser {
	return &Parser{
		ReferenceYear: referenceYear,
		Local:         time.Local,
	}
}

// Parse normalizes one raw date string. It never fails: input that no
// recognizer understands yields an empty range, and a recognizer whose
// extraction goes wrong counts as not matching.
func (p *Parser) Parse(raw string) ParsedRange {
	result, _ := p.ParseWithRule(raw)
	return result
}

// ParseWithRule is Parse plus the name of the recognizer that fired, or ""
// when none did. The rule name feeds observability counters.
func (p *Parser) ParseWithRule(raw string) (result ParsedRange, rule string) {
	// A panicking recognizer is treated as not matching.
	defer func() {
		if recover() != nil {
			result = ParsedRange{}
			rule = ""
		}
	}()

	s := normalize(raw)
	if s == "" {
		return ParsedRange{}, ""
	}

	for _, r := range cascade {
		m := r.pattern.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if r.applies != nil && !r.applies(s) {
			continue
		}
		return r.extract(p, s, m), r.name
	}
	return ParsedRange{}, ""
}

// RuleNames returns the recognizer names in priority order.
func RuleNames() []string {
	names := make([]string, len(cascade))
	for i, r := range cascade {
		names[i] = r.name
	}
	return names
}

// normalize trims the input and collapses internal whitespace runs,
// including the non-breaking spaces listing sites embed, to single spaces.
func normalize(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
