package dateparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// recognizer ties one known date-string convention to its extraction logic.
// pattern gates the rule; applies, when set, is an extra predicate checked
// after the pattern so overlapping shapes can stay in their published
// priority order.
type recognizer struct {
	name    string
	pattern *regexp.Regexp
	applies func(s string) bool
	extract func(p *Parser, s string, m []string) ParsedRange
}

// cascade lists the recognizers in priority order: shapes with explicit
// years and zone offsets come before the looser weekday shapes that could
// false-positive on their substrings. First match wins.
var cascade = []recognizer{
	{
		// "Feb 16, 12:00 pm - Feb 16, 6:00 pm"
		name:    "simple_same_day",
		pattern: regexp.MustCompile(`([A-Za-z]+ \d{1,2}), (\d{1,2}:\d{2} [APap][Mm]) - ([A-Za-z]+ \d{1,2}), (\d{1,2}:\d{2} [APap][Mm])`),
		extract: extractSimpleSameDay,
	},
	{
		// "Sep 24, 2022 · 8:00 AM - Sep 24, 2022 · 2:30 PM(GMT-04:00) Eastern Time (US & Canada)"
		name:    "explicit_year_gmt",
		pattern: regexp.MustCompile(`([A-Za-z]+ \d{1,2}, \d{4})(?:\s*·\s*|\s+)(\d{1,2}:\d{2} [APap][Mm]) - ([A-Za-z]+ \d{1,2}, \d{4})(?:\s*·\s*|\s+)(\d{1,2}:\d{2} [APap][Mm])`),
		extract: extractExplicitYear,
	},
	{
		// "May 31 · 10am - June 1 · 6pm EDT"
		name:    "multi_day",
		pattern: regexp.MustCompile(`([A-Za-z]+ \d{1,2})(?:\s*·\s*|\s+)(\d{1,2}(?::\d{2})? ?[APap][Mm]) - ([A-Za-z]+ \d{1,2})(?:\s*·\s*|\s+)(\d{1,2}(?::\d{2})? ?[APap][Mm])(?: ([A-Za-z]{3,4}))?`),
		extract: extractMultiDay,
	},
	{
		// "Saturday, April 12 · 11:30am - 7:30pm EDT"
		name:    "weekday_both_meridiems",
		pattern: regexp.MustCompile(`([A-Za-z]+, [A-Za-z]+ \d{1,2})(?:\s*·\s*|\s+)(\d{1,2}(?::\d{2})? ?[APap][Mm])(?:\s+-\s+|\s+)(\d{1,2}(?::\d{2})? ?[APap][Mm])(?: ([A-Za-z]{3,4}))?`),
		extract: extractWeekdayBothMeridiems,
	},
	{
		// "Saturday, April 26 · 3 - 6pm EDT"; the start meridiem is elided
		// and must be inferred from the end time. Doors-style strings match
		// this pattern too, so the predicate defers them to the next rule.
		name:    "weekday_elided_meridiem",
		pattern: regexp.MustCompile(`([A-Za-z]+, [A-Za-z]+ \d{1,2})(?:\s*·\s*|\s+)(\d{1,2}(?::\d{2})?)(?:\s+-\s+|\s+)(\d{1,2}(?::\d{2})? ?[APap][Mm])(?: ([A-Za-z]{3,4}))?`),
		applies: func(s string) bool { return !doorsClause.MatchString(s) },
		extract: extractWeekdayElidedMeridiem,
	},
	{
		// "Sunday, April 27 · 12 - 11:30pm EDT. Doors at 11:48am"
		name:    "weekday_doors",
		pattern: regexp.MustCompile(`([A-Za-z]+, [A-Za-z]+ \d{1,2})(?:\s*·\s*|\s+)(\d{1,2}(?::\d{2})?)(?:\s+-\s+|\s+)(\d{1,2}(?::\d{2})? ?[APap][Mm])(?: ([A-Za-z]{3,4}))?\. Doors at`),
		extract: extractWeekdayDoors,
	},
	{
		// "9/14/25 - 9/14/25" (application-window listings, date-only)
		name:    "slash_date_range",
		pattern: regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4}) - (\d{1,2}/\d{1,2}/\d{2,4})`),
		extract: extractSlashDateRange,
	},
}

var doorsClause = regexp.MustCompile(`\. Doors at`)

// clockPattern splits "6pm", "11:30am", "8:00 AM" into hour/minute/meridiem.
var clockPattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))? ?([APap][Mm])$`)

// canonicalClock rewrites a listing's clock time into the single "3:04 PM"
// shape the layouts below expect.
func canonicalClock(raw string) (string, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	minute := m[2]
	if minute == "" {
		minute = "00"
	}
	return m[1] + ":" + minute + " " + strings.ToUpper(m[3]), true
}

// clockHour returns the numeric hour of a clock string, meridiem ignored.
func clockHour(raw string) int {
	h, _, _ := strings.Cut(strings.TrimSpace(raw), ":")
	h = strings.TrimRight(h, "APMapm ")
	n, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return 0
	}
	return n
}

// parseSide builds one instant from a date fragment, a clock string, and a
// layout; any failure yields nil so the other side of the range can still
// resolve.
func parseSide(datePart, clockPart, layout string, loc *time.Location) *time.Time {
	c, ok := canonicalClock(clockPart)
	if !ok {
		return nil
	}
	t, err := time.ParseInLocation(layout, datePart+" "+c, loc)
	if err != nil {
		return nil
	}
	return &t
}

// Simple same-day shape: no year, minutes always present, Eastern assumed.
func extractSimpleSameDay(p *Parser, s string, m []string) ParsedRange {
	loc := easternZone()
	layout := "Jan 2 2006 3:04 PM"
	return ParsedRange{
		Start: parseSide(fmt.Sprintf("%s %d", m[1], p.ReferenceYear), m[2], layout, loc),
		End:   parseSide(fmt.Sprintf("%s %d", m[3], p.ReferenceYear), m[4], layout, loc),
	}
}

// Explicit-year shape with a GMT offset / zone-name suffix. Only Eastern and
// Central are distinguished; every other offset deliberately defaults to
// Eastern to match the behavior downstream data was normalized under.
func extractExplicitYear(p *Parser, s string, m []string) ParsedRange {
	loc := easternZone()
	if strings.Contains(s, "GMT-05:00") || strings.Contains(s, "Central Time") {
		loc = centralZone()
	}

	// Full month names are the primary layout; listings occasionally
	// abbreviate, so each side independently retries the short form.
	side := func(datePart, clockPart string) *time.Time {
		if t := parseSide(datePart, clockPart, "January 2, 2006 3:04 PM", loc); t != nil {
			return t
		}
		return parseSide(datePart, clockPart, "Jan 2, 2006 3:04 PM", loc)
	}

	return ParsedRange{
		Start: side(m[1], m[2]),
		End:   side(m[3], m[4]),
	}
}

// Multi-day shape: distinct month/day on each side, optional trailing zone
// abbreviation, year assumed.
func extractMultiDay(p *Parser, s string, m []string) ParsedRange {
	loc := ZoneForAbbreviation(m[5])
	layout := "January 2 2006 3:04 PM"
	return ParsedRange{
		Start: parseSide(fmt.Sprintf("%s %d", m[1], p.ReferenceYear), m[2], layout, loc),
		End:   parseSide(fmt.Sprintf("%s %d", m[3], p.ReferenceYear), m[4], layout, loc),
	}
}

const weekdayLayout = "Monday, January 2 2006 3:04 PM"

// Weekday shape where both times carry a meridiem. One calendar day; the
// weekday prefix applies to both ends.
func extractWeekdayBothMeridiems(p *Parser, s string, m []string) ParsedRange {
	loc := ZoneForAbbreviation(m[4])
	dayMonth := fmt.Sprintf("%s %d", m[1], p.ReferenceYear)
	return ParsedRange{
		Start: parseSide(dayMonth, m[2], weekdayLayout, loc),
		End:   parseSide(dayMonth, m[3], weekdayLayout, loc),
	}
}

// inferMeridiem supplies the elided start meridiem from the end time.
// Listings write ranges like "3 - 6pm" where repeating "pm" would be
// redundant; when the end is PM and the start hour does not read as a later
// hour, the start shares it. A PM default covers the leftover ambiguity.
func inferMeridiem(startClock, endClock string) string {
	endUpper := strings.ToUpper(endClock)
	endIsPM := strings.Contains(endUpper, "PM")
	endIsAM := strings.Contains(endUpper, "AM")

	startHour := clockHour(startClock)
	endHour := clockHour(endClock)

	switch {
	case endIsPM && (startHour <= endHour || endHour < 12):
		return "PM"
	case endIsAM:
		return "AM"
	default:
		return "PM"
	}
}

func extractWeekdayElidedMeridiem(p *Parser, s string, m []string) ParsedRange {
	loc := ZoneForAbbreviation(m[4])
	dayMonth := fmt.Sprintf("%s %d", m[1], p.ReferenceYear)
	startClock := m[2] + inferMeridiem(m[2], m[3])
	return ParsedRange{
		Start: parseSide(dayMonth, startClock, weekdayLayout, loc),
		End:   parseSide(dayMonth, m[3], weekdayLayout, loc),
	}
}

// Doors shape: the trailing "Doors at" clause is outside the capture groups
// and therefore already stripped. Doors-style listings skew toward daytime
// starts, so the ambiguous case resolves to AM here rather than PM.
func extractWeekdayDoors(p *Parser, s string, m []string) ParsedRange {
	loc := ZoneForAbbreviation(m[4])
	dayMonth := fmt.Sprintf("%s %d", m[1], p.ReferenceYear)

	meridiem := "AM"
	if strings.Contains(strings.ToUpper(m[3]), "PM") {
		meridiem = "PM"
	}
	startClock := m[2] + meridiem

	return ParsedRange{
		Start: parseSide(dayMonth, startClock, weekdayLayout, loc),
		End:   parseSide(dayMonth, m[3], weekdayLayout, loc),
	}
}

// Slash-date application windows carry no times. The range is widened to
// express "these whole days": noon on the first day through 23:59 on the
// last, in the parser's local zone.
func extractSlashDateRange(p *Parser, s string, m []string) ParsedRange {
	var start, end *time.Time

	if d, err := time.ParseInLocation("1/2/06", m[1], p.Local); err == nil {
		t := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, p.Local)
		start = &t
	}
	if d, err := time.ParseInLocation("1/2/06", m[2], p.Local); err == nil {
		t := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 0, 0, p.Local)
		end = &t
	}

	return ParsedRange{Start: start, End: end}
}
