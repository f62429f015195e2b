package extraction

import (
	"regexp"
	"strconv"
	"time"
)

// DateRule is a positional date pattern. Year, Month and Day are the capture
// group indexes holding each field.
type DateRule struct {
	Label   string
	Pattern *regexp.Regexp
	Year    int
	Month   int
	Day     int
}

// DateRules returns the date rules in priority order. The patterns only
// refuse a neighbouring digit, so 2011-01-05 is not read as 11-01-05 while
// 07/21/2024PM and 2024-07-21T10:30:00 still match.
func DateRules() []DateRule {
	return []DateRule{
		{Label: "M/D/Y", Pattern: regexp.MustCompile(`(?:^|\D)(\d{1,2})/(\d{1,2})/(\d{2,4})(?:\D|$)`), Month: 1, Day: 2, Year: 3},
		{Label: "M-D-Y", Pattern: regexp.MustCompile(`(?:^|\D)(\d{1,2})-(\d{1,2})-(\d{2,4})(?:\D|$)`), Month: 1, Day: 2, Year: 3},
		{Label: "Y-M-D", Pattern: regexp.MustCompile(`(?:^|\D)(\d{4})-(\d{1,2})-(\d{1,2})(?:\D|$)`), Year: 1, Month: 2, Day: 3},
	}
}

// DateExtractor finds the transaction date
type DateExtractor struct {
	rules []DateRule
	clock TimeSource
}

// NewDateExtractor creates a DateExtractor that falls back to clock's date
func NewDateExtractor(clock TimeSource) *DateExtractor {
	return &DateExtractor{rules: DateRules(), clock: clock}
}

// Extract returns the first calendrically valid date found by the rules, or
// today's date. A match such as 13/40/2024 is skipped, not an error.
func (e *DateExtractor) Extract(text string) (time.Time, Provenance) {
	for _, rule := range e.rules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if date, ok := calendarDate(m[rule.Year], m[rule.Month], m[rule.Day]); ok {
			return date, matched(rule.Label)
		}
	}
	now := e.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), defaulted()
}

func calendarDate(yearStr, monthStr, dayStr string) (time.Time, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return time.Time{}, false
	}
	if year < 100 {
		year += 2000
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}

	// time.Date normalizes overflow (Feb 30 -> Mar 2), so compare the fields back
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, false
	}
	return date, true
}
