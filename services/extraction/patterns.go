package extraction

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"datekeeper/models"
)

// datePatterns is scanned in order. Position encodes trust: explicit expiry
// phrasing outranks a labeled date, which outranks a bare date. Every match
// from every pattern is collected before a date is chosen.
var datePatterns = []struct {
	re   *regexp.Regexp
	desc string
}{
	{regexp.MustCompile(`(?i)expir[ye].*?date.*?[:\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), "expiry date"},
	{regexp.MustCompile(`(?i)expir[ye].*?[:\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), "expiry"},
	{regexp.MustCompile(`(?i)exp.*?date.*?[:\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), "exp date"},
	{regexp.MustCompile(`(?i)valid.*?until.*?[:\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), "valid until"},
	{regexp.MustCompile(`(?i)valid.*?thru.*?[:\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), "valid thru"},
	{regexp.MustCompile(`(?i)date.*?of.*?expiry.*?[:\s]*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`), "date of expiry"},
	{regexp.MustCompile(`(?i)(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})`), "DD Mon YYYY"},
	{regexp.MustCompile(`(?i)((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4})`), "Mon DD, YYYY"},
	{regexp.MustCompile(`(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{4})`), "numeric day-first"},
	{regexp.MustCompile(`(\d{4}[/.\-]\d{1,2}[/.\-]\d{1,2})`), "numeric year-first"},
	{regexp.MustCompile(`(\d{2}\s+\d{2}\s+\d{4})`), "spaced numeric"},
	{regexp.MustCompile(`(\d{8})`), "compact"},
}

var tokenSplit = regexp.MustCompile(`[/.\-,\s]+`)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// parseCandidate turns a matched date-shaped string into a calendar date.
// Eight bare digits are tried as DDMMYYYY then YYYYMMDD; everything else goes
// through the permissive day-first parser.
func parseCandidate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 8 && isDigits(s) {
		if t, err := time.Parse("02012006", s); err == nil {
			return models.DateOnly(t), true
		}
		if t, err := time.Parse("20060102", s); err == nil {
			return models.DateOnly(t), true
		}
		return time.Time{}, false
	}
	return parseLoose(s)
}

// parseLoose handles numeric and month-name dates with mixed separators,
// resolving ambiguous numeric forms day-first.
func parseLoose(s string) (time.Time, bool) {
	tokens := tokenSplit.Split(strings.TrimSpace(s), -1)
	fields := tokens[:0]
	for _, tok := range tokens {
		if tok != "" {
			fields = append(fields, tok)
		}
	}
	if len(fields) != 3 {
		return time.Time{}, false
	}

	switch {
	case isAlpha(fields[0]):
		// Mon DD YYYY
		return makeNamedDate(fields[0], fields[1], fields[2])
	case isAlpha(fields[1]):
		// DD Mon YYYY
		return makeNamedDate(fields[1], fields[0], fields[2])
	case len(fields[0]) == 4:
		// YYYY MM DD
		return makeNumericDate(fields[0], fields[1], fields[2])
	default:
		// DD MM YYYY (day-first)
		return makeNumericDate(fields[2], fields[1], fields[0])
	}
}

func makeNamedDate(monthTok, dayTok, yearTok string) (time.Time, bool) {
	month, ok := months[strings.ToLower(monthTok)[:min(3, len(monthTok))]]
	if !ok {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayTok)
	if err != nil {
		return time.Time{}, false
	}
	year, ok := parseYear(yearTok)
	if !ok {
		return time.Time{}, false
	}
	return makeDate(year, month, day)
}

func makeNumericDate(yearTok, monthTok, dayTok string) (time.Time, bool) {
	year, ok := parseYear(yearTok)
	if !ok {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(monthTok)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(dayTok)
	if err != nil {
		return time.Time{}, false
	}
	return makeDate(year, time.Month(month), day)
}

// parseYear accepts 4-digit years and 2-digit years with a 1970 pivot.
func parseYear(tok string) (int, bool) {
	if !isDigits(tok) {
		return 0, false
	}
	switch len(tok) {
	case 4:
		y, _ := strconv.Atoi(tok)
		return y, true
	case 2:
		y, _ := strconv.Atoi(tok)
		if y < 70 {
			return 2000 + y, true
		}
		return 1900 + y, true
	}
	return 0, false
}

// makeDate builds a calendar date and rejects values that time.Date would
// silently normalize (e.g. 31 Feb).
func makeDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
