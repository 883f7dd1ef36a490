package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// CanonicalDateFormat is the only date form a canonical transaction carries.
const CanonicalDateFormat = "2006-01-02"

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// calendarLayouts are tried in order for exports that do not lead with an
// ISO date, e.g. Coinbase's "Jan 01 2026 10:33:55".
var calendarLayouts = []string{
	"Jan 02 2006 15:04:05",
	"Jan 2 2006 15:04:05",
	"Jan 02 2006",
	"Jan 2, 2006",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02-01-2006",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// NormalizeDate reduces an exchange timestamp to its date-only component in
// canonical YYYY-MM-DD form. ISO-leading values are split on the first
// space or 'T'; anything else is parsed against known calendar layouts and
// re-emitted in UTC.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}

	datePart := s
	if i := strings.IndexAny(s, " T"); i > 0 {
		datePart = s[:i]
	}
	if isoDateRe.MatchString(datePart) {
		// Reject impossible dates like 2024-13-40 up front.
		if _, err := time.Parse(CanonicalDateFormat, datePart); err != nil {
			return "", fmt.Errorf("invalid date %q: %w", s, err)
		}
		return datePart, nil
	}

	for _, layout := range calendarLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(CanonicalDateFormat), nil
		}
	}
	return "", fmt.Errorf("unrecognized date format %q", s)
}
