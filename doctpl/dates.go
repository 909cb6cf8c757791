package doctpl

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseDate parses the date formats submitted by the forms.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OrdinalDate formats t as "3rd January 2026".
func OrdinalDate(t time.Time) string {
	day := t.Day()
	suffix := "th"
	switch {
	case day%10 == 1 && day != 11:
		suffix = "st"
	case day%10 == 2 && day != 12:
		suffix = "nd"
	case day%10 == 3 && day != 13:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s %s %d", day, suffix, t.Month(), t.Year())
}

// FormatDate renders a submitted date in ordinal wording. Input that does not
// parse is returned unchanged; empty input yields "".
func FormatDate(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	t, ok := ParseDate(raw)
	if !ok {
		return raw
	}
	return OrdinalDate(t)
}
