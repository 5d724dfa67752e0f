package shared

import (
	"strings"
	"time"
)

// timestampLayouts are tried in order. Layouts without a zone are read as UTC.
var timestampLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05", time.RFC3339, time.DateOnly}

// ParseTimestamp accepts the datetime-local form value and a few ISO forms.
// A blank input yields the zero time and ok.
func ParseTimestamp(raw string) (t time.Time, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, true
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseDay reads the leading YYYY-MM-DD of raw as a UTC midnight.
func ParseDay(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) < len(time.DateOnly) {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, raw[:len(time.DateOnly)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
