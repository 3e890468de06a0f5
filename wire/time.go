package wire

import (
	"fmt"
	"strings"
	"time"
)

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
}

// ParseTime parses an ISO-8601 timestamp with optional fractional seconds.
// A missing zone designator is read as UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO-8601", value)
}

// FormatTime renders t as RFC 3339 with nanosecond precision, keeping its offset.
func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
