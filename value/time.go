package value

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts accepted from the remote API, tried in order.
// The API emits "2006-01-02 15:04:05" for item timestamps; RFC 3339 and
// bare dates show up in older project exports.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseTimestamp parses a remote timestamp string with layout auto-detection.
// Also accepts a unix epoch in seconds.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	// Unix epoch seconds, as some webhook payloads carry
	if epoch := Int(s); epoch > 0 && fmt.Sprintf("%d", epoch) == s {
		return time.Unix(int64(epoch), 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// DateStorageFormat is the storage layout for date-only local fields.
const DateStorageFormat = "2006-01-02"

// DateTimeStorageFormat is the storage layout for datetime local fields.
const DateTimeStorageFormat = "2006-01-02T15:04:05"
