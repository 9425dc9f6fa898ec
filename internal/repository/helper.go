package repository

import (
	"fmt"
	"time"
)

// dateFormat is how calendar dates are stored in sqlite. Timestamps
// (created_at) are stored as RFC3339 instead.
const dateFormat = "2006-01-02"

var storedTimeFormats = []string{dateFormat, time.RFC3339}

// ParseTime parses a stored date or timestamp column back into a UTC time.
func ParseTime(str string) (time.Time, error) {
	for _, format := range storedTimeFormats {
		if parsed, err := time.Parse(format, str); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
