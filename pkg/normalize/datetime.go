package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateFormats is tried in order; the first successful parse wins.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// CalendarDate parses a date string and reduces it to the UTC calendar day,
// discarding any time-of-day component. The UTC convention is fixed so the
// stored day never drifts with the server's wall clock.
func CalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date cannot be empty")
	}

	for _, layout := range dateFormats {
		parsed, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		parsed = parsed.UTC()
		year, month, day := parsed.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}

var clockRegex = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(?:\s*([AaPp][Mm]))?$`)

// ClockTime normalizes a clock value to 24-hour "HH:MM". Both 24-hour input
// ("14:30", "9:05") and 12-hour input with a meridiem ("2:30 pm", "12:00 AM")
// are accepted. Hours outside 0-23 (or 1-12 with a meridiem) and minutes
// outside 0-59 are rejected.
func ClockTime(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("time cannot be empty")
	}

	m := clockRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return "", fmt.Errorf("unparseable time: %q", s)
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	meridiem := strings.ToLower(m[3])

	if minute > 59 {
		return "", fmt.Errorf("minute out of range in %q: %d", s, minute)
	}

	switch meridiem {
	case "":
		if hour > 23 {
			return "", fmt.Errorf("hour out of range in %q: %d", s, hour)
		}
	case "am":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("hour out of range in %q: %d", s, hour)
		}
		hour = hour % 12
	case "pm":
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("hour out of range in %q: %d", s, hour)
		}
		hour = hour%12 + 12
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}
