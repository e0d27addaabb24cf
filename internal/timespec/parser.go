package timespec

import (
	"fmt"
	"strings"
	"time"
)

// Parse parses a schedule bound specification into a time.
// Supports three formats:
//   - RFC3339 timestamps: "2026-09-08T09:00:00Z"
//   - Local dates and date-times: "2026-09-08", "2026-09-08 17:30"
//   - Relative durations from now: "+1h", "+72h" (always forward)
//
// Dates without a time component mean midnight local time.
func Parse(spec string) (time.Time, error) {
	if spec == "" {
		return time.Time{}, fmt.Errorf("empty time specification")
	}

	if strings.HasPrefix(spec, "+") {
		d, err := time.ParseDuration(spec[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time specification: %s (use a duration like '+72h' or RFC3339 like '2026-09-08T09:00:00Z')", spec)
		}
		return time.Now().Add(d), nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid time specification: %s (use a date like '2026-09-08', RFC3339, or a duration like '+72h')", spec)
}

// ParseRange parses the --start and --end flags into schedule bounds.
// Empty specs yield nil, meaning no bound on that side.
//
// Validates that start < end when both are given.
func ParseRange(start, end string) (*time.Time, *time.Time, error) {
	var startAt, endAt *time.Time

	if start != "" {
		t, err := Parse(start)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --start: %w", err)
		}
		startAt = &t
	}

	if end != "" {
		t, err := Parse(end)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --end: %w", err)
		}
		endAt = &t
	}

	if startAt != nil && endAt != nil && !startAt.Before(*endAt) {
		return nil, nil, fmt.Errorf("--start must be before --end")
	}

	return startAt, endAt, nil
}
