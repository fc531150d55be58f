package cliargs

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoDateLayout = "2006-01-02"
	recordingHour = 12
)

const (
	KeywordToday     = "today"
	KeywordYesterday = "yesterday"
)

// resolveDate interprets a date token as a calendar day pinned to midday UTC,
// so formatting the result in any zone within ±12h yields the same day.
func resolveDate(raw string, now time.Time) (time.Time, error) {
	switch raw {
	case KeywordToday:
		return atRecordingHour(now.Year(), now.Month(), now.Day()), nil
	case KeywordYesterday:
		y := now.AddDate(0, 0, -1)
		return atRecordingHour(y.Year(), y.Month(), y.Day()), nil
	}

	day, err := time.Parse(isoDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time value %q (expected YYYY-MM-DD, %s or %s)", raw, KeywordToday, KeywordYesterday)
	}
	return atRecordingHour(day.Year(), day.Month(), day.Day()), nil
}

func atRecordingHour(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, recordingHour, 0, 0, 0, time.UTC)
}
