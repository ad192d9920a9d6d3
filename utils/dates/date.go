package dates

import (
	"strings"
	"time"
)

const (
	DateFormat = "2006-01-02"
)

// Window is a half-open UTC interval [Start, Until).
type Window struct {
	Start time.Time
	Until time.Time
}

// ScrapeWindow returns the look-back window for a run: Until is tomorrow
// at midnight UTC (exclusive), Start is sinceDays earlier.
func ScrapeWindow(sinceDays int) Window {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	until := today.AddDate(0, 0, 1)

	return Window{
		Start: until.AddDate(0, 0, -sinceDays),
		Until: until,
	}
}

func (w Window) Contains(t time.Time) bool {
	t = t.UTC()
	return !t.Before(w.Start) && t.Before(w.Until)
}

func (w Window) IsZero() bool {
	return w.Start.IsZero() && w.Until.IsZero()
}

// Timestamp shapes the actor service has been observed returning.
var timestampLayouts = []string{
	time.RFC3339,
	"Mon Jan 02 15:04:05 -0700 2006",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses the known timestamp shapes to UTC. The boolean is
// false when no layout matches.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}

func StringToDate(from string, dateFormat string) (time.Time, error) {
	return time.Parse(dateFormat, from)
}

func DateToString(from time.Time, dateFormat string) string {
	return from.Format(dateFormat)
}
