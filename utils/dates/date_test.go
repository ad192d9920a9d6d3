package dates

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestParseTimestampShapes(t *testing.T) {
	expected := time.Date(2024, time.January, 1, 12, 30, 0, 0, time.UTC)

	for _, raw := range []string{
		"2024-01-01T12:30:00Z",
		"2024-01-01T13:30:00+01:00",
		"Mon Jan 01 12:30:00 +0000 2024",
		"2024-01-01 12:30:00",
	} {
		parsed, ok := ParseTimestamp(raw)
		assert.Equal(t, true, ok)
		assert.Equal(t, expected, parsed)
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "   ", "yesterday", "01/01/2024"} {
		_, ok := ParseTimestamp(raw)
		assert.Equal(t, false, ok)
	}
}

func TestScrapeWindow(t *testing.T) {
	window := ScrapeWindow(7)

	assert.Equal(t, 7, int(window.Until.Sub(window.Start).Hours()/24))
	assert.Equal(t, true, window.Contains(time.Now().UTC()))
	assert.Equal(t, false, window.Contains(window.Until))
	assert.Equal(t, true, window.Contains(window.Start))
	assert.Equal(t, false, window.Contains(window.Start.Add(-time.Second)))
}

func TestWindowIsZero(t *testing.T) {
	assert.Equal(t, true, Window{}.IsZero())
	assert.Equal(t, false, ScrapeWindow(1).IsZero())
}
