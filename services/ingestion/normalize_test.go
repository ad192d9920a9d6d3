package ingestion

import (
	"testing"
	"time"

	"tweet-digest/services/actor"
	"tweet-digest/utils/dates"

	"github.com/go-playground/assert/v2"
)

func TestNormalizeWellFormedRecord(t *testing.T) {
	records := []actor.RawRecord{
		{
			"id":        "t1",
			"text":      "hello",
			"createdAt": "2024-01-01T00:00:00Z",
			"author":    map[string]any{"name": "Alice", "username": "alice"},
		},
	}

	tweets, stats := Normalize(records, dates.Window{})

	assert.Equal(t, 1, len(tweets))
	assert.Equal(t, 0, stats.Skipped())

	tweet := tweets[0]
	assert.Equal(t, "t1", tweet.ID)
	assert.Equal(t, "alice", tweet.AuthorHandle)
	assert.Equal(t, "Alice", tweet.AuthorName)
	assert.Equal(t, "hello", tweet.Text)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), tweet.CreatedAt)
	assert.Equal(t, "", tweet.Summary)
	assert.Equal(t, "", tweet.SummaryTitle)
}

func TestNormalizeSkipsMalformedRecordsWithoutFailing(t *testing.T) {
	records := []actor.RawRecord{
		{"id": "ok1", "text": "first", "createdAt": "2024-01-01T00:00:00Z"},
		{"text": "no id", "createdAt": "2024-01-01T00:00:00Z"},
		{"id": "no-timestamp", "text": "broken"},
		{"id": "bad-timestamp", "text": "broken", "createdAt": "not a date"},
		{"id": "ok2", "text": "second", "createdAt": "2024-01-02T00:00:00Z"},
	}

	tweets, stats := Normalize(records, dates.Window{})

	assert.Equal(t, 2, len(tweets))
	assert.Equal(t, 3, stats.Malformed)
	assert.Equal(t, "ok1", tweets[0].ID)
	assert.Equal(t, "ok2", tweets[1].ID)
}

func TestNormalizeSkipsDemoAndNonTweetRows(t *testing.T) {
	records := []actor.RawRecord{
		{"demo": true},
		{"demo": true, "type": "tweet"},
		{"id": "u1", "type": "user", "createdAt": "2024-01-01T00:00:00Z"},
		{"id": "t1", "type": "tweet", "text": "kept", "createdAt": "2024-01-01T00:00:00Z"},
	}

	tweets, stats := Normalize(records, dates.Window{})

	assert.Equal(t, 1, len(tweets))
	assert.Equal(t, 2, stats.Demo)
	assert.Equal(t, 1, stats.NonTweet)
}

func TestNormalizeFieldFallbackChains(t *testing.T) {
	records := []actor.RawRecord{
		{
			"id":       "legacy1",
			"fullText": "full text wins",
			"text":     "short text",
			"legacy":   map[string]any{"created_at": "Mon Jan 01 10:00:00 +0000 2024"},
			"user":     map[string]any{"screen_name": "bob", "name": "Bob"},
			"entities": map[string]any{
				"media": []any{map[string]any{"media_url_https": "https://img.example/1.jpg"}},
			},
			"likeCount":    float64(3),
			"retweetCount": float64(2),
		},
	}

	tweets, stats := Normalize(records, dates.Window{})

	assert.Equal(t, 1, len(tweets))
	assert.Equal(t, 0, stats.Skipped())

	tweet := tweets[0]
	assert.Equal(t, "full text wins", tweet.Text)
	assert.Equal(t, "bob", tweet.AuthorHandle)
	assert.Equal(t, "Bob", tweet.AuthorName)
	assert.Equal(t, "https://img.example/1.jpg", tweet.PhotoURL)
	assert.Equal(t, 3, tweet.Likes)
	assert.Equal(t, 2, tweet.Retweets)
	assert.Equal(t, time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), tweet.CreatedAt)
}

func TestNormalizeWindowFilter(t *testing.T) {
	window := dates.Window{
		Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC),
	}

	records := []actor.RawRecord{
		{"id": "in", "text": "x", "createdAt": "2024-01-03T00:00:00Z"},
		{"id": "before", "text": "x", "createdAt": "2023-12-25T00:00:00Z"},
		{"id": "after", "text": "x", "createdAt": "2024-02-01T00:00:00Z"},
	}

	tweets, stats := Normalize(records, window)

	assert.Equal(t, 1, len(tweets))
	assert.Equal(t, "in", tweets[0].ID)
	assert.Equal(t, 2, stats.OutOfWindow)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	records := []actor.RawRecord{
		{"id": "a", "text": "1", "createdAt": "2024-01-01T00:00:00Z"},
		{"id": "b", "text": "2", "createdAt": "2024-01-02T00:00:00Z"},
		{"no": "id"},
	}

	first, firstStats := Normalize(records, dates.Window{})
	second, secondStats := Normalize(records, dates.Window{})

	assert.Equal(t, first, second)
	assert.Equal(t, firstStats, secondStats)
}
