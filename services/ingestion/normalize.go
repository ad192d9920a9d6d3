package ingestion

import (
	"strings"
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/services/actor"
	"tweet-digest/utils/dates"
)

// Normalize maps raw actor records to tweet rows. The actor's schema is
// dynamic, so every field goes through a fallback chain; records missing
// an id or a parseable timestamp are dropped and counted, never fatal.
// Output order follows input order, making the mapping deterministic.
// A zero window disables the time filter.
func Normalize(records []actor.RawRecord, window dates.Window) ([]entities.Tweet, Stats) {
	tweets := make([]entities.Tweet, 0, len(records))
	var stats Stats

	for _, record := range records {
		if isDemoItem(record) {
			stats.Demo++
			continue
		}

		if kind := stringField(record, "type"); kind != "" && kind != "tweet" {
			stats.NonTweet++
			continue
		}

		id := stringField(record, "id")
		createdAt, okTime := dates.ParseTimestamp(pickTimestamp(record))
		if id == "" || !okTime {
			stats.Malformed++
			continue
		}

		if !window.IsZero() && !window.Contains(createdAt) {
			stats.OutOfWindow++
			continue
		}

		name, handle := extractAuthor(record)
		tweets = append(tweets, entities.Tweet{
			ID:           id,
			AuthorName:   name,
			AuthorHandle: handle,
			Text:         extractText(record),
			Lang:         stringField(record, "lang"),
			Likes:        intField(record, "likeCount"),
			Replies:      intField(record, "replyCount"),
			Retweets:     intField(record, "retweetCount"),
			Quotes:       intField(record, "quoteCount"),
			PhotoURL:     extractPhotoURL(record),
			PermanentURL: extractPermanentURL(record),
			CreatedAt:    createdAt,
		})
	}

	return tweets, stats
}

// pickTimestamp tries the fields where actor versions have put the
// creation time.
func pickTimestamp(record actor.RawRecord) string {
	if ts := stringField(record, "createdAt"); ts != "" {
		return ts
	}
	if ts := stringField(record, "created_at"); ts != "" {
		return ts
	}
	if legacy := mapField(record, "legacy"); legacy != nil {
		if ts := stringField(legacy, "created_at"); ts != "" {
			return ts
		}
	}
	if nested := mapField(record, "tweet"); nested != nil {
		if ts := stringField(nested, "createdAt"); ts != "" {
			return ts
		}
		return stringField(nested, "created_at")
	}

	return ""
}

func extractAuthor(record actor.RawRecord) (string, string) {
	var name, handle string

	if author := mapField(record, "author"); author != nil {
		name = stringField(author, "name")
		handle = stringField(author, "username")
		if handle == "" {
			handle = stringField(author, "userName")
		}
	}

	if handle == "" {
		if user := mapField(record, "user"); user != nil {
			handle = stringField(user, "screen_name")
			if name == "" {
				name = stringField(user, "name")
			}
		}
	}

	return name, handle
}

func extractText(record actor.RawRecord) string {
	if text := stringField(record, "fullText"); text != "" {
		return strings.TrimSpace(text)
	}

	return strings.TrimSpace(stringField(record, "text"))
}

func extractPhotoURL(record actor.RawRecord) string {
	for _, key := range []string{"entities", "extendedEntities", "extended_entities"} {
		container := mapField(record, key)
		if container == nil {
			continue
		}

		media, ok := container["media"].([]any)
		if !ok || len(media) == 0 {
			continue
		}

		first, ok := media[0].(map[string]any)
		if !ok {
			continue
		}

		if u := stringField(first, "media_url_https"); u != "" {
			return u
		}
		if u := stringField(first, "media_url"); u != "" {
			return u
		}
	}

	return ""
}

func extractPermanentURL(record actor.RawRecord) string {
	if u := stringField(record, "url"); u != "" {
		return u
	}

	return stringField(record, "twitterUrl")
}

// isDemoItem spots the placeholder rows the actor returns on free plans.
func isDemoItem(record actor.RawRecord) bool {
	if _, ok := record["demo"]; !ok {
		return false
	}

	for _, key := range []string{"id", "text", "fullText", "createdAt", "created_at"} {
		if _, ok := record[key]; ok {
			return false
		}
	}

	return true
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}

	return ""
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func mapField(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}

	return nil
}

// ensure normalized rows share a fetch stamp
func stamp(tweets []entities.Tweet, runID string, at time.Time) {
	for i := range tweets {
		tweets[i].IngestRunID = runID
		tweets[i].FetchedAt = at
	}
}
