package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"tweet-digest/utils/dates"
)

// NormalizeHandle accepts "@user", "user" or a full profile URL and
// returns the bare username, empty when nothing usable remains.
func NormalizeHandle(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "http") {
		parsed, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		path := strings.Trim(parsed.Path, "/")
		if path == "" {
			return ""
		}
		raw = strings.SplitN(path, "/", 2)[0]
	}

	return strings.TrimPrefix(raw, "@")
}

// buildSearchTerms emits one "from:<user> since:<date> until:<date>"
// query per handle, the syntax the actor passes through to the platform
// search.
func buildSearchTerms(handles []string, window dates.Window, extraQuery string) []string {
	terms := make([]string, 0, len(handles))

	for _, handle := range handles {
		user := NormalizeHandle(handle)
		if user == "" {
			continue
		}

		term := fmt.Sprintf("from:%s since:%s until:%s",
			user,
			dates.DateToString(window.Start, dates.DateFormat),
			dates.DateToString(window.Until, dates.DateFormat))
		if extraQuery != "" {
			term = term + " " + extraQuery
		}

		terms = append(terms, term)
	}

	return terms
}
