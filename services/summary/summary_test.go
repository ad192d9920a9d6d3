package summary

import (
	"strings"
	"testing"

	"tweet-digest/models/entities"

	"github.com/go-playground/assert/v2"
)

func TestParseResponseSplitsTitle(t *testing.T) {
	content := "In the latest tweet from (Alice)...\n\nShe says hello.\nPost Title: Alice says hello"

	result := parseResponse(content)

	assert.Equal(t, "Alice says hello", result.Title)
	assert.Equal(t, "In the latest tweet from (Alice)...\n\nShe says hello.", result.Summary)
}

func TestParseResponseWithoutMarker(t *testing.T) {
	result := parseResponse("Just a plain summary with no title line.")

	assert.Equal(t, "Untitled", result.Title)
	assert.Equal(t, "Just a plain summary with no title line.", result.Summary)
}

func TestBuildPromptMentionsAuthorAndLanguage(t *testing.T) {
	service := &Impl{language: "French", enabled: true}
	tweet := entities.Tweet{AuthorName: "Alice", Text: "bonjour"}

	prompt := service.buildPrompt(tweet)

	assert.Equal(t, true, strings.Contains(prompt, "In the latest tweet from (Alice)"))
	assert.Equal(t, true, strings.Contains(prompt, "French"))
	assert.Equal(t, true, strings.Contains(prompt, "Original Tweet: bonjour"))
}

func TestBuildPromptDefaultsUnknownAuthor(t *testing.T) {
	service := &Impl{language: "English", enabled: true}

	prompt := service.buildPrompt(entities.Tweet{Text: "hi"})

	assert.Equal(t, true, strings.Contains(prompt, "(Unknown)"))
}

func TestDisabledServiceRefusesToSummarize(t *testing.T) {
	service := &Impl{}

	assert.Equal(t, false, service.Enabled())

	_, err := service.Summarize(entities.Tweet{ID: "t1", Text: "hello"})
	assert.NotEqual(t, nil, err)
}
