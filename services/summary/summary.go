package summary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"tweet-digest/models/constants"
	"tweet-digest/models/entities"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const titleMarker = "Post Title:"

// New builds the summarizer. Without an API key the service stays disabled
// and ingestion simply stores tweets without summaries.
func New() *Impl {
	apiKey := viper.GetString(constants.OpenAIAPIKey)
	if apiKey == "" {
		log.Info().Msg("No OpenAI API key configured, summaries disabled")
		return &Impl{}
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Impl{
		client:   &client,
		model:    viper.GetString(constants.OpenAIModel),
		language: viper.GetString(constants.SummaryLanguage),
		enabled:  true,
	}
}

func (service *Impl) Enabled() bool {
	return service.enabled
}

func (service *Impl) Summarize(tweet entities.Tweet) (Result, error) {
	if !service.enabled {
		return Result{}, ErrServiceUnavailable
	}

	resp, err := service.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: openai.ChatModel(service.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a helpful assistant."),
			openai.UserMessage(service.buildPrompt(tweet)),
		},
	})
	if err != nil {
		return Result{}, mapAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return Result{}, ErrEmptyResponse
	}

	return parseResponse(resp.Choices[0].Message.Content), nil
}

func (service *Impl) buildPrompt(tweet entities.Tweet) string {
	author := tweet.AuthorName
	if author == "" {
		author = "Unknown"
	}

	prompt := "Below is a tweet in its original language. "
	prompt += fmt.Sprintf("Please translate and adjust it so that it is readable in %s. ", service.language)
	prompt += fmt.Sprintf("Start by saying: 'In the latest tweet from (%s)...'. ", author)
	prompt += "Then provide a summary in two paragraphs or less, explaining the context or importance of the tweet, "
	prompt += fmt.Sprintf("and finally repeat the original tweet as is. Please do it in %s. ", service.language)
	prompt += fmt.Sprintf("At the end, on a new line, output the short title in the format: '%s [Title]'.\n\n", titleMarker)
	prompt += fmt.Sprintf("Original Tweet: %s", tweet.Text)

	return prompt
}

// parseResponse splits the title line off the summary body. Responses
// without the marker keep the full text as summary under a default title.
func parseResponse(content string) Result {
	content = strings.TrimSpace(content)

	if idx := strings.LastIndex(content, titleMarker); idx >= 0 {
		return Result{
			Title:   strings.TrimSpace(content[idx+len(titleMarker):]),
			Summary: strings.TrimSpace(content[:idx]),
		}
	}

	return Result{Title: "Untitled", Summary: content}
}

func mapAPIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode == http.StatusPaymentRequired {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Error())
		}
	}

	return fmt.Errorf("%w: %s", ErrServiceUnavailable, err.Error())
}
