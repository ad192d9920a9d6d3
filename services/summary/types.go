package summary

import (
	"errors"

	"tweet-digest/models/entities"

	"github.com/openai/openai-go"
)

var (
	ErrQuotaExceeded      = errors.New("summary quota exceeded")
	ErrServiceUnavailable = errors.New("summary service is unreachable")
	ErrEmptyResponse      = errors.New("summary service returned no content")
)

// Result carries the short title parsed off the summary body.
type Result struct {
	Title   string
	Summary string
}

type Service interface {
	Enabled() bool
	Summarize(tweet entities.Tweet) (Result, error)
}

type Impl struct {
	client   *openai.Client
	model    string
	language string
	enabled  bool
}
