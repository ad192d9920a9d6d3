package ingestion

import (
	"errors"

	"tweet-digest/pkg/observer"
	profileRepo "tweet-digest/repositories/profiles"
	tweetRepo "tweet-digest/repositories/tweets"
	"tweet-digest/services/actor"
	"tweet-digest/services/summary"
)

var (
	ErrMissingToken = errors.New("actor API token is missing")
	ErrNoProfiles   = errors.New("no watched profiles configured")
)

// Stats counts the records a batch dropped, per reason.
type Stats struct {
	Demo        int
	NonTweet    int
	Malformed   int
	OutOfWindow int
}

func (s Stats) Skipped() int {
	return s.Demo + s.NonTweet + s.Malformed + s.OutOfWindow
}

// Report sums up one pipeline run.
type Report struct {
	RunID      string
	Fetched    int
	Inserted   int
	Updated    int
	Summarized int
	Stats      Stats
}

type Service interface {
	RegisterObserver(o observer.Observer)
	RunOnce() (Report, error)
}

type Impl struct {
	client      actor.Service
	tweetRepo   tweetRepo.Repository
	profileRepo profileRepo.Repository
	summarizer  summary.Service
	maxItems    int
	sinceDays   int
	extraQuery  string
	observers   map[observer.Observer]struct{}
}
