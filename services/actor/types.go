package actor

import (
	"errors"
	"net/http"
	"time"
)

const (
	submitEndpointFormat  = "%s/v2/acts/%s/runs?token=%s"
	statusEndpointFormat  = "%s/v2/actor-runs/%s?token=%s"
	datasetEndpointFormat = "%s/v2/datasets/%s/items?token=%s&clean=true&format=json&offset=%d&limit=%d"

	clientHTTPTimeout = 30 * time.Second
	datasetPageSize   = 1000
	backoffBase       = 2 * time.Second

	statusSucceeded = "SUCCEEDED"
	statusFailed    = "FAILED"
	statusAborted   = "ABORTED"
	statusTimedOut  = "TIMED-OUT"
)

var (
	ErrAuthentication     = errors.New("actor service rejected the API token")
	ErrServiceUnavailable = errors.New("actor service is unreachable")
	ErrRunTimeout         = errors.New("actor run did not complete in time")
	ErrRunFailed          = errors.New("actor run finished unsuccessfully")
)

// ScrapeRequest is immutable once submitted.
type ScrapeRequest struct {
	SearchTerms []string
	MaxItems    int
	Sort        string
	RequestedAt time.Time
}

// RunHandle identifies one remote execution of the actor.
type RunHandle struct {
	RunID     string
	DatasetID string
}

// RawRecord is an opaque actor dataset item; its schema belongs to the
// external service.
type RawRecord map[string]any

type Service interface {
	SubmitRun(request ScrapeRequest) (RunHandle, error)
	AwaitResult(handle RunHandle) ([]RawRecord, error)
}

type Impl struct {
	baseURL       string
	token         string
	actorID       string
	client        *http.Client
	pollInterval  time.Duration
	runTimeout    time.Duration
	submitRetries int
	backoff       time.Duration
}

type runInput struct {
	SearchTerms []string `json:"searchTerms"`
	MaxItems    int      `json:"maxItems"`
	Sort        string   `json:"sort,omitempty"`
}

type runResponse struct {
	Data runData `json:"data"`
}

type runData struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}
