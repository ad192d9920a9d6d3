package actor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tweet-digest/models/constants"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New() *Impl {
	return &Impl{
		baseURL:       viper.GetString(constants.ActorBaseURL),
		token:         viper.GetString(constants.ActorAPIToken),
		actorID:       viper.GetString(constants.ActorID),
		client:        &http.Client{Timeout: clientHTTPTimeout},
		pollInterval:  viper.GetDuration(constants.PollInterval),
		runTimeout:    viper.GetDuration(constants.RunTimeout),
		submitRetries: viper.GetInt(constants.SubmitRetries),
		backoff:       backoffBase,
	}
}

// SubmitRun starts one actor run. Attempts are bounded because every
// submission consumes paid credits; only unreachable-service failures are
// retried, a rejected token never is.
func (service *Impl) SubmitRun(request ScrapeRequest) (RunHandle, error) {
	input := runInput{
		SearchTerms: request.SearchTerms,
		MaxItems:    request.MaxItems,
		Sort:        request.Sort,
	}

	body, err := json.Marshal(input)
	if err != nil {
		return RunHandle{}, fmt.Errorf("failed to marshal run input: %w", err)
	}

	attempts := service.submitRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(service.backoff * time.Duration(1<<(attempt-2)))
		}

		handle, errSubmit := service.submitOnce(body)
		if errSubmit == nil {
			return handle, nil
		}
		if errSubmit == ErrAuthentication {
			return RunHandle{}, errSubmit
		}

		log.Warn().Err(errSubmit).
			Int(constants.LogAttempt, attempt).
			Msg("Run submission failed")
		lastErr = errSubmit
	}

	return RunHandle{}, lastErr
}

func (service *Impl) submitOnce(body []byte) (RunHandle, error) {
	endpoint := fmt.Sprintf(submitEndpointFormat, service.baseURL, service.actorID, url.QueryEscape(service.token))

	resp, err := service.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return RunHandle{}, ErrServiceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return RunHandle{}, ErrAuthentication
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return RunHandle{}, ErrServiceUnavailable
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return RunHandle{}, fmt.Errorf("unexpected status %d on run submission", resp.StatusCode)
	}

	var run runResponse
	if errDecode := json.NewDecoder(resp.Body).Decode(&run); errDecode != nil {
		return RunHandle{}, fmt.Errorf("failed to decode run response: %w", errDecode)
	}
	if run.Data.ID == "" || run.Data.DefaultDatasetID == "" {
		return RunHandle{}, fmt.Errorf("run response misses id or dataset id")
	}

	log.Info().
		Str(constants.LogActorRunID, run.Data.ID).
		Str(constants.LogDatasetID, run.Data.DefaultDatasetID).
		Msg("Actor run submitted")

	return RunHandle{RunID: run.Data.ID, DatasetID: run.Data.DefaultDatasetID}, nil
}

// AwaitResult polls the run until it reaches a terminal status, then
// downloads the dataset. Past the configured deadline the poll stops with
// ErrRunTimeout; the remote run keeps going and is treated as abandoned.
func (service *Impl) AwaitResult(handle RunHandle) ([]RawRecord, error) {
	deadline := time.Now().Add(service.runTimeout)

	for {
		status, err := service.fetchRunStatus(handle.RunID)
		if err != nil && err != ErrServiceUnavailable {
			return nil, err
		}
		if err == nil {
			switch status {
			case statusSucceeded:
				return service.fetchDatasetItems(handle.DatasetID)
			case statusFailed, statusAborted, statusTimedOut:
				return nil, fmt.Errorf("%w: status %s", ErrRunFailed, status)
			}

			log.Debug().
				Str(constants.LogActorRunID, handle.RunID).
				Str(constants.LogStatus, status).
				Msg("Actor run still in progress")
		}

		if time.Now().Add(service.pollInterval).After(deadline) {
			return nil, ErrRunTimeout
		}
		time.Sleep(service.pollInterval)
	}
}

func (service *Impl) fetchRunStatus(runID string) (string, error) {
	endpoint := fmt.Sprintf(statusEndpointFormat, service.baseURL, runID, url.QueryEscape(service.token))

	resp, err := service.client.Get(endpoint)
	if err != nil {
		return "", ErrServiceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", ErrAuthentication
	}
	if resp.StatusCode != http.StatusOK {
		return "", ErrServiceUnavailable
	}

	var run runResponse
	if errDecode := json.NewDecoder(resp.Body).Decode(&run); errDecode != nil {
		return "", fmt.Errorf("failed to decode run status: %w", errDecode)
	}

	return run.Data.Status, nil
}

func (service *Impl) fetchDatasetItems(datasetID string) ([]RawRecord, error) {
	var items []RawRecord

	for offset := 0; ; offset += datasetPageSize {
		endpoint := fmt.Sprintf(datasetEndpointFormat, service.baseURL, datasetID, url.QueryEscape(service.token), offset, datasetPageSize)

		resp, err := service.client.Get(endpoint)
		if err != nil {
			return nil, ErrServiceUnavailable
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d on dataset fetch", resp.StatusCode)
		}

		var page []RawRecord
		errDecode := json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if errDecode != nil {
			return nil, fmt.Errorf("failed to decode dataset page: %w", errDecode)
		}

		items = append(items, page...)
		if len(page) < datasetPageSize {
			break
		}
	}

	log.Info().
		Str(constants.LogDatasetID, datasetID).
		Int(constants.LogRecordNumber, len(items)).
		Msg("Dataset downloaded")

	return items, nil
}
