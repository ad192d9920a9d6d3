package ingestion

import (
	"fmt"
	"time"

	"tweet-digest/models/constants"
	"tweet-digest/models/entities"
	"tweet-digest/pkg/observer"
	profileRepo "tweet-digest/repositories/profiles"
	tweetRepo "tweet-digest/repositories/tweets"
	"tweet-digest/services/actor"
	"tweet-digest/services/summary"
	"tweet-digest/utils/dates"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// New wires the pipeline. The actor token is validated here so a missing
// secret fails before any network call. A nil scheduler skips the cron
// registration (one-shot mode).
func New(scheduler gocron.Scheduler,
	client actor.Service,
	tweets tweetRepo.Repository,
	profiles profileRepo.Repository,
	summarizer summary.Service) (*Impl, error) {

	if viper.GetString(constants.ActorAPIToken) == "" {
		return nil, ErrMissingToken
	}

	service := &Impl{
		client:      client,
		tweetRepo:   tweets,
		profileRepo: profiles,
		summarizer:  summarizer,
		maxItems:    viper.GetInt(constants.MaxItems),
		sinceDays:   viper.GetInt(constants.SinceDays),
		extraQuery:  viper.GetString(constants.ExtraQuery),
		observers:   map[observer.Observer]struct{}{},
	}

	if scheduler != nil {
		_, errJob := scheduler.NewJob(
			gocron.CronJob(viper.GetString(constants.ScrapeCronTab), true),
			gocron.NewTask(func() {
				if _, err := service.RunOnce(); err != nil {
					log.Error().Err(err).Msg("Scheduled ingestion run failed")
				}
			}),
			gocron.WithName("Ingest watched profiles"),
		)
		if errJob != nil {
			return nil, errJob
		}
	}

	return service, nil
}

func (service *Impl) RegisterObserver(o observer.Observer) {
	service.observers[o] = struct{}{}
}

func (service *Impl) notify(e observer.Event) {
	for o := range service.observers {
		o.OnNotify(e)
	}
}

// RunOnce drives one full pipeline pass: submit, await, normalize, upsert,
// summarize. Actor failures abort the run; everything per-record is
// isolated.
func (service *Impl) RunOnce() (Report, error) {
	report := Report{RunID: uuid.NewString()}
	logger := log.With().Str(constants.LogRunID, report.RunID).Logger()

	profiles, err := service.profileRepo.GetProfiles()
	if err != nil {
		return report, fmt.Errorf("failed to load watched profiles: %w", err)
	}
	if len(profiles) == 0 {
		logger.Warn().Msg("Watchlist is empty, nothing to ingest")
		return report, ErrNoProfiles
	}

	handles := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		handles = append(handles, profile.Handle)
	}

	window := dates.ScrapeWindow(service.sinceDays)
	request := actor.ScrapeRequest{
		SearchTerms: buildSearchTerms(handles, window, service.extraQuery),
		MaxItems:    service.maxItems,
		Sort:        "Latest",
		RequestedAt: time.Now().UTC(),
	}

	logger.Info().Int("terms", len(request.SearchTerms)).Msg("Submitting actor run")

	handle, err := service.client.SubmitRun(request)
	if err != nil {
		return report, fmt.Errorf("run submission failed: %w", err)
	}

	records, err := service.client.AwaitResult(handle)
	if err != nil {
		return report, fmt.Errorf("run did not produce a dataset: %w", err)
	}
	report.Fetched = len(records)

	tweets, stats := Normalize(records, window)
	report.Stats = stats
	stamp(tweets, report.RunID, time.Now().UTC())

	inserted := make([]entities.Tweet, 0, len(tweets))
	for _, tweet := range tweets {
		created, errSave := service.tweetRepo.SaveOrUpdate(tweet)
		if errSave != nil {
			logger.Error().Err(errSave).Str(constants.LogTweetID, tweet.ID).Msg("Cannot store tweet, skipped")
			continue
		}
		if created {
			report.Inserted++
			inserted = append(inserted, tweet)
		} else {
			report.Updated++
		}
	}

	report.Summarized = service.summarizeAll(logger, inserted)

	if errTouch := service.profileRepo.TouchLastScraped(handles, time.Now().UTC()); errTouch != nil {
		logger.Error().Err(errTouch).Msg("Cannot update profile scrape times")
	}

	logger.Info().
		Int("fetched", report.Fetched).
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Int("skipped", stats.Skipped()).
		Int("summarized", report.Summarized).
		Msg("Ingestion run finished")

	if len(inserted) > 0 {
		service.notify(observer.NewIngestionEvent(inserted))
	}

	return report, nil
}

// summarizeAll attaches summaries to freshly inserted tweets. A failing
// summary never blocks the rest of the batch.
func (service *Impl) summarizeAll(logger zerolog.Logger, tweets []entities.Tweet) int {
	if !service.summarizer.Enabled() || len(tweets) == 0 {
		return 0
	}

	summarized := 0
	for _, tweet := range tweets {
		result, err := service.summarizer.Summarize(tweet)
		if err != nil {
			logger.Warn().Err(err).Str(constants.LogTweetID, tweet.ID).Msg("Summary failed, tweet kept without one")
			continue
		}

		if errAttach := service.tweetRepo.AttachSummary(tweet.ID, result.Title, result.Summary); errAttach != nil {
			logger.Error().Err(errAttach).Str(constants.LogTweetID, tweet.ID).Msg("Cannot attach summary")
			continue
		}
		summarized++
	}

	return summarized
}
