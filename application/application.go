package application

import (
	"tweet-digest/models/constants"
	"tweet-digest/models/entities"
	profileRepo "tweet-digest/repositories/profiles"
	telegramRepo "tweet-digest/repositories/telegram"
	tweetRepo "tweet-digest/repositories/tweets"
	"tweet-digest/services/actor"
	"tweet-digest/services/health"
	"tweet-digest/services/ingestion"
	"tweet-digest/services/summary"
	"tweet-digest/services/telegram"
	"tweet-digest/services/web"
	databases "tweet-digest/utils/databases"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// New wires the full daemon: scheduler, ingestion, HTTP API and the
// optional Telegram bot. NewOnce covers the one-shot ingestion command.
func New() (*Impl, error) {
	app, scheduler, err := build(true)
	if err != nil {
		return nil, err
	}

	if _, errHealth := health.New(scheduler); errHealth != nil {
		return nil, errHealth
	}

	return app, nil
}

// NewOnce wires only what one pipeline pass needs; no cron jobs, no bot,
// no HTTP listener.
func NewOnce() (*Impl, error) {
	app, _, err := build(false)
	return app, err
}

func build(daemon bool) (*Impl, gocron.Scheduler, error) {
	db := databases.New()
	if errDB := db.Run(); errDB != nil {
		return nil, nil, errDB
	}

	errMigration := db.GetDB().AutoMigrate(&entities.Tweet{}, &entities.WatchedProfile{}, &entities.TelegramUser{})
	if errMigration != nil {
		return nil, nil, errMigration
	}

	// Repositories
	tweetsRepo := tweetRepo.New(db)
	profilesRepo := profileRepo.New(db)
	subscribersRepo := telegramRepo.New(db)

	var scheduler gocron.Scheduler
	if daemon {
		var errScheduler error
		scheduler, errScheduler = gocron.NewScheduler()
		if errScheduler != nil {
			return nil, nil, errScheduler
		}
	}

	ingestionService, errIngestion := ingestion.New(scheduler, actor.New(), tweetsRepo, profilesRepo, summary.New())
	if errIngestion != nil {
		return nil, nil, errIngestion
	}

	app := &Impl{
		scheduler:        scheduler,
		ingestionService: ingestionService,
		db:               db,
	}

	if daemon {
		webService := web.New(tweetsRepo, profilesRepo, db.IsConnected)
		ingestionService.RegisterObserver(webService)
		app.webService = webService

		telegramService, errTg := telegram.New(viper.GetString(constants.TelegramBotToken), subscribersRepo, tweetsRepo)
		if errTg != nil {
			log.Warn().Err(errTg).Msg("Telegram bot disabled")
		} else {
			ingestionService.RegisterObserver(telegramService)
			app.telegramService = telegramService
		}
	}

	return app, scheduler, nil
}

func (app *Impl) Run() {
	app.scheduler.Start()
	for _, job := range app.scheduler.Jobs() {
		scheduledTime, err := job.NextRun()
		if err == nil {
			log.Info().Msgf("%v scheduled at %v", job.Name(), scheduledTime)
		}
	}

	if viper.GetBool(constants.Production) {
		go func() {
			if _, err := app.ingestionService.RunOnce(); err != nil {
				log.Error().Err(err).Msg("Boot ingestion run failed")
			}
		}()
	}

	if app.telegramService != nil {
		go app.telegramService.ListenAndDispatch()
	}

	go func() {
		if err := app.webService.ListenAndServe(); err != nil {
			log.Error().Err(err).Msg("HTTP API stopped")
		}
	}()
}

// RunOnce executes a single ingestion pass and returns its outcome.
func (app *Impl) RunOnce() error {
	report, err := app.ingestionService.RunOnce()
	if err != nil {
		return err
	}

	log.Info().
		Str(constants.LogRunID, report.RunID).
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Int("summarized", report.Summarized).
		Msg("Ingestion completed")

	return nil
}

func (app *Impl) Shutdown() {
	if app.scheduler != nil {
		if err := app.scheduler.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Cannot shutdown scheduler, continuing...")
		}
	}
	app.db.Shutdown()
	log.Info().Msgf("Application is no longer running")
}
