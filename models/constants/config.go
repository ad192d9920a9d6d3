package constants

import (
	"time"

	"github.com/rs/zerolog"
)

const (
	ConfigFileName = ".env"

	//nolint:gosec // False positive.
	// API token for the hosted scraping actor service.
	ActorAPIToken = "ACTOR_API_TOKEN"

	// Actor identifier invoked for each scrape run.
	ActorID = "ACTOR_ID"

	// Base URL of the actor service API.
	ActorBaseURL = "ACTOR_BASE_URL"

	// Maximum number of records requested per run.
	MaxItems = "MAX_ITEMS"

	// Look-back window in days for each scrape run.
	SinceDays = "SINCE_DAYS"

	// Extra query appended to every search term.
	ExtraQuery = "EXTRA_QUERY"

	// Interval between two run status polls. Duration type.
	PollInterval = "POLL_INTERVAL"

	// Maximum time to wait for a run to finish. Duration type.
	RunTimeout = "RUN_TIMEOUT"

	// Number of run submission attempts; each attempt consumes paid credits.
	SubmitRetries = "SUBMIT_RETRIES"

	//nolint:gosec // False positive.
	// Optional OpenAI key; summaries are skipped when empty.
	OpenAIAPIKey = "OPENAI_API_KEY"

	// Chat model used for summaries.
	OpenAIModel = "OPENAI_MODEL"

	// Language summaries are written in.
	SummaryLanguage = "SUMMARY_LANGUAGE"

	// TELEGRAM BOT
	TelegramBotToken = "TELEGRAM_BOT_TOKEN"

	// SQLITE_URL URL.
	SqliteURL = "SQLITE_URL"

	// Zerolog values from [trace, debug, info, warn, error, fatal, panic].
	LogLevel = "LOG_LEVEL"

	// HTTP API port.
	HTTPPort = "HTTP_PORT"

	// Boolean; triggers an ingestion run at boot in serve mode.
	Production = "PRODUCTION"

	// Cron tab to scrape.
	ScrapeCronTab = "SCRAPE_CRON_TAB"

	// Cron tab to health.
	HealthCronTab = "HEALTH_CRON_TAB"

	defaultActorAPIToken   = ""
	defaultActorID         = "apidojo~tweet-scraper"
	defaultActorBaseURL    = "https://api.apify.com"
	defaultMaxItems        = 250
	defaultSinceDays       = 7
	defaultExtraQuery      = ""
	defaultPollInterval    = 5 * time.Second
	defaultRunTimeout      = 5 * time.Minute
	defaultSubmitRetries   = 3
	defaultOpenAIAPIKey    = ""
	defaultOpenAIModel     = "gpt-4-turbo"
	defaultSummaryLanguage = "English"
	defaultTelegramToken   = ""
	defaultSqliteURL       = "tweet-digest.db"
	defaultHTTPPort        = 8080
	defaultScrapeCronTab   = "*/30 * * * *"
	defaultHealthCronTab   = "* * * * *"
	defaultLogLevel        = zerolog.InfoLevel
	defaultProduction      = false
)

func GetDefaultConfigValues() map[string]any {
	return map[string]any{
		ActorAPIToken:    defaultActorAPIToken,
		ActorID:          defaultActorID,
		ActorBaseURL:     defaultActorBaseURL,
		MaxItems:         defaultMaxItems,
		SinceDays:        defaultSinceDays,
		ExtraQuery:       defaultExtraQuery,
		PollInterval:     defaultPollInterval,
		RunTimeout:       defaultRunTimeout,
		SubmitRetries:    defaultSubmitRetries,
		OpenAIAPIKey:     defaultOpenAIAPIKey,
		OpenAIModel:      defaultOpenAIModel,
		SummaryLanguage:  defaultSummaryLanguage,
		TelegramBotToken: defaultTelegramToken,
		SqliteURL:        defaultSqliteURL,
		LogLevel:         defaultLogLevel.String(),
		HTTPPort:         defaultHTTPPort,
		Production:       defaultProduction,
		ScrapeCronTab:    defaultScrapeCronTab,
		HealthCronTab:    defaultHealthCronTab,
	}
}
