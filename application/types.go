package application

import (
	"tweet-digest/services/ingestion"
	"tweet-digest/services/telegram"
	"tweet-digest/services/web"
	"tweet-digest/utils/databases"

	"github.com/go-co-op/gocron/v2"
)

type Application interface {
	Run()
	RunOnce() error
	Shutdown()
}

type Impl struct {
	scheduler        gocron.Scheduler
	ingestionService ingestion.Service
	telegramService  telegram.Service
	webService       web.Service
	db               databases.SqlConnection
}
