package telegram

import (
	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"
)

type Repository interface {
	SaveOrUpdate(user entities.TelegramUser) error
	Delete(user entities.TelegramUser) error
	FetchAll() ([]entities.TelegramUser, error)
}

type Impl struct {
	db databases.SqlConnection
}
