package telegram

import (
	"fmt"

	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) SaveOrUpdate(user entities.TelegramUser) error {
	if err := repo.db.GetDB().Save(&user).Error; err != nil {
		return fmt.Errorf("failed to save telegram user: %w", err)
	}

	return nil
}

func (repo *Impl) Delete(user entities.TelegramUser) error {
	if err := repo.db.GetDB().Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete telegram user: %w", err)
	}

	return nil
}

func (repo *Impl) FetchAll() ([]entities.TelegramUser, error) {
	var users []entities.TelegramUser

	res := repo.db.GetDB().Find(&users)
	return users, res.Error
}
