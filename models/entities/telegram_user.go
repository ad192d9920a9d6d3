package entities

type TelegramUser struct {
	ChatID int64 `gorm:"primaryKey"`
	Name   string
}
