package entities

import "time"

type WatchedProfile struct {
	Handle        string    `gorm:"primaryKey"`
	AddedAt       time.Time `gorm:"not null; default:current_timestamp"`
	LastScrapedAt time.Time
}
