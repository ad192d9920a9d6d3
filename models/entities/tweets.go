package entities

import "time"

type Tweet struct {
	ID           string `gorm:"primaryKey"`
	AuthorName   string
	AuthorHandle string `gorm:"index"`
	Text         string
	Lang         string
	Likes        int
	Replies      int
	Retweets     int
	Quotes       int
	PhotoURL     string
	PermanentURL string
	CreatedAt    time.Time `gorm:"index"`
	FetchedAt    time.Time
	IngestRunID  string
	SummaryTitle string
	Summary      string
}
