package profiles

import (
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"
)

type Repository interface {
	GetProfiles() ([]entities.WatchedProfile, error)
	Save(profile entities.WatchedProfile) error
	Delete(handle string) error
	TouchLastScraped(handles []string, at time.Time) error
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
