package tweets

import (
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"
)

// ListFilter narrows List results; zero values mean "no constraint".
type ListFilter struct {
	Handle string
	Limit  int
}

type Repository interface {
	SaveOrUpdate(tweet entities.Tweet) (bool, error)
	SaveOrUpdateBatch(tweets []entities.Tweet) (int, int, error)
	Get(id string) (*entities.Tweet, error)
	List(filter ListFilter) ([]entities.Tweet, error)
	GetTweetsBetween(start time.Time, end time.Time) ([]entities.Tweet, error)
	AttachSummary(id string, title string, summary string) error
	Count() int64
}

type Impl struct {
	db databases.SqlConnection
}
