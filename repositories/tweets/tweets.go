package tweets

import (
	"errors"
	"fmt"
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"

	"gorm.io/gorm"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

// SaveOrUpdate upserts a single tweet keyed by its id. The boolean is true
// when a new row was created. Each call is one committed statement, so a
// crash mid-batch leaves earlier rows intact.
func (repo *Impl) SaveOrUpdate(tweet entities.Tweet) (bool, error) {
	var existing entities.Tweet

	result := repo.db.GetDB().Where("id = ?", tweet.ID).First(&existing)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := repo.db.GetDB().Create(&tweet).Error; err != nil {
				return false, fmt.Errorf("failed to create tweet: %w", err)
			}
			return true, nil
		}
		return false, fmt.Errorf("failed to check tweet existence: %w", result.Error)
	}

	// Updates with a struct skips zero fields, so an existing summary
	// survives a re-ingestion of the same tweet.
	if err := repo.db.GetDB().Model(&existing).Updates(tweet).Error; err != nil {
		return false, fmt.Errorf("failed to update tweet: %w", err)
	}

	return false, nil
}

func (repo *Impl) SaveOrUpdateBatch(tweets []entities.Tweet) (int, int, error) {
	var inserted, updated int

	for _, tweet := range tweets {
		created, err := repo.SaveOrUpdate(tweet)
		if err != nil {
			return inserted, updated, err
		}
		if created {
			inserted++
		} else {
			updated++
		}
	}

	return inserted, updated, nil
}

// Get returns nil without error when the id is unknown.
func (repo *Impl) Get(id string) (*entities.Tweet, error) {
	var tweet entities.Tweet

	result := repo.db.GetDB().Where("id = ?", id).First(&tweet)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch tweet: %w", result.Error)
	}

	return &tweet, nil
}

func (repo *Impl) List(filter ListFilter) ([]entities.Tweet, error) {
	var tweets []entities.Tweet

	query := repo.db.GetDB().Order("created_at DESC")
	if filter.Handle != "" {
		query = query.Where("author_handle = ?", filter.Handle)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	res := query.Find(&tweets)
	return tweets, res.Error
}

func (repo *Impl) GetTweetsBetween(start time.Time, end time.Time) ([]entities.Tweet, error) {
	var tweets []entities.Tweet

	res := repo.db.GetDB().
		Where("created_at >= ?", start).
		Where("created_at < ?", end).
		Order("created_at DESC").
		Find(&tweets)

	return tweets, res.Error
}

func (repo *Impl) AttachSummary(id string, title string, summary string) error {
	res := repo.db.GetDB().Model(&entities.Tweet{}).
		Where("id = ?", id).
		Updates(map[string]any{"summary_title": title, "summary": summary})
	if res.Error != nil {
		return fmt.Errorf("failed to attach summary: %w", res.Error)
	}

	return nil
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.Tweet{}).Count(count)

	return *count
}
