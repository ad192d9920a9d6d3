package profiles

import (
	"fmt"
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"
)

func New(db databases.SqlConnection) *Impl {
	return &Impl{db: db}
}

func (repo *Impl) GetProfiles() ([]entities.WatchedProfile, error) {
	var profiles []entities.WatchedProfile

	res := repo.db.GetDB().Order("handle").Find(&profiles)
	return profiles, res.Error
}

func (repo *Impl) Save(profile entities.WatchedProfile) error {
	if err := repo.db.GetDB().Save(&profile).Error; err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

func (repo *Impl) Delete(handle string) error {
	res := repo.db.GetDB().Delete(&entities.WatchedProfile{Handle: handle})
	if res.Error != nil {
		return fmt.Errorf("failed to delete profile: %w", res.Error)
	}

	return nil
}

func (repo *Impl) TouchLastScraped(handles []string, at time.Time) error {
	res := repo.db.GetDB().Model(&entities.WatchedProfile{}).
		Where("handle IN ?", handles).
		Update("last_scraped_at", at)

	return res.Error
}

func (repo *Impl) Count() int64 {
	count := new(int64)
	repo.db.GetDB().Model(&entities.WatchedProfile{}).Count(count)

	return *count
}
