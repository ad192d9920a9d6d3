package profiles

import (
	"testing"
	"time"

	"tweet-digest/models/entities"
	"tweet-digest/utils/databases"

	"github.com/go-playground/assert/v2"
)

func newTestRepo(t *testing.T) *Impl {
	t.Helper()

	db := databases.NewFromDSN(databases.InMemoryDSN)
	if err := db.Run(); err != nil {
		t.Fatalf("cannot open in-memory database: %v", err)
	}
	t.Cleanup(db.Shutdown)

	if err := db.GetDB().AutoMigrate(&entities.WatchedProfile{}); err != nil {
		t.Fatalf("cannot migrate: %v", err)
	}

	return New(db)
}

func TestSaveDeleteAndList(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Save(entities.WatchedProfile{Handle: "bob", AddedAt: time.Now().UTC()})
	assert.Equal(t, nil, err)
	err = repo.Save(entities.WatchedProfile{Handle: "alice", AddedAt: time.Now().UTC()})
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(2), repo.Count())

	profiles, err := repo.GetProfiles()
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(profiles))
	assert.Equal(t, "alice", profiles[0].Handle)

	err = repo.Delete("alice")
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(1), repo.Count())
}

func TestTouchLastScraped(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.Save(entities.WatchedProfile{Handle: "alice", AddedAt: time.Now().UTC()})
	assert.Equal(t, nil, err)

	at := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	err = repo.TouchLastScraped([]string{"alice"}, at)
	assert.Equal(t, nil, err)

	profiles, err := repo.GetProfiles()
	assert.Equal(t, nil, err)
	assert.Equal(t, at, profiles[0].LastScrapedAt.UTC())
}
