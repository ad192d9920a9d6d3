package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tweet-digest/models/entities"
	profileRepo "tweet-digest/repositories/profiles"
	tweetRepo "tweet-digest/repositories/tweets"
	"tweet-digest/utils/databases"

	"github.com/go-playground/assert/v2"
)

func newTestService(t *testing.T) (*Impl, tweetRepo.Repository, profileRepo.Repository) {
	t.Helper()

	db := databases.NewFromDSN(databases.InMemoryDSN)
	if err := db.Run(); err != nil {
		t.Fatalf("cannot open in-memory database: %v", err)
	}
	t.Cleanup(db.Shutdown)

	if err := db.GetDB().AutoMigrate(&entities.Tweet{}, &entities.WatchedProfile{}); err != nil {
		t.Fatalf("cannot migrate: %v", err)
	}

	tweets := tweetRepo.New(db)
	profiles := profileRepo.New(db)
	service := New(tweets, profiles, db.IsConnected)

	return service, tweets, profiles
}

func seedTweet(t *testing.T, tweets tweetRepo.Repository, id string, handle string) {
	t.Helper()

	_, err := tweets.SaveOrUpdate(entities.Tweet{
		ID:           id,
		AuthorHandle: handle,
		AuthorName:   handle,
		Text:         "hello from " + handle,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("cannot seed tweet: %v", err)
	}
}

func TestHealthEndpoint(t *testing.T) {
	service, _, _ := newTestService(t)

	rec := httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, "up", body["database"])
}

func TestListTweets(t *testing.T) {
	service, tweets, _ := newTestService(t)
	seedTweet(t, tweets, "t1", "alice")
	seedTweet(t, tweets, "t2", "bob")

	rec := httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tweets", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tweets []tweetView `json:"tweets"`
		Count  int         `json:"count"`
	}
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, 2, body.Count)

	rec = httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tweets?handle=alice", nil))
	json.Unmarshal(rec.Body.Bytes(), &body)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "t1", body.Tweets[0].ID)
	assert.NotEqual(t, "", body.Tweets[0].Age)
}

func TestGetTweetNotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	rec := httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tweets/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfileLifecycle(t *testing.T) {
	service, _, profiles := newTestService(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"handle":"@alice"}`))
	req.Header.Set("Content-Type", "application/json")
	service.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	stored, err := profiles.GetProfiles()
	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(stored))
	// Handle is normalized before storage.
	assert.Equal(t, "alice", stored[0].Handle)

	rec = httptest.NewRecorder()
	service.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/profiles/alice", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(0), profiles.Count())
}

func TestAddProfileRejectsUnusableHandle(t *testing.T) {
	service, _, _ := newTestService(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/profiles", strings.NewReader(`{"handle":"https://twitter.com/"}`))
	req.Header.Set("Content-Type", "application/json")
	service.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
