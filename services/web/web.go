package web

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"tweet-digest/models/constants"
	"tweet-digest/models/entities"
	"tweet-digest/pkg/observer"
	profileRepo "tweet-digest/repositories/profiles"
	tweetRepo "tweet-digest/repositories/tweets"
	"tweet-digest/services/ingestion"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func New(tweets tweetRepo.Repository, profiles profileRepo.Repository, dbHealthy func() bool) *Impl {
	gin.SetMode(gin.ReleaseMode)

	service := &Impl{
		tweetRepo:   tweets,
		profileRepo: profiles,
		dbHealthy:   dbHealthy,
		cache:       cache.New(30*time.Second, time.Minute),
		port:        viper.GetInt(constants.HTTPPort),
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.GET("/health", service.health)
	api := engine.Group("/api")
	{
		api.GET("/tweets", service.listTweets)
		api.GET("/tweets/:id", service.getTweet)
		api.GET("/profiles", service.listProfiles)
		api.POST("/profiles", service.addProfile)
		api.DELETE("/profiles/:handle", service.deleteProfile)
	}

	service.engine = engine
	return service
}

func (service *Impl) Router() *gin.Engine {
	return service.engine
}

func (service *Impl) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", service.port)
	log.Info().Str("addr", addr).Msg("HTTP API listening")
	return service.engine.Run(addr)
}

// OnNotify drops the read cache after an ingestion run landed new tweets.
func (service *Impl) OnNotify(e observer.Event) {
	if e.E == observer.IngestionEvent {
		service.cache.Flush()
	}
}

func (service *Impl) health(c *gin.Context) {
	database := "up"
	status := http.StatusOK
	if !service.dbHealthy() {
		database = "down"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": "ok", "database": database})
}

func (service *Impl) listTweets(c *gin.Context) {
	handle := ingestion.NormalizeHandle(c.Query("handle"))
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	cacheKey := fmt.Sprintf("tweets:%s:%d", handle, limit)
	if cached, found := service.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	tweets, err := service.tweetRepo.List(tweetRepo.ListFilter{Handle: handle, Limit: limit})
	if err != nil {
		log.Error().Err(err).Msg("Cannot list tweets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tweets"})
		return
	}

	views := make([]tweetView, 0, len(tweets))
	for _, tweet := range tweets {
		views = append(views, toView(tweet))
	}

	payload := gin.H{"tweets": views, "count": len(views)}
	service.cache.Set(cacheKey, payload, cache.DefaultExpiration)
	c.JSON(http.StatusOK, payload)
}

func (service *Impl) getTweet(c *gin.Context) {
	tweet, err := service.tweetRepo.Get(c.Param("id"))
	if err != nil {
		log.Error().Err(err).Str(constants.LogTweetID, c.Param("id")).Msg("Cannot fetch tweet")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tweet"})
		return
	}
	if tweet == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tweet not found"})
		return
	}

	c.JSON(http.StatusOK, toView(*tweet))
}

func (service *Impl) listProfiles(c *gin.Context) {
	profiles, err := service.profileRepo.GetProfiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (service *Impl) addProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle is required"})
		return
	}

	handle := ingestion.NormalizeHandle(req.Handle)
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "handle is not usable"})
		return
	}

	profile := entities.WatchedProfile{Handle: handle, AddedAt: time.Now().UTC()}
	if err := service.profileRepo.Save(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profile"})
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (service *Impl) deleteProfile(c *gin.Context) {
	handle := ingestion.NormalizeHandle(c.Param("handle"))
	if err := service.profileRepo.Delete(handle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile"})
		return
	}

	c.Status(http.StatusNoContent)
}

func toView(tweet entities.Tweet) tweetView {
	return tweetView{
		ID:           tweet.ID,
		AuthorName:   tweet.AuthorName,
		AuthorHandle: tweet.AuthorHandle,
		Text:         tweet.Text,
		Lang:         tweet.Lang,
		Likes:        tweet.Likes,
		Replies:      tweet.Replies,
		Retweets:     tweet.Retweets,
		Quotes:       tweet.Quotes,
		PhotoURL:     tweet.PhotoURL,
		PermanentURL: tweet.PermanentURL,
		CreatedAt:    tweet.CreatedAt.UTC().Format(time.RFC3339),
		Age:          humanize.Time(tweet.CreatedAt),
		SummaryTitle: tweet.SummaryTitle,
		Summary:      tweet.Summary,
	}
}
