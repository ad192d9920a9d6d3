package web

import (
	profileRepo "tweet-digest/repositories/profiles"
	tweetRepo "tweet-digest/repositories/tweets"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type Service interface {
	Router() *gin.Engine
	ListenAndServe() error
}

type Impl struct {
	engine      *gin.Engine
	tweetRepo   tweetRepo.Repository
	profileRepo profileRepo.Repository
	dbHealthy   func() bool
	cache       *cache.Cache
	port        int
}

type tweetView struct {
	ID           string `json:"id"`
	AuthorName   string `json:"authorName"`
	AuthorHandle string `json:"authorHandle"`
	Text         string `json:"text"`
	Lang         string `json:"lang,omitempty"`
	Likes        int    `json:"likes"`
	Replies      int    `json:"replies"`
	Retweets     int    `json:"retweets"`
	Quotes       int    `json:"quotes"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	PermanentURL string `json:"permanentUrl,omitempty"`
	CreatedAt    string `json:"createdAt"`
	Age          string `json:"age"`
	SummaryTitle string `json:"summaryTitle,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

type profileRequest struct {
	Handle string `json:"handle" binding:"required"`
}
