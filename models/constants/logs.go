package constants

import "github.com/rs/zerolog"

const (
	LogFileName      = "fileName"
	LogRunID         = "runID"
	LogActorRunID    = "actorRunID"
	LogDatasetID     = "datasetID"
	LogHandle        = "handle"
	LogTweetID       = "tweetID"
	LogTweetNumber   = "tweetNumber"
	LogRecordNumber  = "recordNumber"
	LogAttempt       = "attempt"
	LogStatus        = "status"
	LogLevelFallback = zerolog.InfoLevel
)
