package observer

import "tweet-digest/models/entities"

type EventType int

const (
	IngestionEvent EventType = 1
)

type Event struct {
	E      EventType
	Tweets []entities.Tweet
}

func NewIngestionEvent(tweets []entities.Tweet) Event {
	return Event{E: IngestionEvent, Tweets: tweets}
}

type Observer interface {
	OnNotify(Event)
}

type Notifier interface {
	Register(Observer)
	Notify(Event)
}
