package event

import (
	"time"

	"github.com/gofrs/uuid"
)

// Event is a message on the bus. Data holds one of the payload types of the publisher.
type Event struct {
	ID         string
	OccurredAt time.Time
	Topics     []string
	Data       any
}

func (e Event) hasTopic(topic string) bool {
	for _, t := range e.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

type Handler interface {
	Handle(Event)
}

type HandlerFunc func(Event)

func (fn HandlerFunc) Handle(e Event) {
	fn(e)
}

func New(data any, topics ...string) Event {
	return Event{
		ID:         uuid.Must(uuid.NewV4()).String(),
		OccurredAt: time.Now(),
		Topics:     topics,
		Data:       data,
	}
}
