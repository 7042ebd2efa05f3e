package model

import "github.com/alexanderramin/estimator/internal/domain"

type EventKind string

const (
	EventStateChanged   EventKind = "state_changed"
	EventWorkDayCreated EventKind = "workday_created"
)

// Event is published to subscribers after a lifecycle transition or when a
// work day is logged.
type Event struct {
	Kind    EventKind
	From    State
	To      State
	WorkDay domain.WorkDay
}

// Subscribe registers fn to receive every event. Handlers run synchronously
// on the caller's goroutine and must not block.
func (m *Model) Subscribe(fn func(Event)) {
	if fn != nil {
		m.subscribers = append(m.subscribers, fn)
	}
}

func (m *Model) publish(e Event) {
	for _, fn := range m.subscribers {
		fn(e)
	}
}
