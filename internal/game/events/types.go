package events

import (
	"time"
)

// Event is something that happened in a battle. Renderers, panels and logs
// read the battle only through these.
type Event interface {
	// Type is the dotted event name, e.g. "unit.moved"
	Type() string
	Timestamp() time.Time
	// BattleID ties the event to the battle that published it
	BattleID() string
}

// BaseEvent carries the fields every battle event shares. Concrete events
// embed it.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Battle    string    `json:"battle_id"`
}

func newBase(eventType, battleID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Battle: battleID}
}

func (e BaseEvent) Type() string { return e.EventType }

func (e BaseEvent) Timestamp() time.Time { return e.Time }

func (e BaseEvent) BattleID() string { return e.Battle }

// EventHandler receives events of the single type it was registered for
type EventHandler func(Event)

// Subscriber is a display sink such as the HP/AP panel or the event log.
// It runs on the battle's goroutine and must not call back into the battle.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	// InterestedIn filters by event type before HandleEvent is called
	InterestedIn(eventType string) bool
}

// Publisher is the battle's side of the bus
type Publisher interface {
	Publish(Event)
}

// Bus is the publisher plus subscription management used by clients
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
