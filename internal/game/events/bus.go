package events

import (
	"sort"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// EventBus is a synchronous event bus implementation. Subscribers run on
// the publisher's call stack in subscription order.
type EventBus struct {
	subscribers  map[string]Subscriber
	order        []string
	funcHandlers map[string][]EventHandler
	mu           sync.RWMutex
	logger       zerolog.Logger
}

// NewEventBus creates a new event bus instance
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]EventHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber to the event bus. Subscribing again with
// the same ID replaces the earlier subscriber in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, exists := eb.subscribers[subscriber.ID()]; !exists {
		eb.order = append(eb.order, subscriber.ID())
	}
	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
	for i, id := range eb.order {
		if id == subscriberID {
			eb.order = append(eb.order[:i], eb.order[i+1:]...)
			break
		}
	}
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for specific event types
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], handler)

	handlerID := eventType + "_func_" + strconv.Itoa(len(eb.funcHandlers[eventType]))
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// Publish sends an event to all interested subscribers synchronously. A
// panicking subscriber is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	subs := make([]Subscriber, 0, len(eb.order))
	for _, id := range eb.order {
		subs = append(subs, eb.subscribers[id])
	}
	handlers := append([]EventHandler(nil), eb.funcHandlers[event.Type()]...)
	eb.mu.RUnlock()

	eventType := event.Type()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("battle_id", event.BattleID()).
		Msg("Publishing event")

	for _, subscriber := range subs {
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.deliver(eventType, func() { subscriber.HandleEvent(event) }, func(e *zerolog.Event) {
			e.Str("subscriber_id", subscriber.ID())
		})
	}

	for i, handler := range handlers {
		eb.deliver(eventType, func() { handler(event) }, func(e *zerolog.Event) {
			e.Int("handler_index", i)
		})
	}
}

func (eb *EventBus) deliver(eventType string, fn func(), annotate func(*zerolog.Event)) {
	defer func() {
		if r := recover(); r != nil {
			entry := eb.logger.Error().
				Str("event_type", eventType).
				Interface("panic", r)
			annotate(entry)
			entry.Msg("Event handler panicked")
		}
	}()
	fn()
}

// SubscriberIDs returns the registered subscriber IDs in sorted order
func (eb *EventBus) SubscriberIDs() []string {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	ids := make([]string, 0, len(eb.subscribers))
	for id := range eb.subscribers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
