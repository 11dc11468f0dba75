package testutil

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// KnightStats is the player stat block used across tests: 3 AP, 20 HP
func KnightStats() units.StatBlock {
	return units.StatBlock{
		Name:       "Knight",
		AssetKey:   "hero",
		AssetFrame: 0,
		Level:      1,
		MaxHP:      20,
		CurrentHP:  20,
		MaxAP:      3,
		CurrentAP:  3,
		Attack:     4,
	}
}

// SkeletonStats is the enemy stat block used across tests: 10 HP, 5 attack
func SkeletonStats() units.StatBlock {
	return units.StatBlock{
		Name:       "Skeleton",
		AssetKey:   "skeleton",
		AssetFrame: 2,
		Level:      1,
		MaxHP:      10,
		CurrentHP:  10,
		MaxAP:      1,
		CurrentAP:  1,
		Attack:     5,
	}
}

// EventRecorder is a bus subscriber that keeps every event
type EventRecorder struct {
	Events []events.Event
}

func (r *EventRecorder) ID() string                 { return "test-recorder" }
func (r *EventRecorder) InterestedIn(string) bool   { return true }
func (r *EventRecorder) HandleEvent(e events.Event) { r.Events = append(r.Events, e) }

// Types returns the recorded event types in order
func (r *EventRecorder) Types() []string {
	types := make([]string, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.Type()
	}
	return types
}

// OfType returns the recorded events of one type
func (r *EventRecorder) OfType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range r.Events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Reset drops everything recorded so far
func (r *EventRecorder) Reset() { r.Events = nil }
