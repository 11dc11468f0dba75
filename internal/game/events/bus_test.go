package events

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var received Event
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) {
		received = e
	})

	bus.Publish(NewTurnStartedEvent("battle-1", 3, []int{1, 2}))

	require.NotNil(t, received, "Event should have been received")
	assert.Equal(t, TypeTurnStarted, received.Type())
	assert.Equal(t, "battle-1", received.BattleID())
	assert.False(t, received.Timestamp().IsZero())

	started, ok := received.(*TurnStartedEvent)
	require.True(t, ok)
	assert.Equal(t, 3, started.Turn)
	assert.Equal(t, []int{1, 2}, started.Queue)
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var calls []string
	id1 := bus.SubscribeFunc(TypeTurnEnded, func(Event) { calls = append(calls, "first") })
	id2 := bus.SubscribeFunc(TypeTurnEnded, func(Event) { calls = append(calls, "second") })

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, "turn.ended_func_2", id2)

	bus.Publish(NewTurnEndedEvent("battle-1", 1))
	assert.Equal(t, []string{"first", "second"}, calls)

	bus.Publish(NewTurnStartedEvent("battle-1", 2, nil))
	assert.Len(t, calls, 2, "handlers only see their own event type")
}

// testSubscriber records events it is interested in
type testSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *testSubscriber) ID() string { return ts.id }

func (ts *testSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *testSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	all := &testSubscriber{id: "all"}
	deaths := &testSubscriber{id: "deaths", interestedTypes: map[string]bool{TypeUnitDied: true}}
	bus.Subscribe(all)
	bus.Subscribe(deaths)
	assert.Equal(t, []string{"all", "deaths"}, bus.SubscriberIDs())

	bus.Publish(NewAPWastedEvent("b", 2, 1, "no path"))
	bus.Publish(NewUnitDiedEvent("b", UnitView{ID: 2}, 1))

	assert.Len(t, all.receivedEvents, 2)
	require.Len(t, deaths.receivedEvents, 1)
	assert.Equal(t, TypeUnitDied, deaths.receivedEvents[0].Type())

	bus.Unsubscribe("all")
	bus.Publish(NewGameOverEvent("b", "Victory", 4))
	assert.Len(t, all.receivedEvents, 2)
	assert.Equal(t, []string{"deaths"}, bus.SubscriberIDs())
}

func TestEventBusSubscribersRunInOrder(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())
	var order []string
	for _, id := range []string{"c", "a", "b"} {
		bus.Subscribe(&orderedSubscriber{id: id, order: &order})
	}

	bus.Publish(NewGameOverEvent("b", "Defeat", 1))
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

type orderedSubscriber struct {
	id    string
	order *[]string
}

func (o *orderedSubscriber) ID() string               { return o.id }
func (o *orderedSubscriber) InterestedIn(string) bool { return true }
func (o *orderedSubscriber) HandleEvent(Event)        { *o.order = append(*o.order, o.id) }

func TestEventBusRecoversFromPanickingHandler(t *testing.T) {
	var buf bytes.Buffer
	bus := NewEventBus(zerolog.New(&buf))

	reached := false
	bus.SubscribeFunc(TypeAttackResolved, func(Event) { panic("boom") })
	bus.SubscribeFunc(TypeAttackResolved, func(Event) { reached = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewAttackResolvedEvent("b", 1, 2, 5, 5, false))
	})
	assert.True(t, reached, "later handlers still run")
	assert.Contains(t, buf.String(), "Event handler panicked")
}

func TestViewOf(t *testing.T) {
	u, err := units.New(7, units.FactionEnemy, units.StatBlock{
		Name:       "Skeleton",
		AssetKey:   "skeleton",
		AssetFrame: 3,
		Level:      2,
		MaxHP:      10,
		CurrentHP:  4,
		MaxAP:      1,
		CurrentAP:  1,
		Attack:     5,
	}, core.NewCoordinate(2, 5), nil)
	require.NoError(t, err)

	view := ViewOf(u)
	assert.Equal(t, UnitView{
		ID:         7,
		Name:       "Skeleton",
		Faction:    units.FactionEnemy,
		Position:   core.NewCoordinate(2, 5),
		Facing:     core.South,
		HP:         4,
		MaxHP:      10,
		AP:         1,
		MaxAP:      1,
		Level:      2,
		Alive:      true,
		AssetKey:   "skeleton",
		AssetFrame: 3,
	}, view)
}

func TestNewTargetsHighlightedEvent_NilMeansCleared(t *testing.T) {
	e := NewTargetsHighlightedEvent("b", 1, nil)
	assert.NotNil(t, e.Targets)
	assert.Empty(t, e.Targets)
}
