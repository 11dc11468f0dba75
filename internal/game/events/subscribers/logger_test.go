package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}
		var line map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(raw), &line))
		lines = append(lines, line)
	}
	return lines
}

func TestLoggerSubscriber(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("test-logger", zerolog.Nop(), zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "TurnStartedEvent",
			event: events.NewTurnStartedEvent("battle-1", 2, []int{1, 2}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(2), logLine["turn"])
				assert.Equal(t, []interface{}{float64(1), float64(2)}, logLine["queue"])
			},
		},
		{
			name:  "StateTransitionEvent",
			event: events.NewStateTransitionEvent("battle-1", "UNIT_START", "UNIT_END", "wasted"),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "UNIT_START", logLine["from_state"])
				assert.Equal(t, "UNIT_END", logLine["to_state"])
				assert.Equal(t, "wasted", logLine["reason"])
			},
		},
		{
			name: "UnitStatsChangedEvent",
			event: events.NewUnitStatsChangedEvent("battle-1", events.UnitView{
				ID: 1, Name: "Knight", Faction: units.FactionPlayer, HP: 15, MaxHP: 20, AP: 2, MaxAP: 3,
			}),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Knight", logLine["name"])
				assert.Equal(t, "PLAYER", logLine["faction"])
				assert.Equal(t, float64(15), logLine["hp"])
				assert.Equal(t, float64(3), logLine["max_ap"])
			},
		},
		{
			name:  "UnitMoveStartedEvent",
			event: events.NewUnitMoveStartedEvent("battle-1", 2, core.NewCoordinate(2, 5), core.NewCoordinate(2, 4)),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["from_y"])
				assert.Equal(t, float64(4), logLine["to_y"])
			},
		},
		{
			name:  "AttackResolvedEvent",
			event: events.NewAttackResolvedEvent("battle-1", 2, 1, 5, 15, false),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["damage"])
				assert.Equal(t, float64(15), logLine["defender_hp"])
				assert.Equal(t, false, logLine["killed"])
			},
		},
		{
			name:  "GameOverEvent",
			event: events.NewGameOverEvent("battle-1", "Victory", 6),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Victory", logLine["outcome"])
				assert.Equal(t, float64(6), logLine["turn"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			line := lines[0]
			assert.Equal(t, "Battle event", line["message"])
			assert.Equal(t, "info", line["level"])
			assert.Equal(t, tc.event.Type(), line["event_type"])
			assert.Equal(t, "battle-1", line["battle_id"])
			assert.Equal(t, "event_logger", line["subscriber"])
			tc.check(t, line)
		})
	}
}

func TestLoggerSubscriberInterestedInAll(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("filtered", zerolog.Nop(), zerolog.DebugLevel)

	for _, eventType := range []string{events.TypeUnitDied, events.TypeGameOver, events.TypeTurnStarted} {
		assert.True(t, logSub.InterestedIn(eventType), eventType)
	}
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewAPWastedEvent("battle-2", 3, 1, "no path to player"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])

	data, ok := lines[0]["event_data"].(map[string]interface{})
	require.True(t, ok, "dev mode embeds the full event")
	assert.Equal(t, events.TypeAPWasted, data["type"])
	assert.Equal(t, "no path to player", data["reason"])
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewEventBus(zerolog.Nop())
	bus.Subscribe(subscribers.NewLoggerSubscriber("bus-logger", zerolog.New(&buf), zerolog.InfoLevel))

	bus.Publish(events.NewTurnEndedEvent("battle-3", 1))
	bus.Publish(events.NewTurnStartedEvent("battle-3", 2, []int{1}))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, events.TypeTurnEnded, lines[0]["event_type"])
	assert.Equal(t, events.TypeTurnStarted, lines[1]["event_type"])
}
