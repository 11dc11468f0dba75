package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	logLevel zerolog.Level
	devMode  bool // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn reports true for every event type
func (ls *LoggerSubscriber) InterestedIn(string) bool {
	return true
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("battle_id", event.BattleID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.BattleStartedEvent:
		logEvent.
			Int("map_width", e.Width).
			Int("map_height", e.Height).
			Int("units", len(e.Units))

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_state", e.FromState).
			Str("to_state", e.ToState).
			Str("reason", e.Reason)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.Turn).
			Ints("queue", e.Queue)

	case *events.TurnEndedEvent:
		logEvent.Int("turn", e.Turn)

	case *events.ActiveUnitChangedEvent:
		unitFields(logEvent, e.Unit)

	case *events.UnitStatsChangedEvent:
		unitFields(logEvent, e.Unit)

	case *events.TargetsHighlightedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Int("targets", len(e.Targets))

	case *events.UnitMoveStartedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Int("from_x", e.From.X).
			Int("from_y", e.From.Y).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y)

	case *events.UnitMovedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Int("to_x", e.To.X).
			Int("to_y", e.To.Y)

	case *events.AttackStartedEvent:
		logEvent.
			Int("attacker_id", e.AttackerID).
			Int("defender_id", e.DefenderID).
			Int("target_x", e.Target.X).
			Int("target_y", e.Target.Y)

	case *events.AttackResolvedEvent:
		logEvent.
			Int("attacker_id", e.AttackerID).
			Int("defender_id", e.DefenderID).
			Int("damage", e.Damage).
			Int("defender_hp", e.DefenderHP).
			Bool("killed", e.Killed)

	case *events.UnitDiedEvent:
		logEvent.
			Int("unit_id", e.Unit.ID).
			Str("name", e.Unit.Name).
			Int("killer_id", e.KillerID)

	case *events.APWastedEvent:
		logEvent.
			Int("unit_id", e.UnitID).
			Int("amount", e.Amount).
			Str("reason", e.Reason)

	case *events.GameOverEvent:
		logEvent.
			Str("outcome", e.Outcome).
			Int("turn", e.Turn)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Battle event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}

func unitFields(e *zerolog.Event, u events.UnitView) {
	e.Int("unit_id", u.ID).
		Str("name", u.Name).
		Str("faction", u.Faction.String()).
		Int("hp", u.HP).
		Int("max_hp", u.MaxHP).
		Int("ap", u.AP).
		Int("max_ap", u.MaxAP)
}
