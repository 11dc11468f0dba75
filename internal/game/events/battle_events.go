package events

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// Event type constants
const (
	TypeBattleStarted      = "battle.started"
	TypeStateTransition    = "state.transition"
	TypeTurnStarted        = "turn.started"
	TypeTurnEnded          = "turn.ended"
	TypeActiveUnitChanged  = "unit.active_changed"
	TypeUnitStatsChanged   = "unit.stats_changed"
	TypeTargetsHighlighted = "unit.targets_highlighted"
	TypeUnitMoveStarted    = "unit.move_started"
	TypeUnitMoved          = "unit.moved"
	TypeAttackStarted      = "combat.attack_started"
	TypeAttackResolved     = "combat.attack_resolved"
	TypeUnitDied           = "unit.died"
	TypeAPWasted           = "unit.ap_wasted"
	TypeGameOver           = "battle.game_over"
)

// UnitView is the display snapshot of a unit at the moment an event fired
type UnitView struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Faction    units.Faction   `json:"faction"`
	Position   core.Coordinate `json:"position"`
	Facing     core.Direction  `json:"facing"`
	HP         int             `json:"hp"`
	MaxHP      int             `json:"max_hp"`
	AP         int             `json:"ap"`
	MaxAP      int             `json:"max_ap"`
	Level      int             `json:"level"`
	Alive      bool            `json:"alive"`
	AssetKey   string          `json:"asset_key"`
	AssetFrame int             `json:"asset_frame"`
}

// ViewOf snapshots u
func ViewOf(u *units.Unit) UnitView {
	return UnitView{
		ID:         u.ID(),
		Name:       u.Name(),
		Faction:    u.Faction(),
		Position:   u.Position(),
		Facing:     u.Facing(),
		HP:         u.HP(),
		MaxHP:      u.MaxHP(),
		AP:         u.AP(),
		MaxAP:      u.MaxAP(),
		Level:      u.Level(),
		Alive:      u.IsAlive(),
		AssetKey:   u.AssetKey(),
		AssetFrame: u.AssetFrame(),
	}
}

// Target is a legal action surfaced to the player
type Target struct {
	Kind units.ActionKind `json:"kind"`
	Cell core.Coordinate  `json:"cell"`
}

// BattleStartedEvent is emitted once the map and roster exist
type BattleStartedEvent struct {
	BaseEvent
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Units  []UnitView `json:"units"`
}

// NewBattleStartedEvent creates a new battle started event
func NewBattleStartedEvent(battleID string, width, height int, roster []UnitView) *BattleStartedEvent {
	return &BattleStartedEvent{
		BaseEvent: newBase(TypeBattleStarted, battleID),
		Width:     width,
		Height:    height,
		Units:     roster,
	}
}

// StateTransitionEvent is emitted for every phase change
type StateTransitionEvent struct {
	BaseEvent
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new state transition event
func NewStateTransitionEvent(battleID, from, to, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, battleID),
		FromState: from,
		ToState:   to,
		Reason:    reason,
	}
}

// TurnStartedEvent is emitted when a new turn queue is built
type TurnStartedEvent struct {
	BaseEvent
	Turn  int   `json:"turn"`
	Queue []int `json:"queue"`
}

// NewTurnStartedEvent creates a new turn started event
func NewTurnStartedEvent(battleID string, turn int, queue []int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, battleID),
		Turn:      turn,
		Queue:     queue,
	}
}

// TurnEndedEvent is emitted when the turn queue is drained
type TurnEndedEvent struct {
	BaseEvent
	Turn int `json:"turn"`
}

// NewTurnEndedEvent creates a new turn ended event
func NewTurnEndedEvent(battleID string, turn int) *TurnEndedEvent {
	return &TurnEndedEvent{BaseEvent: newBase(TypeTurnEnded, battleID), Turn: turn}
}

// ActiveUnitChangedEvent is emitted when a unit becomes current
type ActiveUnitChangedEvent struct {
	BaseEvent
	Unit UnitView `json:"unit"`
}

// NewActiveUnitChangedEvent creates a new active unit changed event
func NewActiveUnitChangedEvent(battleID string, unit UnitView) *ActiveUnitChangedEvent {
	return &ActiveUnitChangedEvent{BaseEvent: newBase(TypeActiveUnitChanged, battleID), Unit: unit}
}

// UnitStatsChangedEvent carries name, HP and AP after any change to them
type UnitStatsChangedEvent struct {
	BaseEvent
	Unit UnitView `json:"unit"`
}

// NewUnitStatsChangedEvent creates a new unit stats changed event
func NewUnitStatsChangedEvent(battleID string, unit UnitView) *UnitStatsChangedEvent {
	return &UnitStatsChangedEvent{BaseEvent: newBase(TypeUnitStatsChanged, battleID), Unit: unit}
}

// TargetsHighlightedEvent lists the selectable cells for a unit. An empty
// Targets slice clears the highlight.
type TargetsHighlightedEvent struct {
	BaseEvent
	UnitID  int      `json:"unit_id"`
	Targets []Target `json:"targets"`
}

// NewTargetsHighlightedEvent creates a new targets highlighted event
func NewTargetsHighlightedEvent(battleID string, unitID int, targets []Target) *TargetsHighlightedEvent {
	if targets == nil {
		targets = []Target{}
	}
	return &TargetsHighlightedEvent{
		BaseEvent: newBase(TypeTargetsHighlighted, battleID),
		UnitID:    unitID,
		Targets:   targets,
	}
}

// UnitMoveStartedEvent is emitted when a move is issued
type UnitMoveStartedEvent struct {
	BaseEvent
	UnitID int             `json:"unit_id"`
	From   core.Coordinate `json:"from"`
	To     core.Coordinate `json:"to"`
}

// NewUnitMoveStartedEvent creates a new unit move started event
func NewUnitMoveStartedEvent(battleID string, unitID int, from, to core.Coordinate) *UnitMoveStartedEvent {
	return &UnitMoveStartedEvent{
		BaseEvent: newBase(TypeUnitMoveStarted, battleID),
		UnitID:    unitID,
		From:      from,
		To:        to,
	}
}

// UnitMovedEvent is emitted once a move has settled
type UnitMovedEvent struct {
	BaseEvent
	UnitID int             `json:"unit_id"`
	From   core.Coordinate `json:"from"`
	To     core.Coordinate `json:"to"`
}

// NewUnitMovedEvent creates a new unit moved event
func NewUnitMovedEvent(battleID string, unitID int, from, to core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, battleID),
		UnitID:    unitID,
		From:      from,
		To:        to,
	}
}

// AttackStartedEvent is emitted when a melee strike begins
type AttackStartedEvent struct {
	BaseEvent
	AttackerID int             `json:"attacker_id"`
	DefenderID int             `json:"defender_id"`
	Target     core.Coordinate `json:"target"`
}

// NewAttackStartedEvent creates a new attack started event
func NewAttackStartedEvent(battleID string, attackerID, defenderID int, target core.Coordinate) *AttackStartedEvent {
	return &AttackStartedEvent{
		BaseEvent:  newBase(TypeAttackStarted, battleID),
		AttackerID: attackerID,
		DefenderID: defenderID,
		Target:     target,
	}
}

// AttackResolvedEvent is emitted after damage has been applied
type AttackResolvedEvent struct {
	BaseEvent
	AttackerID int  `json:"attacker_id"`
	DefenderID int  `json:"defender_id"`
	Damage     int  `json:"damage"`
	DefenderHP int  `json:"defender_hp"`
	Killed     bool `json:"killed"`
}

// NewAttackResolvedEvent creates a new attack resolved event
func NewAttackResolvedEvent(battleID string, attackerID, defenderID, damage, defenderHP int, killed bool) *AttackResolvedEvent {
	return &AttackResolvedEvent{
		BaseEvent:  newBase(TypeAttackResolved, battleID),
		AttackerID: attackerID,
		DefenderID: defenderID,
		Damage:     damage,
		DefenderHP: defenderHP,
		Killed:     killed,
	}
}

// UnitDiedEvent is emitted when a unit's HP reaches zero
type UnitDiedEvent struct {
	BaseEvent
	Unit     UnitView `json:"unit"`
	KillerID int      `json:"killer_id"`
}

// NewUnitDiedEvent creates a new unit died event
func NewUnitDiedEvent(battleID string, unit UnitView, killerID int) *UnitDiedEvent {
	return &UnitDiedEvent{BaseEvent: newBase(TypeUnitDied, battleID), Unit: unit, KillerID: killerID}
}

// APWastedEvent is emitted when AP is spent with no effect
type APWastedEvent struct {
	BaseEvent
	UnitID int    `json:"unit_id"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

// NewAPWastedEvent creates a new AP wasted event
func NewAPWastedEvent(battleID string, unitID, amount int, reason string) *APWastedEvent {
	return &APWastedEvent{
		BaseEvent: newBase(TypeAPWasted, battleID),
		UnitID:    unitID,
		Amount:    amount,
		Reason:    reason,
	}
}

// GameOverEvent is emitted on entering the terminal phase
type GameOverEvent struct {
	BaseEvent
	Outcome string `json:"outcome"`
	Turn    int    `json:"turn"`
}

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(battleID, outcome string, turn int) *GameOverEvent {
	return &GameOverEvent{BaseEvent: newBase(TypeGameOver, battleID), Outcome: outcome, Turn: turn}
}
