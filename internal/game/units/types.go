package units

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

var (
	ErrUnknownFaction    = errors.New("unknown faction")
	ErrUnknownActionKind = errors.New("unknown action kind")
	ErrInvalidStats      = errors.New("invalid unit stats")
)

// Faction decides who controls a unit: human input or the enemy AI.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "PLAYER"
	case FactionEnemy:
		return "ENEMY"
	default:
		return fmt.Sprintf("Faction(%d)", int(f))
	}
}

// ParseFaction accepts the faction name in any case
func ParseFaction(s string) (Faction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PLAYER":
		return FactionPlayer, nil
	case "ENEMY":
		return FactionEnemy, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFaction, s)
	}
}

func (f Faction) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Faction) UnmarshalText(text []byte) error {
	parsed, err := ParseFaction(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ActionKind is what an Action does to its target cell.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionAttackMelee
)

func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "MOVE"
	case ActionAttackMelee:
		return "ATTACK_MELEE"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// ParseActionKind accepts MOVE and ATTACK_MELEE in any case
func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MOVE":
		return ActionMove, nil
	case "ATTACK_MELEE", "MELEE":
		return ActionAttackMelee, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownActionKind, s)
	}
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ActionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseActionKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Action is a declared capability: a kind plus an offset relative to the
// unit's cell at the time it is evaluated.
type Action struct {
	Kind   ActionKind
	Offset core.Coordinate
}

// Target resolves the action against an origin cell
func (a Action) Target(from core.Coordinate) core.Coordinate {
	return from.Add(a.Offset)
}

func (a Action) String() string {
	return fmt.Sprintf("%s%+d,%+d", a.Kind, a.Offset.X, a.Offset.Y)
}

// CardinalActions is the standard player kit: one step of movement and one
// melee strike in each of the four directions.
func CardinalActions() []Action {
	actions := make([]Action, 0, 2*len(core.Directions))
	for _, kind := range []ActionKind{ActionMove, ActionAttackMelee} {
		for _, d := range core.Directions {
			actions = append(actions, Action{Kind: kind, Offset: d.Offset()})
		}
	}
	return actions
}

// StatBlock is the fixed description a unit is created from.
type StatBlock struct {
	Name       string
	AssetKey   string
	AssetFrame int
	Level      int
	MaxHP      int
	CurrentHP  int
	MaxAP      int
	CurrentAP  int
	Attack     int
}

// Validate checks the HP/AP invariants the unit relies on
func (s StatBlock) Validate() error {
	switch {
	case s.MaxHP <= 0:
		return fmt.Errorf("%w: max hp must be positive, got %d", ErrInvalidStats, s.MaxHP)
	case s.CurrentHP < 0 || s.CurrentHP > s.MaxHP:
		return fmt.Errorf("%w: current hp %d outside [0,%d]", ErrInvalidStats, s.CurrentHP, s.MaxHP)
	case s.MaxAP < 0:
		return fmt.Errorf("%w: max ap must be non-negative, got %d", ErrInvalidStats, s.MaxAP)
	case s.CurrentAP < 0 || s.CurrentAP > s.MaxAP:
		return fmt.Errorf("%w: current ap %d outside [0,%d]", ErrInvalidStats, s.CurrentAP, s.MaxAP)
	case s.Attack < 0:
		return fmt.Errorf("%w: attack must be non-negative, got %d", ErrInvalidStats, s.Attack)
	case s.Level < 0:
		return fmt.Errorf("%w: level must be non-negative, got %d", ErrInvalidStats, s.Level)
	}
	return nil
}
