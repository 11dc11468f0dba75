package battle

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

var (
	ErrMapTooSmall      = errors.New("map too small")
	ErrPlayerCount      = errors.New("battle needs exactly one player unit")
	ErrPlayerCannotAct  = errors.New("player unit needs at least one max AP")
	ErrBlockedStart     = errors.New("unit starts on a cell it cannot enter")
	ErrOverlappingStart = errors.New("two units share a starting cell")
)

// MinMapSize is the smallest width or height with an interior cell
const MinMapSize = 3

// UnitSpec describes one roster entry
type UnitSpec struct {
	Faction  units.Faction
	Stats    units.StatBlock
	Position core.Coordinate
	Actions  []units.Action
}

// Setup is the fixed battle description: map size and initial roster
type Setup struct {
	Width  int
	Height int
	Units  []UnitSpec
}

// Validate checks that the setup can be played
func (s Setup) Validate() error {
	if s.Width < MinMapSize || s.Height < MinMapSize {
		return fmt.Errorf("%w: %dx%d, minimum %dx%d", ErrMapTooSmall, s.Width, s.Height, MinMapSize, MinMapSize)
	}

	grid := core.NewGridMap(s.Width, s.Height)
	occupied := mapset.New[core.Coordinate]()
	players := 0

	for i, spec := range s.Units {
		if err := spec.Stats.Validate(); err != nil {
			return fmt.Errorf("unit %d (%s): %w", i, spec.Stats.Name, err)
		}
		switch spec.Faction {
		case units.FactionPlayer:
			players++
			if spec.Stats.MaxAP < 1 {
				return fmt.Errorf("unit %d (%s): %w", i, spec.Stats.Name, ErrPlayerCannotAct)
			}
		case units.FactionEnemy:
		default:
			return fmt.Errorf("unit %d: %w: %v", i, units.ErrUnknownFaction, spec.Faction)
		}
		for _, a := range spec.Actions {
			switch a.Kind {
			case units.ActionMove, units.ActionAttackMelee:
			default:
				return fmt.Errorf("unit %d (%s): %w: %v", i, spec.Stats.Name, units.ErrUnknownActionKind, a.Kind)
			}
		}
		if !grid.CanEnter(spec.Position.X, spec.Position.Y) {
			return fmt.Errorf("unit %d (%s) at %s: %w", i, spec.Stats.Name, spec.Position, ErrBlockedStart)
		}
		if occupied.Has(spec.Position) {
			return fmt.Errorf("unit %d (%s) at %s: %w", i, spec.Stats.Name, spec.Position, ErrOverlappingStart)
		}
		occupied.Put(spec.Position)
	}

	if players != 1 {
		return fmt.Errorf("%w: got %d", ErrPlayerCount, players)
	}
	return nil
}

// build creates the map and the roster. IDs follow roster order, from 1.
func (s Setup) build() (*core.GridMap, []*units.Unit) {
	grid := core.NewGridMap(s.Width, s.Height)
	roster := make([]*units.Unit, 0, len(s.Units))
	for i, spec := range s.Units {
		u, err := units.New(i+1, spec.Faction, spec.Stats, spec.Position, spec.Actions)
		if err != nil {
			panic(fmt.Sprintf("battle: validated setup produced invalid unit: %v", err))
		}
		roster = append(roster, u)
	}
	return grid, roster
}
