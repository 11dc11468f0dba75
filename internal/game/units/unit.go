// Package units holds the combat entities that act on the grid.
package units

import (
	"fmt"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
)

// Presenter is the visual side of units. Move and Strike start a transition
// and must call done exactly once, after the transition has settled and
// never from inside the call that started it.
type Presenter interface {
	Move(u *Unit, from, to core.Coordinate, done func())
	// Strike plays the full melee sequence: advance toward target, impact,
	// return to the unit's cell.
	Strike(u *Unit, target core.Coordinate, done func())
	Face(u *Unit, d core.Direction)
}

// Unit is a combatant. A unit whose HP reaches zero stays in the roster as
// a corpse with no AP.
type Unit struct {
	id       int
	faction  Faction
	stats    StatBlock
	position core.Coordinate
	facing   core.Direction
	hp       int
	ap       int
	actions  []Action

	presenter Presenter
}

// New creates a unit on its starting cell. The action list is fixed for
// the unit's lifetime.
func New(id int, faction Faction, stats StatBlock, position core.Coordinate, actions []Action) (*Unit, error) {
	switch faction {
	case FactionPlayer, FactionEnemy:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFaction, faction)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("unit %q: %w", stats.Name, err)
	}

	u := &Unit{
		id:       id,
		faction:  faction,
		stats:    stats,
		position: position,
		facing:   core.South,
		hp:       stats.CurrentHP,
		ap:       stats.CurrentAP,
		actions:  append([]Action(nil), actions...),
	}
	if !u.IsAlive() {
		u.ap = 0
	}
	return u, nil
}

// Attach wires the presenter that animates this unit
func (u *Unit) Attach(p Presenter) { u.presenter = p }

func (u *Unit) ID() int                   { return u.id }
func (u *Unit) Faction() Faction          { return u.faction }
func (u *Unit) Name() string              { return u.stats.Name }
func (u *Unit) Level() int                { return u.stats.Level }
func (u *Unit) Attack() int               { return u.stats.Attack }
func (u *Unit) AssetKey() string          { return u.stats.AssetKey }
func (u *Unit) AssetFrame() int           { return u.stats.AssetFrame }
func (u *Unit) Position() core.Coordinate { return u.position }
func (u *Unit) Facing() core.Direction    { return u.facing }
func (u *Unit) HP() int                   { return u.hp }
func (u *Unit) MaxHP() int                { return u.stats.MaxHP }
func (u *Unit) AP() int                   { return u.ap }
func (u *Unit) MaxAP() int                { return u.stats.MaxAP }

// IsAlive reports whether the unit still has HP
func (u *Unit) IsAlive() bool { return u.hp > 0 }

// HasAp reports whether the unit can still act this turn
func (u *Unit) HasAp() bool { return u.ap > 0 }

// Actions returns a copy of the declared action list
func (u *Unit) Actions() []Action {
	return append([]Action(nil), u.actions...)
}

// TakeDamage lowers HP, clamping at zero. A unit killed mid-turn loses its
// remaining AP at once. It reports whether this hit killed the unit.
func (u *Unit) TakeDamage(amount int) bool {
	if amount <= 0 || !u.IsAlive() {
		return false
	}
	u.hp -= amount
	if u.hp < 0 {
		u.hp = 0
	}
	if !u.IsAlive() {
		u.ap = 0
		return true
	}
	return false
}

// ResetAp refills AP at the start of a turn. Corpses stay at zero.
func (u *Unit) ResetAp() {
	if !u.IsAlive() {
		u.ap = 0
		return
	}
	u.ap = u.stats.MaxAP
}

// UseAp spends one action point, never dropping below zero
func (u *Unit) UseAp() {
	u.ap--
	if u.ap < 0 {
		u.ap = 0
	}
}

// SpendAllAp forfeits whatever AP remains this turn
func (u *Unit) SpendAllAp() {
	u.ap = 0
}

// Move updates the logical position immediately and hands the visual
// transition to the presenter. onComplete fires once the presenter settles.
func (u *Unit) Move(target core.Coordinate, onComplete func()) {
	p := u.mustPresenter()
	from := u.position
	u.position = target
	p.Move(u, from, target, onComplete)
}

// Strike plays the melee sequence toward target. It has no logical effect;
// damage is applied by whoever resolves the attack once onComplete fires.
func (u *Unit) Strike(target core.Coordinate, onComplete func()) {
	u.mustPresenter().Strike(u, target, onComplete)
}

// Face turns the unit. Facing is cosmetic.
func (u *Unit) Face(d core.Direction) {
	u.facing = d
	if u.presenter != nil {
		u.presenter.Face(u, d)
	}
}

// FaceToward faces the unit at target if it is on a different cell
func (u *Unit) FaceToward(target core.Coordinate) {
	if d, ok := u.position.DirectionTo(target); ok {
		u.Face(d)
	}
}

func (u *Unit) mustPresenter() Presenter {
	if u.presenter == nil {
		panic(fmt.Sprintf("unit %d (%s) has no presenter attached", u.id, u.stats.Name))
	}
	return u.presenter
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s#%d[%s %s hp=%d/%d ap=%d/%d]",
		u.stats.Name, u.id, u.faction, u.position, u.hp, u.stats.MaxHP, u.ap, u.stats.MaxAP)
}
