package battle

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// SelectUnit handles a click on unit id. While waiting for a selection
// only the acting player unit can be picked; while waiting for an action
// a click on a living unit is a click on its cell, and a missing or dead
// unit deselects like an illegal cell. It reports whether the input was
// consumed.
func (b *Battle) SelectUnit(id int) bool {
	phase, ok := b.acceptingPhase()
	if !ok {
		return false
	}
	u, found := b.Unit(id)
	if !found || !u.IsAlive() {
		if phase == states.PhaseUnitWaitAction {
			b.deselect("no living unit to select")
			return true
		}
		b.logger.Debug().Int("unit_id", id).Msg("Ignoring selection of missing or dead unit")
		return false
	}

	switch phase {
	case states.PhaseUnitWaitSelection:
		if u != b.current {
			return false
		}
		b.selectCurrent()
		b.setPhase(states.PhaseUnitWaitAction, "unit selected")
		return true
	case states.PhaseUnitWaitAction:
		return b.clickInWaitAction(u.Position())
	default:
		core.Unreachable("input phase", phase)
		return false
	}
}

// ClickTile handles a click on cell c. It reports whether the input was
// consumed.
func (b *Battle) ClickTile(c core.Coordinate) bool {
	phase, ok := b.acceptingPhase()
	if !ok {
		return false
	}

	switch phase {
	case states.PhaseUnitWaitSelection:
		if u, found := b.UnitAt(c); found && u == b.current {
			return b.SelectUnit(u.ID())
		}
		return false
	case states.PhaseUnitWaitAction:
		return b.clickInWaitAction(c)
	default:
		core.Unreachable("input phase", phase)
		return false
	}
}

// Wait forfeits the acting player unit's remaining AP and ends its action
func (b *Battle) Wait() bool {
	if _, ok := b.acceptingPhase(); !ok {
		return false
	}
	u := b.current
	amount := u.AP()
	u.SpendAllAp()
	b.clearSelection()
	b.wasteAp(u, amount, "wait")
	b.setPhase(states.PhaseUnitEnd, "player waited")
	return true
}

func (b *Battle) acceptingPhase() (states.GamePhase, bool) {
	phase, ok := b.machine.Current()
	if !ok || !phase.AcceptsInput() {
		return phase, false
	}
	if b.pending != nil {
		b.logger.Debug().Str("phase", phase.String()).Msg("Ignoring input while an action is pending")
		return phase, false
	}
	return phase, true
}

func (b *Battle) clickInWaitAction(c core.Coordinate) bool {
	u := b.selected
	if u == nil {
		core.Unreachable("selection", nil)
	}
	if c == u.Position() {
		b.deselect("unit clicked again")
		return true
	}

	target, ok := b.targetAt(c)
	if !ok {
		b.deselect("no legal action at " + c.String())
		return true
	}

	b.clearSelection()
	switch target.Kind {
	case units.ActionMove:
		b.move(u, target.Cell)
	case units.ActionAttackMelee:
		defender, _ := b.UnitAt(target.Cell)
		b.melee(u, defender)
	default:
		core.Unreachable("action kind", target.Kind)
	}
	return true
}

func (b *Battle) deselect(reason string) {
	b.clearSelection()
	b.setPhase(states.PhaseUnitWaitSelection, reason)
}

func (b *Battle) selectCurrent() {
	b.selected = b.current
	b.targets = b.legalTargets(b.current)
	b.bus.Publish(events.NewTargetsHighlightedEvent(b.id, b.current.ID(), b.Targets()))
}

func (b *Battle) clearSelection() {
	if b.selected == nil && len(b.targets) == 0 {
		return
	}
	id := 0
	if b.selected != nil {
		id = b.selected.ID()
	}
	b.selected = nil
	b.targets = nil
	b.bus.Publish(events.NewTargetsHighlightedEvent(b.id, id, nil))
}

func (b *Battle) targetAt(c core.Coordinate) (events.Target, bool) {
	for _, t := range b.targets {
		if t.Cell == c {
			return t, true
		}
	}
	return events.Target{}, false
}

// legalTargets filters u's declared actions against the live board. A move
// needs an enterable, unoccupied cell; a melee strike needs a living unit.
func (b *Battle) legalTargets(u *units.Unit) []events.Target {
	occupied := b.occupiedCells(nil)
	var targets []events.Target
	for _, a := range u.Actions() {
		cell := a.Target(u.Position())
		switch a.Kind {
		case units.ActionMove:
			if b.grid.CanEnter(cell.X, cell.Y) && !occupied.Has(cell) {
				targets = append(targets, events.Target{Kind: a.Kind, Cell: cell})
			}
		case units.ActionAttackMelee:
			if cell != u.Position() && occupied.Has(cell) {
				targets = append(targets, events.Target{Kind: a.Kind, Cell: cell})
			}
		default:
			core.Unreachable("action kind", a.Kind)
		}
	}
	return targets
}
