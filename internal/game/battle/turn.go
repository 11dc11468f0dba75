package battle

import (
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

func (b *Battle) enterCreateMap() {
	_, span := b.tracer.Start(b.ctx, "battle.create_map")
	defer span.End()

	b.grid, b.roster = b.setup.build()
	views := make([]events.UnitView, 0, len(b.roster))
	for _, u := range b.roster {
		u.Attach(b.presenter)
		views = append(views, events.ViewOf(u))
	}
	span.SetAttributes(
		attribute.Int("map.width", b.grid.W),
		attribute.Int("map.height", b.grid.H),
		attribute.Int("units", len(b.roster)),
	)

	b.bus.Publish(events.NewBattleStartedEvent(b.id, b.grid.W, b.grid.H, views))
	for _, u := range b.roster {
		b.publishStats(u)
	}

	b.sched.After(b.createMapDelay, func() {
		b.setPhase(states.PhaseTurnStart, "map ready")
	})
}

func (b *Battle) enterTurnStart() {
	b.turn++
	b.turnCtx, b.turnSpan = b.tracer.Start(b.ctx, "battle.turn")
	b.turnSpan.SetAttributes(attribute.Int("turn", b.turn))

	b.queue = b.queue[:0]
	for _, u := range b.roster {
		if !u.IsAlive() {
			continue
		}
		u.ResetAp()
		b.queue = append(b.queue, u)
		b.publishStats(u)
	}
	b.turnSpan.SetAttributes(attribute.Int("queue", len(b.queue)))

	b.logger.Debug().Int("turn", b.turn).Ints("queue", b.QueueIDs()).Msg("Turn started")
	b.bus.Publish(events.NewTurnStartedEvent(b.id, b.turn, b.QueueIDs()))

	if len(b.queue) == 0 {
		b.outcome = OutcomeDefeat
		b.setPhase(states.PhaseGameOver, "no unit alive")
		return
	}
	b.activate(b.popNext())
	b.setPhase(states.PhaseUnitStart, "turn started")
}

func (b *Battle) enterUnitStart() {
	if p := b.player(); p == nil || !p.IsAlive() {
		b.outcome = OutcomeDefeat
		b.setPhase(states.PhaseGameOver, "player dead")
		return
	}
	if !b.anyEnemyAlive() {
		b.outcome = OutcomeVictory
		b.setPhase(states.PhaseGameOver, "no enemy alive")
		return
	}

	if b.current == nil || !b.current.HasAp() {
		next := b.popNext()
		if next == nil {
			b.activate(nil)
			b.setPhase(states.PhaseTurnEnd, "queue drained")
			return
		}
		b.activate(next)
		b.setPhase(states.PhaseUnitStart, "next unit")
		return
	}

	switch b.current.Faction() {
	case units.FactionPlayer:
		b.selectCurrent()
		b.setPhase(states.PhaseUnitWaitAction, "player unit selected")
	case units.FactionEnemy:
		b.setPhase(states.PhaseUnitAutoSelectAction, "enemy turn")
	default:
		core.Unreachable("faction", b.current.Faction())
	}
}

func (b *Battle) enterUnitEnd() {
	b.setPhase(states.PhaseUnitStart, "action resolved")
}

func (b *Battle) enterTurnEnd() {
	b.endTurnSpan()
	b.bus.Publish(events.NewTurnEndedEvent(b.id, b.turn))
	b.setPhase(states.PhaseTurnStart, "turn ended")
}

func (b *Battle) enterGameOver() {
	b.clearSelection()
	b.queue = nil
	if b.turnSpan != nil {
		b.turnSpan.SetAttributes(attribute.String("outcome", b.outcome.String()))
	}
	b.endTurnSpan()

	b.logger.Info().
		Str("outcome", b.outcome.String()).
		Int("turn", b.turn).
		Msg("Battle over")
	b.bus.Publish(events.NewGameOverEvent(b.id, b.outcome.String(), b.turn))
}

func (b *Battle) updateWaitSelection(time.Duration) {
	if b.pending == nil && (b.current == nil || !b.current.HasAp()) {
		b.setPhase(states.PhaseUnitStart, "ap exhausted")
	}
}

// popNext removes and returns the next living unit in the queue. Units
// killed after the queue was built are dropped.
func (b *Battle) popNext() *units.Unit {
	for len(b.queue) > 0 {
		u := b.queue[0]
		b.queue = b.queue[1:]
		if u.IsAlive() {
			return u
		}
	}
	return nil
}

func (b *Battle) activate(u *units.Unit) {
	if b.current == u {
		return
	}
	b.current = u
	if u != nil {
		b.bus.Publish(events.NewActiveUnitChangedEvent(b.id, events.ViewOf(u)))
	}
}

func (b *Battle) anyEnemyAlive() bool {
	for _, u := range b.roster {
		if u.Faction() == units.FactionEnemy && u.IsAlive() {
			return true
		}
	}
	return false
}

func (b *Battle) endTurnSpan() {
	if b.turnSpan != nil {
		b.turnSpan.End()
		b.turnSpan = nil
	}
	b.turnCtx = nil
}
