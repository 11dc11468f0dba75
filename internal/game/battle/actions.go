package battle

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// operation is a move or strike waiting for its presenter to settle
type operation struct {
	unit    *units.Unit
	kind    units.ActionKind
	span    trace.Span
	settled bool
}

func (b *Battle) begin(u *units.Unit, kind units.ActionKind, attrs ...attribute.KeyValue) *operation {
	if b.pending != nil {
		panic(fmt.Sprintf("battle: %s for unit %d issued while %s for unit %d is pending",
			kind, u.ID(), b.pending.kind, b.pending.unit.ID()))
	}

	attrs = append(attrs,
		attribute.Int("unit.id", u.ID()),
		attribute.String("unit.name", u.Name()),
		attribute.String("unit.faction", u.Faction().String()),
		attribute.String("action", kind.String()),
		attribute.Int("turn", b.turn),
	)
	parent := b.turnCtx
	if parent == nil {
		parent = b.ctx
	}
	_, span := b.tracer.Start(parent, "battle.action", trace.WithAttributes(attrs...))

	op := &operation{unit: u, kind: kind, span: span}
	b.pending = op
	return op
}

// settle returns the completion callback for op. The first call applies
// resolve and ends the unit's action; later calls are logged and dropped.
func (b *Battle) settle(op *operation, resolve func(span trace.Span)) func() {
	return func() {
		if op.settled {
			b.logger.Warn().
				Int("unit_id", op.unit.ID()).
				Str("action", op.kind.String()).
				Msg("Completion callback fired more than once, ignoring")
			return
		}
		op.settled = true
		b.pending = nil

		if resolve != nil {
			resolve(op.span)
		}
		op.span.End()

		b.setPhase(states.PhaseUnitEnd, op.kind.String()+" settled")
	}
}

// move spends one AP and walks u one step to to
func (b *Battle) move(u *units.Unit, to core.Coordinate) {
	from := u.Position()
	op := b.begin(u, units.ActionMove,
		attribute.Int("from.x", from.X), attribute.Int("from.y", from.Y),
		attribute.Int("to.x", to.X), attribute.Int("to.y", to.Y),
	)

	u.UseAp()
	u.FaceToward(to)
	b.publishStats(u)
	b.bus.Publish(events.NewUnitMoveStartedEvent(b.id, u.ID(), from, to))

	b.logger.Debug().
		Int("unit_id", u.ID()).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("Unit moving")

	u.Move(to, b.settle(op, func(trace.Span) {
		b.bus.Publish(events.NewUnitMovedEvent(b.id, u.ID(), from, to))
	}))
}

// melee spends one AP and strikes defender. Damage lands only once the
// strike has settled.
func (b *Battle) melee(attacker, defender *units.Unit) {
	target := defender.Position()
	op := b.begin(attacker, units.ActionAttackMelee,
		attribute.Int("defender.id", defender.ID()),
		attribute.Int("target.x", target.X), attribute.Int("target.y", target.Y),
	)

	attacker.UseAp()
	attacker.FaceToward(target)
	b.publishStats(attacker)
	b.bus.Publish(events.NewAttackStartedEvent(b.id, attacker.ID(), defender.ID(), target))

	attacker.Strike(target, b.settle(op, func(span trace.Span) {
		damage := attacker.Attack()
		killed := defender.TakeDamage(damage)

		span.SetAttributes(
			attribute.Int("damage", damage),
			attribute.Int("defender.hp", defender.HP()),
			attribute.Bool("killed", killed),
		)
		b.logger.Debug().
			Int("attacker_id", attacker.ID()).
			Int("defender_id", defender.ID()).
			Int("damage", damage).
			Int("defender_hp", defender.HP()).
			Bool("killed", killed).
			Msg("Melee resolved")

		b.bus.Publish(events.NewAttackResolvedEvent(b.id, attacker.ID(), defender.ID(), damage, defender.HP(), killed))
		b.publishStats(defender)
		if killed {
			b.logger.Info().
				Int("unit_id", defender.ID()).
				Str("name", defender.Name()).
				Int("killer_id", attacker.ID()).
				Msg("Unit died")
			b.bus.Publish(events.NewUnitDiedEvent(b.id, events.ViewOf(defender), attacker.ID()))
		}
	}))
}

// wasteAp reports amount AP already spent with no effect
func (b *Battle) wasteAp(u *units.Unit, amount int, reason string) {
	b.logger.Debug().
		Int("unit_id", u.ID()).
		Int("amount", amount).
		Str("reason", reason).
		Msg("AP wasted")
	b.bus.Publish(events.NewAPWastedEvent(b.id, u.ID(), amount, reason))
	b.publishStats(u)
}
