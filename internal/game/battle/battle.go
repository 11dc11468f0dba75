// Package battle runs one tactical battle: the turn queue, whose unit acts,
// what it may do, and how moves and melee strikes resolve.
package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
	"github.com/mitchelldurbincs/GridTactics/internal/game/states"
	"github.com/mitchelldurbincs/GridTactics/internal/game/timing"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

const (
	DefaultCreateMapDelay = time.Second
	DefaultMoveDuration   = 250 * time.Millisecond
	DefaultStrikeDuration = 600 * time.Millisecond
)

// Config holds the collaborators and tuning for a battle. Only Setup is
// required.
type Config struct {
	Setup    Setup
	BattleID string
	Logger   zerolog.Logger

	// Bus receives every battle event. A private bus is created when nil.
	Bus events.Bus

	// Scheduler drives the setup delay. It is advanced by Update.
	Scheduler *timing.Scheduler

	// Presenter animates units. When nil a ScheduledPresenter on
	// Scheduler is used.
	Presenter units.Presenter

	Tracer trace.Tracer

	CreateMapDelay time.Duration
	MaxHistory     int
}

// Battle is the tactical state machine. It is single-owner: every method
// must be called from the goroutine that drives Update.
type Battle struct {
	id        string
	ctx       context.Context
	logger    zerolog.Logger
	bus       events.Bus
	sched     *timing.Scheduler
	presenter units.Presenter
	tracer    trace.Tracer
	machine   *states.Machine[states.GamePhase]

	setup          Setup
	createMapDelay time.Duration

	grid     *core.GridMap
	roster   []*units.Unit
	queue    []*units.Unit
	current  *units.Unit
	selected *units.Unit
	targets  []events.Target
	pending  *operation
	outcome  Outcome
	turn     int
	turnCtx  context.Context
	turnSpan trace.Span
}

// New validates the setup and wires the battle. The battle sits idle until
// Start.
func New(ctx context.Context, cfg Config) (*Battle, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := cfg.Setup.Validate(); err != nil {
		return nil, fmt.Errorf("invalid battle setup: %w", err)
	}

	if cfg.BattleID == "" {
		cfg.BattleID = uuid.NewString()
	}
	logger := cfg.Logger.With().
		Str("component", "Battle").
		Str("battle_id", cfg.BattleID).
		Logger()

	if cfg.Bus == nil {
		cfg.Bus = events.NewEventBus(logger)
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = timing.NewScheduler()
	}
	if cfg.Presenter == nil {
		cfg.Presenter = units.NewScheduledPresenter(cfg.Scheduler, DefaultMoveDuration, DefaultStrikeDuration)
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("grid-tactics/battle")
	}
	if cfg.CreateMapDelay < 0 {
		cfg.CreateMapDelay = 0
	}

	b := &Battle{
		id:             cfg.BattleID,
		ctx:            ctx,
		logger:         logger,
		bus:            cfg.Bus,
		sched:          cfg.Scheduler,
		presenter:      cfg.Presenter,
		tracer:         cfg.Tracer,
		setup:          cfg.Setup,
		createMapDelay: cfg.CreateMapDelay,
	}

	opts := []states.Option[states.GamePhase]{
		states.WithTransitionRule(states.TacticalRule),
		states.WithObserver(b.onTransition),
	}
	if cfg.MaxHistory > 0 {
		opts = append(opts, states.WithHistorySize[states.GamePhase](cfg.MaxHistory))
	}
	b.machine = states.NewMachine(logger, opts...)
	b.registerPhases()

	logger.Info().
		Int("width", cfg.Setup.Width).
		Int("height", cfg.Setup.Height).
		Int("units", len(cfg.Setup.Units)).
		Msg("Battle created")

	return b, nil
}

// Start enters CREATE_MAP. Calling it twice panics.
func (b *Battle) Start() {
	if _, started := b.machine.Current(); started {
		panic("battle: Start called twice")
	}
	b.machine.SetState(states.PhaseCreateMap, "battle start")
}

// Update advances timers by dt, then ticks the current phase
func (b *Battle) Update(dt time.Duration) {
	b.sched.Advance(dt)
	b.machine.Update(dt)
}

func (b *Battle) registerPhases() {
	b.machine.Register(states.PhaseCreateMap, states.Hooks{OnEnter: b.enterCreateMap})
	b.machine.Register(states.PhaseTurnStart, states.Hooks{OnEnter: b.enterTurnStart})
	b.machine.Register(states.PhaseUnitStart, states.Hooks{OnEnter: b.enterUnitStart})
	b.machine.Register(states.PhaseUnitWaitSelection, states.Hooks{OnUpdate: b.updateWaitSelection})
	b.machine.Register(states.PhaseUnitWaitAction, states.Hooks{})
	b.machine.Register(states.PhaseUnitAutoSelectAction, states.Hooks{OnEnter: b.enterAutoSelectAction})
	b.machine.Register(states.PhaseUnitEnd, states.Hooks{OnEnter: b.enterUnitEnd})
	b.machine.Register(states.PhaseTurnEnd, states.Hooks{OnEnter: b.enterTurnEnd})
	b.machine.Register(states.PhaseGameOver, states.Hooks{OnEnter: b.enterGameOver})

	for _, p := range states.AllPhases {
		if !b.machine.IsRegistered(p) {
			core.Unreachable("phase", p)
		}
	}
}

func (b *Battle) onTransition(tr states.Transition[states.GamePhase]) {
	b.logger.Info().
		Str("from_state", tr.From.String()).
		Str("to_state", tr.To.String()).
		Str("reason", tr.Reason).
		Int("turn", b.turn).
		Msg("Battle phase changed")

	from := ""
	if !tr.Initial {
		from = tr.From.String()
	}
	b.bus.Publish(events.NewStateTransitionEvent(b.id, from, tr.To.String(), tr.Reason))
}

func (b *Battle) setPhase(p states.GamePhase, reason string) {
	b.machine.SetState(p, reason)
}

// ID returns the battle ID stamped on every event
func (b *Battle) ID() string { return b.id }

// Bus returns the event bus the battle publishes to
func (b *Battle) Bus() events.Bus { return b.bus }

// Scheduler returns the scheduler Update advances
func (b *Battle) Scheduler() *timing.Scheduler { return b.sched }

// Map returns the battle map, or nil before CREATE_MAP
func (b *Battle) Map() *core.GridMap { return b.grid }

// Units returns the roster, dead units included, in ID order
func (b *Battle) Units() []*units.Unit {
	return append([]*units.Unit(nil), b.roster...)
}

// Unit looks up a unit by ID
func (b *Battle) Unit(id int) (*units.Unit, bool) {
	for _, u := range b.roster {
		if u.ID() == id {
			return u, true
		}
	}
	return nil, false
}

// UnitAt returns the living unit on c, if any
func (b *Battle) UnitAt(c core.Coordinate) (*units.Unit, bool) {
	for _, u := range b.roster {
		if u.IsAlive() && u.Position() == c {
			return u, true
		}
	}
	return nil, false
}

// Phase returns the current phase; ok is false before Start
func (b *Battle) Phase() (states.GamePhase, bool) { return b.machine.Current() }

// History returns the recorded phase transitions
func (b *Battle) History() []states.Transition[states.GamePhase] { return b.machine.History() }

// CurrentUnit returns the acting unit, or nil between turns
func (b *Battle) CurrentUnit() *units.Unit { return b.current }

// SelectedUnit returns the selected player unit, or nil
func (b *Battle) SelectedUnit() *units.Unit { return b.selected }

// Targets returns the highlighted legal actions of the selected unit
func (b *Battle) Targets() []events.Target {
	return append([]events.Target(nil), b.targets...)
}

// Pending reports whether a move or strike is waiting for its presenter
func (b *Battle) Pending() bool { return b.pending != nil }

// Outcome is OutcomeNone until GAME_OVER
func (b *Battle) Outcome() Outcome { return b.outcome }

// Turn returns the number of turns started so far
func (b *Battle) Turn() int { return b.turn }

// QueueIDs returns the IDs of the units still waiting to act this turn
func (b *Battle) QueueIDs() []int {
	ids := make([]int, len(b.queue))
	for i, u := range b.queue {
		ids[i] = u.ID()
	}
	return ids
}

func (b *Battle) player() *units.Unit {
	for _, u := range b.roster {
		if u.Faction() == units.FactionPlayer {
			return u
		}
	}
	return nil
}

func (b *Battle) publishStats(u *units.Unit) {
	b.bus.Publish(events.NewUnitStatsChangedEvent(b.id, events.ViewOf(u)))
}
