package states

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Phase is any closed enumeration usable as a state name
type Phase interface {
	comparable
	fmt.Stringer
}

// Hooks are the callbacks registered for one state
type Hooks struct {
	// OnEnter runs synchronously when the state becomes current. It may
	// call SetState itself; that nested transition completes before the
	// outer SetState returns.
	OnEnter func()

	// OnUpdate runs once per tick while the state is current. Optional.
	OnUpdate func(dt time.Duration)
}

// Transition represents a state transition in the history
type Transition[P Phase] struct {
	From      P
	To        P
	Initial   bool
	Timestamp time.Time
	Reason    string
}

// Option configures a Machine
type Option[P Phase] func(*Machine[P])

// WithTransitionRule restricts which transitions are legal. A transition
// the rule rejects is a programming error and panics.
func WithTransitionRule[P Phase](rule func(from, to P) bool) Option[P] {
	return func(m *Machine[P]) { m.allowed = rule }
}

// WithHistorySize caps the number of transitions kept in history
func WithHistorySize[P Phase](n int) Option[P] {
	return func(m *Machine[P]) {
		if n > 0 {
			m.maxHistorySize = n
		}
	}
}

// WithObserver registers a callback run for every transition, after the
// transition is recorded and before the new state's OnEnter runs.
func WithObserver[P Phase](fn func(Transition[P])) Option[P] {
	return func(m *Machine[P]) { m.observers = append(m.observers, fn) }
}

// Machine is a registry of named states driven by direct calls. It holds
// no lock: it belongs to a single cooperative owner that never enters it
// from two goroutines.
type Machine[P Phase] struct {
	current        P
	started        bool
	states         map[P]Hooks
	allowed        func(from, to P) bool
	observers      []func(Transition[P])
	history        []Transition[P]
	maxHistorySize int
	logger         zerolog.Logger
}

// NewMachine creates an empty machine. Register states before the first
// SetState.
func NewMachine[P Phase](logger zerolog.Logger, opts ...Option[P]) *Machine[P] {
	m := &Machine[P]{
		states:         make(map[P]Hooks),
		history:        make([]Transition[P], 0, 64),
		maxHistorySize: 1000,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds or replaces the hooks for a state
func (m *Machine[P]) Register(p P, hooks Hooks) {
	m.states[p] = hooks
}

// IsRegistered reports whether hooks exist for p
func (m *Machine[P]) IsRegistered(p P) bool {
	_, ok := m.states[p]
	return ok
}

// Current returns the current state; ok is false before the first SetState
func (m *Machine[P]) Current() (p P, ok bool) {
	return m.current, m.started
}

// CanTransitionTo checks the transition rule from the current state
func (m *Machine[P]) CanTransitionTo(target P) bool {
	if !m.IsRegistered(target) {
		return false
	}
	if !m.started || m.allowed == nil {
		return true
	}
	return m.allowed(m.current, target)
}

// SetState makes target current and runs its OnEnter. Unknown states and
// transitions rejected by the rule panic.
func (m *Machine[P]) SetState(target P, reason string) {
	hooks, ok := m.states[target]
	if !ok {
		panic(fmt.Sprintf("states: no hooks registered for %s", target))
	}
	if m.started && m.allowed != nil && !m.allowed(m.current, target) {
		panic(fmt.Sprintf("states: illegal transition %s -> %s (%s)", m.current, target, reason))
	}

	transition := Transition[P]{
		From:      m.current,
		To:        target,
		Initial:   !m.started,
		Timestamp: time.Now(),
		Reason:    reason,
	}
	m.addToHistory(transition)

	m.current = target
	m.started = true

	m.logger.Debug().
		Str("from_state", transition.From.String()).
		Str("to_state", target.String()).
		Str("reason", reason).
		Bool("initial", transition.Initial).
		Msg("State transition")

	for _, observe := range m.observers {
		observe(transition)
	}

	if hooks.OnEnter != nil {
		hooks.OnEnter()
	}
}

// Update forwards a tick to the current state's OnUpdate, if any
func (m *Machine[P]) Update(dt time.Duration) {
	if !m.started {
		return
	}
	if hooks := m.states[m.current]; hooks.OnUpdate != nil {
		hooks.OnUpdate(dt)
	}
}

// addToHistory adds a transition to the history, maintaining max size
func (m *Machine[P]) addToHistory(transition Transition[P]) {
	m.history = append(m.history, transition)

	if len(m.history) > m.maxHistorySize {
		m.history = m.history[len(m.history)-m.maxHistorySize:]
	}
}

// History returns a copy of the transition history
func (m *Machine[P]) History() []Transition[P] {
	history := make([]Transition[P], len(m.history))
	copy(history, m.history)
	return history
}
