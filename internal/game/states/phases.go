package states

import "fmt"

// GamePhase is a state of the tactical battle loop
type GamePhase int

const (
	// PhaseCreateMap - build map and roster, then wait out the setup delay
	PhaseCreateMap GamePhase = iota

	// PhaseTurnStart - refill AP and queue every living unit
	PhaseTurnStart

	// PhaseUnitStart - decide what the current unit does next
	PhaseUnitStart

	// PhaseUnitWaitSelection - player unit deselected, waiting for a click on it
	PhaseUnitWaitSelection

	// PhaseUnitWaitAction - player unit selected, waiting for a target click
	PhaseUnitWaitAction

	// PhaseUnitAutoSelectAction - enemy AI picks and runs an action
	PhaseUnitAutoSelectAction

	// PhaseUnitEnd - one action resolved
	PhaseUnitEnd

	// PhaseTurnEnd - queue drained
	PhaseTurnEnd

	// PhaseGameOver - terminal
	PhaseGameOver
)

// AllPhases lists every tactical phase in declaration order
var AllPhases = []GamePhase{
	PhaseCreateMap,
	PhaseTurnStart,
	PhaseUnitStart,
	PhaseUnitWaitSelection,
	PhaseUnitWaitAction,
	PhaseUnitAutoSelectAction,
	PhaseUnitEnd,
	PhaseTurnEnd,
	PhaseGameOver,
}

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseCreateMap:
		return "CREATE_MAP"
	case PhaseTurnStart:
		return "TURN_START"
	case PhaseUnitStart:
		return "UNIT_START"
	case PhaseUnitWaitSelection:
		return "UNIT_WAIT_SELECTION"
	case PhaseUnitWaitAction:
		return "UNIT_WAIT_ACTION"
	case PhaseUnitAutoSelectAction:
		return "UNIT_AUTO_SELECT_ACTION"
	case PhaseUnitEnd:
		return "UNIT_END"
	case PhaseTurnEnd:
		return "TURN_END"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// IsTerminal returns true if no transition leaves the phase
func (p GamePhase) IsTerminal() bool {
	return p == PhaseGameOver
}

// AcceptsInput reports whether external input events are consumed in this phase
func (p GamePhase) AcceptsInput() bool {
	return p == PhaseUnitWaitSelection || p == PhaseUnitWaitAction
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseCreateMap:
		return []GamePhase{PhaseTurnStart}
	case PhaseTurnStart:
		return []GamePhase{PhaseUnitStart, PhaseGameOver}
	case PhaseUnitStart:
		return []GamePhase{PhaseGameOver, PhaseTurnEnd, PhaseUnitStart, PhaseUnitWaitAction, PhaseUnitAutoSelectAction}
	case PhaseUnitWaitSelection:
		return []GamePhase{PhaseUnitStart, PhaseUnitWaitAction, PhaseUnitEnd}
	case PhaseUnitWaitAction:
		return []GamePhase{PhaseUnitEnd, PhaseUnitWaitSelection}
	case PhaseUnitAutoSelectAction:
		return []GamePhase{PhaseUnitEnd}
	case PhaseUnitEnd:
		return []GamePhase{PhaseUnitStart}
	case PhaseTurnEnd:
		return []GamePhase{PhaseTurnStart}
	case PhaseGameOver:
		return []GamePhase{}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// TacticalRule is the transition rule for a battle machine
func TacticalRule(from, to GamePhase) bool {
	return from.CanTransitionTo(to)
}
