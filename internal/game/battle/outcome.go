package battle

import "fmt"

// Outcome is how a battle ended
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeVictory:
		return "Victory"
	case OutcomeDefeat:
		return "Defeat"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}
