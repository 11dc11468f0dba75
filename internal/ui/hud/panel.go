// Package hud keeps the side-panel model both clients draw: unit stats,
// the turn counter and a short combat log. It is fed from the event bus.
package hud

import (
	"fmt"
	"sort"

	"github.com/mitchelldurbincs/GridTactics/internal/game/events"
)

// DefaultLogSize is how many log lines a panel keeps
const DefaultLogSize = 6

// Panel is an events.Subscriber. Like the battle, it is owned by the game
// loop goroutine.
type Panel struct {
	id      string
	logSize int

	turn     int
	phase    string
	activeID int
	outcome  string
	stats    map[int]events.UnitView
	names    map[int]string
	log      []string
}

func NewPanel(id string, logSize int) *Panel {
	if logSize <= 0 {
		logSize = DefaultLogSize
	}
	return &Panel{
		id:      id,
		logSize: logSize,
		stats:   make(map[int]events.UnitView),
		names:   make(map[int]string),
	}
}

func (p *Panel) ID() string { return p.id }

func (p *Panel) InterestedIn(eventType string) bool {
	switch eventType {
	case events.TypeBattleStarted,
		events.TypeStateTransition,
		events.TypeTurnStarted,
		events.TypeActiveUnitChanged,
		events.TypeUnitStatsChanged,
		events.TypeAttackResolved,
		events.TypeUnitDied,
		events.TypeAPWasted,
		events.TypeGameOver:
		return true
	}
	return false
}

func (p *Panel) HandleEvent(event events.Event) {
	switch e := event.(type) {
	case *events.BattleStartedEvent:
		for _, u := range e.Units {
			p.track(u)
		}
	case *events.StateTransitionEvent:
		p.phase = e.ToState
	case *events.TurnStartedEvent:
		p.turn = e.Turn
		p.push(fmt.Sprintf("Turn %d", e.Turn))
	case *events.ActiveUnitChangedEvent:
		p.activeID = e.Unit.ID
		p.track(e.Unit)
	case *events.UnitStatsChangedEvent:
		p.track(e.Unit)
	case *events.AttackResolvedEvent:
		p.push(fmt.Sprintf("%s hits %s for %d", p.name(e.AttackerID), p.name(e.DefenderID), e.Damage))
	case *events.UnitDiedEvent:
		p.track(e.Unit)
		p.push(fmt.Sprintf("%s dies", e.Unit.Name))
	case *events.APWastedEvent:
		p.push(fmt.Sprintf("%s wastes %d AP (%s)", p.name(e.UnitID), e.Amount, e.Reason))
	case *events.GameOverEvent:
		p.outcome = e.Outcome
		p.push(e.Outcome + "!")
	}
}

func (p *Panel) track(u events.UnitView) {
	p.stats[u.ID] = u
	p.names[u.ID] = u.Name
}

func (p *Panel) name(id int) string {
	if n, ok := p.names[id]; ok {
		return n
	}
	return fmt.Sprintf("unit %d", id)
}

func (p *Panel) push(line string) {
	p.log = append(p.log, line)
	if over := len(p.log) - p.logSize; over > 0 {
		p.log = append(p.log[:0], p.log[over:]...)
	}
}

// Turn returns the last started turn
func (p *Panel) Turn() int { return p.turn }

// Phase returns the current phase name
func (p *Panel) Phase() string { return p.phase }

// Outcome is empty until the battle is over
func (p *Panel) Outcome() string { return p.outcome }

// Active returns the acting unit's latest snapshot
func (p *Panel) Active() (events.UnitView, bool) {
	u, ok := p.stats[p.activeID]
	return u, ok
}

// Units returns the latest snapshot of every known unit in ID order
func (p *Panel) Units() []events.UnitView {
	out := make([]events.UnitView, 0, len(p.stats))
	for _, u := range p.stats {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StatLine formats one unit for the panel
func StatLine(u events.UnitView) string {
	if !u.Alive {
		return fmt.Sprintf("%-10s dead", u.Name)
	}
	return fmt.Sprintf("%-10s HP %2d/%-2d AP %d/%d", u.Name, u.HP, u.MaxHP, u.AP, u.MaxAP)
}

// Log returns the most recent log lines, oldest first
func (p *Panel) Log() []string {
	return append([]string(nil), p.log...)
}
