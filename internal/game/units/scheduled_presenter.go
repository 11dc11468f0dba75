package units

import (
	"time"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/timing"
)

// ScheduledPresenter settles transitions on a timing.Scheduler without
// drawing anything. It backs headless battles and the terminal client,
// where a move or strike is just a delay.
type ScheduledPresenter struct {
	sched          *timing.Scheduler
	moveDuration   time.Duration
	strikeDuration time.Duration
}

func NewScheduledPresenter(sched *timing.Scheduler, move, strike time.Duration) *ScheduledPresenter {
	return &ScheduledPresenter{sched: sched, moveDuration: move, strikeDuration: strike}
}

func (p *ScheduledPresenter) Move(_ *Unit, _, _ core.Coordinate, done func()) {
	p.sched.After(p.moveDuration, done)
}

func (p *ScheduledPresenter) Strike(_ *Unit, _ core.Coordinate, done func()) {
	p.sched.After(p.strikeDuration, done)
}

func (p *ScheduledPresenter) Face(*Unit, core.Direction) {}
