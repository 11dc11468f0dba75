package testutil

import (
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// Call is one presenter request
type Call struct {
	Kind   units.ActionKind
	UnitID int
	From   core.Coordinate
	To     core.Coordinate
}

// RecordingPresenter holds completion callbacks until the test settles
// them, so a test can observe the state between initiation and settlement.
type RecordingPresenter struct {
	Calls   []Call
	Facings []core.Direction
	pending []func()
}

func NewRecordingPresenter() *RecordingPresenter {
	return &RecordingPresenter{}
}

func (p *RecordingPresenter) Move(u *units.Unit, from, to core.Coordinate, done func()) {
	p.Calls = append(p.Calls, Call{Kind: units.ActionMove, UnitID: u.ID(), From: from, To: to})
	p.pending = append(p.pending, done)
}

func (p *RecordingPresenter) Strike(u *units.Unit, target core.Coordinate, done func()) {
	p.Calls = append(p.Calls, Call{Kind: units.ActionAttackMelee, UnitID: u.ID(), From: u.Position(), To: target})
	p.pending = append(p.pending, done)
}

func (p *RecordingPresenter) Face(_ *units.Unit, d core.Direction) {
	p.Facings = append(p.Facings, d)
}

// Pending returns the number of unsettled callbacks
func (p *RecordingPresenter) Pending() int { return len(p.pending) }

// Settle fires the oldest pending callback. It reports false when nothing
// is pending.
func (p *RecordingPresenter) Settle() bool {
	if len(p.pending) == 0 {
		return false
	}
	done := p.pending[0]
	p.pending = p.pending[1:]
	done()
	return true
}

// SettleAll keeps settling, including callbacks issued by earlier
// settlements, until nothing is pending. It returns how many fired.
func (p *RecordingPresenter) SettleAll() int {
	n := 0
	for p.Settle() {
		n++
	}
	return n
}

// LastCall returns the most recent request
func (p *RecordingPresenter) LastCall() (Call, bool) {
	if len(p.Calls) == 0 {
		return Call{}, false
	}
	return p.Calls[len(p.Calls)-1], true
}
