// Package anim tweens unit sprites between cells and reports completion
// back to the battle once a tween has played out.
package anim

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

// StrikeReach is how far toward its target a striking unit travels, in tiles
const StrikeReach = 0.4

type stage int

const (
	stageMove stage = iota
	stageAdvance
	stageImpact
	stageReturn
)

type tween struct {
	stage    stage
	from     core.Coordinate
	to       core.Coordinate
	elapsed  time.Duration
	duration time.Duration
	done     func()
}

// Durations configures how long each part of a transition plays
type Durations struct {
	Move   time.Duration
	Attack time.Duration
	Impact time.Duration
}

// Presenter implements units.Presenter for the graphical client. It is
// driven by Update from the game loop, so completions are always delivered
// after the call that started the transition has returned.
type Presenter struct {
	logger    zerolog.Logger
	durations Durations
	tweens    map[int]*tween
	facing    map[int]core.Direction
}

func NewPresenter(logger zerolog.Logger, d Durations) *Presenter {
	return &Presenter{
		logger:    logger.With().Str("component", "AnimPresenter").Logger(),
		durations: d,
		tweens:    make(map[int]*tween),
		facing:    make(map[int]core.Direction),
	}
}

func (p *Presenter) Move(u *units.Unit, from, to core.Coordinate, done func()) {
	p.start(u.ID(), &tween{stage: stageMove, from: from, to: to, duration: p.durations.Move, done: done})
}

// Strike plays advance, impact and return. The total length is
// Attack + Impact; the advance and return halves share Attack.
func (p *Presenter) Strike(u *units.Unit, target core.Coordinate, done func()) {
	p.start(u.ID(), &tween{
		stage:    stageAdvance,
		from:     u.Position(),
		to:       target,
		duration: p.durations.Attack / 2,
		done:     done,
	})
}

func (p *Presenter) Face(u *units.Unit, d core.Direction) {
	p.facing[u.ID()] = d
}

func (p *Presenter) start(id int, tw *tween) {
	if _, busy := p.tweens[id]; busy {
		p.logger.Warn().Int("unit_id", id).Msg("Replacing unfinished tween")
	}
	p.tweens[id] = tw
}

// Update advances every tween by dt and delivers completions for the ones
// that finished. Transitions started from a completion callback begin on
// the next Update.
func (p *Presenter) Update(dt time.Duration) {
	if len(p.tweens) == 0 {
		return
	}

	ids := make([]int, 0, len(p.tweens))
	for id := range p.tweens {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var finished []func()
	for _, id := range ids {
		tw := p.tweens[id]
		tw.elapsed += dt
		for tw.elapsed >= tw.duration {
			overflow := tw.elapsed - tw.duration
			if !p.nextStage(tw) {
				delete(p.tweens, id)
				finished = append(finished, tw.done)
				break
			}
			tw.elapsed = overflow
		}
	}

	for _, done := range finished {
		done()
	}
}

// nextStage moves a strike tween on to its next part. It returns false
// once the tween is over.
func (p *Presenter) nextStage(tw *tween) bool {
	switch tw.stage {
	case stageAdvance:
		tw.stage = stageImpact
		tw.duration = p.durations.Impact
		return true
	case stageImpact:
		tw.stage = stageReturn
		tw.duration = p.durations.Attack - p.durations.Attack/2
		return true
	}
	return false
}

// Busy reports whether any tween is playing
func (p *Presenter) Busy() bool { return len(p.tweens) > 0 }

// Facing returns the last facing shown for a unit
func (p *Presenter) Facing(id int) (core.Direction, bool) {
	d, ok := p.facing[id]
	return d, ok
}

// Impact reports whether a unit's strike is in its impact hold
func (p *Presenter) Impact(id int) bool {
	tw, ok := p.tweens[id]
	return ok && tw.stage == stageImpact
}

// Position returns where a unit should be drawn, in fractional tile
// coordinates. Units without a tween sit on rest.
func (p *Presenter) Position(id int, rest core.Coordinate) (x, y float64) {
	tw, ok := p.tweens[id]
	if !ok {
		return float64(rest.X), float64(rest.Y)
	}

	t := 1.0
	if tw.duration > 0 {
		t = float64(tw.elapsed) / float64(tw.duration)
		if t > 1 {
			t = 1
		}
	}

	switch tw.stage {
	case stageMove:
		return lerp(tw.from.X, tw.to.X, t), lerp(tw.from.Y, tw.to.Y, t)
	case stageAdvance:
		return lerp(tw.from.X, tw.to.X, t*StrikeReach), lerp(tw.from.Y, tw.to.Y, t*StrikeReach)
	case stageImpact:
		return lerp(tw.from.X, tw.to.X, StrikeReach), lerp(tw.from.Y, tw.to.Y, StrikeReach)
	default:
		return lerp(tw.from.X, tw.to.X, (1-t)*StrikeReach), lerp(tw.from.Y, tw.to.Y, (1-t)*StrikeReach)
	}
}

func lerp(a, b int, t float64) float64 {
	return float64(a) + (float64(b)-float64(a))*t
}
