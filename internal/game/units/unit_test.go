package units

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/timing"
)

func knightStats() StatBlock {
	return StatBlock{
		Name:      "Knight",
		AssetKey:  "UNITS",
		Level:     1,
		MaxHP:     25,
		CurrentHP: 25,
		MaxAP:     3,
		CurrentAP: 3,
		Attack:    4,
	}
}

func newKnight(t *testing.T) *Unit {
	t.Helper()
	u, err := New(1, FactionPlayer, knightStats(), core.NewCoordinate(3, 1), CardinalActions())
	require.NoError(t, err)
	return u
}

type fakePresenter struct {
	moves   [][2]core.Coordinate
	strikes []core.Coordinate
	faced   []core.Direction
	pending []func()
}

func (p *fakePresenter) Move(_ *Unit, from, to core.Coordinate, done func()) {
	p.moves = append(p.moves, [2]core.Coordinate{from, to})
	p.pending = append(p.pending, done)
}

func (p *fakePresenter) Strike(_ *Unit, target core.Coordinate, done func()) {
	p.strikes = append(p.strikes, target)
	p.pending = append(p.pending, done)
}

func (p *fakePresenter) Face(_ *Unit, d core.Direction) {
	p.faced = append(p.faced, d)
}

func TestNew(t *testing.T) {
	u := newKnight(t)

	assert.Equal(t, 1, u.ID())
	assert.Equal(t, FactionPlayer, u.Faction())
	assert.Equal(t, "Knight", u.Name())
	assert.Equal(t, 1, u.Level())
	assert.Equal(t, 4, u.Attack())
	assert.Equal(t, "UNITS", u.AssetKey())
	assert.Equal(t, core.NewCoordinate(3, 1), u.Position())
	assert.Equal(t, 25, u.HP())
	assert.Equal(t, 3, u.AP())
	assert.True(t, u.IsAlive())
	assert.True(t, u.HasAp())
	assert.Len(t, u.Actions(), 8)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StatBlock)
	}{
		{"zero max hp", func(s *StatBlock) { s.MaxHP = 0 }},
		{"hp above max", func(s *StatBlock) { s.CurrentHP = 30 }},
		{"negative hp", func(s *StatBlock) { s.CurrentHP = -1 }},
		{"ap above max", func(s *StatBlock) { s.CurrentAP = 4 }},
		{"negative max ap", func(s *StatBlock) { s.MaxAP = -1; s.CurrentAP = 0 }},
		{"negative attack", func(s *StatBlock) { s.Attack = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := knightStats()
			tt.mutate(&stats)
			_, err := New(1, FactionPlayer, stats, core.NewCoordinate(1, 1), nil)
			assert.ErrorIs(t, err, ErrInvalidStats)
		})
	}

	_, err := New(1, Faction(5), knightStats(), core.NewCoordinate(1, 1), nil)
	assert.ErrorIs(t, err, ErrUnknownFaction)
}

func TestNew_CorpseHasNoAp(t *testing.T) {
	stats := knightStats()
	stats.CurrentHP = 0
	u, err := New(2, FactionEnemy, stats, core.NewCoordinate(5, 5), nil)
	require.NoError(t, err)

	assert.False(t, u.IsAlive())
	assert.Equal(t, 0, u.AP())

	u.ResetAp()
	assert.Equal(t, 0, u.AP(), "corpses never regain AP")
}

func TestUnit_ActionsAreCopied(t *testing.T) {
	u := newKnight(t)
	actions := u.Actions()
	actions[0].Kind = ActionAttackMelee
	assert.Equal(t, ActionMove, u.Actions()[0].Kind)
}

func TestUnit_ApBookkeeping(t *testing.T) {
	u := newKnight(t)
	u.UseAp()
	u.ResetAp()
	assert.Equal(t, u.MaxAP(), u.AP())

	for i := 0; i < u.MaxAP(); i++ {
		assert.True(t, u.HasAp())
		u.UseAp()
	}
	assert.False(t, u.HasAp())

	for i := 0; i < 5; i++ {
		u.UseAp()
		assert.Equal(t, 0, u.AP(), "AP must never go negative")
	}

	u.ResetAp()
	u.SpendAllAp()
	assert.False(t, u.HasAp())
}

func TestUnit_TakeDamage(t *testing.T) {
	t.Run("partial damage", func(t *testing.T) {
		u := newKnight(t)
		killed := u.TakeDamage(5)
		assert.False(t, killed)
		assert.Equal(t, 20, u.HP())
		assert.Equal(t, 3, u.AP())
		assert.True(t, u.IsAlive())
	})

	t.Run("exact lethal damage", func(t *testing.T) {
		u := newKnight(t)
		killed := u.TakeDamage(25)
		assert.True(t, killed)
		assert.Equal(t, 0, u.HP())
		assert.Equal(t, 0, u.AP())
		assert.False(t, u.IsAlive())
	})

	t.Run("overkill clamps at zero", func(t *testing.T) {
		u := newKnight(t)
		u.TakeDamage(1000)
		assert.Equal(t, 0, u.HP())
		assert.Equal(t, 0, u.AP())
		assert.False(t, u.HasAp())
	})

	t.Run("hitting a corpse is a no-op", func(t *testing.T) {
		u := newKnight(t)
		assert.True(t, u.TakeDamage(25))
		assert.False(t, u.TakeDamage(3), "a corpse cannot be killed twice")
		assert.Equal(t, 0, u.HP())
	})

	t.Run("non-positive damage ignored", func(t *testing.T) {
		u := newKnight(t)
		u.TakeDamage(0)
		u.TakeDamage(-4)
		assert.Equal(t, 25, u.HP())
	})
}

func TestUnit_Move(t *testing.T) {
	u := newKnight(t)
	p := &fakePresenter{}
	u.Attach(p)

	completed := false
	u.Move(core.NewCoordinate(3, 2), func() { completed = true })

	assert.Equal(t, core.NewCoordinate(3, 2), u.Position(), "logical position updates immediately")
	assert.False(t, completed, "completion waits for the presenter")
	require.Len(t, p.moves, 1)
	assert.Equal(t, [2]core.Coordinate{{X: 3, Y: 1}, {X: 3, Y: 2}}, p.moves[0])

	p.pending[0]()
	assert.True(t, completed)
}

func TestUnit_Strike(t *testing.T) {
	u := newKnight(t)
	p := &fakePresenter{}
	u.Attach(p)

	done := false
	u.Strike(core.NewCoordinate(2, 1), func() { done = true })

	assert.Equal(t, core.NewCoordinate(3, 1), u.Position(), "striking does not move the unit")
	assert.Equal(t, []core.Coordinate{{X: 2, Y: 1}}, p.strikes)
	assert.False(t, done)
	p.pending[0]()
	assert.True(t, done)
}

func TestUnit_MoveWithoutPresenterPanics(t *testing.T) {
	u := newKnight(t)
	assert.Panics(t, func() { u.Move(core.NewCoordinate(3, 2), func() {}) })
}

func TestUnit_Face(t *testing.T) {
	u := newKnight(t)
	p := &fakePresenter{}
	u.Attach(p)

	u.FaceToward(core.NewCoordinate(2, 1))
	assert.Equal(t, core.West, u.Facing())

	u.FaceToward(u.Position())
	assert.Equal(t, core.West, u.Facing(), "facing own cell keeps the current facing")
	assert.Equal(t, []core.Direction{core.West}, p.faced)
}

func TestScheduledPresenter(t *testing.T) {
	sched := timing.NewScheduler()
	u := newKnight(t)
	u.Attach(NewScheduledPresenter(sched, 200*time.Millisecond, 500*time.Millisecond))

	moved, struck := false, false
	u.Move(core.NewCoordinate(4, 1), func() { moved = true })
	u.Strike(core.NewCoordinate(5, 1), func() { struck = true })

	assert.False(t, moved, "completion is never synchronous")
	sched.Advance(200 * time.Millisecond)
	assert.True(t, moved)
	assert.False(t, struck)
	sched.Advance(300 * time.Millisecond)
	assert.True(t, struck)
}

func TestFactionParsing(t *testing.T) {
	f, err := ParseFaction("enemy")
	require.NoError(t, err)
	assert.Equal(t, FactionEnemy, f)

	var decoded Faction
	require.NoError(t, decoded.UnmarshalText([]byte("Player")))
	assert.Equal(t, FactionPlayer, decoded)

	_, err = ParseFaction("neutral")
	assert.ErrorIs(t, err, ErrUnknownFaction)

	assert.Equal(t, "Faction(9)", Faction(9).String())
}

func TestActionKindParsing(t *testing.T) {
	tests := []struct {
		in       string
		expected ActionKind
	}{
		{"MOVE", ActionMove},
		{"move", ActionMove},
		{"ATTACK_MELEE", ActionAttackMelee},
		{"melee", ActionAttackMelee},
	}
	for _, tt := range tests {
		kind, err := ParseActionKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, kind, tt.in)
	}

	_, err := ParseActionKind("fireball")
	assert.ErrorIs(t, err, ErrUnknownActionKind)
}

func TestCardinalActions(t *testing.T) {
	actions := CardinalActions()
	require.Len(t, actions, 8)

	origin := core.NewCoordinate(4, 4)
	moves, attacks := 0, 0
	for _, a := range actions {
		assert.Equal(t, 1, core.ManhattanDistance(origin, a.Target(origin)))
		switch a.Kind {
		case ActionMove:
			moves++
		case ActionAttackMelee:
			attacks++
		}
	}
	assert.Equal(t, 4, moves)
	assert.Equal(t, 4, attacks)
}
