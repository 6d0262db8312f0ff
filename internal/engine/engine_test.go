package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// fixedDice returns the same rolls forever. Float64 0.5 means no variance.
type fixedDice struct {
	f float64
	n int
}

func (d fixedDice) IntN(int) int     { return d.n }
func (d fixedDice) Float64() float64 { return d.f }

type stubSource struct {
	moves   map[string]game.Move
	origins map[string]game.Move
}

func (s stubSource) Lookup(k string) game.Move {
	if m, ok := s.moves[k]; ok {
		return m
	}
	return game.BasicAttack()
}

func (s stubSource) ResolveMoves(ks []string) []game.Move {
	out := make([]game.Move, 0, len(ks))
	for _, k := range ks {
		out = append(out, s.Lookup(k))
	}
	return out
}

func (s stubSource) Origin(k string) (game.Move, bool) {
	m, ok := s.origins[k]
	return m, ok
}

func newActor(name string, atk, def, hp, mp int) *game.Actor {
	return game.NewActor(game.Template{Key: name, Name: name, HitPoints: hp, Mana: mp, Attack: atk, Defense: def})
}

func noVariance(src MoveSource) *Engine {
	return New(src, fixedDice{f: 0.5})
}

func TestDamage_VarianceStaysWithinBounds(t *testing.T) {
	e := New(stubSource{}, SeededDice(42))
	attacker := newActor("A", 100, 0, 100, 0)
	defender := newActor("D", 0, 3, 100000, 0)

	for i := 0; i < 2000; i++ {
		defender.CurrentHitPoints = defender.MaxHitPoints
		res := e.Damage(attacker, defender, 60, "physical")
		require.GreaterOrEqual(t, res.Damage, 139)
		require.LessOrEqual(t, res.Damage, 175)
		require.Equal(t, defender.MaxHitPoints-res.Damage, defender.CurrentHitPoints)
	}
}

func TestDamage_WeaknessOverride(t *testing.T) {
	e := noVariance(stubSource{})
	attacker := newActor("Hero", 10, 0, 100, 0)
	slime := newActor("Slime", 0, 4, 100, 0)
	slime.Affinities = map[string]float64{"fire": 2}

	res := e.Damage(attacker, slime, 18, "fire")
	assert.Equal(t, game.ResolutionResult{Damage: 48, Multiplier: 2, Override: true}, res)
	assert.Equal(t, 52, slime.CurrentHitPoints)

	res = e.Damage(attacker, slime, 18, "ice")
	assert.Equal(t, 24, res.Damage)
	assert.False(t, res.Override)
	assert.Equal(t, NeutralMultiplier, res.Multiplier)
}

func TestDamage_MinimumOne(t *testing.T) {
	tests := []struct {
		name string
		mult float64
		atk  int
		def  int
	}{
		{name: "immune", mult: 0, atk: 50, def: 0},
		{name: "absorb", mult: -1, atk: 50, def: 0},
		{name: "defense dominates", mult: 1, atk: 1, def: 500},
		{name: "tiny resist", mult: 0.01, atk: 10, def: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := noVariance(stubSource{})
			a := newActor("A", tt.atk, 0, 10, 0)
			d := newActor("D", 0, tt.def, 10, 0)
			d.Affinities = map[string]float64{"dark": tt.mult}
			res := e.Damage(a, d, 0, "dark")
			assert.Equal(t, 1, res.Damage)
			assert.Equal(t, 9, d.CurrentHitPoints)
		})
	}
}

func TestDamage_FloorsHealthAndKills(t *testing.T) {
	e := noVariance(stubSource{})
	a := newActor("A", 500, 0, 10, 0)
	d := newActor("D", 0, 0, 20, 0)

	e.Damage(a, d, 0, "physical")
	assert.Equal(t, 0, d.CurrentHitPoints)
	assert.False(t, d.Alive)
}

func TestResolveAffinity(t *testing.T) {
	d := newActor("D", 0, 0, 10, 0)
	d.Affinities = map[string]float64{"ice": 0.5}

	mult, override := ResolveAffinity("ice", d)
	assert.Equal(t, 0.5, mult)
	assert.True(t, override)

	mult, override = ResolveAffinity("fire", d)
	assert.Equal(t, 1.0, mult)
	assert.False(t, override)
}

func TestResourceGate(t *testing.T) {
	agi := game.Move{Key: "agi", Type: game.MoveAttack, CostType: game.CostMP, CostAmount: 3}
	free := game.Move{Key: "slash", Type: game.MoveAttack, CostType: game.CostNone, CostAmount: 3}

	broke := newActor("P", 0, 0, 10, 1)
	broke.CurrentMana = 0
	assert.False(t, Authorize(broke, agi))
	assert.Equal(t, 0, broke.CurrentMana)
	assert.True(t, Authorize(broke, free))

	rich := newActor("R", 0, 0, 10, 10)
	assert.True(t, Authorize(rich, agi))
	assert.Equal(t, 7, rich.CurrentMana)

	poor := newActor("O", 0, 0, 10, 10)
	poor.CurrentMana = 2
	assert.Equal(t, 2, ChargeLenient(poor, agi))
	assert.Equal(t, 0, poor.CurrentMana)
}

func TestSelectMove(t *testing.T) {
	weak := game.Move{Key: "tackle", Type: game.MoveAttack, Power: game.IntPtr(8)}
	strongFree := game.Move{Key: "slash", Type: game.MoveAttack, Power: game.IntPtr(14)}
	strongCost := game.Move{Key: "lunge", Type: game.MoveAttack, Power: game.IntPtr(145), CostType: game.CostMP, CostAmount: 5}
	nullPower := game.Move{Key: "poisma", Type: game.MoveStatus}
	twin := game.Move{Key: "twin", Type: game.MoveAttack, Power: game.IntPtr(14)}

	self := newActor("O", 0, 0, 10, 10)

	assert.Equal(t, "lunge", SelectMove([]game.Move{weak, strongCost, strongFree}, self).Key)
	assert.Equal(t, "slash", SelectMove([]game.Move{nullPower, strongFree, twin}, self).Key, "first wins ties")

	self.CurrentMana = 0
	assert.Equal(t, "tackle", SelectMove([]game.Move{weak, strongCost, strongFree}, self).Key, "first affordable in list order")
	assert.Equal(t, "lunge", SelectMove([]game.Move{strongCost}, self).Key, "kept when nothing is affordable")

	assert.Equal(t, game.BasicAttack(), SelectMove(nil, self))
}

func TestChooseMove_ResolvesSkills(t *testing.T) {
	src := stubSource{moves: map[string]game.Move{
		"zan": {Key: "zan", Type: game.MoveAttack, Power: game.IntPtr(20), CostType: game.CostMP, CostAmount: 4},
	}}
	e := noVariance(src)
	self := newActor("O", 0, 0, 10, 10)
	self.Skills = []string{"zan", "unknown"}

	assert.Equal(t, "zan", e.ChooseMove(self).Key)

	self.Skills = nil
	assert.Equal(t, "attack", e.ChooseMove(self).Key)
}
