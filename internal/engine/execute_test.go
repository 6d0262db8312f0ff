package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanKadrios/SMTLite/internal/game"
)

var poisma = game.Move{Key: "poisma", Name: "Poisma", Type: game.MoveStatus, Target: game.TargetEnemy, Accuracy: game.IntPtr(85), Flags: []string{game.FlagPoison}}

func TestStatus_AccuracyGate(t *testing.T) {
	tests := []struct {
		name     string
		roll     int
		poisoned bool
		tag      game.EventTag
	}{
		{name: "roll below accuracy lands", roll: 84, poisoned: true, tag: game.TagStatus},
		{name: "roll at accuracy misses", roll: 85, poisoned: false, tag: game.TagMiss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(stubSource{}, fixedDice{f: 0.5, n: tt.roll})
			caster := newActor("Hero", 0, 0, 10, 10)
			target := newActor("Pixie", 0, 0, 10, 10)
			l := NewLog(1)

			e.Resolve(l, caster, target, poisma)

			assert.Equal(t, tt.poisoned, target.Status[game.FlagPoison])
			require.Len(t, l.Events, 1)
			assert.Equal(t, tt.tag, l.Events[0].Tag)
		})
	}
}

func TestStatus_PriorityAndResist(t *testing.T) {
	e := New(stubSource{}, fixedDice{n: 0})
	both := game.Move{Key: "both", Type: game.MoveStatus, Flags: []string{game.FlagMirage, game.FlagPoison}}
	caster := newActor("Hero", 0, 0, 10, 10)
	target := newActor("Pixie", 0, 0, 10, 10)

	e.Resolve(NewLog(1), caster, target, both)
	assert.Equal(t, []string{"poison"}, target.StatusTags())

	slime := newActor("Slime", 0, 0, 10, 10)
	slime.AilmentResists = map[string]float64{"poison": 1}
	e.Resolve(NewLog(1), caster, slime, poisma)
	assert.Empty(t, slime.StatusTags())
}

func TestHeal_CureClearsCasterStatus(t *testing.T) {
	e := noVariance(stubSource{})
	patra := game.Move{Key: "patra", Type: game.MoveHeal, Target: game.TargetAlly, Flags: []string{"heal", game.FlagCureAilment}}
	caster := newActor("Hero", 0, 0, 100, 10)
	caster.Status = map[string]bool{"poison": true, "mirage": true}
	enemy := newActor("Pixie", 0, 0, 10, 10)
	enemy.Status = map[string]bool{"poison": true}

	l := NewLog(1)
	e.Resolve(l, caster, enemy, patra)

	assert.Empty(t, caster.StatusTags())
	assert.Equal(t, []string{"poison"}, enemy.StatusTags())
	require.Len(t, l.Events, 1)
}

func TestHeal_CapsAndNeverRevives(t *testing.T) {
	e := noVariance(stubSource{})
	dia := game.Move{Key: "dia", Type: game.MoveHeal, Target: game.TargetSelf, Power: game.IntPtr(10), BonusPercentMaxHP: 15}
	hero := newActor("Hero", 0, 0, 100, 10)

	hero.CurrentHitPoints = 50
	e.Resolve(NewLog(1), hero, nil, dia)
	assert.Equal(t, 75, hero.CurrentHitPoints)

	e.Resolve(NewLog(1), hero, nil, dia)
	assert.Equal(t, 100, hero.CurrentHitPoints)

	hero.TakeDamage(1000)
	e.Resolve(NewLog(1), hero, nil, dia)
	assert.Equal(t, 0, hero.CurrentHitPoints)
	assert.False(t, hero.Alive)
}

func TestSupport_StacksAndDecays(t *testing.T) {
	e := noVariance(stubSource{})
	rakukaja := game.Move{Key: "rakukaja", Type: game.MoveSupport, Target: game.TargetAlly, Flags: []string{game.FlagDefense}}
	tarukaja := game.Move{Key: "tarukaja", Type: game.MoveSupport, Target: game.TargetSelf}
	hero := newActor("Hero", 0, 0, 100, 10)
	foe := newActor("Foe", 0, 0, 100, 10)

	e.Resolve(NewLog(1), hero, foe, rakukaja)
	e.Resolve(NewLog(1), hero, foe, rakukaja)
	e.Resolve(NewLog(1), hero, foe, tarukaja)
	assert.Equal(t, game.Buff{Stage: 2, Remaining: game.BuffDuration}, hero.Buffs[BuffDefense])
	assert.Equal(t, game.Buff{Stage: 1, Remaining: game.BuffDuration}, hero.Buffs[BuffGeneric])
	assert.Empty(t, foe.Buffs)

	l := NewLog(1)
	DecayBuffs(l, hero, foe)
	assert.Equal(t, 2, hero.Buffs[BuffDefense].Remaining)
	assert.Empty(t, l.Events)

	DecayBuffs(l, hero, foe)
	DecayBuffs(l, hero, foe)
	assert.Empty(t, hero.Buffs)
	assert.Len(t, l.Events, 2)
	for _, ev := range l.Events {
		assert.Equal(t, game.TagDecay, ev.Tag)
	}
}

func TestResolve_PassiveMoveIsInformational(t *testing.T) {
	e := noVariance(stubSource{})
	meditation := game.Move{Key: "demonic_meditation", Name: "Demonic Meditation", Type: game.MovePassive}
	hero := newActor("Hero", 10, 0, 100, 10)
	foe := newActor("Foe", 0, 0, 100, 10)

	l := NewLog(3)
	l.Phase = game.PhaseResolvingPlayerAction
	out := e.Resolve(l, hero, foe, meditation)

	assert.Nil(t, out.Result)
	assert.Equal(t, 100, foe.CurrentHitPoints)
	require.Len(t, l.Events, 1)
	assert.Equal(t, game.TagInfo, l.Events[0].Tag)
	assert.Equal(t, 3, l.Events[0].Round)
	assert.Equal(t, game.PhaseResolvingPlayerAction, l.Events[0].Phase)
}

func TestResolve_AttackReportsDefeat(t *testing.T) {
	e := noVariance(stubSource{})
	hero := newActor("Hero", 100, 0, 100, 10)
	foe := newActor("Foe", 0, 0, 20, 10)

	l := NewLog(1)
	out := e.Resolve(l, hero, foe, game.BasicAttack())

	require.NotNil(t, out.Result)
	assert.Equal(t, 110, out.DamageDealt())
	assert.Same(t, foe, out.Target)
	require.Len(t, l.Events, 2)
	assert.Equal(t, game.TagDamage, l.Events[0].Tag)
	assert.Equal(t, game.TagDefeat, l.Events[1].Tag)
}
