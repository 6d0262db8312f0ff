package battle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DanKadrios/SMTLite/internal/catalog"
	"github.com/DanKadrios/SMTLite/internal/game"
)

const testCatalog = `
moves:
  slash: {name: Slash, type: attack, power: 10}
  agi: {name: Agi, element: fire, type: attack, power: 18, cost_type: mp, cost_amount: 3}
  rakukaja: {name: Rakukaja, type: support, target: ally, flags: [defense]}
  bufu: {name: Bufu, element: ice, type: attack, power: 20}
origins:
  regen: {name: Regen, type: passive, passive: {on: turn, action: regen_hp, amount: 5}}
templates:
  hero: {name: Hero, hp: 100, mp: 10, attack: 10, skills: [slash, agi, rakukaja], origin: regen}
  dummy: {name: Dummy, hp: 500, attack: 1, affinities: {fire: 2}}
  brute: {name: Brute, hp: 100, attack: 1000, skills: [slash]}
  glass: {name: Glass, hp: 1, attack: 1, skills: [slash]}
`

type flatDice struct{}

func (flatDice) IntN(int) int     { return 0 }
func (flatDice) Float64() float64 { return 0.5 }

func newTestSession(t *testing.T, opponent string, sched Scheduler, onFinish func(Summary)) *Session {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	hero, ok := c.Template("hero")
	require.True(t, ok)
	opp, ok := c.Template(opponent)
	require.True(t, ok)
	return NewSession("b-1", hero, opp, Options{
		Moves:     c,
		Dice:      flatDice{},
		Scheduler: sched,
		OnFinish:  onFinish,
	})
}

func tags(evs []game.Event) []game.EventTag {
	out := make([]game.EventTag, len(evs))
	for i, ev := range evs {
		out[i] = ev.Tag
	}
	return out
}

func TestStartBattle_InitialState(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)
	st := s.State()

	assert.Equal(t, game.PhaseAwaitingPlayerInput, st.Phase)
	assert.Equal(t, 1, st.Round)
	assert.False(t, st.Locked)
	assert.Equal(t, 100, st.Player.CurrentHitPoints)
	assert.Equal(t, 500, st.Opponent.CurrentHitPoints)
	assert.Empty(t, st.Winner)
	assert.Empty(t, s.Events(0))
}

func TestSubmitPlayerMove_FullRound(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)

	sub := s.SubmitPlayerMove("slash")
	require.True(t, sub.Accepted)

	// player 10+10, opponent basic attack 1+10, then regen 5
	assert.Equal(t, 480, sub.State.Opponent.CurrentHitPoints)
	assert.Equal(t, 94, sub.State.Player.CurrentHitPoints)
	assert.Equal(t, 2, sub.State.Round)
	assert.Equal(t, game.PhaseAwaitingPlayerInput, sub.State.Phase)
	assert.Equal(t, []game.EventTag{game.TagDamage, game.TagDamage, game.TagPassive}, tags(sub.Events))

	assert.Equal(t, game.PhaseResolvingPlayerAction, sub.Events[0].Phase)
	assert.Equal(t, game.PhaseResolvingOpponentAction, sub.Events[1].Phase)
	assert.Equal(t, game.PhaseDecayingEffects, sub.Events[2].Phase)
	for _, ev := range sub.Events {
		assert.Equal(t, 1, ev.Round)
	}
}

func TestSubmitPlayerMove_WeaknessReported(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)

	sub := s.SubmitPlayerMove("agi")
	require.True(t, sub.Accepted)
	require.NotNil(t, sub.Events[0].Result)
	assert.Equal(t, game.ResolutionResult{Damage: 56, Multiplier: 2, Override: true}, *sub.Events[0].Result)
	assert.Equal(t, 7, sub.State.Player.CurrentMana)
}

func TestSubmitPlayerMove_LockedUntilOpponentActs(t *testing.T) {
	sched := &ManualScheduler{}
	s := newTestSession(t, "dummy", sched, nil)

	sub := s.SubmitPlayerMove("slash")
	require.True(t, sub.Accepted)
	assert.True(t, sub.State.Locked)
	assert.Equal(t, game.PhaseResolvingOpponentAction, sub.State.Phase)
	assert.Equal(t, 1, sched.Pending())

	again := s.SubmitPlayerMove("slash")
	assert.False(t, again.Accepted)
	require.Len(t, again.Events, 1)
	assert.Equal(t, game.TagRejected, again.Events[0].Tag)
	assert.Equal(t, game.ReasonLocked, again.Events[0].Reason)
	assert.Equal(t, 480, again.State.Opponent.CurrentHitPoints, "rejected move must not resolve")

	assert.Equal(t, 1, sched.RunPending())
	st := s.State()
	assert.False(t, st.Locked)
	assert.Equal(t, 2, st.Round)
	assert.Equal(t, game.PhaseAwaitingPlayerInput, st.Phase)
}

func TestSubmitPlayerMove_InsufficientMana(t *testing.T) {
	sched := &ManualScheduler{}
	s := newTestSession(t, "dummy", sched, nil)
	s.player.CurrentMana = 0

	sub := s.SubmitPlayerMove("agi")
	assert.False(t, sub.Accepted)
	require.Len(t, sub.Events, 1)
	assert.Equal(t, game.ReasonInsufficient, sub.Events[0].Reason)
	assert.False(t, sub.State.Locked)
	assert.Equal(t, game.PhaseAwaitingPlayerInput, sub.State.Phase)
	assert.Equal(t, 500, sub.State.Opponent.CurrentHitPoints)
	assert.Zero(t, sched.Pending())

	// a free move still goes through
	assert.True(t, s.SubmitPlayerMove("slash").Accepted)
}

func TestSubmitPlayerMove_UnknownKeyFallsBackToBasicAttack(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)

	sub := s.SubmitPlayerMove("megidolaon")
	require.True(t, sub.Accepted)
	assert.Equal(t, "attack", sub.Events[0].Move)
	assert.Equal(t, 480, sub.State.Opponent.CurrentHitPoints)
}

func TestSubmitPlayerMove_RejectsMoveOutsideSkillList(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)

	sub := s.SubmitPlayerMove("bufu")
	assert.False(t, sub.Accepted)
	require.Len(t, sub.Events, 1)
	assert.Equal(t, game.TagRejected, sub.Events[0].Tag)
	assert.Equal(t, game.ReasonUnknownMove, sub.Events[0].Reason)
	assert.Equal(t, game.PhaseAwaitingPlayerInput, sub.State.Phase)
	assert.Equal(t, 500, sub.State.Opponent.CurrentHitPoints)
	assert.Equal(t, 1, sub.State.Round)
}

// hookScheduler runs hook on the first Schedule call and never runs tasks.
type hookScheduler struct {
	hook func()
	used bool
}

func (h *hookScheduler) Schedule(time.Duration, func()) func() {
	if !h.used {
		h.used = true
		h.hook()
	}
	return func() {}
}

func TestSubmitPlayerMove_ResetInFlightDropsNewBattleEvents(t *testing.T) {
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	glass, _ := c.Template("glass")

	sched := &hookScheduler{}
	s := newTestSession(t, "dummy", sched, nil)
	sched.hook = func() {
		s.Reset(glass)
		require.True(t, s.SubmitPlayerMove("slash").Accepted)
	}

	sub := s.SubmitPlayerMove("slash")
	assert.True(t, sub.Accepted)
	assert.Empty(t, sub.Events, "events of the restarted battle are not reported")
	assert.Equal(t, "Glass", sub.State.Opponent.Name)
	assert.NotEmpty(t, s.Events(0))
}

func TestOpponentTemplate_FollowsReset(t *testing.T) {
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	glass, _ := c.Template("glass")

	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)
	assert.Equal(t, "dummy", s.OpponentTemplate().Key)
	s.Reset(glass)
	assert.Equal(t, "glass", s.OpponentTemplate().Key)
}

func TestReset_InvalidatesScheduledOpponent(t *testing.T) {
	sched := &ManualScheduler{}
	s := newTestSession(t, "dummy", sched, nil)
	require.True(t, s.SubmitPlayerMove("slash").Accepted)

	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	glass, _ := c.Template("glass")
	s.Reset(glass)
	assert.Zero(t, sched.Pending(), "reset cancels the pending task")

	sched.RunStale()
	st := s.State()
	assert.Equal(t, game.PhaseAwaitingPlayerInput, st.Phase)
	assert.Equal(t, 1, st.Round)
	assert.Equal(t, 100, st.Player.CurrentHitPoints)
	assert.Equal(t, "Glass", st.Opponent.Name)
	assert.Empty(t, s.Events(0))
}

func TestBattleOver_PlayerWins(t *testing.T) {
	var summaries []Summary
	sched := &ManualScheduler{}
	s := newTestSession(t, "glass", sched, func(sum Summary) { summaries = append(summaries, sum) })

	sub := s.SubmitPlayerMove("slash")
	require.True(t, sub.Accepted)
	assert.Equal(t, game.PhaseBattleOver, sub.State.Phase)
	assert.Equal(t, game.SidePlayer, sub.State.Winner)
	assert.False(t, sub.State.Opponent.Alive)
	assert.Zero(t, sched.Pending(), "no opponent turn after a knockout")
	assert.Contains(t, tags(sub.Events), game.TagDefeat)

	require.Len(t, summaries, 1)
	assert.Equal(t, game.SidePlayer, summaries[0].Winner)
	assert.Equal(t, "hero", summaries[0].PlayerTemplate)
	assert.Equal(t, "glass", summaries[0].OpponentTemplate)
	assert.Equal(t, 1, summaries[0].Rounds)
	assert.NotEmpty(t, summaries[0].Events)

	late := s.SubmitPlayerMove("slash")
	assert.False(t, late.Accepted)
	assert.Equal(t, game.ReasonBattleOver, late.Events[0].Reason)
	assert.Len(t, summaries, 1)
}

func TestBattleOver_OpponentWins(t *testing.T) {
	var winner game.Side
	s := newTestSession(t, "brute", ImmediateScheduler{}, func(sum Summary) { winner = sum.Winner })

	sub := s.SubmitPlayerMove("slash")
	assert.Equal(t, game.PhaseBattleOver, sub.State.Phase)
	assert.Equal(t, game.SideOpponent, winner)
	assert.Equal(t, 0, sub.State.Player.CurrentHitPoints)
	assert.False(t, sub.State.Player.Alive)
	assert.Equal(t, 1, sub.State.Round)
}

func TestBuffsDecayOncePerRound(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)

	s.SubmitPlayerMove("rakukaja")
	st := s.State()
	assert.Equal(t, game.Buff{Stage: 1, Remaining: 2}, st.Player.Buffs["defense"])

	s.SubmitPlayerMove("slash")
	s.SubmitPlayerMove("slash")
	assert.Empty(t, s.State().Player.Buffs)
}

func TestEventsSince(t *testing.T) {
	s := newTestSession(t, "dummy", ImmediateScheduler{}, nil)
	s.SubmitPlayerMove("slash")
	all := s.Events(0)
	require.Len(t, all, 3)
	assert.Len(t, s.Events(2), 1)
	assert.Empty(t, s.Events(99))
}

func TestConcurrentSubmitsWithTimer(t *testing.T) {
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)
	hero, _ := c.Template("hero")
	dummy, _ := c.Template("dummy")
	s := NewSession("b-2", hero, dummy, Options{Moves: c, Dice: flatDice{}, TurnDelay: time.Millisecond})

	var wg sync.WaitGroup
	accepted := make(chan bool, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			accepted <- s.SubmitPlayerMove("slash").Accepted
		}()
	}
	wg.Wait()
	close(accepted)

	n := 0
	for ok := range accepted {
		if ok {
			n++
		}
	}
	assert.GreaterOrEqual(t, n, 1)

	require.Eventually(t, func() bool {
		return s.State().Phase == game.PhaseAwaitingPlayerInput
	}, time.Second, 5*time.Millisecond)
	st := s.State()
	assert.Equal(t, 500-20*n, st.Opponent.CurrentHitPoints)
	assert.Equal(t, n+1, st.Round)
}
