package battle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/looplab/fsm"

	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/engine"
	"github.com/DanKadrios/SMTLite/internal/game"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

// DefaultTurnDelay paces the opponent's action after the player's.
const DefaultTurnDelay = 500 * time.Millisecond

// Options configures a Session.
type Options struct {
	Moves     engine.MoveSource
	Dice      engine.Dice
	Passives  *engine.Passives
	Scheduler Scheduler
	TurnDelay time.Duration
	// OnFinish is called once per battle, outside the session lock, when
	// the battle reaches its terminal phase.
	OnFinish func(Summary)
}

// Summary describes a finished battle.
type Summary struct {
	BattleID         string
	PlayerTemplate   string
	OpponentTemplate string
	PlayerName       string
	OpponentName     string
	Winner           game.Side
	Rounds           int
	Events           []game.Event
	StartedAt        time.Time
	FinishedAt       time.Time
}

// Submission is the answer to a player move: the events the session
// produced since the move was submitted and the state afterwards.
type Submission struct {
	Accepted bool
	Events   []game.Event
	State    game.BattleState
}

// Session owns one player-vs-opponent battle and serializes every
// mutation behind its mutex.
type Session struct {
	id       string
	engine   *engine.Engine
	sched    Scheduler
	delay    time.Duration
	onFinish func(Summary)

	mu          sync.Mutex
	machine     *fsm.FSM
	playerTpl   game.Template
	opponentTpl game.Template
	player      *game.Actor
	opponent    *game.Actor
	round       int
	winner      game.Side
	acting      game.Side
	log         []game.Event
	cur         *engine.Log
	epoch       uint64
	cancel      func()
	startedAt   time.Time
	lastActive  time.Time
}

// NewSession starts a battle between player and opponent.
func NewSession(id string, player, opponent game.Template, opts Options) *Session {
	e := engine.New(opts.Moves, opts.Dice)
	if opts.Passives != nil {
		e.WithPassives(opts.Passives)
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.TurnDelay < 0 {
		opts.TurnDelay = 0
	}
	s := &Session{
		id:        id,
		engine:    e,
		sched:     opts.Scheduler,
		delay:     opts.TurnDelay,
		onFinish:  opts.OnFinish,
		playerTpl: player,
	}
	s.Reset(opponent)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Reset starts a fresh battle against opponent. Both actors return to
// full template state and any scheduled opponent action is invalidated.
func (s *Session) Reset(opponent game.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.opponentTpl = opponent
	s.player = game.NewActor(s.playerTpl)
	s.opponent = game.NewActor(opponent)
	s.round = 1
	s.winner = ""
	s.log = nil
	s.cur = nil
	s.machine = newMachine(s.onEnter)
	s.startedAt = time.Now()
	s.lastActive = s.startedAt

	logging.Info("battle started", logging.Fields{
		constants.LogFieldBattleID: s.id,
		constants.LogFieldTemplate: s.playerTpl.Key,
		constants.LogFieldOpponent: opponent.Key,
	})
}

// OpponentTemplate returns the template the current opponent was built from.
func (s *Session) OpponentTemplate() game.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opponentTpl
}

// Close invalidates any scheduled work. The session stays readable.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) onEnter(from, to game.Phase) {
	if s.cur != nil {
		s.cur.Phase = to
	}
	logging.Debug("phase transition", logging.Fields{
		constants.LogFieldBattleID: s.id,
		constants.LogFieldFrom:     string(from),
		constants.LogFieldPhase:    string(to),
		constants.LogFieldRound:    s.round,
	})
}

func (s *Session) fire(ev string) {
	if err := s.machine.Event(context.Background(), ev); err != nil {
		logging.Error("invalid phase transition", err, logging.Fields{
			constants.LogFieldBattleID: s.id,
			constants.LogFieldPhase:    s.machine.Current(),
		})
	}
}

func (s *Session) phase() game.Phase {
	return game.Phase(s.machine.Current())
}

// begin opens a log for the current round stamped with the current phase.
func (s *Session) begin() *engine.Log {
	l := engine.NewLog(s.round)
	l.Phase = s.phase()
	s.cur = l
	return l
}

// commit moves the open log into the session history.
func (s *Session) commit() {
	if s.cur == nil {
		return
	}
	s.log = append(s.log, s.cur.Events...)
	s.cur = nil
}

// SubmitPlayerMove resolves the player's move and schedules the opponent.
// Rejections (locked input, unaffordable move, finished battle) leave the
// battle untouched apart from the recorded rejection event.
func (s *Session) SubmitPlayerMove(moveKey string) Submission {
	s.mu.Lock()
	mark := len(s.log)
	accepted, schedule, finished := s.submitLocked(moveKey)
	epoch := s.epoch
	s.mu.Unlock()

	if finished != nil && s.onFinish != nil {
		s.onFinish(*finished)
	}
	if schedule {
		cancel := s.sched.Schedule(s.delay, func() { s.runOpponent(epoch) })
		s.mu.Lock()
		if s.epoch == epoch && s.phase() == game.PhaseResolvingOpponentAction {
			s.cancel = cancel
		}
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	events := []game.Event{}
	if s.epoch == epoch {
		events = append(events, s.log[mark:]...)
	}
	return Submission{
		Accepted: accepted,
		Events:   events,
		State:    s.stateLocked(),
	}
}

func (s *Session) submitLocked(moveKey string) (accepted, schedule bool, finished *Summary) {
	s.lastActive = time.Now()
	l := s.begin()
	defer s.commit()

	m := s.engine.Lookup(moveKey)
	switch {
	case s.phase() == game.PhaseBattleOver:
		l.Reject(s.player.Name, m.Key, game.ReasonBattleOver, "The battle is already over.")
		return false, false, nil
	case s.phase() != game.PhaseAwaitingPlayerInput:
		l.Reject(s.player.Name, m.Key, game.ReasonLocked, "Wait for the current turn to finish.")
		return false, false, nil
	case !s.knows(m):
		l.Reject(s.player.Name, m.Key, game.ReasonUnknownMove,
			fmt.Sprintf("%s does not know %s.", s.player.Name, m.Name))
		return false, false, nil
	case !engine.Affordable(s.player, m):
		l.Reject(s.player.Name, m.Key, game.ReasonInsufficient,
			fmt.Sprintf("Not enough MP for %s (%d needed, %d left).", m.Name, m.CostAmount, s.player.CurrentMana))
		return false, false, nil
	}

	s.fire(evSubmit)
	s.acting = game.SidePlayer
	defer func() { s.acting = "" }()
	engine.Charge(s.player, m)
	out := s.engine.Resolve(l, s.player, s.opponent, m)

	s.fire(evReact)
	s.react(l, s.opponent, s.player, out)
	if sum := s.settleLocked(l); sum != nil {
		return true, false, sum
	}
	s.fire(evOpponentTurn)
	return true, true, nil
}

// knows reports whether the player may use m. The basic attack is always
// available.
func (s *Session) knows(m game.Move) bool {
	if m.Key == game.BasicAttack().Key {
		return true
	}
	for _, k := range s.player.Skills {
		if k == m.Key {
			return true
		}
	}
	return false
}

// react fires defender's onDamageTaken passive when the action hurt it.
func (s *Session) react(l *engine.Log, defender, attacker *game.Actor, out engine.Outcome) {
	if out.DamageDealt() <= 0 || out.Target != defender {
		return
	}
	l.Append(s.engine.TriggerPassive(defender, game.TriggerDamageTaken, engine.PassiveContext{
		Source: attacker,
		Damage: out.DamageDealt(),
	})...)
}

// settleLocked ends the battle when a side is down. A double knockout
// goes to the side that was acting.
func (s *Session) settleLocked(l *engine.Log) *Summary {
	if s.player.Alive && s.opponent.Alive {
		return nil
	}
	switch {
	case s.player.Alive:
		s.winner = game.SidePlayer
	case s.opponent.Alive:
		s.winner = game.SideOpponent
	case s.acting != "":
		s.winner = s.acting
	default:
		s.winner = game.SidePlayer
	}
	s.fire(evFinish)
	winnerName := s.player.Name
	if s.winner == game.SideOpponent {
		winnerName = s.opponent.Name
	}
	l.Notef(game.TagInfo, "%s wins the battle!", winnerName)
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	logging.Info("battle finished", logging.Fields{
		constants.LogFieldBattleID: s.id,
		constants.LogFieldWinner:   string(s.winner),
		constants.LogFieldRound:    s.round,
	})

	events := append(append([]game.Event(nil), s.log...), l.Events...)
	return &Summary{
		BattleID:         s.id,
		PlayerTemplate:   s.playerTpl.Key,
		OpponentTemplate: s.opponentTpl.Key,
		PlayerName:       s.player.Name,
		OpponentName:     s.opponent.Name,
		Winner:           s.winner,
		Rounds:           s.round,
		Events:           events,
		StartedAt:        s.startedAt,
		FinishedAt:       time.Now(),
	}
}

// runOpponent resolves the opponent's action and closes the round. A task
// from an earlier epoch, or one that finds the session in another phase,
// does nothing.
func (s *Session) runOpponent(epoch uint64) {
	s.mu.Lock()
	if s.epoch != epoch || s.phase() != game.PhaseResolvingOpponentAction {
		s.mu.Unlock()
		logging.Debug("stale opponent task dropped", logging.Fields{constants.LogFieldBattleID: s.id})
		return
	}
	finished := s.opponentLocked()
	s.mu.Unlock()

	if finished != nil && s.onFinish != nil {
		s.onFinish(*finished)
	}
}

func (s *Session) opponentLocked() *Summary {
	s.cancel = nil
	s.lastActive = time.Now()
	l := s.begin()
	defer s.commit()

	m := s.engine.ChooseMove(s.opponent)
	engine.ChargeLenient(s.opponent, m)
	s.acting = game.SideOpponent
	defer func() { s.acting = "" }()
	out := s.engine.Resolve(l, s.opponent, s.player, m)

	s.fire(evReact)
	s.react(l, s.player, s.opponent, out)
	if sum := s.settleLocked(l); sum != nil {
		return sum
	}

	s.acting = ""
	s.fire(evEndRound)
	l.Append(s.engine.TriggerPassive(s.player, game.TriggerTurn, engine.PassiveContext{})...)
	l.Append(s.engine.TriggerPassive(s.opponent, game.TriggerTurn, engine.PassiveContext{})...)
	if sum := s.settleLocked(l); sum != nil {
		return sum
	}
	engine.DecayBuffs(l, s.player, s.opponent)
	s.round++
	s.fire(evNextRound)
	return nil
}

// State returns a snapshot of the battle.
func (s *Session) State() game.BattleState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() game.BattleState {
	p := s.phase()
	return game.BattleState{
		Phase:    p,
		Round:    s.round,
		Locked:   p != game.PhaseAwaitingPlayerInput && p != game.PhaseBattleOver,
		Player:   s.player.Snapshot(),
		Opponent: s.opponent.Snapshot(),
		Winner:   s.winner,
	}
}

// Events returns the battle history starting at index since.
func (s *Session) Events(since int) []game.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if since < 0 {
		since = 0
	}
	if since >= len(s.log) {
		return []game.Event{}
	}
	return append([]game.Event(nil), s.log[since:]...)
}

// LastActive reports when the session last accepted input or resolved.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
