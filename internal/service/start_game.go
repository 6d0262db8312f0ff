package service

import (
	"errors"
	"strings"

	"github.com/DanKadrios/SMTLite/internal/battle"
	"github.com/DanKadrios/SMTLite/internal/game"
)

// DefaultPlayerTemplate is used when a start request names no player.
const DefaultPlayerTemplate = "hero"

var (
	ErrBattleNotFound  = errors.New("battle not found")
	ErrUnknownTemplate = errors.New("unknown actor template")
)

func (s *BattleService) template(key string) (game.Template, error) {
	if strings.TrimSpace(key) == "" {
		return game.Template{}, ErrUnknownTemplate
	}
	t, ok := s.catalog.Template(key)
	if !ok {
		return game.Template{}, ErrUnknownTemplate
	}
	return t, nil
}

// StartBattle creates a session pitting the player template against the
// opponent template and returns its id and initial state.
func (s *BattleService) StartBattle(playerKey, opponentKey string) (string, game.BattleState, error) {
	if strings.TrimSpace(playerKey) == "" {
		playerKey = DefaultPlayerTemplate
	}
	player, err := s.template(playerKey)
	if err != nil {
		return "", game.BattleState{}, err
	}
	opponent, err := s.template(opponentKey)
	if err != nil {
		return "", game.BattleState{}, err
	}

	id := s.newID()
	sess := battle.NewSession(id, player, opponent, battle.Options{
		Moves:     s.catalog,
		Dice:      s.newDice(),
		Scheduler: s.sched,
		TurnDelay: s.delay,
		OnFinish:  s.recordOutcome,
	})

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id, sess.State(), nil
}

// ResetBattle restarts an existing session with fresh actors. A blank
// opponentKey keeps the current opponent. Any pending opponent action from
// the old battle is dropped.
func (s *BattleService) ResetBattle(id, opponentKey string) (game.BattleState, error) {
	sess, err := s.session(id)
	if err != nil {
		return game.BattleState{}, err
	}
	opponent := sess.OpponentTemplate()
	if strings.TrimSpace(opponentKey) != "" {
		if opponent, err = s.template(opponentKey); err != nil {
			return game.BattleState{}, err
		}
	}
	sess.Reset(opponent)
	return sess.State(), nil
}

// EndBattle discards a session. Unfinished battles leave no record.
func (s *BattleService) EndBattle(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrBattleNotFound
	}
	sess.Close()
	return nil
}
