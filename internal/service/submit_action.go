package service

import (
	"github.com/DanKadrios/SMTLite/internal/battle"
	"github.com/DanKadrios/SMTLite/internal/game"
)

// SubmitMove forwards the player's move to the session. Rejections are
// not errors; they come back as a not-accepted submission.
func (s *BattleService) SubmitMove(id, moveKey string) (battle.Submission, error) {
	sess, err := s.session(id)
	if err != nil {
		return battle.Submission{}, err
	}
	return sess.SubmitPlayerMove(moveKey), nil
}

// State returns the current snapshot of a session.
func (s *BattleService) State(id string) (game.BattleState, error) {
	sess, err := s.session(id)
	if err != nil {
		return game.BattleState{}, err
	}
	return sess.State(), nil
}

// Events returns a session's history from index since.
func (s *BattleService) Events(id string, since int) ([]game.Event, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return sess.Events(since), nil
}
