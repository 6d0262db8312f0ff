package engine

import (
	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/game"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

// SelectMove picks the opponent's move: highest power first (unset power
// counts as 0, earliest wins ties). An unaffordable pick is swapped for
// the first affordable move in list order; when nothing is affordable
// the pick stands. An empty list yields the basic attack.
func SelectMove(moves []game.Move, self *game.Actor) game.Move {
	if len(moves) == 0 {
		return game.BasicAttack()
	}
	best := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].PowerValue() > moves[best].PowerValue() {
			best = i
		}
	}
	pick := moves[best]
	if Affordable(self, pick) {
		return pick
	}
	for _, m := range moves {
		if Affordable(self, m) {
			return m
		}
	}
	return pick
}

// ChooseMove resolves self's skill list and selects from it.
func (e *Engine) ChooseMove(self *game.Actor) game.Move {
	m := SelectMove(e.moves.ResolveMoves(self.Skills), self)
	if !Affordable(self, m) {
		logging.Debug("opponent has no affordable move", logging.Fields{
			constants.LogFieldActor: self.Name,
			constants.LogFieldMove:  m.Key,
		})
	}
	return m
}
