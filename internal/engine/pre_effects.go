package engine

import (
	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/game"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

// --- Resource gate -------------------------------------------------------

// Affordable reports whether actor can pay for m. Free moves and moves
// with a zero cost are always affordable.
func Affordable(actor *game.Actor, m game.Move) bool {
	if !m.CostsPool() {
		return true
	}
	return m.CostAmount <= actor.CurrentMana
}

// Charge deducts the cost of m from actor, flooring the pool at 0, and
// returns the amount actually removed.
func Charge(actor *game.Actor, m game.Move) int {
	if !m.CostsPool() {
		return 0
	}
	return actor.SpendMana(m.CostAmount)
}

// Authorize is the player-side gate: it charges and returns true when the
// move is affordable, and charges nothing otherwise.
func Authorize(actor *game.Actor, m game.Move) bool {
	if !Affordable(actor, m) {
		return false
	}
	Charge(actor, m)
	return true
}

// ChargeLenient is the opponent-side gate. The move proceeds even when
// the pool cannot cover it; the pool drops to 0.
func ChargeLenient(actor *game.Actor, m game.Move) int {
	if !Affordable(actor, m) {
		logging.Debug("opponent acts without enough mana", logging.Fields{
			constants.LogFieldActor: actor.Name,
			constants.LogFieldMove:  m.Key,
			constants.LogFieldCost:  m.CostAmount,
			constants.LogFieldMana:  actor.CurrentMana,
		})
	}
	return Charge(actor, m)
}
