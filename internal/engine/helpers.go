package engine

import "github.com/DanKadrios/SMTLite/internal/game"

// targetFor returns who move lands on. Single-actor sides make ally and
// self the same actor.
func targetFor(m game.Move, self, opp *game.Actor) *game.Actor {
	switch m.Target {
	case game.TargetAlly, game.TargetSelf:
		return self
	default:
		return opp
	}
}

// moveName returns the display name of m, falling back to its key.
func moveName(m game.Move) string {
	if m.Name != "" {
		return m.Name
	}
	return m.Key
}
