package engine

import "github.com/DanKadrios/SMTLite/internal/game"

// NeutralMultiplier applies when the defender declares nothing for an
// element.
const NeutralMultiplier = 1.0

// --- Affinity resolver ---------------------------------------------------

// ResolveAffinity returns the defender's declared multiplier for element,
// verbatim, with override=true. Without a declaration the multiplier is
// neutral and override is false. Values are not clamped: 0 is immunity,
// negatives are absorb.
func ResolveAffinity(element string, defender *game.Actor) (float64, bool) {
	if defender != nil && defender.Affinities != nil {
		if mult, ok := defender.Affinities[element]; ok {
			return mult, true
		}
	}
	return NeutralMultiplier, false
}
