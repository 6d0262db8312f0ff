package engine

import (
	"fmt"
	"math"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// VarianceRatio bounds the random spread applied to base damage.
const VarianceRatio = 0.12

// --- Damage calculator ---------------------------------------------------

// Damage computes the damage of a hit and applies it to defender:
//
//	base     = attack + power - defense
//	variance = trunc(u * max(1,|base|) * 0.12), u uniform in [-1, 1)
//	raw      = max(1, base + variance)
//	damage   = max(1, round(raw * multiplier))
//
// Immunity and absorb multipliers still deal the minimum of 1.
func (e *Engine) Damage(attacker, defender *game.Actor, power int, element string) game.ResolutionResult {
	base := attacker.Attack + power - defender.Defense
	span := math.Max(1, math.Abs(float64(base))) * VarianceRatio
	variance := int((e.dice.Float64()*2 - 1) * span)
	raw := base + variance
	if raw < 1 {
		raw = 1
	}

	mult, override := ResolveAffinity(element, defender)
	dmg := int(math.Round(float64(raw) * mult))
	if dmg < 1 {
		dmg = 1
	}
	defender.TakeDamage(dmg)
	return game.ResolutionResult{Damage: dmg, Multiplier: mult, Override: override}
}

// ApplyDamage lands a precomputed amount on target, bypassing the
// formula. Negative amounts are treated as 0. It returns the health lost.
func ApplyDamage(target *game.Actor, amount int) int {
	if target == nil {
		return 0
	}
	return target.TakeDamage(amount)
}

func (e *Engine) execAttack(l *Log, actor, target *game.Actor, m game.Move) game.ResolutionResult {
	res := e.Damage(actor, target, m.PowerValue(), m.Element)
	msg := fmt.Sprintf("%s uses %s on %s for %d damage.", actor.Name, moveName(m), target.Name, res.Damage)
	if res.Override {
		msg += " " + affinityNote(res.Multiplier)
	}
	r := res
	l.add(game.Event{
		Tag:     game.TagDamage,
		Actor:   actor.Name,
		Target:  target.Name,
		Move:    m.Key,
		Message: msg,
		Result:  &r,
	})
	if !target.Alive {
		l.add(game.Event{Tag: game.TagDefeat, Target: target.Name, Message: target.Name + " is defeated!"})
	}
	return res
}

func affinityNote(mult float64) string {
	switch {
	case mult < 0:
		return "It absorbs the attack!"
	case mult == 0:
		return "It is immune!"
	case mult > 1:
		return "It's super effective!"
	case mult < 1:
		return "It resists the attack."
	default:
		return ""
	}
}
