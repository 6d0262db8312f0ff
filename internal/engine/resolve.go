package engine

import (
	"github.com/DanKadrios/SMTLite/internal/game"
)

// MoveSource resolves move keys and origin skills. *catalog.Catalog
// satisfies it.
type MoveSource interface {
	Lookup(key string) game.Move
	ResolveMoves(skills []string) []game.Move
	Origin(key string) (game.Move, bool)
}

// Engine resolves single actions between two actors. One engine belongs
// to one battle session; it owns the session's dice.
type Engine struct {
	moves    MoveSource
	dice     Dice
	passives *Passives
}

// New returns an engine drawing moves from src. A nil dice uses a
// clock-seeded generator.
func New(src MoveSource, dice Dice) *Engine {
	if dice == nil {
		dice = NewDice()
	}
	return &Engine{moves: src, dice: dice, passives: DefaultPassives()}
}

// WithPassives swaps the passive registry.
func (e *Engine) WithPassives(p *Passives) *Engine {
	e.passives = p
	return e
}

// Lookup resolves a move key through the engine's source.
func (e *Engine) Lookup(key string) game.Move {
	return e.moves.Lookup(key)
}

// Outcome is what a single resolved action did.
type Outcome struct {
	Move   game.Move
	Target *game.Actor
	// Result is set when the action dealt damage.
	Result *game.ResolutionResult
}

// DamageDealt returns the damage landed on the target, or 0.
func (o Outcome) DamageDealt() int {
	if o.Result == nil {
		return 0
	}
	return o.Result.Damage
}

// Resolve applies move from actor against opp. Resource costs must
// already have been settled.
func (e *Engine) Resolve(l *Log, actor, opp *game.Actor, m game.Move) Outcome {
	target := targetFor(m, actor, opp)
	out := Outcome{Move: m, Target: target}

	switch m.Type {
	case game.MoveAttack:
		l.Append(e.TriggerPassive(actor, game.TriggerAttack, PassiveContext{Target: target})...)
		res := e.execAttack(l, actor, target, m)
		out.Result = &res
	case game.MoveStatus:
		e.execStatus(l, actor, target, m)
	case game.MoveSupport:
		e.execSupport(l, actor, target, m)
	case game.MoveHeal:
		e.execHeal(l, actor, target, m)
	case game.MovePassive:
		l.add(game.Event{
			Tag:     game.TagInfo,
			Actor:   actor.Name,
			Move:    m.Key,
			Message: actor.Name + "'s " + moveName(m) + " is a passive skill and has no active effect.",
		})
	default:
		l.add(game.Event{Tag: game.TagInfo, Actor: actor.Name, Move: m.Key, Message: actor.Name + " hesitates."})
	}
	return out
}
