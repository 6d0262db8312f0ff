package engine

import (
	"fmt"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// ailmentPriority orders status flags; a move inflicts the first one it
// carries.
var ailmentPriority = []string{
	game.FlagPoison,
	game.FlagMirage,
}

// Buff categories keyed by move flags.
const (
	BuffDefense = "defense"
	BuffAttack  = "attack"
	BuffAgility = "agility"
	BuffGeneric = "generic"
)

// ailmentFor returns the status tag m inflicts, or "".
func ailmentFor(m game.Move) string {
	for _, f := range ailmentPriority {
		if m.HasFlag(f) {
			return f
		}
	}
	return ""
}

// buffCategory maps support flags to the buff key they raise.
func buffCategory(m game.Move) string {
	switch {
	case m.HasFlag(game.FlagDefense):
		return BuffDefense
	case m.HasFlag(game.FlagAttack):
		return BuffAttack
	case m.HasFlag(game.FlagAgility):
		return BuffAgility
	default:
		return BuffGeneric
	}
}

// hits rolls accuracy: a roll in [0,100) below accuracy lands.
func (e *Engine) hits(m game.Move) bool {
	acc := m.AccuracyValue()
	if acc >= 100 {
		return true
	}
	if acc <= 0 {
		return false
	}
	return e.dice.IntN(100) < acc
}

// --- Status --------------------------------------------------------------

func (e *Engine) execStatus(l *Log, actor, target *game.Actor, m game.Move) {
	if m.HasFlag(game.FlagCureAilment) {
		e.cure(l, actor, target, m)
		return
	}
	tag := ailmentFor(m)
	if tag == "" {
		l.add(game.Event{Tag: game.TagInfo, Actor: actor.Name, Move: m.Key, Message: fmt.Sprintf("%s uses %s, but nothing happens.", actor.Name, moveName(m))})
		return
	}
	if !e.hits(m) {
		l.add(game.Event{Tag: game.TagMiss, Actor: actor.Name, Target: target.Name, Move: m.Key, Message: fmt.Sprintf("%s uses %s, but it misses %s.", actor.Name, moveName(m), target.Name)})
		return
	}
	if target.AilmentResists[tag] >= 1 {
		l.add(game.Event{Tag: game.TagStatus, Actor: actor.Name, Target: target.Name, Move: m.Key, Message: fmt.Sprintf("%s resists %s.", target.Name, tag)})
		return
	}
	if target.Status == nil {
		target.Status = map[string]bool{}
	}
	target.Status[tag] = true
	l.add(game.Event{Tag: game.TagStatus, Actor: actor.Name, Target: target.Name, Move: m.Key, Message: fmt.Sprintf("%s uses %s. %s is afflicted with %s.", actor.Name, moveName(m), target.Name, tag)})
}

func (e *Engine) cure(l *Log, actor, target *game.Actor, m game.Move) {
	cleared := target.StatusTags()
	target.Status = map[string]bool{}
	msg := fmt.Sprintf("%s uses %s. %s has no ailments to cure.", actor.Name, moveName(m), target.Name)
	if len(cleared) > 0 {
		msg = fmt.Sprintf("%s uses %s. %s is cured of %v.", actor.Name, moveName(m), target.Name, cleared)
	}
	l.add(game.Event{Tag: game.TagStatus, Actor: actor.Name, Target: target.Name, Move: m.Key, Message: msg})
}

// --- Support -------------------------------------------------------------

func (e *Engine) execSupport(l *Log, actor, target *game.Actor, m game.Move) {
	key := buffCategory(m)
	if target.Buffs == nil {
		target.Buffs = map[string]game.Buff{}
	}
	b := target.Buffs[key]
	b.Stage++
	b.Remaining = game.BuffDuration
	target.Buffs[key] = b
	l.add(game.Event{
		Tag:     game.TagBuff,
		Actor:   actor.Name,
		Target:  target.Name,
		Move:    m.Key,
		Message: fmt.Sprintf("%s uses %s. %s's %s rises to stage %d for %d turns.", actor.Name, moveName(m), target.Name, key, b.Stage, b.Remaining),
	})
}

// --- Heal ----------------------------------------------------------------

// HealAmount is power plus the percent-of-max bonus, rounded down.
func HealAmount(m game.Move, target *game.Actor) int {
	return m.PowerValue() + target.MaxHitPoints*m.BonusPercentMaxHP/100
}

func (e *Engine) execHeal(l *Log, actor, target *game.Actor, m game.Move) {
	if m.HasFlag(game.FlagCureAilment) {
		e.cure(l, actor, target, m)
		if HealAmount(m, target) <= 0 {
			return
		}
	}
	gained := target.Heal(HealAmount(m, target))
	l.add(game.Event{
		Tag:     game.TagHeal,
		Actor:   actor.Name,
		Target:  target.Name,
		Move:    m.Key,
		Message: fmt.Sprintf("%s uses %s. %s recovers %d HP.", actor.Name, moveName(m), target.Name, gained),
	})
}
