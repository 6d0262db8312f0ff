package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// PassiveContext carries the trigger-specific details a handler may need.
type PassiveContext struct {
	// Owner holds the passive.
	Owner *game.Actor
	// Source dealt the damage for onDamageTaken triggers.
	Source *game.Actor
	// Target is the actor being attacked for attack triggers.
	Target *game.Actor
	// Damage is the incoming amount for onDamageTaken triggers.
	Damage int
	// Passive is the owner's descriptor.
	Passive game.PassiveDescriptor
}

// PassiveHandler resolves one passive action and returns what happened.
type PassiveHandler func(pc PassiveContext) []game.Event

// Passives is the action-tag to handler registry. Unknown tags resolve to
// nothing.
type Passives struct {
	mu       sync.RWMutex
	handlers map[game.PassiveAction]PassiveHandler
}

// NewPassives returns an empty registry.
func NewPassives() *Passives {
	return &Passives{handlers: map[game.PassiveAction]PassiveHandler{}}
}

// DefaultPassives returns a registry with the built-in actions.
func DefaultPassives() *Passives {
	p := NewPassives()
	p.Register(game.PassiveRegenHP, regenHP)
	p.Register(game.PassiveRegenMP, regenMP)
	p.Register(game.PassiveReflect, reflectDamage)
	p.Register(game.PassiveDrain, drain)
	// Reserved: accepted so catalogs may declare it.
	p.Register(game.PassiveBoostAccuracyCrit, func(PassiveContext) []game.Event { return nil })
	return p
}

// Register installs h for action, replacing any previous handler.
func (p *Passives) Register(action game.PassiveAction, h PassiveHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[action] = h
}

// Handler returns the handler for action.
func (p *Passives) Handler(action game.PassiveAction) (PassiveHandler, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	h, ok := p.handlers[action]
	return h, ok
}

// TriggerPassive runs actor's origin passive if it listens for trigger.
// Missing origins, null passives, non-matching triggers and unknown
// actions produce no events.
func (e *Engine) TriggerPassive(actor *game.Actor, trigger game.PassiveTrigger, pc PassiveContext) []game.Event {
	if actor == nil || actor.Origin == "" || e.moves == nil {
		return nil
	}
	origin, ok := e.moves.Origin(actor.Origin)
	if !ok || origin.Passive == nil || origin.Passive.On != trigger {
		return nil
	}
	h, ok := e.passives.Handler(origin.Passive.Action)
	if !ok || h == nil {
		return nil
	}
	pc.Owner = actor
	pc.Passive = *origin.Passive
	evs := h(pc)
	for i := range evs {
		if evs[i].Tag == "" {
			evs[i].Tag = game.TagPassive
		}
		if evs[i].Move == "" {
			evs[i].Move = origin.Key
		}
	}
	return evs
}

func regenHP(pc PassiveContext) []game.Event {
	gained := pc.Owner.Heal(pc.Passive.Amount)
	return []game.Event{{
		Actor:   pc.Owner.Name,
		Message: fmt.Sprintf("%s regenerates %d HP.", pc.Owner.Name, gained),
	}}
}

func regenMP(pc PassiveContext) []game.Event {
	gained := pc.Owner.RestoreMana(pc.Passive.Amount)
	return []game.Event{{
		Actor:   pc.Owner.Name,
		Message: fmt.Sprintf("%s regenerates %d MP.", pc.Owner.Name, gained),
	}}
}

func reflectDamage(pc PassiveContext) []game.Event {
	if pc.Source == nil || pc.Damage <= 0 {
		return nil
	}
	amount := int(math.Round(float64(pc.Damage) * pc.Passive.Fraction()))
	if amount < 0 {
		amount = 0
	}
	lost := ApplyDamage(pc.Source, amount)
	evs := []game.Event{{
		Actor:   pc.Owner.Name,
		Target:  pc.Source.Name,
		Message: fmt.Sprintf("%s reflects %d damage back to %s.", pc.Owner.Name, lost, pc.Source.Name),
	}}
	if !pc.Source.Alive {
		evs = append(evs, game.Event{Tag: game.TagDefeat, Target: pc.Source.Name, Message: pc.Source.Name + " is defeated!"})
	}
	return evs
}

// drain lets the attacker siphon health back from what it dealt.
func drain(pc PassiveContext) []game.Event {
	if pc.Source == nil || pc.Damage <= 0 {
		return nil
	}
	amount := int(math.Round(float64(pc.Damage) * pc.Passive.Fraction()))
	gained := pc.Source.Heal(amount)
	return []game.Event{{
		Actor:   pc.Owner.Name,
		Target:  pc.Source.Name,
		Message: fmt.Sprintf("%s drains %d HP from %s.", pc.Source.Name, gained, pc.Owner.Name),
	}}
}
