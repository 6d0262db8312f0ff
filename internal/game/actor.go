package game

import (
	"sort"

	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

// MaxKnownMoves bounds an actor's skill list.
const MaxKnownMoves = 8

// BuffDuration is the number of rounds a freshly applied buff lasts.
const BuffDuration = 3

// Template is the static bundle an Actor is created from. Zero HitPoints,
// Mana, Attack or Defense means "derive from level and base stats".
type Template struct {
	Key            string             `json:"key" yaml:"-"`
	Name           string             `json:"name" yaml:"name"`
	Level          int                `json:"level" yaml:"level"`
	Str            int                `json:"str" yaml:"str"`
	Mag            int                `json:"mag" yaml:"mag"`
	Vit            int                `json:"vit" yaml:"vit"`
	Agl            int                `json:"agl" yaml:"agl"`
	Lck            int                `json:"lck" yaml:"lck"`
	HitPoints      int                `json:"hp,omitempty" yaml:"hp"`
	Mana           int                `json:"mp,omitempty" yaml:"mp"`
	Attack         int                `json:"attack,omitempty" yaml:"attack"`
	Defense        int                `json:"defense,omitempty" yaml:"defense"`
	Skills         []string           `json:"skills" yaml:"skills"`
	Affinities     map[string]float64 `json:"affinities" yaml:"affinities"`
	AilmentResists map[string]float64 `json:"ailment_resists,omitempty" yaml:"ailment_resists"`
	Origin         string             `json:"origin,omitempty" yaml:"origin"`
}

// DerivedStats computes max health, max pool, attack and defense for t.
func (t Template) DerivedStats() (hp, mp, atk, def int) {
	hp = 50 + 6*(t.Level+t.Vit)
	mp = 5 * (t.Level + t.Mag)
	atk = t.Level + t.Str + t.Mag
	def = (2 * t.Vit) / 3
	if t.HitPoints > 0 {
		hp = t.HitPoints
	}
	if t.Mana > 0 {
		mp = t.Mana
	}
	if t.Attack > 0 {
		atk = t.Attack
	}
	if t.Defense > 0 {
		def = t.Defense
	}
	return hp, mp, atk, def
}

// Buff is a stacking, turn-limited modifier.
type Buff struct {
	Stage     int `json:"stage"`
	Remaining int `json:"remaining_turns"`
}

// Actor is one combatant in a battle session. It is mutated only by the
// resolution path.
type Actor struct {
	Name             string
	TemplateKey      string
	Level            int
	Attack           int
	Defense          int
	MaxHitPoints     int
	CurrentHitPoints int
	MaxMana          int
	CurrentMana      int
	Skills           []string
	Affinities       map[string]float64
	AilmentResists   map[string]float64
	Origin           string
	Alive            bool
	Status           map[string]bool
	Buffs            map[string]Buff
}

// NewActor builds an actor at full health and pool from t.
func NewActor(t Template) *Actor {
	a := &Actor{}
	a.Reset(t)
	return a
}

// Reset overwrites a with fresh template-derived state.
func (a *Actor) Reset(t Template) {
	hp, mp, atk, def := t.DerivedStats()
	skills := t.Skills
	if len(skills) > MaxKnownMoves {
		logging.Warn("skill list truncated", logging.Fields{
			constants.LogFieldTemplate: t.Key,
			constants.LogFieldCount:    len(skills),
		})
		skills = skills[:MaxKnownMoves]
	}
	*a = Actor{
		Name:             t.Name,
		TemplateKey:      t.Key,
		Level:            t.Level,
		Attack:           atk,
		Defense:          def,
		MaxHitPoints:     hp,
		CurrentHitPoints: hp,
		MaxMana:          mp,
		CurrentMana:      mp,
		Skills:           append([]string(nil), skills...),
		Affinities:       copyFloats(t.Affinities),
		AilmentResists:   copyFloats(t.AilmentResists),
		Origin:           t.Origin,
		Alive:            hp > 0,
		Status:           map[string]bool{},
		Buffs:            map[string]Buff{},
	}
}

// TakeDamage lowers health by n (floored at 0) and returns the amount lost.
func (a *Actor) TakeDamage(n int) int {
	if n < 0 {
		n = 0
	}
	before := a.CurrentHitPoints
	a.CurrentHitPoints -= n
	if a.CurrentHitPoints < 0 {
		a.CurrentHitPoints = 0
	}
	a.syncAlive()
	return before - a.CurrentHitPoints
}

// Heal raises health by n, capped at max, and returns the amount gained.
// A defeated actor stays defeated.
func (a *Actor) Heal(n int) int {
	if !a.Alive || n <= 0 {
		return 0
	}
	before := a.CurrentHitPoints
	a.CurrentHitPoints += n
	if a.CurrentHitPoints > a.MaxHitPoints {
		a.CurrentHitPoints = a.MaxHitPoints
	}
	return a.CurrentHitPoints - before
}

// RestoreMana raises the pool by n, capped at max, and returns the gain.
func (a *Actor) RestoreMana(n int) int {
	if n <= 0 {
		return 0
	}
	before := a.CurrentMana
	a.CurrentMana += n
	if a.CurrentMana > a.MaxMana {
		a.CurrentMana = a.MaxMana
	}
	return a.CurrentMana - before
}

// SpendMana deducts n from the pool, flooring at 0, and returns the amount
// actually removed.
func (a *Actor) SpendMana(n int) int {
	if n <= 0 {
		return 0
	}
	before := a.CurrentMana
	a.CurrentMana -= n
	if a.CurrentMana < 0 {
		a.CurrentMana = 0
	}
	return before - a.CurrentMana
}

func (a *Actor) syncAlive() {
	a.Alive = a.CurrentHitPoints > 0
}

// StatusTags returns the active ailments sorted by name.
func (a *Actor) StatusTags() []string {
	out := make([]string, 0, len(a.Status))
	for k, on := range a.Status {
		if on {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the actor into an immutable view.
func (a *Actor) Snapshot() ActorState {
	buffs := make(map[string]Buff, len(a.Buffs))
	for k, v := range a.Buffs {
		buffs[k] = v
	}
	return ActorState{
		Name:             a.Name,
		Template:         a.TemplateKey,
		Level:            a.Level,
		Attack:           a.Attack,
		Defense:          a.Defense,
		MaxHitPoints:     a.MaxHitPoints,
		CurrentHitPoints: a.CurrentHitPoints,
		MaxMana:          a.MaxMana,
		CurrentMana:      a.CurrentMana,
		Skills:           append([]string(nil), a.Skills...),
		Affinities:       copyFloats(a.Affinities),
		Origin:           a.Origin,
		Alive:            a.Alive,
		Status:           a.StatusTags(),
		Buffs:            buffs,
	}
}

func copyFloats(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
