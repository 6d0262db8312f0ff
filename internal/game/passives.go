package game

// PassiveTrigger is the battle event a passive listens for.
type PassiveTrigger string

const (
	TriggerTurn        PassiveTrigger = "turn"
	TriggerDamageTaken PassiveTrigger = "onDamageTaken"
	TriggerAttack      PassiveTrigger = "attack"
)

// PassiveAction is the closed set of passive effect tags the engine knows.
// Tags outside this set are carried through but resolve to nothing.
type PassiveAction string

const (
	PassiveRegenHP           PassiveAction = "regen_hp"
	PassiveRegenMP           PassiveAction = "regen_mp"
	PassiveReflect           PassiveAction = "reflect"
	PassiveDrain             PassiveAction = "drain"
	PassiveBoostAccuracyCrit PassiveAction = "boost_accuracy_crit"
)

// PassiveDescriptor describes an origin skill's reactive behaviour.
type PassiveDescriptor struct {
	On                 PassiveTrigger `json:"on" yaml:"on"`
	Action             PassiveAction  `json:"action" yaml:"action"`
	Amount             int            `json:"amount,omitempty" yaml:"amount"`
	Multiplier         float64        `json:"multiplier,omitempty" yaml:"multiplier"`
	Condition          string         `json:"condition,omitempty" yaml:"condition"`
	AccuracyMultiplier float64        `json:"accuracy_multiplier,omitempty" yaml:"accuracy_multiplier"`
	CritMultiplier     float64        `json:"crit_multiplier,omitempty" yaml:"crit_multiplier"`
}

// Fraction returns the multiplier used by reflect/drain; unset means 1.
func (p PassiveDescriptor) Fraction() float64 {
	if p.Multiplier == 0 {
		return 1
	}
	return p.Multiplier
}
