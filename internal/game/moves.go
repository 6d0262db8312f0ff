package game

// MoveType classifies how a move is resolved by the engine.
type MoveType string

const (
	MoveAttack  MoveType = "attack"
	MoveStatus  MoveType = "status"
	MoveHeal    MoveType = "heal"
	MoveSupport MoveType = "support"
	MovePassive MoveType = "passive"
)

// Valid reports whether t is one of the known move types.
func (t MoveType) Valid() bool {
	switch t {
	case MoveAttack, MoveStatus, MoveHeal, MoveSupport, MovePassive:
		return true
	}
	return false
}

// TargetKind selects who a move lands on.
type TargetKind string

const (
	TargetEnemy TargetKind = "enemy"
	TargetAlly  TargetKind = "ally"
	TargetSelf  TargetKind = "self"
)

// CostType names the pool a move is paid from.
type CostType string

const (
	CostNone CostType = "none"
	CostMP   CostType = "mp"
)

// Move flags used by the status and buff paths.
const (
	FlagPoison      = "poison"
	FlagMirage      = "mirage"
	FlagDefense     = "defense"
	FlagAttack      = "attack"
	FlagAgility     = "agility"
	FlagCureAilment = "cure_ailment"
)

// DefaultAccuracy applies when a move does not declare one.
const DefaultAccuracy = 100

// Move is an immutable catalog entry. Power is nil for non-damaging moves.
type Move struct {
	Key               string             `json:"key" yaml:"-"`
	Name              string             `json:"name" yaml:"name"`
	Element           string             `json:"element" yaml:"element"`
	Power             *int               `json:"power" yaml:"power"`
	Type              MoveType           `json:"type" yaml:"type"`
	CostType          CostType           `json:"cost_type" yaml:"cost_type"`
	CostAmount        int                `json:"cost_amount" yaml:"cost_amount"`
	Level             int                `json:"level" yaml:"level"`
	Target            TargetKind         `json:"target" yaml:"target"`
	Accuracy          *int               `json:"accuracy,omitempty" yaml:"accuracy"`
	Flags             []string           `json:"flags" yaml:"flags"`
	BonusPercentMaxHP int                `json:"bonus_percent_max_hp,omitempty" yaml:"bonus_percent_max_hp"`
	Passive           *PassiveDescriptor `json:"passive,omitempty" yaml:"passive"`
	Description       string             `json:"description" yaml:"description"`
}

// PowerValue returns the declared power, or 0 when none is set.
func (m Move) PowerValue() int {
	if m.Power == nil {
		return 0
	}
	return *m.Power
}

// AccuracyValue returns the declared accuracy or DefaultAccuracy.
func (m Move) AccuracyValue() int {
	if m.Accuracy == nil {
		return DefaultAccuracy
	}
	return *m.Accuracy
}

// HasFlag reports whether the move carries flag f.
func (m Move) HasFlag(f string) bool {
	for _, x := range m.Flags {
		if x == f {
			return true
		}
	}
	return false
}

// CostsPool reports whether the move is paid from the resource pool.
func (m Move) CostsPool() bool {
	return m.CostType == CostMP && m.CostAmount > 0
}

// BasicAttack is the descriptor used when a move key cannot be resolved or
// an actor knows no moves at all.
func BasicAttack() Move {
	p := 10
	return Move{
		Key:         "attack",
		Name:        "Attack",
		Element:     "physical",
		Power:       &p,
		Type:        MoveAttack,
		CostType:    CostNone,
		Target:      TargetEnemy,
		Description: "Basic physical attack.",
	}
}

// IntPtr is a small helper for building descriptors with optional fields.
func IntPtr(v int) *int { return &v }
