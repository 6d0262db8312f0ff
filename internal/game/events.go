package game

// EventTag classifies an Event for presentation.
type EventTag string

const (
	TagInfo     EventTag = "info"
	TagDamage   EventTag = "damage"
	TagHeal     EventTag = "heal"
	TagStatus   EventTag = "status"
	TagBuff     EventTag = "buff"
	TagMiss     EventTag = "miss"
	TagPassive  EventTag = "passive"
	TagRejected EventTag = "rejected"
	TagDefeat   EventTag = "defeat"
	TagDecay    EventTag = "decay"
)

// Rejection reasons carried by TagRejected events.
const (
	ReasonLocked       = "locked"
	ReasonInsufficient = "insufficient_resource"
	ReasonBattleOver   = "battle_over"
	ReasonUnknownMove  = "unknown_move"
)

// Event is one narrated outcome of a resolution step.
type Event struct {
	Round   int               `json:"round"`
	Phase   Phase             `json:"phase"`
	Tag     EventTag          `json:"tag"`
	Actor   string            `json:"actor,omitempty"`
	Target  string            `json:"target,omitempty"`
	Move    string            `json:"move,omitempty"`
	Reason  string            `json:"reason,omitempty"`
	Message string            `json:"message"`
	Result  *ResolutionResult `json:"result,omitempty"`
}
