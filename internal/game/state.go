package game

// Phase is the turn state machine's current state.
type Phase string

const (
	PhaseAwaitingPlayerInput     Phase = "awaiting_player_input"
	PhaseResolvingPlayerAction   Phase = "resolving_player_action"
	PhaseResolvingReactions      Phase = "resolving_reactions"
	PhaseResolvingOpponentAction Phase = "resolving_opponent_action"
	PhaseDecayingEffects         Phase = "decaying_effects"
	PhaseBattleOver              Phase = "battle_over"
)

// Side identifies a participant of a battle.
type Side string

const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// ActorState is a read-only copy of an Actor.
type ActorState struct {
	Name             string             `json:"name"`
	Template         string             `json:"template"`
	Level            int                `json:"level"`
	Attack           int                `json:"attack"`
	Defense          int                `json:"defense"`
	MaxHitPoints     int                `json:"max_hp"`
	CurrentHitPoints int                `json:"hp"`
	MaxMana          int                `json:"max_mp"`
	CurrentMana      int                `json:"mp"`
	Skills           []string           `json:"skills"`
	Affinities       map[string]float64 `json:"affinities"`
	Origin           string             `json:"origin,omitempty"`
	Alive            bool               `json:"alive"`
	Status           []string           `json:"status"`
	Buffs            map[string]Buff    `json:"buffs"`
}

// BattleState is the snapshot handed to the presentation layer.
type BattleState struct {
	Phase    Phase      `json:"phase"`
	Round    int        `json:"round"`
	Locked   bool       `json:"locked"`
	Player   ActorState `json:"player"`
	Opponent ActorState `json:"opponent"`
	Winner   Side       `json:"winner,omitempty"`
}

// Over reports whether the battle has reached its terminal phase.
func (s BattleState) Over() bool { return s.Phase == PhaseBattleOver }

// ResolutionResult is returned by every damage-producing action.
type ResolutionResult struct {
	Damage     int     `json:"damage"`
	Multiplier float64 `json:"multiplier"`
	Override   bool    `json:"override"`
}
