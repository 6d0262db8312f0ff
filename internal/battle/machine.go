package battle

import (
	"context"

	"github.com/looplab/fsm"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// Turn machine events.
const (
	evSubmit       = "submit"
	evReact        = "react"
	evOpponentTurn = "opponent_turn"
	evEndRound     = "end_round"
	evNextRound    = "next_round"
	evFinish       = "finish"
)

func phases(ps ...game.Phase) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

// newMachine builds the turn state machine. onEnter runs after every
// transition with the new phase.
func newMachine(onEnter func(from, to game.Phase)) *fsm.FSM {
	return fsm.NewFSM(
		string(game.PhaseAwaitingPlayerInput),
		fsm.Events{
			{Name: evSubmit, Src: phases(game.PhaseAwaitingPlayerInput), Dst: string(game.PhaseResolvingPlayerAction)},
			{Name: evReact, Src: phases(game.PhaseResolvingPlayerAction, game.PhaseResolvingOpponentAction), Dst: string(game.PhaseResolvingReactions)},
			{Name: evOpponentTurn, Src: phases(game.PhaseResolvingReactions), Dst: string(game.PhaseResolvingOpponentAction)},
			{Name: evEndRound, Src: phases(game.PhaseResolvingReactions), Dst: string(game.PhaseDecayingEffects)},
			{Name: evNextRound, Src: phases(game.PhaseDecayingEffects), Dst: string(game.PhaseAwaitingPlayerInput)},
			{Name: evFinish, Src: phases(
				game.PhaseResolvingPlayerAction,
				game.PhaseResolvingReactions,
				game.PhaseResolvingOpponentAction,
				game.PhaseDecayingEffects,
			), Dst: string(game.PhaseBattleOver)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				onEnter(game.Phase(e.Src), game.Phase(e.Dst))
			},
		},
	)
}
