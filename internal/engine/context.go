package engine

import (
	"fmt"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// --- Round log -----------------------------------------------------------

// Log accumulates the narrated events of one exchange. The orchestrator
// sets Round and Phase before each step; every event added is stamped
// with them.
type Log struct {
	Round  int
	Phase  game.Phase
	Events []game.Event
}

// NewLog returns an empty log for round.
func NewLog(round int) *Log {
	return &Log{Round: round, Events: make([]game.Event, 0, 16)}
}

func (l *Log) add(ev game.Event) {
	ev.Round = l.Round
	ev.Phase = l.Phase
	l.Events = append(l.Events, ev)
}

// Append stamps and records events produced elsewhere (e.g. passives).
func (l *Log) Append(evs ...game.Event) {
	for _, ev := range evs {
		l.add(ev)
	}
}

// Reject records a rejection event.
func (l *Log) Reject(actor, move, reason, msg string) {
	l.add(game.Event{Tag: game.TagRejected, Actor: actor, Move: move, Reason: reason, Message: msg})
}

// Notef records an informational line.
func (l *Log) Notef(tag game.EventTag, format string, args ...interface{}) {
	l.add(game.Event{Tag: tag, Message: fmt.Sprintf(format, args...)})
}
