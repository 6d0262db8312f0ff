package engine

import (
	"fmt"
	"sort"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// DecayBuffs ticks every buff on actors down by one round and removes
// those that reach zero.
func DecayBuffs(l *Log, actors ...*game.Actor) {
	for _, a := range actors {
		if a == nil || len(a.Buffs) == 0 {
			continue
		}
		keys := make([]string, 0, len(a.Buffs))
		for k := range a.Buffs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b := a.Buffs[k]
			b.Remaining--
			if b.Remaining <= 0 {
				delete(a.Buffs, k)
				l.add(game.Event{Tag: game.TagDecay, Target: a.Name, Message: fmt.Sprintf("%s's %s buff wears off.", a.Name, k)})
				continue
			}
			a.Buffs[k] = b
		}
	}
}
