package service

import (
	"context"
	"time"

	"github.com/DanKadrios/SMTLite/internal/battle"
	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/logging"
)

// ReapIdle closes and forgets sessions idle for longer than the TTL as of
// now. It returns how many were removed.
func (s *BattleService) ReapIdle(now time.Time) int {
	s.mu.Lock()
	expired := make(map[string]*battle.Session)
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActive()) > s.ttl {
			expired[id] = sess
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, sess := range expired {
		sess.Close()
		logging.Info("idle battle reaped", logging.Fields{constants.LogFieldBattleID: id})
	}
	return len(expired)
}

// RunReaper calls ReapIdle every interval until ctx is done.
func (s *BattleService) RunReaper(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := s.ReapIdle(now); n > 0 {
				logging.Debug("reaper pass", logging.Fields{constants.LogFieldCount: n})
			}
		}
	}
}
