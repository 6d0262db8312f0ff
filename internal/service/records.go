package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DanKadrios/SMTLite/internal/battle"
	"github.com/DanKadrios/SMTLite/internal/constants"
	"github.com/DanKadrios/SMTLite/internal/dedupe"
	"github.com/DanKadrios/SMTLite/internal/game"
	"github.com/DanKadrios/SMTLite/internal/logging"
	"github.com/DanKadrios/SMTLite/internal/ranking"
	"github.com/DanKadrios/SMTLite/internal/storage"
)

var ErrRecordNotFound = errors.New("battle record not found")

const rankTimeout = 2 * time.Second

// RecordView is a stored battle with its event log decoded.
type RecordView struct {
	game.BattleRecord
	Events []game.Event `json:"events"`
}

// recordOutcome persists a finished battle and feeds the live ranking.
// Failures are logged; the battle itself is already decided.
func (s *BattleService) recordOutcome(sum battle.Summary) {
	rec, err := toRecord(sum)
	if err != nil {
		logging.Error("failed to encode battle record", err, logging.Fields{constants.LogFieldBattleID: sum.BattleID})
		return
	}
	if s.repo != nil {
		if err := s.repo.SaveBattleRecord(rec); err != nil {
			logging.Error("failed to save battle record", err, logging.Fields{constants.LogFieldBattleID: sum.BattleID})
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), rankTimeout)
	defer cancel()
	if err := s.ranker.RecordOutcome(ctx, rec.WinnerTemplate(), rec.LoserTemplate()); err != nil {
		logging.Warn("failed to update ranking", logging.Fields{constants.LogFieldBattleID: sum.BattleID, "error": err.Error()})
	}
}

func toRecord(sum battle.Summary) (*game.BattleRecord, error) {
	events, err := json.Marshal(sum.Events)
	if err != nil {
		return nil, err
	}
	return &game.BattleRecord{
		BattleID:         sum.BattleID,
		PlayerTemplate:   sum.PlayerTemplate,
		OpponentTemplate: sum.OpponentTemplate,
		PlayerName:       sum.PlayerName,
		OpponentName:     sum.OpponentName,
		Winner:           sum.Winner,
		Rounds:           sum.Rounds,
		EventsJSON:       string(events),
		StartedAt:        sum.StartedAt,
		FinishedAt:       sum.FinishedAt,
	}, nil
}

// Record returns a finished battle. Concurrent reads of the same id share
// one repository call.
func (s *BattleService) Record(battleID string) (*RecordView, error) {
	if s.repo == nil {
		return nil, ErrRecordNotFound
	}
	v, err, _ := dedupe.RecordGroup.Do(battleID, func() (interface{}, error) {
		return s.repo.GetBattleRecord(battleID)
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	rec := *v.(*game.BattleRecord)
	view := &RecordView{BattleRecord: rec, Events: []game.Event{}}
	if rec.EventsJSON != "" {
		if err := json.Unmarshal([]byte(rec.EventsJSON), &view.Events); err != nil {
			return nil, fmt.Errorf("decode events of %s: %w", battleID, err)
		}
	}
	return view, nil
}

// RecentRecords lists the latest finished battles without their events.
func (s *BattleService) RecentRecords(limit int) ([]game.BattleRecord, error) {
	if s.repo == nil {
		return []game.BattleRecord{}, nil
	}
	return s.repo.ListRecentBattles(limit)
}

// TemplateStats returns the database aggregate for a catalog template. A
// template that has not fought yet reports zero counts.
func (s *BattleService) TemplateStats(key string) (*game.TemplateStats, error) {
	tpl, err := s.template(key)
	if err != nil {
		return nil, err
	}
	if s.repo == nil {
		return &game.TemplateStats{TemplateKey: tpl.Key}, nil
	}
	st, err := s.repo.GetTemplateStats(tpl.Key)
	if errors.Is(err, storage.ErrNotFound) {
		return &game.TemplateStats{TemplateKey: tpl.Key}, nil
	}
	return st, err
}

// Leaderboard returns the top templates by wins. The live Redis ranking
// is preferred; the database aggregate answers when it is unavailable.
func (s *BattleService) Leaderboard(ctx context.Context, limit int) ([]ranking.Entry, error) {
	v, err, _ := dedupe.LeaderboardGroup.Do(fmt.Sprintf("board:%d", limit), func() (interface{}, error) {
		entries, err := s.ranker.Top(ctx, limit)
		if err == nil {
			return entries, nil
		}
		if !errors.Is(err, ranking.ErrDisabled) {
			logging.Warn("ranking unavailable; using database", logging.Fields{"error": err.Error()})
		}
		if s.repo == nil {
			return []ranking.Entry{}, nil
		}
		stats, err := s.repo.GetTopTemplates(limit)
		if err != nil {
			return nil, err
		}
		out := make([]ranking.Entry, 0, len(stats))
		for _, st := range stats {
			out = append(out, ranking.Entry{Template: st.TemplateKey, Wins: st.Wins, Battles: st.Battles})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ranking.Entry), nil
}
