package storage

import (
	"errors"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// SaveBattleRecord stores a finished battle and folds its outcome into
	// both templates' stats in one transaction.
	SaveBattleRecord(rec *game.BattleRecord) error
	GetBattleRecord(battleID string) (*game.BattleRecord, error)
	ListRecentBattles(limit int) ([]game.BattleRecord, error)
	GetTemplateStats(templateKey string) (*game.TemplateStats, error)
	// GetTopTemplates returns templates ordered by wins, then battles.
	GetTopTemplates(limit int) ([]game.TemplateStats, error)
}
