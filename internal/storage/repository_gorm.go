package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/DanKadrios/SMTLite/internal/game"
)

const defaultListLimit = 10

type gormRepository struct {
	db *gorm.DB
}

// NewRepository wraps an open connection (SQLite or PostgreSQL).
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) SaveBattleRecord(rec *game.BattleRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		if rec.Winner == "" {
			return nil
		}
		winner, loser := rec.WinnerTemplate(), rec.LoserTemplate()
		if winner == loser {
			// mirror match: one battle, one win and one loss on the same row
			return bumpStats(tx, winner, 1, 1)
		}
		if err := bumpStats(tx, winner, 1, 0); err != nil {
			return err
		}
		return bumpStats(tx, loser, 0, 1)
	})
}

// bumpStats adds one battle plus the given win/loss deltas to key's row,
// creating it when missing.
func bumpStats(tx *gorm.DB, key string, wins, losses int) error {
	if key == "" {
		return nil
	}
	row := game.TemplateStats{TemplateKey: key, Battles: 1, Wins: wins, Losses: losses}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "template_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"battles":    gorm.Expr("template_stats.battles + ?", 1),
			"wins":       gorm.Expr("template_stats.wins + ?", wins),
			"losses":     gorm.Expr("template_stats.losses + ?", losses),
			"updated_at": time.Now(),
		}),
	}).Create(&row).Error
}

func (r *gormRepository) GetBattleRecord(battleID string) (*game.BattleRecord, error) {
	var rec game.BattleRecord
	if err := r.db.Where("battle_id = ?", battleID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListRecentBattles returns the latest finished battles, newest first.
func (r *gormRepository) ListRecentBattles(limit int) ([]game.BattleRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var recs []game.BattleRecord
	if err := r.db.Order("finished_at DESC").Order("id DESC").Limit(limit).Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *gormRepository) GetTemplateStats(templateKey string) (*game.TemplateStats, error) {
	var st game.TemplateStats
	if err := r.db.Where("template_key = ?", templateKey).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *gormRepository) GetTopTemplates(limit int) ([]game.TemplateStats, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	var stats []game.TemplateStats
	if err := r.db.Model(&game.TemplateStats{}).
		Order("wins DESC").
		Order("battles DESC").
		Order("template_key ASC").
		Limit(limit).
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
