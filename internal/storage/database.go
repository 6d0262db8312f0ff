package storage

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DanKadrios/SMTLite/internal/game"
)

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server rather
// than a SQLite file.
func IsPostgresDSN(dsn string) bool {
	d := strings.TrimSpace(dsn)
	return strings.HasPrefix(d, "postgres://") ||
		strings.HasPrefix(d, "postgresql://") ||
		strings.Contains(d, "host=")
}

func dialector(dsn string) gorm.Dialector {
	if IsPostgresDSN(dsn) {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// OpenAndMigrate connects to dsn, migrates the outcome tables and makes
// sure every catalog template has a stats row.
func OpenAndMigrate(dsn string, templates []game.Template) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&game.BattleRecord{}, &game.TemplateStats{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := seedTemplateStats(db, templates); err != nil {
		return nil, fmt.Errorf("seed template stats: %w", err)
	}
	return db, nil
}

// seedTemplateStats inserts zeroed rows for templates that have none yet.
func seedTemplateStats(db *gorm.DB, templates []game.Template) error {
	if len(templates) == 0 {
		return nil
	}
	var existing []string
	if err := db.Model(&game.TemplateStats{}).Pluck("template_key", &existing).Error; err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, k := range existing {
		have[k] = true
	}
	rows := make([]game.TemplateStats, 0, len(templates))
	for _, t := range templates {
		if !have[t.Key] {
			rows = append(rows, game.TemplateStats{TemplateKey: t.Key})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}
