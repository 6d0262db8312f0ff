package game

import (
	"time"

	"gorm.io/gorm"
)

// BattleRecord is the persisted summary of a finished battle. Live sessions
// are never stored; only outcomes are.
type BattleRecord struct {
	gorm.Model
	BattleID         string    `json:"battle_id" gorm:"size:36;uniqueIndex"`
	PlayerTemplate   string    `json:"player_template" gorm:"size:64;index"`
	OpponentTemplate string    `json:"opponent_template" gorm:"size:64;index"`
	PlayerName       string    `json:"player_name"`
	OpponentName     string    `json:"opponent_name"`
	Winner           Side      `json:"winner" gorm:"size:16"`
	Rounds           int       `json:"rounds"`
	// EventsJSON holds the full narrated event log as a JSON array.
	EventsJSON string    `json:"-" gorm:"type:text"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Store finished battles in a dedicated table.
func (BattleRecord) TableName() string { return "battle_records" }

// WinnerTemplate returns the template key of the winning side, or "" when
// the battle has no winner.
func (r BattleRecord) WinnerTemplate() string {
	switch r.Winner {
	case SidePlayer:
		return r.PlayerTemplate
	case SideOpponent:
		return r.OpponentTemplate
	}
	return ""
}

// LoserTemplate returns the template key of the losing side.
func (r BattleRecord) LoserTemplate() string {
	switch r.Winner {
	case SidePlayer:
		return r.OpponentTemplate
	case SideOpponent:
		return r.PlayerTemplate
	}
	return ""
}

// TemplateStats aggregates outcomes per actor template.
type TemplateStats struct {
	gorm.Model
	TemplateKey string `json:"template" gorm:"size:64;uniqueIndex"`
	Battles     int    `json:"battles"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
}

func (TemplateStats) TableName() string { return "template_stats" }
