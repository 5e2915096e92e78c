package models

import "time"

// CharacterSheet is the raw document last fetched from the sheet source.
type CharacterSheet struct {
	SeasonID  int       `gorm:"primaryKey" json:"season_id"`
	YtsheetID string    `gorm:"primaryKey;size:64" json:"ytsheet_id"`
	Body      string    `gorm:"type:longtext" json:"-"`
	FetchedAt time.Time `json:"fetched_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LevelCap holds the experience thresholds starting at StartDatetime.
type LevelCap struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SeasonID      int       `gorm:"index:idx_level_caps_season_start" json:"season_id"`
	StartDatetime time.Time `gorm:"index:idx_level_caps_season_start" json:"start_datetime"`
	MaxExp        int       `json:"max_exp"`
	MinimumExp    int       `json:"minimum_exp"`
	CreatedAt     time.Time `json:"created_at"`
}
