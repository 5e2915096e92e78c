package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/models"
)

var (
	// ErrNotFound is returned by a SheetStore when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidEntry marks operator input the store refused.
	ErrInvalidEntry = errors.New("invalid entry")
	// ErrSheetConflict is returned when a sheet is already registered to
	// another player of the season.
	ErrSheetConflict = errors.New("ytsheet is registered to another player")
)

// PlayerEntry registers one sheet under a player name.
type PlayerEntry struct {
	Name      string `json:"name"`
	YtsheetID string `json:"ytsheet_id"`
}

// LevelCapEntry is a level cap as entered by an operator. StartDate is
// "YYYY/MM/DD" in the season's timezone.
type LevelCapEntry struct {
	StartDate  string `json:"start_date"`
	MaxExp     int    `json:"max_exp"`
	MinimumExp int    `json:"minimum_exp"`
}

// SheetStore persists players, level caps and raw sheet documents.
type SheetStore interface {
	ListPlayers(ctx context.Context, seasonID int) ([]models.Player, error)
	UpsertPlayers(ctx context.Context, seasonID int, entries []PlayerEntry) error

	InsertLevelCaps(ctx context.Context, seasonID int, entries []LevelCapEntry) error
	// CurrentLevelCap returns the latest cap starting at or before at.
	CurrentLevelCap(ctx context.Context, seasonID int, at time.Time) (*models.LevelCap, error)

	GetCharacterSheet(ctx context.Context, seasonID int, ytsheetID string) (*models.CharacterSheet, error)
	PutCharacterSheet(ctx context.Context, sheet *models.CharacterSheet) error
}
