package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = interfaces.ErrNotFound

// levelCapDateLayout is the operator-facing start date format.
const levelCapDateLayout = "2006/01/02"

// SQLStore keeps players, level caps and raw sheets in a relational database.
type SQLStore struct {
	db       *gorm.DB
	location *time.Location
}

var _ interfaces.SheetStore = (*SQLStore)(nil)

// NewMySQLStore connects to MySQL and migrates the schema.
func NewMySQLStore(cfg config.MySQLConfig, loc *time.Location) (*SQLStore, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return newSQLStore(db, loc)
}

// NewSQLiteStore opens a SQLite database file and migrates the schema.
func NewSQLiteStore(path string, loc *time.Location) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite serialises writers anyway.
	sqlDB.SetMaxOpenConns(1)

	return newSQLStore(db, loc)
}

func newSQLStore(db *gorm.DB, loc *time.Location) (*SQLStore, error) {
	if err := db.AutoMigrate(
		&models.Player{},
		&models.PlayerCharacter{},
		&models.CharacterSheet{},
		&models.LevelCap{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SQLStore{db: db, location: loc}, nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) GetDB() *gorm.DB {
	return s.db
}

// Transaction helper
func (s *SQLStore) WithTx(ctx context.Context, fn func(*gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// ListPlayers returns the season's players in registration order with their
// characters preloaded.
func (s *SQLStore) ListPlayers(ctx context.Context, seasonID int) ([]models.Player, error) {
	var players []models.Player
	err := s.db.WithContext(ctx).
		Where("season_id = ?", seasonID).
		Preload("Characters", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("id ASC").
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// UpsertPlayers registers sheets by player name. A new name creates a
// player; an existing one gets the sheet appended. Re-registering a sheet
// under the same player is a no-op.
func (s *SQLStore) UpsertPlayers(ctx context.Context, seasonID int, entries []interfaces.PlayerEntry) error {
	return s.WithTx(ctx, func(tx *gorm.DB) error {
		for _, entry := range entries {
			if entry.Name == "" || entry.YtsheetID == "" {
				return fmt.Errorf("%w: player entry requires name and ytsheet_id: %+v", interfaces.ErrInvalidEntry, entry)
			}

			var player models.Player
			err := tx.Where("season_id = ? AND name = ?", seasonID, entry.Name).First(&player).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				player = models.Player{SeasonID: seasonID, Name: entry.Name}
				if err := tx.Create(&player).Error; err != nil {
					return fmt.Errorf("failed to create player %s: %w", entry.Name, err)
				}
			case err != nil:
				return fmt.Errorf("failed to find player %s: %w", entry.Name, err)
			}

			var existing models.PlayerCharacter
			err = tx.Where("season_id = ? AND ytsheet_id = ?", seasonID, entry.YtsheetID).First(&existing).Error
			if err == nil {
				if existing.PlayerID != player.ID {
					return fmt.Errorf("%w: %s", interfaces.ErrSheetConflict, entry.YtsheetID)
				}
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to find character %s: %w", entry.YtsheetID, err)
			}

			var count int64
			if err := tx.Model(&models.PlayerCharacter{}).Where("player_id = ?", player.ID).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count characters: %w", err)
			}
			character := models.PlayerCharacter{
				PlayerID:  player.ID,
				SeasonID:  seasonID,
				YtsheetID: entry.YtsheetID,
				Position:  int(count),
			}
			if err := tx.Create(&character).Error; err != nil {
				return fmt.Errorf("failed to add character %s: %w", entry.YtsheetID, err)
			}
			if err := tx.Model(&player).Update("updated_at", time.Now()).Error; err != nil {
				return fmt.Errorf("failed to touch player %s: %w", entry.Name, err)
			}
		}
		log.Printf("[SQLStore] Upserted %d player entries for season %d", len(entries), seasonID)
		return nil
	})
}

// ParseLevelCapDate parses a "YYYY/MM/DD" start date in loc.
func ParseLevelCapDate(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(levelCapDateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: start date %q: %v", interfaces.ErrInvalidEntry, value, err)
	}
	return t, nil
}

// InsertLevelCaps stores level caps. Start dates are read in the store's
// timezone and saved as UTC.
func (s *SQLStore) InsertLevelCaps(ctx context.Context, seasonID int, entries []interfaces.LevelCapEntry) error {
	if len(entries) == 0 {
		return nil
	}
	caps := make([]models.LevelCap, 0, len(entries))
	for _, entry := range entries {
		start, err := ParseLevelCapDate(entry.StartDate, s.location)
		if err != nil {
			return err
		}
		caps = append(caps, models.LevelCap{
			SeasonID:      seasonID,
			StartDatetime: start.UTC(),
			MaxExp:        entry.MaxExp,
			MinimumExp:    entry.MinimumExp,
		})
	}
	if err := s.db.WithContext(ctx).Create(&caps).Error; err != nil {
		return fmt.Errorf("failed to insert level caps: %w", err)
	}
	return nil
}

func (s *SQLStore) CurrentLevelCap(ctx context.Context, seasonID int, at time.Time) (*models.LevelCap, error) {
	var levelCap models.LevelCap
	err := s.db.WithContext(ctx).
		Where("season_id = ? AND start_datetime <= ?", seasonID, at.UTC()).
		Order("start_datetime DESC").
		First(&levelCap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level cap: %w", err)
	}
	return &levelCap, nil
}

func (s *SQLStore) GetCharacterSheet(ctx context.Context, seasonID int, ytsheetID string) (*models.CharacterSheet, error) {
	var sheet models.CharacterSheet
	err := s.db.WithContext(ctx).
		Where("season_id = ? AND ytsheet_id = ?", seasonID, ytsheetID).
		First(&sheet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet %s: %w", ytsheetID, err)
	}
	return &sheet, nil
}

// PutCharacterSheet inserts or replaces a raw sheet.
func (s *SQLStore) PutCharacterSheet(ctx context.Context, sheet *models.CharacterSheet) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(sheet).Error
	if err != nil {
		return fmt.Errorf("failed to put sheet %s: %w", sheet.YtsheetID, err)
	}
	return nil
}
