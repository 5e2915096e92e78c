package models

import (
	"time"
)

// Player is a participant registered for a season.
type Player struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	SeasonID   int               `gorm:"uniqueIndex:idx_players_season_name" json:"season_id"`
	Name       string            `gorm:"size:128;uniqueIndex:idx_players_season_name" json:"name"`
	Characters []PlayerCharacter `gorm:"foreignKey:PlayerID" json:"characters"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// PlayerCharacter links a player to one sheet. Position keeps registration
// order within the player.
type PlayerCharacter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PlayerID  uint      `gorm:"index" json:"player_id"`
	SeasonID  int       `gorm:"uniqueIndex:idx_player_characters_season_sheet" json:"season_id"`
	YtsheetID string    `gorm:"size:64;uniqueIndex:idx_player_characters_season_sheet" json:"ytsheet_id"`
	Position  int       `json:"position"`
	IsDeleted bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
}

// ActiveCharacters returns the characters that are not marked deleted.
func (p *Player) ActiveCharacters() []PlayerCharacter {
	out := make([]PlayerCharacter, 0, len(p.Characters))
	for _, c := range p.Characters {
		if !c.IsDeleted {
			out = append(out, c)
		}
	}
	return out
}
