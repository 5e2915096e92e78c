package character

import (
	"fmt"
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

// GMDedup selects how a player's game master sessions are counted.
type GMDedup string

const (
	// GMDedupPlayer counts distinct scenario keys across all characters.
	GMDedupPlayer GMDedup = "player"
	// GMDedupCharacter sums each character's own count.
	GMDedupCharacter GMDedup = "character"
)

// ParseGMDedup validates a policy name. An empty name selects GMDedupPlayer.
func ParseGMDedup(s string) (GMDedup, error) {
	switch GMDedup(s) {
	case "", GMDedupPlayer:
		return GMDedupPlayer, nil
	case GMDedupCharacter:
		return GMDedupCharacter, nil
	default:
		return "", fmt.Errorf("unknown gm dedup policy %q", s)
	}
}

// Player groups the characters of one participant. Rollups are computed on
// every call from Characters.
type Player struct {
	Name       string
	Characters []*Character
	GMDedup    GMDedup
}

// NewPlayer creates a player owning characters.
func NewPlayer(name string, characters []*Character, dedup GMDedup) *Player {
	return &Player{Name: name, Characters: characters, GMDedup: dedup}
}

// CountActive returns the number of active characters.
func (p *Player) CountActive() int {
	n := 0
	for _, c := range p.Characters {
		if c.ActiveStatus.IsActive() {
			n++
		}
	}
	return n
}

// CountVagrants returns the number of vagrants characters.
func (p *Player) CountVagrants() int {
	n := 0
	for _, c := range p.Characters {
		if c.IsVagrants() {
			n++
		}
	}
	return n
}

// ActiveStatus returns the highest status among the characters.
func (p *Player) ActiveStatus() swordworld.ExpStatus {
	status := swordworld.ExpInactive
	for _, c := range p.Characters {
		if c.ActiveStatus > status {
			status = c.ActiveStatus
		}
	}
	return status
}

// PlayerTimes sums sessions joined as a player.
func (p *Player) PlayerTimes() int {
	n := 0
	for _, c := range p.Characters {
		n += c.PlayerTimes
	}
	return n
}

// GameMasterTimes counts sessions run as game master under the player's policy.
func (p *Player) GameMasterTimes() int {
	if p.GMDedup == GMDedupCharacter {
		n := 0
		for _, c := range p.Characters {
			n += c.GameMasterTimes()
		}
		return n
	}

	keys := make(map[string]struct{})
	for _, c := range p.Characters {
		for _, key := range c.GameMasterScenarioKeys {
			keys[key] = struct{}{}
		}
	}
	return len(keys)
}

// UpdatedAt returns the latest sheet update among the characters.
func (p *Player) UpdatedAt() time.Time {
	var latest time.Time
	for _, c := range p.Characters {
		if c.UpdatedAt.After(latest) {
			latest = c.UpdatedAt
		}
	}
	return latest
}
