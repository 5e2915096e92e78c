package character

import (
	"fmt"
	"strings"
	"time"

	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

// DefaultSheetBaseURL is the public sheet viewer.
const DefaultSheetBaseURL = "https://yutorize.2-d.jp/ytsheet/sw2.5/"

// SheetURL returns the viewer URL of a sheet.
func SheetURL(baseURL, ytsheetID string) string {
	return fmt.Sprintf("%s?id=%s", baseURL, ytsheetID)
}

// LevelCap holds the experience thresholds of a season period.
type LevelCap struct {
	MaxExp     int
	MinimumExp int
}

// Character is a player character derived from one sheet document.
type Character struct {
	YtsheetID      string
	Name           string
	Race           string
	Age            string
	Gender         string
	Height         string
	Weight         string
	Birth          string
	Faith          string
	Sin            string
	AdventurerRank string

	Level             int
	Exp               int
	GrowthTimes       int
	TotalHonor        int
	HP                int
	MP                int
	LifeResistance    int
	SpiritResistance  int
	MonsterKnowledge  int
	Initiative        int
	HistoryMoneyTotal int

	ActiveStatus swordworld.ExpStatus

	Dexterity    swordworld.Status
	Agility      swordworld.Status
	Strength     swordworld.Status
	Vitality     swordworld.Status
	Intelligence swordworld.Status
	Mental       swordworld.Status

	// CombatFeats is keyed by the level that granted the slot.
	CombatFeats      map[int]string
	BattleDancerFeat string
	AutoCombatFeats  []string

	// Skills holds learned class levels keyed by sheet code.
	Skills map[string]int

	Styles        []swordworld.Style
	AbyssCurses   []string
	GeneralSkills []swordworld.GeneralSkill

	PlayerTimes            int
	DiedTimes              int
	GameMasterScenarioKeys []string

	UpdatedAt time.Time
}

// Parse builds a Character from a sheet document. playerName is the owner
// and is used to credit game master sessions.
func Parse(doc Document, playerName string, levelCap LevelCap) *Character {
	c := &Character{
		YtsheetID:      doc.String("id", ""),
		Race:           doc.String("race", ""),
		Age:            doc.String("age", ""),
		Gender:         doc.String("gender", ""),
		Birth:          doc.String("birth", ""),
		AdventurerRank: doc.String("rank", ""),
		Sin:            doc.String("sin", "0"),

		Level:             doc.Int("level"),
		Exp:               doc.Int("expTotal"),
		GrowthTimes:       doc.Int("historyGrowTotal"),
		TotalHonor:        doc.Int("historyHonorTotal"),
		HP:                doc.Int("hpTotal"),
		MP:                doc.Int("mpTotal"),
		LifeResistance:    doc.Int("vitResistTotal"),
		SpiritResistance:  doc.Int("mndResistTotal"),
		MonsterKnowledge:  doc.Int("monsterLore"),
		Initiative:        doc.Int("initiative"),
		HistoryMoneyTotal: doc.Int("historyMoneyTotal"),
	}

	c.Name = characterName(doc)
	c.ActiveStatus = swordworld.ClassifyExp(c.Exp, levelCap.MaxExp, levelCap.MinimumExp)

	c.Faith = doc.String("faith", "なし")
	if c.Faith == "その他の信仰" {
		c.Faith = doc.String("faithOther", c.Faith)
	}

	c.CombatFeats = make(map[int]string, len(swordworld.CombatFeatLevels))
	for _, level := range swordworld.CombatFeatLevels {
		c.CombatFeats[level] = doc.String(fmt.Sprintf("combatFeatsLv%d", level), "")
	}
	c.BattleDancerFeat = doc.String("combatFeatsLv1bat", "")
	c.AutoCombatFeats = strings.Split(doc.String("combatFeatsAuto", ""), ",")

	c.Skills = make(map[string]int)
	for _, skill := range swordworld.CombatSkills {
		if level := doc.Int(skill.Code); level > 0 {
			c.Skills[skill.Code] = level
		}
	}

	c.Dexterity = parseStatus(doc, "A", "Dex")
	c.Agility = parseStatus(doc, "B", "Agi")
	c.Strength = parseStatus(doc, "C", "Str")
	c.Vitality = parseStatus(doc, "D", "Vit")
	c.Intelligence = parseStatus(doc, "E", "Int")
	c.Mental = parseStatus(doc, "F", "Mnd")

	c.Styles = parseStyles(doc)
	c.AbyssCurses = parseAbyssCurses(doc)
	c.GeneralSkills = parseGeneralSkills(doc)

	history := parseHistory(doc, playerName)
	c.PlayerTimes = history.playerTimes
	c.DiedTimes = history.diedTimes
	c.GameMasterScenarioKeys = history.gameMasterKeys

	c.Height, c.Weight = parseBodySize(doc.String("freeNote", ""))

	return c
}

func parseStatus(doc Document, column, name string) swordworld.Status {
	return swordworld.NewStatus(
		doc.Int("sttBase"+column),
		doc.Int("stt"+name),
		doc.Int("sttAdd"+column),
		doc.Int("sttEquip"+column),
	)
}

func parseStyles(doc Document) []swordworld.Style {
	var set swordworld.StyleSet
	blocks := []struct{ count, field string }{
		{"mysticArtsNum", "mysticArts%d"},
		{"mysticMagicNum", "mysticMagic%d"},
		{"honorItemsNum", "honorItem%d"},
		{"dishonorItemsNum", "dishonorItem%d"},
	}
	for _, block := range blocks {
		for i := 1; i <= doc.Int(block.count); i++ {
			if style, ok := swordworld.FindStyle(doc.String(fmt.Sprintf(block.field, i), "")); ok {
				set.Add(style)
			}
		}
	}
	return set.Styles()
}

func parseAbyssCurses(doc Document) []string {
	var set swordworld.CurseSet
	for i := 1; i <= doc.Int("weaponNum"); i++ {
		set.Add(swordworld.FindAbyssCurses(doc.String(fmt.Sprintf("weapon%dName", i), ""))...)
		set.Add(swordworld.FindAbyssCurses(doc.String(fmt.Sprintf("weapon%dNote", i), ""))...)
	}
	for i := 1; i <= doc.Int("armourNum"); i++ {
		set.Add(swordworld.FindAbyssCurses(doc.String(fmt.Sprintf("armour%dName", i), ""))...)
		set.Add(swordworld.FindAbyssCurses(doc.String(fmt.Sprintf("armour%dNote", i), ""))...)
	}
	set.Add(swordworld.FindAbyssCurses(doc.String("items", ""))...)
	return set.Tags()
}

func parseGeneralSkills(doc Document) []swordworld.GeneralSkill {
	var skills []swordworld.GeneralSkill
	for i := 1; i <= doc.Int("commonClassNum"); i++ {
		skill, ok := swordworld.ClassifyGeneralSkill(
			doc.String(fmt.Sprintf("commonClass%d", i), ""),
			doc.Int(fmt.Sprintf("lvCommon%d", i)),
		)
		if ok {
			skills = append(skills, skill)
		}
	}
	return skills
}

// SheetURL returns the viewer URL of the character's sheet.
func (c *Character) SheetURL(baseURL string) string {
	return SheetURL(baseURL, c.YtsheetID)
}

// SkillLevel returns the class level for a sheet code, 0 when unlearned.
func (c *Character) SkillLevel(code string) int {
	return c.Skills[code]
}

// GameMasterTimes returns the number of sessions this character was credited as game master.
func (c *Character) GameMasterTimes() int {
	return len(c.GameMasterScenarioKeys)
}

// HasStyle reports whether the character is enrolled in style.
func (c *Character) HasStyle(style swordworld.Style) bool {
	for _, s := range c.Styles {
		if s.Equal(style) {
			return true
		}
	}
	return false
}

// HasLegacyStyle reports whether any enrolled style is from the 2.0 rules.
func (c *Character) HasLegacyStyle() bool {
	for _, s := range c.Styles {
		if !s.IsModernEdition {
			return true
		}
	}
	return false
}

// HasAbyssCurse reports whether the character carries the curse tag.
func (c *Character) HasAbyssCurse(tag string) bool {
	for _, t := range c.AbyssCurses {
		if t == tag {
			return true
		}
	}
	return false
}

// HasGeneralSkill reports whether the character learned the official skill.
func (c *Character) HasGeneralSkill(skill swordworld.GeneralSkill) bool {
	_, ok := c.GeneralSkillLevel(skill)
	return ok
}

// GeneralSkillLevel returns the level of an official general skill.
func (c *Character) GeneralSkillLevel(skill swordworld.GeneralSkill) (int, bool) {
	for _, g := range c.GeneralSkills {
		if !g.IsOriginal && g.SameSkill(skill) {
			return g.Level, true
		}
	}
	return 0, false
}

func (c *Character) bases() [6]int {
	return [6]int{
		c.Dexterity.Base,
		c.Agility.Base,
		c.Strength.Base,
		c.Vitality.Base,
		c.Intelligence.Base,
		c.Mental.Base,
	}
}

// DiceAverage is the mean pip of the creation roll. Races missing from the
// catalog yield 0.
func (c *Character) DiceAverage() float64 {
	race, ok := swordworld.LookupRace(c.MajorRace())
	if !ok {
		return 0
	}
	total := race.TotalBaseStatus()
	if total.DiceCount == 0 {
		return 0
	}
	sum := 0
	for _, b := range c.bases() {
		sum += b
	}
	return float64(sum-total.FixedValue) / float64(total.DiceCount)
}

// AllocationPoints converts the creation roll to point-buy cost. Races
// missing from the catalog yield 0.
func (c *Character) AllocationPoints() int {
	race, ok := swordworld.LookupRace(c.MajorRace())
	if !ok {
		return 0
	}
	return race.AllocationPoints(c.bases())
}
