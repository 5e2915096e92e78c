package spreadsheet

import (
	"fmt"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

const headerAutoCombatFeats = "自動取得"

// BuildCombatFeatTable renders feat slots by level. Slots the character has
// not reached yet are greyed out, as is the battle dancer slot without the
// class.
func BuildCombatFeatTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleCombatFeat}

	header := []any{HeaderNo, HeaderCharacterName, HeaderActive, HeaderBattleDancer}
	for _, level := range swordworld.CombatFeatLevels {
		header = append(header, levelHeader(level))
	}
	header = append(header, headerAutoCombatFeats)
	t.Rows = append(t.Rows, header)

	nameColumn := indexOf(header, HeaderCharacterName) + 1
	battleDancerColumn := indexOf(header, HeaderBattleDancer) + 1
	lastLevelColumn := indexOf(header, levelHeader(swordworld.MaxCombatFeatLevel)) + 1

	for _, r := range characterRows(players) {
		c := r.character
		row := []any{r.no, c.Name, c.ActiveStatus.Mark(), c.BattleDancerFeat}
		for _, level := range swordworld.CombatFeatLevels {
			row = append(row, c.CombatFeats[level])
		}
		for _, feat := range c.AutoCombatFeats {
			row = append(row, feat)
		}
		t.Rows = append(t.Rows, row)

		t.linkCell(r.row, nameColumn, c.SheetURL(opts.sheetBaseURL()))

		for _, level := range swordworld.CombatFeatLevels[1:] {
			if c.Level < level {
				start := indexOf(header, levelHeader(level)) + 1
				t.colorCells(Span(r.row, start, r.row, lastLevelColumn), ColorGray)
				break
			}
		}
		if c.SkillLevel(swordworld.BattleDancerCode) == 0 {
			t.colorCells(Cell(r.row, battleDancerColumn), ColorGray)
		}
	}

	t.centerColumn(indexOf(header, HeaderActive)+1, 2, t.RowCount())
	return t
}

func levelHeader(level int) string {
	return fmt.Sprintf("%s%d", HeaderLevel, level)
}
