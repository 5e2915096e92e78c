package spreadsheet

import (
	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

// BuildAbilityTable renders class levels. Exp is coloured red at the cap and
// blue below the activity threshold.
func BuildAbilityTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleAbility, HasTotalRow: true}

	fixed := []string{HeaderNo, HeaderCharacterName, HeaderActive, HeaderFaith, HeaderLevel, HeaderExp}
	skillNames := make([]string, len(swordworld.CombatSkills))
	for i, skill := range swordworld.CombatSkills {
		skillNames[i] = skill.Name
	}
	header := headerRow(ToVerticalHeaders(fixed), ToVerticalHeaders(skillNames))
	t.Rows = append(t.Rows, header)

	nameColumn := indexOf(header, HeaderCharacterName) + 1
	expColumn := indexOf(header, HeaderExp) + 1

	for _, r := range characterRows(players) {
		c := r.character
		row := []any{r.no, c.Name, c.ActiveStatus.Mark(), c.Faith, c.Level, c.Exp}
		for _, skill := range swordworld.CombatSkills {
			if level := c.SkillLevel(skill.Code); level > 0 {
				row = append(row, level)
			} else {
				row = append(row, "")
			}
		}
		t.Rows = append(t.Rows, row)

		switch c.ActiveStatus {
		case swordworld.ExpMax:
			t.colorCells(Cell(r.row, expColumn), ColorRed)
		case swordworld.ExpInactive:
			t.colorCells(Cell(r.row, expColumn), ColorBlue)
		}
		t.linkCell(r.row, nameColumn, c.SheetURL(opts.sheetBaseURL()))
	}

	total := blankRow(len(fixed))
	total[len(fixed)-1] = TotalLabel
	for _, skill := range swordworld.CombatSkills {
		n := 0
		for _, p := range players {
			for _, c := range p.Characters {
				if c.SkillLevel(skill.Code) > 0 {
					n++
				}
			}
		}
		total = append(total, n)
	}
	t.Rows = append(t.Rows, total)

	t.addFormat(Span(1, len(fixed)+1, 1, len(header)), CellFormat{VerticalText: true})
	t.centerColumn(indexOf(header, HeaderActive)+1, 2, t.RowCount()-1)
	return t
}
