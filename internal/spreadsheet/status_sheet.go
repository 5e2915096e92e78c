package spreadsheet

import (
	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
)

const (
	adventurerBirth       = "冒険者"
	diceAverageHighlight  = 4.5
	diceAverageNumberRule = "0.00"
)

// BuildStatusTable renders ability totals and derived stats. A dice average
// above 4.5 is shown in red.
func BuildStatusTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleStatus}

	header := []any{
		HeaderNo,
		HeaderCharacterName,
		HeaderActive,
		HeaderRace,
		"器用",
		"敏捷",
		"筋力",
		"生命",
		"知力",
		"精神",
		"成長",
		"HP",
		"MP",
		"生命抵抗",
		"精神抵抗",
		"魔物知識",
		"先制",
		HeaderDiceAverage,
		HeaderAllocation,
		HeaderAdventurerBirth,
	}
	t.Rows = append(t.Rows, header)

	nameColumn := indexOf(header, HeaderCharacterName) + 1
	diceAverageColumn := indexOf(header, HeaderDiceAverage) + 1

	for _, r := range characterRows(players) {
		c := r.character
		diceAverage := c.DiceAverage()
		t.Rows = append(t.Rows, []any{
			r.no,
			c.Name,
			c.ActiveStatus.Mark(),
			c.MinorRace(),
			c.Dexterity.Total(),
			c.Agility.Total(),
			c.Strength.Total(),
			c.Vitality.Total(),
			c.Intelligence.Total(),
			c.Mental.Total(),
			c.GrowthTimes,
			c.HP,
			c.MP,
			c.LifeResistance,
			c.SpiritResistance,
			c.MonsterKnowledge,
			c.Initiative,
			diceAverage,
			c.AllocationPoints(),
			mark(c.Birth == adventurerBirth),
		})

		t.linkCell(r.row, nameColumn, c.SheetURL(opts.sheetBaseURL()))
		if diceAverage > diceAverageHighlight {
			t.colorCells(Cell(r.row, diceAverageColumn), ColorRed)
		}
	}

	last := t.RowCount()
	t.centerColumn(indexOf(header, HeaderActive)+1, 2, last)
	t.addFormat(Span(1, diceAverageColumn, last, diceAverageColumn), CellFormat{NumberPattern: diceAverageNumberRule})
	t.centerColumn(indexOf(header, HeaderAdventurerBirth)+1, 2, last)
	return t
}
