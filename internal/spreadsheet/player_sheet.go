package spreadsheet

import (
	"fmt"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
)

// BuildPlayerTable renders the roster: one row per player with a column per
// owned character.
func BuildPlayerTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitlePlayer, HasTotalRow: true}

	maxCharacters := 0
	for _, p := range players {
		if len(p.Characters) > maxCharacters {
			maxCharacters = len(p.Characters)
		}
	}

	header := []any{HeaderNo, HeaderPlayerName, HeaderActive}
	for i := 0; i < maxCharacters; i++ {
		header = append(header, characterOrdinalHeader(i))
	}
	header = append(header, HeaderPlayerTimes, HeaderGameMasterTimes, HeaderTotalGames, HeaderUpdatedAt)
	t.Rows = append(t.Rows, header)

	activeIndex := indexOf(header, HeaderActive)
	firstCharacterIndex := activeIndex + 1

	for i, p := range players {
		sheetRow := i + 2
		row := []any{i + 1, p.Name, p.ActiveStatus().Mark()}
		for j := 0; j < maxCharacters; j++ {
			if j >= len(p.Characters) {
				row = append(row, "")
				continue
			}
			c := p.Characters[j]
			row = append(row, c.Name)
			t.linkCell(sheetRow, firstCharacterIndex+j+1, c.SheetURL(opts.sheetBaseURL()))
		}

		playerTimes := p.PlayerTimes()
		gameMasterTimes := p.GameMasterTimes()
		row = append(row,
			playerTimes,
			gameMasterTimes,
			playerTimes+gameMasterTimes,
			formatUpdatedAt(p, opts),
		)
		t.Rows = append(t.Rows, row)
	}

	total := blankRow(len(header))
	total[activeIndex-1] = TotalLabel
	active := 0
	for _, p := range players {
		if p.ActiveStatus().IsActive() {
			active++
		}
	}
	total[activeIndex] = active
	for j := 1; j < maxCharacters; j++ {
		n := 0
		for _, p := range players {
			if len(p.Characters) > j {
				n++
			}
		}
		total[firstCharacterIndex+j] = n
	}
	t.Rows = append(t.Rows, total)

	t.centerColumn(activeIndex+1, 2, t.RowCount()-1)
	return t
}

func characterOrdinalHeader(i int) string {
	return fmt.Sprintf("%d人目", i+1)
}

func formatUpdatedAt(p *character.Player, opts Options) string {
	updatedAt := p.UpdatedAt()
	if updatedAt.IsZero() {
		return ""
	}
	return updatedAt.In(opts.location()).Format(DateTimeLayout)
}
