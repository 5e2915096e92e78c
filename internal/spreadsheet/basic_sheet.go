package spreadsheet

import (
	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
)

const headerMajorRace = "種族\nマイナーチェンジ除く"

// BuildBasicTable renders profile and session counts per character.
func BuildBasicTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleBasic, HasTotalRow: true}

	header := []any{
		HeaderNo,
		HeaderCharacterName,
		HeaderActive,
		HeaderPlayerName,
		HeaderRace,
		headerMajorRace,
		"年齢",
		"性別",
		"身長",
		"体重",
		HeaderFaith,
		HeaderVagrants,
		"穢れ",
		HeaderPlayerTimes,
		HeaderGameMasterTimes,
		HeaderTotalGames,
		"累計ガメル",
		HeaderDiedTimes,
	}
	t.Rows = append(t.Rows, header)
	nameColumn := indexOf(header, HeaderCharacterName) + 1

	active, vagrants, died := 0, 0, 0
	for _, r := range characterRows(players) {
		c := r.character
		gameMasterTimes := c.GameMasterTimes()
		t.Rows = append(t.Rows, []any{
			r.no,
			c.Name,
			c.ActiveStatus.Mark(),
			r.player.Name,
			c.MinorRace(),
			c.MajorRace(),
			c.Age,
			c.Gender,
			c.Height,
			c.Weight,
			c.Faith,
			mark(c.IsVagrants()),
			c.Sin,
			c.PlayerTimes,
			gameMasterTimes,
			c.PlayerTimes + gameMasterTimes,
			c.HistoryMoneyTotal,
			c.DiedTimes,
		})
		t.linkCell(r.row, nameColumn, c.SheetURL(opts.sheetBaseURL()))

		if c.ActiveStatus.IsActive() {
			active++
		}
		if c.IsVagrants() {
			vagrants++
		}
		died += c.DiedTimes
	}

	activeIndex := indexOf(header, HeaderActive)
	vagrantsIndex := indexOf(header, HeaderVagrants)
	total := blankRow(len(header))
	total[activeIndex-1] = TotalLabel
	total[activeIndex] = active
	total[vagrantsIndex] = vagrants
	total[indexOf(header, HeaderDiedTimes)] = died
	t.Rows = append(t.Rows, total)

	t.centerColumn(activeIndex+1, 2, t.RowCount()-1)
	t.centerColumn(vagrantsIndex+1, 2, t.RowCount()-1)
	return t
}
