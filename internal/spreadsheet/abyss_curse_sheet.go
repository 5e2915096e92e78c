package spreadsheet

import (
	"strings"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

const headerCurseCount = "数"

// BuildAbyssCurseTable renders curse tags per character. The name cell is
// prefixed with the carried tags so the sheet can be searched by tag.
func BuildAbyssCurseTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleAbyssCurse, HasTotalRow: true}

	fixed := []string{HeaderNo, HeaderCharacterName, HeaderActive, headerCurseCount}
	header := headerRow(fixed, swordworld.AbyssCurses)
	t.Rows = append(t.Rows, header)

	nameColumn := indexOf(header, HeaderCharacterName) + 1

	for _, r := range characterRows(players) {
		c := r.character
		var prefix strings.Builder
		marks := make([]any, 0, len(swordworld.AbyssCurses))
		for _, curse := range swordworld.AbyssCurses {
			has := c.HasAbyssCurse(curse)
			if has {
				prefix.WriteString(curse)
			}
			marks = append(marks, mark(has))
		}

		row := []any{r.no, prefix.String() + c.Name, c.ActiveStatus.Mark(), len(c.AbyssCurses)}
		t.Rows = append(t.Rows, append(row, marks...))

		t.addFormat(Cell(r.row, nameColumn), CellFormat{Link: c.SheetURL(opts.sheetBaseURL()), Wrap: true})
	}

	total := blankRow(len(fixed) - 1)
	total[len(total)-1] = TotalLabel
	sum := 0
	perCurse := make([]int, len(swordworld.AbyssCurses))
	for _, p := range players {
		for _, c := range p.Characters {
			sum += len(c.AbyssCurses)
			for i, curse := range swordworld.AbyssCurses {
				if c.HasAbyssCurse(curse) {
					perCurse[i]++
				}
			}
		}
	}
	total = append(total, sum)
	for _, n := range perCurse {
		total = append(total, n)
	}
	t.Rows = append(t.Rows, total)

	lastDataRow := t.RowCount() - 1
	t.centerColumn(indexOf(header, HeaderActive)+1, 2, lastDataRow)
	if lastDataRow >= 2 {
		t.addFormat(Span(2, len(fixed)+1, lastDataRow, len(header)), CellFormat{HorizontalAlignment: AlignCenter})
	}
	return t
}
