package spreadsheet

import (
	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

const headerLegacyStyle = "2.0流派"

// BuildHonorTable renders honor totals and style enrolment.
func BuildHonorTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleHonor, HasTotalRow: true}

	fixed := []string{HeaderNo, HeaderCharacterName, HeaderActive, "冒険者ランク", "累計名誉点", "入門数"}
	vertical := []string{headerLegacyStyle}
	for _, style := range swordworld.Styles {
		vertical = append(vertical, style.Name)
	}
	header := headerRow(fixed, ToVerticalHeaders(vertical))
	t.Rows = append(t.Rows, header)

	nameColumn := indexOf(header, HeaderCharacterName) + 1

	for _, r := range characterRows(players) {
		c := r.character
		row := []any{
			r.no,
			c.Name,
			c.ActiveStatus.Mark(),
			c.AdventurerRank,
			c.TotalHonor,
			len(c.Styles),
			mark(c.HasLegacyStyle()),
		}
		for _, style := range swordworld.Styles {
			row = append(row, mark(c.HasStyle(style)))
		}
		t.Rows = append(t.Rows, row)
		t.linkCell(r.row, nameColumn, c.SheetURL(opts.sheetBaseURL()))
	}

	total := blankRow(len(fixed))
	legacy := 0
	perStyle := make([]int, len(swordworld.Styles))
	for _, p := range players {
		for _, c := range p.Characters {
			if c.HasLegacyStyle() {
				legacy++
			}
			for i, style := range swordworld.Styles {
				if c.HasStyle(style) {
					perStyle[i]++
				}
			}
		}
	}
	total = append(total, legacy)
	for _, n := range perStyle {
		total = append(total, n)
	}
	t.Rows = append(t.Rows, total)

	lastDataRow := t.RowCount() - 1
	t.addFormat(Span(1, len(fixed)+1, 1, len(header)), CellFormat{VerticalText: true})
	t.centerColumn(indexOf(header, HeaderActive)+1, 2, lastDataRow)
	if lastDataRow >= 2 {
		t.addFormat(Span(2, len(fixed)+1, lastDataRow, len(header)), CellFormat{HorizontalAlignment: AlignCenter})
	}
	return t
}
