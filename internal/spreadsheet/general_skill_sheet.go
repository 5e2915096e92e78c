package spreadsheet

import (
	"strings"

	"github.com/pon3939/SummarizeCharacterSheets/internal/character"
	"github.com/pon3939/SummarizeCharacterSheets/internal/swordworld"
)

// BuildGeneralSkillTable renders general skills: a summary of official and
// original skills followed by one level column per official skill.
func BuildGeneralSkillTable(players []*character.Player, opts Options) *Table {
	t := &Table{Title: TitleGeneralSkill, HasTotalRow: true}

	fixed := []string{HeaderNo, HeaderCharacterName, HeaderActive, "公式技能", "オリジナル技能"}
	skillHeaders := make([]string, len(swordworld.OfficialGeneralSkills))
	for i, skill := range swordworld.OfficialGeneralSkills {
		skillHeaders[i] = skill.Formatted()
	}
	header := headerRow(fixed, ToVerticalHeaders(skillHeaders))
	t.Rows = append(t.Rows, header)

	nameColumn := indexOf(header, HeaderCharacterName) + 1

	for _, r := range characterRows(players) {
		c := r.character
		var official, original []string
		for _, g := range c.GeneralSkills {
			if g.IsOriginal {
				original = append(original, g.FormattedWithLevel())
			} else {
				official = append(official, g.FormattedWithLevel())
			}
		}

		row := []any{
			r.no,
			c.Name,
			c.ActiveStatus.Mark(),
			strings.Join(official, "\n"),
			strings.Join(original, "\n"),
		}
		for _, skill := range swordworld.OfficialGeneralSkills {
			if level, ok := c.GeneralSkillLevel(skill); ok {
				row = append(row, level)
			} else {
				row = append(row, nil)
			}
		}
		t.Rows = append(t.Rows, row)
		t.linkCell(r.row, nameColumn, c.SheetURL(opts.sheetBaseURL()))
	}

	total := blankRow(len(fixed))
	total[len(fixed)-1] = TotalLabel
	for _, skill := range swordworld.OfficialGeneralSkills {
		n := 0
		for _, p := range players {
			for _, c := range p.Characters {
				if c.HasGeneralSkill(skill) {
					n++
				}
			}
		}
		total = append(total, n)
	}
	t.Rows = append(t.Rows, total)

	rows := t.RowCount()
	t.addFormat(Span(1, len(fixed)+1, 1, len(header)), CellFormat{VerticalText: true})
	t.centerColumn(indexOf(header, HeaderActive)+1, 2, rows-1)
	t.addFormat(Span(rows, len(fixed)+1, rows, len(header)), CellFormat{HorizontalAlignment: AlignRight})
	return t
}
