package spreadsheet

import (
	"fmt"
	"strings"
)

// FontFamily is applied to every written cell.
const FontFamily = "Meiryo"

// Horizontal alignments understood by the sheet writer.
const (
	AlignCenter = "CENTER"
	AlignRight  = "RIGHT"
)

// Color is an RGB colour with components in [0, 1].
type Color struct {
	Red, Green, Blue float64
}

var (
	ColorRed  = Color{Red: 1}
	ColorBlue = Color{Blue: 1}
	ColorGray = Color{Red: 0.4, Green: 0.4, Blue: 0.4}
)

// CellFormat is a partial cell format. Zero fields are left untouched by
// the writer.
type CellFormat struct {
	HorizontalAlignment string
	ForegroundColor     *Color
	Link                string
	Wrap                bool
	VerticalText        bool
	NumberPattern       string
}

// Range is an inclusive block of cells addressed from 1.
type Range struct {
	StartRow, StartColumn int
	EndRow, EndColumn     int
}

// Cell returns the single-cell range at row, column.
func Cell(row, column int) Range {
	return Range{StartRow: row, StartColumn: column, EndRow: row, EndColumn: column}
}

// Span returns the range between two corners.
func Span(startRow, startColumn, endRow, endColumn int) Range {
	return Range{StartRow: startRow, StartColumn: startColumn, EndRow: endRow, EndColumn: endColumn}
}

// A1 renders the range in A1 notation, collapsing single cells.
func (r Range) A1() string {
	start := cellA1(r.StartRow, r.StartColumn)
	if r.StartRow == r.EndRow && r.StartColumn == r.EndColumn {
		return start
	}
	return start + ":" + cellA1(r.EndRow, r.EndColumn)
}

func cellA1(row, column int) string {
	return columnLetters(column) + fmt.Sprint(row)
}

func columnLetters(column int) string {
	var b []byte
	for column > 0 {
		column--
		b = append([]byte{byte('A' + column%26)}, b...)
		column /= 26
	}
	return string(b)
}

// Format applies a CellFormat to a Range.
type Format struct {
	Range  Range
	Format CellFormat
}

// Table is one worksheet's content: a header row, data rows, an optional
// trailing total row and the formats to apply after writing.
type Table struct {
	Title       string
	Rows        [][]any
	Formats     []Format
	HasTotalRow bool
}

// RowCount includes the header and total rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount is the width of the widest row.
func (t *Table) ColumnCount() int {
	n := 0
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// FilterRowCount is the number of rows covered by the basic filter.
func (t *Table) FilterRowCount() int {
	if t.HasTotalRow {
		return t.RowCount() - 1
	}
	return t.RowCount()
}

func (t *Table) addFormat(r Range, f CellFormat) {
	t.Formats = append(t.Formats, Format{Range: r, Format: f})
}

func (t *Table) centerColumn(column, startRow, endRow int) {
	if endRow < startRow {
		return
	}
	t.addFormat(Span(startRow, column, endRow, column), CellFormat{HorizontalAlignment: AlignCenter})
}

func (t *Table) linkCell(row, column int, url string) {
	t.addFormat(Cell(row, column), CellFormat{Link: url})
}

func (t *Table) colorCells(r Range, c Color) {
	t.addFormat(r, CellFormat{ForegroundColor: &c})
}

// ToVerticalHeaders swaps characters that render sideways in vertical text
// for their vertical forms.
func ToVerticalHeaders(headers []string) []string {
	replacer := strings.NewReplacer("ー", "｜", "(", "︵", ")", "︶")
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = replacer.Replace(h)
	}
	return out
}

func headerRow(headers ...[]string) []any {
	var row []any
	for _, group := range headers {
		for _, h := range group {
			row = append(row, h)
		}
	}
	return row
}

func indexOf(headers []any, header string) int {
	for i, h := range headers {
		if h == header {
			return i
		}
	}
	return -1
}
