package interfaces

import (
	"context"

	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
)

// SheetWriter publishes rendered tables to the spreadsheet.
type SheetWriter interface {
	// UpdateWorksheet replaces the content of the worksheet named table.Title.
	UpdateWorksheet(ctx context.Context, table *spreadsheet.Table) error

	// ReorderWorksheets moves the named worksheets to the front in order.
	// Unknown titles are ignored.
	ReorderWorksheets(ctx context.Context, titles []string) error
}
