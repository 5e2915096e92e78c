package adapters

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pon3939/SummarizeCharacterSheets/internal/config"
	"github.com/pon3939/SummarizeCharacterSheets/internal/interfaces"
	"github.com/pon3939/SummarizeCharacterSheets/internal/spreadsheet"
)

const (
	frozenRows    = 1
	frozenColumns = 2
)

// GoogleSheetsWriter writes tables to one Google spreadsheet. Every API call
// is retried with a constant wait when the API returns an error.
type GoogleSheetsWriter struct {
	service       *sheets.Service
	spreadsheetID string
	retryCount    uint
	retryWait     time.Duration
}

var _ interfaces.SheetWriter = (*GoogleSheetsWriter)(nil)

// NewGoogleSheetsWriter authenticates with the service account file in cfg.
// Extra client options are appended, which tests use to point at a fake
// endpoint.
func NewGoogleSheetsWriter(ctx context.Context, cfg config.SpreadsheetConfig, opts ...option.ClientOption) (*GoogleSheetsWriter, error) {
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet_id is required")
	}
	clientOpts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	clientOpts = append(clientOpts, opts...)

	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleSheetsWriter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		retryCount:    cfg.RetryCount,
		retryWait:     cfg.RetryWait,
	}, nil
}

// call runs fn, retrying API errors up to retryCount extra times.
func (w *GoogleSheetsWriter) call(ctx context.Context, op string, fn func() error) error {
	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := fn()
		if err == nil {
			return struct{}{}, nil
		}
		var apiErr *googleapi.Error
		if !errors.As(err, &apiErr) {
			return struct{}{}, backoff.Permanent(err)
		}
		log.Printf("[GoogleSheets] %s failed (attempt %d): %v", op, attempt, err)
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(w.retryWait)),
		backoff.WithMaxTries(w.retryCount+1),
	)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return nil
}

func (w *GoogleSheetsWriter) sheetIDs(ctx context.Context) (map[string]int64, error) {
	var ids map[string]int64
	err := w.call(ctx, "get spreadsheet", func() error {
		resp, err := w.service.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
		if err != nil {
			return err
		}
		ids = make(map[string]int64, len(resp.Sheets))
		for _, s := range resp.Sheets {
			if s.Properties != nil {
				ids[s.Properties.Title] = s.Properties.SheetId
			}
		}
		return nil
	})
	return ids, err
}

func (w *GoogleSheetsWriter) ensureSheet(ctx context.Context, title string) (int64, error) {
	ids, err := w.sheetIDs(ctx)
	if err != nil {
		return 0, err
	}
	if id, ok := ids[title]; ok {
		return id, nil
	}

	var id int64
	err = w.call(ctx, "add worksheet "+title, func() error {
		resp, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: title}},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil {
			return backoff.Permanent(errors.New("empty add sheet reply"))
		}
		id = resp.Replies[0].AddSheet.Properties.SheetId
		return nil
	})
	if err == nil {
		log.Printf("[GoogleSheets] Created worksheet %s", title)
	}
	return id, err
}

func (w *GoogleSheetsWriter) batchUpdate(ctx context.Context, op string, requests []*sheets.Request) error {
	return w.call(ctx, op, func() error {
		_, err := w.service.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		return err
	})
}

// UpdateWorksheet clears the worksheet, writes the values as if typed by a
// user and applies the table's formats, freeze panes and basic filter.
func (w *GoogleSheetsWriter) UpdateWorksheet(ctx context.Context, table *spreadsheet.Table) error {
	sheetID, err := w.ensureSheet(ctx, table.Title)
	if err != nil {
		return err
	}
	quoted := quoteSheetTitle(table.Title)

	if err := w.call(ctx, "clear "+table.Title, func() error {
		_, err := w.service.Spreadsheets.Values.Clear(w.spreadsheetID, quoted, &sheets.ClearValuesRequest{}).Context(ctx).Do()
		return err
	}); err != nil {
		return err
	}
	if err := w.batchUpdate(ctx, "clear filter "+table.Title, []*sheets.Request{{
		ClearBasicFilter: &sheets.ClearBasicFilterRequest{SheetId: sheetID, ForceSendFields: []string{"SheetId"}},
	}}); err != nil {
		return err
	}

	if err := w.call(ctx, "write "+table.Title, func() error {
		_, err := w.service.Spreadsheets.Values.Update(w.spreadsheetID, quoted+"!A1", &sheets.ValueRange{
			Values: cellValues(table),
		}).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return err
	}); err != nil {
		return err
	}

	if err := w.batchUpdate(ctx, "format "+table.Title, buildFormatRequests(sheetID, table)); err != nil {
		return err
	}
	log.Printf("[GoogleSheets] Updated %s (%d rows)", table.Title, table.RowCount())
	return nil
}

// ReorderWorksheets moves the listed worksheets to the front. Titles missing
// from the spreadsheet are skipped.
func (w *GoogleSheetsWriter) ReorderWorksheets(ctx context.Context, titles []string) error {
	ids, err := w.sheetIDs(ctx)
	if err != nil {
		return err
	}
	requests := buildReorderRequests(ids, titles)
	if len(requests) == 0 {
		return nil
	}
	return w.batchUpdate(ctx, "reorder worksheets", requests)
}

func quoteSheetTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func cellValues(table *spreadsheet.Table) [][]interface{} {
	values := make([][]interface{}, len(table.Rows))
	for i, row := range table.Rows {
		out := make([]interface{}, len(row))
		for j, v := range row {
			if v == nil {
				v = ""
			}
			out[j] = v
		}
		values[i] = out
	}
	return values
}

func gridRange(sheetID int64, r spreadsheet.Range) *sheets.GridRange {
	return &sheets.GridRange{
		SheetId:          sheetID,
		StartRowIndex:    int64(r.StartRow - 1),
		EndRowIndex:      int64(r.EndRow),
		StartColumnIndex: int64(r.StartColumn - 1),
		EndColumnIndex:   int64(r.EndColumn),
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

func repeatCell(sheetID int64, r spreadsheet.Range, format *sheets.CellFormat, fields []string) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range:  gridRange(sheetID, r),
			Cell:   &sheets.CellData{UserEnteredFormat: format},
			Fields: "userEnteredFormat(" + strings.Join(fields, ",") + ")",
		},
	}
}

// toSheetsFormat converts a partial format and returns the field mask that
// limits the update to the fields it sets.
func toSheetsFormat(f spreadsheet.CellFormat) (*sheets.CellFormat, []string) {
	out := &sheets.CellFormat{}
	var fields []string

	if f.HorizontalAlignment != "" {
		out.HorizontalAlignment = f.HorizontalAlignment
		fields = append(fields, "horizontalAlignment")
	}
	if f.ForegroundColor != nil || f.Link != "" {
		out.TextFormat = &sheets.TextFormat{FontFamily: spreadsheet.FontFamily}
		fields = append(fields, "textFormat.fontFamily")
	}
	if c := f.ForegroundColor; c != nil {
		out.TextFormat.ForegroundColorStyle = &sheets.ColorStyle{
			RgbColor: &sheets.Color{Red: c.Red, Green: c.Green, Blue: c.Blue},
		}
		fields = append(fields, "textFormat.foregroundColorStyle")
	}
	if f.Link != "" {
		out.TextFormat.Link = &sheets.Link{Uri: f.Link}
		fields = append(fields, "textFormat.link")
	}
	if f.Wrap {
		out.WrapStrategy = "WRAP"
		fields = append(fields, "wrapStrategy")
	}
	if f.VerticalText {
		out.TextRotation = &sheets.TextRotation{Vertical: true}
		fields = append(fields, "textRotation")
	}
	if f.NumberPattern != "" {
		out.NumberFormat = &sheets.NumberFormat{Type: "NUMBER", Pattern: f.NumberPattern}
		fields = append(fields, "numberFormat")
	}
	return out, fields
}

// buildFormatRequests returns the batch applied after values are written:
// the sheet-wide default, the header style, the table's own formats, the
// frozen panes and the basic filter.
func buildFormatRequests(sheetID int64, table *spreadsheet.Table) []*sheets.Request {
	rows, columns := table.RowCount(), table.ColumnCount()
	var requests []*sheets.Request

	requests = append(requests, repeatCell(sheetID, spreadsheet.Span(1, 1, rows, columns), &sheets.CellFormat{
		VerticalAlignment: "MIDDLE",
		TextFormat:        &sheets.TextFormat{FontFamily: spreadsheet.FontFamily},
	}, []string{"verticalAlignment", "textFormat.fontFamily"}))

	requests = append(requests, repeatCell(sheetID, spreadsheet.Span(1, 1, 1, columns), &sheets.CellFormat{
		HorizontalAlignment: spreadsheet.AlignCenter,
		VerticalAlignment:   "BOTTOM",
		TextRotation:        &sheets.TextRotation{Vertical: false, ForceSendFields: []string{"Vertical"}},
	}, []string{"horizontalAlignment", "verticalAlignment", "textRotation"}))

	for _, f := range table.Formats {
		format, fields := toSheetsFormat(f.Format)
		if len(fields) == 0 {
			continue
		}
		requests = append(requests, repeatCell(sheetID, f.Range, format, fields))
	}

	requests = append(requests, &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: sheetID,
				GridProperties: &sheets.GridProperties{
					FrozenRowCount:    frozenRows,
					FrozenColumnCount: frozenColumns,
				},
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "gridProperties(frozenRowCount,frozenColumnCount)",
		},
	})

	requests = append(requests, &sheets.Request{
		SetBasicFilter: &sheets.SetBasicFilterRequest{
			Filter: &sheets.BasicFilter{
				Range: gridRange(sheetID, spreadsheet.Span(1, 1, table.FilterRowCount(), columns)),
			},
		},
	})
	return requests
}

func buildReorderRequests(ids map[string]int64, titles []string) []*sheets.Request {
	var requests []*sheets.Request
	index := int64(0)
	for _, title := range titles {
		id, ok := ids[title]
		if !ok {
			continue
		}
		requests = append(requests, &sheets.Request{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId:         id,
					Index:           index,
					ForceSendFields: []string{"SheetId", "Index"},
				},
				Fields: "index",
			},
		})
		index++
	}
	return requests
}
