package spreadsheet

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/sheets/v4"
)

const (
	UserEntered = "USER_ENTERED"
	Raw         = "RAW"

	Rows    = "ROWS"
	Columns = "COLUMNS"

	MergeAll            = "MERGE_ALL"
	DefaultFormatFields = "userEnteredFormat"
)

// Batcher accumulates structural requests and value range writes for a single document and sends
// them as (at most) two batch calls on Flush. A Batcher is not safe for concurrent use and should
// not be shared between render passes.
type Batcher struct {
	api      API
	requests []*sheets.Request
	values   []*sheets.ValueRange
}

func NewBatcher(api API) *Batcher {
	return &Batcher{
		api:      api,
		requests: []*sheets.Request{},
		values:   []*sheets.ValueRange{},
	}
}

// Pending returns the number of queued structural requests and value range writes.
func (b *Batcher) Pending() (int, int) {
	return len(b.requests), len(b.values)
}

// Flush sends the queued requests using the USER_ENTERED value input option.
func (b *Batcher) Flush(ctx context.Context, documentID string) ([]*sheets.Response, []*sheets.UpdateValuesResponse, error) {
	return b.FlushWithOption(ctx, documentID, UserEntered)
}

// FlushWithOption sends the queued structural requests in one batch update and the queued value
// ranges in one values batch update. Both queues are cleared on return, whether or not the flush
// succeeded, and failed requests are not retried.
func (b *Batcher) FlushWithOption(ctx context.Context, documentID string, valueInputOption string) ([]*sheets.Response, []*sheets.UpdateValuesResponse, error) {
	defer b.Reset()

	if documentID == "" {
		return nil, nil, ErrDocumentNotSet
	}

	replies := []*sheets.Response{}
	responses := []*sheets.UpdateValuesResponse{}

	if len(b.requests) > 0 {
		log.Debug().Str("spreadsheet", documentID).Int("requests", len(b.requests)).Msg("batch update")

		if r, err := b.api.BatchUpdate(ctx, documentID, b.requests); err != nil {
			return nil, nil, fmt.Errorf("error updating spreadsheet %v (%w)", documentID, err)
		} else if r != nil {
			replies = r
		}
	}

	if len(b.values) > 0 {
		log.Debug().Str("spreadsheet", documentID).Int("ranges", len(b.values)).Msg("batch update values")

		if r, err := b.api.BatchUpdateValues(ctx, documentID, valueInputOption, b.values); err != nil {
			return nil, nil, fmt.Errorf("error updating spreadsheet %v values (%w)", documentID, err)
		} else if r != nil {
			responses = r
		}
	}

	return replies, responses, nil
}

// Reset discards any queued requests without sending them.
func (b *Batcher) Reset() {
	b.requests = []*sheets.Request{}
	b.values = []*sheets.ValueRange{}
}

// AddSheet adds a sheet to the document and flushes immediately (along with anything else already
// queued). The new sheet becomes the current sheet of the spreadsheet.
func (b *Batcher) AddSheet(ctx context.Context, spreadsheet *Spreadsheet, title string, rows, cols int64) (int64, error) {
	if spreadsheet == nil || spreadsheet.ID == "" {
		return 0, ErrDocumentNotSet
	}

	b.AddSheetRequest(title, rows, cols)

	replies, _, err := b.Flush(ctx, spreadsheet.ID)
	if err != nil {
		return 0, err
	}

	// ... the add-sheet request was queued last
	for i := len(replies) - 1; i >= 0; i-- {
		if reply := replies[i]; reply != nil && reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			spreadsheet.SheetID = reply.AddSheet.Properties.SheetId
			spreadsheet.SheetTitle = reply.AddSheet.Properties.Title

			return spreadsheet.SheetID, nil
		}
	}

	return 0, fmt.Errorf("no reply for new sheet '%v' in spreadsheet %v", title, spreadsheet.ID)
}

func (b *Batcher) AddSheetRequest(title string, rows, cols int64) {
	b.requests = append(b.requests, &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: title,
				GridProperties: &sheets.GridProperties{
					RowCount:    rows,
					ColumnCount: cols,
				},
			},
		},
	})
}

// SetDimensionPixelSize sets the size of the rows or columns in the range [start,end).
func (b *Batcher) SetDimensionPixelSize(sheetID int64, dimension string, start, end, size int64) {
	b.requests = append(b.requests, &sheets.Request{
		UpdateDimensionProperties: &sheets.UpdateDimensionPropertiesRequest{
			Range: &sheets.DimensionRange{
				SheetId:         sheetID,
				Dimension:       dimension,
				StartIndex:      start,
				EndIndex:        end,
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
			Properties: &sheets.DimensionProperties{
				PixelSize: size,
			},
			Fields: "pixelSize",
		},
	})
}

// SetColumnsWidth sets the width of columns start..end inclusive.
func (b *Batcher) SetColumnsWidth(sheetID int64, start, end, width int64) {
	b.SetDimensionPixelSize(sheetID, Columns, start, end+1, width)
}

// SetRowsHeight sets the height of rows start..end inclusive.
func (b *Batcher) SetRowsHeight(sheetID int64, start, end, height int64) {
	b.SetDimensionPixelSize(sheetID, Rows, start, end+1, height)
}

func (b *Batcher) MergeCells(spreadsheet Spreadsheet, r CellsRange, mergeType string) error {
	grid, err := r.GridRange(spreadsheet.ID, spreadsheet.SheetID)
	if err != nil {
		return err
	}

	if mergeType == "" {
		mergeType = MergeAll
	}

	b.requests = append(b.requests, &sheets.Request{
		MergeCells: &sheets.MergeCellsRequest{
			Range:     grid,
			MergeType: mergeType,
		},
	})

	return nil
}

func (b *Batcher) SetCellsFormat(spreadsheet Spreadsheet, r CellsRange, format *sheets.CellFormat, fields string) error {
	grid, err := r.GridRange(spreadsheet.ID, spreadsheet.SheetID)
	if err != nil {
		return err
	}

	if fields == "" {
		fields = DefaultFormatFields
	}

	b.requests = append(b.requests, &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: grid,
			Cell: &sheets.CellData{
				UserEnteredFormat: format,
			},
			Fields: fields,
		},
	})

	return nil
}

func (b *Batcher) RenameSpreadsheet(title string) {
	b.requests = append(b.requests, &sheets.Request{
		UpdateSpreadsheetProperties: &sheets.UpdateSpreadsheetPropertiesRequest{
			Properties: &sheets.SpreadsheetProperties{
				Title: title,
			},
			Fields: "title",
		},
	})
}

// SetValues queues a value range write to the cells range of the named sheet.
func (b *Batcher) SetValues(sheetTitle string, r CellsRange, values [][]any, majorDimension string) error {
	if sheetTitle == "" {
		return ErrSheetNotSet
	}

	if majorDimension == "" {
		majorDimension = Rows
	}

	b.values = append(b.values, &sheets.ValueRange{
		Range:          fmt.Sprintf("%v!%v", sheetTitle, r),
		MajorDimension: majorDimension,
		Values:         values,
	})

	return nil
}

// UpdateRows queues a value range write for the whole of the named sheet.
func (b *Batcher) UpdateRows(sheetTitle string, values [][]any, majorDimension string) error {
	if sheetTitle == "" {
		return ErrSheetNotSet
	}

	if majorDimension == "" {
		majorDimension = Rows
	}

	b.values = append(b.values, &sheets.ValueRange{
		Range:          fmt.Sprintf("'%v'", sheetTitle),
		MajorDimension: majorDimension,
		Values:         values,
	})

	return nil
}

// WriteRows writes the values to the named sheet immediately, bypassing the queues.
func (b *Batcher) WriteRows(ctx context.Context, documentID string, sheetTitle string, values [][]any) error {
	if documentID == "" {
		return ErrDocumentNotSet
	}

	if sheetTitle == "" {
		return ErrSheetNotSet
	}

	if err := b.api.UpdateValues(ctx, documentID, fmt.Sprintf("'%v'", sheetTitle), UserEntered, values); err != nil {
		return fmt.Errorf("error writing rows to sheet '%v' (%w)", sheetTitle, err)
	}

	return nil
}

// Apply queues the structural request for a formatting rule against the spreadsheet's current
// sheet.
func (b *Batcher) Apply(spreadsheet Spreadsheet, rule Rule) error {
	switch rule.Kind {
	case KindFormatCells:
		return b.SetCellsFormat(spreadsheet, rule.Range, rule.Format, rule.Fields)

	case KindMergeCells:
		return b.MergeCells(spreadsheet, rule.Range, rule.MergeType)

	case KindColumnsWidth:
		b.SetColumnsWidth(spreadsheet.SheetID, rule.Start, rule.End, rule.Size)

	case KindRowsHeight:
		b.SetRowsHeight(spreadsheet.SheetID, rule.Start, rule.End, rule.Size)

	case KindRename:
		b.RenameSpreadsheet(rule.Title)

	default:
		return fmt.Errorf("unsupported formatting rule %v", rule.Kind)
	}

	return nil
}
