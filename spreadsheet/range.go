package spreadsheet

import (
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/sheets/v4"
)

// CellsRange is a column letter range with optional row numbers e.g. "A:Z" or "B2:D5".
type CellsRange struct {
	start string
	end   string
}

var cellRef = regexp.MustCompile(`^([A-Z]?)([0-9]*)$`)

// NewCellsRange validates that the start column does not come after the end column. Only the
// leading letter of each bound is compared.
func NewCellsRange(start, end string) (CellsRange, error) {
	if start == "" || end == "" {
		return CellsRange{}, &ValidationError{Start: start, End: end, Reason: "missing start or end cell"}
	}

	if start[0] > end[0] {
		return CellsRange{}, &ValidationError{Start: start, End: end, Reason: "start cell should be less than or equal to end cell"}
	}

	return CellsRange{start: start, end: end}, nil
}

// MustCellsRange is NewCellsRange for ranges known to be valid. Panics otherwise.
func MustCellsRange(start, end string) CellsRange {
	r, err := NewCellsRange(start, end)
	if err != nil {
		panic(err)
	}

	return r
}

func (r CellsRange) Start() string {
	return r.start
}

func (r CellsRange) End() string {
	return r.end
}

func (r CellsRange) String() string {
	return fmt.Sprintf("%v:%v", r.start, r.end)
}

// GridRange converts the range to the zero-based, half open grid range for a sheet. Columns are
// restricted to A-Z and are only set when both bounds have a column letter. Rows are only set when
// both bounds have a row number: the start row is converted to zero-based and the end row is used
// as is, i.e. B2:D5 covers rows 1 up to (but excluding) 5.
func (r CellsRange) GridRange(documentID string, sheetID int64) (*sheets.GridRange, error) {
	if documentID == "" {
		return nil, ErrSheetNotSet
	}

	grid := sheets.GridRange{
		SheetId:         sheetID,
		ForceSendFields: []string{"SheetId"},
	}

	startCol, startRow, ok := split(r.start)
	if !ok {
		return nil, &ValidationError{Start: r.start, End: r.end, Reason: "only single letter columns A-Z are supported"}
	}

	endCol, endRow, ok := split(r.end)
	if !ok {
		return nil, &ValidationError{Start: r.start, End: r.end, Reason: "only single letter columns A-Z are supported"}
	}

	if startCol != "" && endCol != "" {
		grid.StartColumnIndex = int64(startCol[0] - 'A')
		grid.EndColumnIndex = int64(endCol[0]-'A') + 1
		grid.ForceSendFields = append(grid.ForceSendFields, "StartColumnIndex", "EndColumnIndex")
	}

	if startRow != "" && endRow != "" {
		from, err := strconv.ParseInt(startRow, 10, 64)
		if err != nil {
			return nil, &ValidationError{Start: r.start, End: r.end, Reason: err.Error()}
		}

		to, err := strconv.ParseInt(endRow, 10, 64)
		if err != nil {
			return nil, &ValidationError{Start: r.start, End: r.end, Reason: err.Error()}
		}

		grid.StartRowIndex = from - 1
		grid.EndRowIndex = to
		grid.ForceSendFields = append(grid.ForceSendFields, "StartRowIndex", "EndRowIndex")
	}

	return &grid, nil
}

func split(cell string) (string, string, bool) {
	if match := cellRef.FindStringSubmatch(cell); match != nil {
		return match[1], match[2], true
	}

	return "", "", false
}
