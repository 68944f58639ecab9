package spreadsheet

import (
	"fmt"

	"google.golang.org/api/sheets/v4"
)

type Kind int

const (
	KindFormatCells Kind = iota + 1
	KindMergeCells
	KindColumnsWidth
	KindRowsHeight
	KindRename
)

func (k Kind) String() string {
	switch k {
	case KindFormatCells:
		return "format-cells"
	case KindMergeCells:
		return "merge-cells"
	case KindColumnsWidth:
		return "columns-width"
	case KindRowsHeight:
		return "rows-height"
	case KindRename:
		return "rename"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Rule is a formatting operation with its arguments bound in advance. Rules are applied to a
// sheet by Batcher.Apply, which queues the equivalent structural request.
type Rule struct {
	Kind      Kind
	Range     CellsRange
	Format    *sheets.CellFormat
	Fields    string
	MergeType string
	Start     int64
	End       int64
	Size      int64
	Title     string
}

// FormatCells sets the user entered format of every cell in the range.
func FormatCells(r CellsRange, format *sheets.CellFormat) Rule {
	return Rule{
		Kind:   KindFormatCells,
		Range:  r,
		Format: format,
		Fields: DefaultFormatFields,
	}
}

// FormatCellsFields is FormatCells restricted to a field mask e.g. "userEnteredFormat.textFormat".
func FormatCellsFields(r CellsRange, format *sheets.CellFormat, fields string) Rule {
	return Rule{
		Kind:   KindFormatCells,
		Range:  r,
		Format: format,
		Fields: fields,
	}
}

func Merge(r CellsRange, mergeType string) Rule {
	return Rule{
		Kind:      KindMergeCells,
		Range:     r,
		MergeType: mergeType,
	}
}

// ColumnsWidth sets the width of columns start..end (zero-based, inclusive).
func ColumnsWidth(start, end, width int64) Rule {
	return Rule{
		Kind:  KindColumnsWidth,
		Start: start,
		End:   end,
		Size:  width,
	}
}

// RowsHeight sets the height of rows start..end (zero-based, inclusive).
func RowsHeight(start, end, height int64) Rule {
	return Rule{
		Kind:  KindRowsHeight,
		Start: start,
		End:   end,
		Size:  height,
	}
}

func Rename(title string) Rule {
	return Rule{
		Kind:  KindRename,
		Title: title,
	}
}

// NumberFormat is the default format applied to every rendered sheet.
func NumberFormat() Rule {
	return FormatCells(MustCellsRange("A", "Z"), &sheets.CellFormat{
		NumberFormat: &sheets.NumberFormat{
			Type:    "NUMBER",
			Pattern: "#,##0.00",
		},
	})
}
