package render

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/uhppoted/uhppoted-app-reports/spreadsheet"
	"github.com/uhppoted/uhppoted-app-reports/table"
)

// Renderer writes a report table to one sheet of a spreadsheet and formats it. Each Renderer
// has its own request batcher.
type Renderer struct {
	report      *table.Table
	spreadsheet *spreadsheet.Spreadsheet
	batcher     *spreadsheet.Batcher
	rules       []spreadsheet.Rule
}

// NewRenderer creates a renderer for the spreadsheet's current sheet. The default number format
// rule is always applied first, followed by the rules supplied.
func NewRenderer(report *table.Table, api spreadsheet.API, sheet *spreadsheet.Spreadsheet, rules ...spreadsheet.Rule) *Renderer {
	return &Renderer{
		report:      report,
		spreadsheet: sheet,
		batcher:     spreadsheet.NewBatcher(api),
		rules:       append([]spreadsheet.Rule{spreadsheet.NumberFormat()}, rules...),
	}
}

func (r *Renderer) Rules() []spreadsheet.Rule {
	return r.rules
}

// FormatSheet queues the report rows and formatting rules and sends them in a single flush.
func (r *Renderer) FormatSheet(ctx context.Context, sheetName string) error {
	if r.spreadsheet == nil || r.spreadsheet.ID == "" {
		return spreadsheet.ErrDocumentNotSet
	}

	if sheetName == "" {
		sheetName = r.spreadsheet.SheetTitle
	}

	rows := r.report.Rows()
	values := table.Values(r.report.Headers(), rows)

	if err := r.batcher.UpdateRows(sheetName, values, spreadsheet.Rows); err != nil {
		r.batcher.Reset()
		return err
	}

	for _, rule := range r.rules {
		if err := r.batcher.Apply(*r.spreadsheet, rule); err != nil {
			r.batcher.Reset()
			return fmt.Errorf("error applying %v rule (%w)", rule.Kind, err)
		}
	}

	log.Debug().
		Str("spreadsheet", r.spreadsheet.ID).
		Str("sheet", sheetName).
		Int("rows", len(rows)).
		Int("rules", len(r.rules)).
		Msg("rendering report")

	if _, _, err := r.batcher.Flush(ctx, r.spreadsheet.ID); err != nil {
		return err
	}

	return nil
}

// Render formats the sheet and returns the link to the spreadsheet.
func (r *Renderer) Render(ctx context.Context, sheetName string) (string, error) {
	if err := r.FormatSheet(ctx, sheetName); err != nil {
		return "", err
	}

	return spreadsheet.URL(r.spreadsheet.ID)
}
