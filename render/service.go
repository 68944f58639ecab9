package render

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/uhppoted/uhppoted-app-reports/spreadsheet"
	"github.com/uhppoted/uhppoted-app-reports/table"
)

const DefaultSheetTitle = "Report"

// Report is a table that knows how it should be formatted once it has been assigned a sheet.
type Report interface {
	Table() *table.Table
	Format(sheet spreadsheet.Spreadsheet) []spreadsheet.Rule
}

type Service struct {
	api        spreadsheet.API
	SheetTitle string
	Locale     string
	TimeZone   string
}

func NewService(api spreadsheet.API) *Service {
	return &Service{
		api:        api,
		SheetTitle: DefaultSheetTitle,
		Locale:     spreadsheet.DefaultLocale,
		TimeZone:   spreadsheet.DefaultTimeZone,
	}
}

// CreateSpreadsheet creates a new spreadsheet shared with the permission, renders the report to
// the spreadsheet's first sheet and returns the link to the spreadsheet.
func (s *Service) CreateSpreadsheet(ctx context.Context, permission spreadsheet.Permission, filename string, report Report) (string, error) {
	sheet, err := s.api.Create(ctx, filename, s.SheetTitle, spreadsheet.DefaultRows, spreadsheet.DefaultCols, s.Locale, s.TimeZone)
	if err != nil {
		return "", err
	}

	log.Info().Str("spreadsheet", sheet.ID).Str("title", filename).Msg("created spreadsheet")

	if err := s.api.Share(ctx, sheet.ID, permission); err != nil {
		return "", err
	}

	return s.Render(ctx, sheet, report)
}

// AddSheet renders the report to a new sheet in an existing spreadsheet.
func (s *Service) AddSheet(ctx context.Context, documentID string, title string, report Report) (string, error) {
	sheet, err := s.Open(ctx, documentID)
	if err != nil {
		return "", err
	}

	batcher := spreadsheet.NewBatcher(s.api)
	if _, err := batcher.AddSheet(ctx, sheet, title, spreadsheet.DefaultRows, spreadsheet.DefaultCols); err != nil {
		return "", err
	}

	log.Info().Str("spreadsheet", sheet.ID).Int64("sheet", sheet.SheetID).Str("title", sheet.SheetTitle).Msg("added sheet")

	return s.Render(ctx, sheet, report)
}

// Render renders the report to the spreadsheet's current sheet.
func (s *Service) Render(ctx context.Context, sheet *spreadsheet.Spreadsheet, report Report) (string, error) {
	if sheet == nil {
		return "", spreadsheet.ErrDocumentNotSet
	}

	renderer := NewRenderer(report.Table(), s.api, sheet, report.Format(*sheet)...)

	url, err := renderer.Render(ctx, sheet.SheetTitle)
	if err != nil {
		return "", fmt.Errorf("error rendering report to %v (%w)", sheet, err)
	}

	return url, nil
}

func (s *Service) Open(ctx context.Context, documentID string) (*spreadsheet.Spreadsheet, error) {
	return s.api.Get(ctx, documentID)
}

type report struct {
	table *table.Table
	rules []spreadsheet.Rule
}

// NewReport wraps a table and a fixed list of formatting rules as a Report.
func NewReport(t *table.Table, rules ...spreadsheet.Rule) Report {
	return &report{
		table: t,
		rules: rules,
	}
}

func (r *report) Table() *table.Table {
	return r.table
}

func (r *report) Format(spreadsheet.Spreadsheet) []spreadsheet.Rule {
	return r.rules
}
