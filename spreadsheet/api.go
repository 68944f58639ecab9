package spreadsheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// API is the subset of the Google Sheets and Google Drive APIs used to render reports.
type API interface {
	Create(ctx context.Context, title, sheetTitle string, rows, cols int64, locale, timeZone string) (*Spreadsheet, error)
	Share(ctx context.Context, documentID string, permission Permission) error
	BatchUpdate(ctx context.Context, documentID string, requests []*sheets.Request) ([]*sheets.Response, error)
	BatchUpdateValues(ctx context.Context, documentID string, valueInputOption string, data []*sheets.ValueRange) ([]*sheets.UpdateValuesResponse, error)
	UpdateValues(ctx context.Context, documentID string, area string, valueInputOption string, values [][]any) error
	Get(ctx context.Context, documentID string) (*Spreadsheet, error)
}

// Google implements API using the Google Sheets v4 and Google Drive v3 services.
type Google struct {
	sheets *sheets.Service
	drive  *drive.Service
}

func NewGoogle(ctx context.Context, opts ...option.ClientOption) (*Google, error) {
	s, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Google Sheets client (%w)", err)
	}

	d, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Google Drive client (%w)", err)
	}

	return NewGoogleWithServices(s, d), nil
}

func NewGoogleWithServices(s *sheets.Service, d *drive.Service) *Google {
	return &Google{
		sheets: s,
		drive:  d,
	}
}

func (g *Google) Create(ctx context.Context, title, sheetTitle string, rows, cols int64, locale, timeZone string) (*Spreadsheet, error) {
	rq := sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    title,
			Locale:   locale,
			TimeZone: timeZone,
		},
		Sheets: []*sheets.Sheet{
			&sheets.Sheet{
				Properties: &sheets.SheetProperties{
					SheetType: "GRID",
					SheetId:   0,
					Title:     sheetTitle,
					GridProperties: &sheets.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
					ForceSendFields: []string{"SheetId"},
				},
			},
		},
	}

	response, err := g.sheets.Spreadsheets.Create(&rq).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet '%v' (%w)", title, err)
	}

	return fromAPI(response)
}

func (g *Google) Share(ctx context.Context, documentID string, permission Permission) error {
	if documentID == "" {
		return ErrDocumentNotSet
	}

	if _, err := g.drive.Permissions.Create(documentID, permission.drive()).Fields("id").Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to share spreadsheet %v (%w)", documentID, err)
	}

	return nil
}

func (g *Google) BatchUpdate(ctx context.Context, documentID string, requests []*sheets.Request) ([]*sheets.Response, error) {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	response, err := g.sheets.Spreadsheets.BatchUpdate(documentID, &rq).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return response.Replies, nil
}

func (g *Google) BatchUpdateValues(ctx context.Context, documentID string, valueInputOption string, data []*sheets.ValueRange) ([]*sheets.UpdateValuesResponse, error) {
	rq := sheets.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             data,
	}

	response, err := g.sheets.Spreadsheets.Values.BatchUpdate(documentID, &rq).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	return response.Responses, nil
}

func (g *Google) UpdateValues(ctx context.Context, documentID string, area string, valueInputOption string, values [][]any) error {
	rq := sheets.ValueRange{
		Values: values,
	}

	if _, err := g.sheets.Spreadsheets.Values.Update(documentID, area, &rq).ValueInputOption(valueInputOption).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func (g *Google) Get(ctx context.Context, documentID string) (*Spreadsheet, error) {
	if documentID == "" {
		return nil, ErrDocumentNotSet
	}

	response, err := g.sheets.Spreadsheets.Get(documentID).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil, fmt.Errorf("spreadsheet %v does not exist or is not shared (%w)", documentID, err)
		}

		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return fromAPI(response)
}

func fromAPI(spreadsheet *sheets.Spreadsheet) (*Spreadsheet, error) {
	if len(spreadsheet.Sheets) == 0 || spreadsheet.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("spreadsheet %v has no sheets", spreadsheet.SpreadsheetId)
	}

	properties := spreadsheet.Sheets[0].Properties

	return &Spreadsheet{
		ID:         spreadsheet.SpreadsheetId,
		SheetID:    properties.SheetId,
		SheetTitle: properties.Title,
	}, nil
}
