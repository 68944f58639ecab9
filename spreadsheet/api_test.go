package spreadsheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type server struct {
	created     *sheets.Spreadsheet
	batch       *sheets.BatchUpdateSpreadsheetRequest
	values      *sheets.BatchUpdateValuesRequest
	update      *sheets.ValueRange
	updateRange string
	updateInput string
	permission  *drive.Permission
}

func (s *server) ServeHTTP(w http.ResponseWriter, rq *http.Request) {
	reply := func(v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	decode := func(v any) bool {
		if err := json.NewDecoder(rq.Body).Decode(v); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return false
		}

		return true
	}

	path := rq.URL.Path

	switch {
	case rq.Method == http.MethodPost && path == "/v4/spreadsheets":
		s.created = &sheets.Spreadsheet{}
		if decode(s.created) {
			reply(map[string]any{
				"spreadsheetId": "doc-1",
				"sheets": []any{
					map[string]any{"properties": map[string]any{"sheetId": 0, "title": s.created.Sheets[0].Properties.Title}},
				},
			})
		}

	case rq.Method == http.MethodPost && path == "/v4/spreadsheets/doc-1:batchUpdate":
		s.batch = &sheets.BatchUpdateSpreadsheetRequest{}
		if decode(s.batch) {
			reply(map[string]any{
				"spreadsheetId": "doc-1",
				"replies": []any{
					map[string]any{"addSheet": map[string]any{"properties": map[string]any{"sheetId": 42, "title": "Q3"}}},
				},
			})
		}

	case rq.Method == http.MethodPost && path == "/v4/spreadsheets/doc-1/values:batchUpdate":
		s.values = &sheets.BatchUpdateValuesRequest{}
		if decode(s.values) {
			reply(map[string]any{
				"spreadsheetId": "doc-1",
				"responses": []any{
					map[string]any{"updatedRange": "Report!A1:B3", "updatedRows": 3},
				},
			})
		}

	case rq.Method == http.MethodPut && strings.HasPrefix(path, "/v4/spreadsheets/doc-1/values/"):
		s.update = &sheets.ValueRange{}
		s.updateRange = strings.TrimPrefix(path, "/v4/spreadsheets/doc-1/values/")
		s.updateInput = rq.URL.Query().Get("valueInputOption")
		if decode(s.update) {
			reply(map[string]any{"spreadsheetId": "doc-1"})
		}

	case rq.Method == http.MethodGet && path == "/v4/spreadsheets/doc-1":
		reply(map[string]any{
			"spreadsheetId": "doc-1",
			"sheets": []any{
				map[string]any{"properties": map[string]any{"sheetId": 9, "title": "Sales"}},
				map[string]any{"properties": map[string]any{"sheetId": 10, "title": "Costs"}},
			},
		})

	case rq.Method == http.MethodPost && path == "/files/doc-1/permissions":
		s.permission = &drive.Permission{}
		if decode(s.permission) {
			reply(map[string]any{"id": "permission-1"})
		}

	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"message":"Requested entity was not found.","status":"NOT_FOUND"}}`))
	}
}

func setup(t *testing.T) (*Google, *server) {
	s := server{}
	srv := httptest.NewServer(&s)
	t.Cleanup(srv.Close)

	ctx := context.Background()
	opts := []option.ClientOption{
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL + "/"),
	}

	sheetsService, err := sheets.NewService(ctx, opts...)
	require.NoError(t, err)

	driveService, err := drive.NewService(ctx, opts...)
	require.NoError(t, err)

	return NewGoogleWithServices(sheetsService, driveService), &s
}

func TestGoogleCreate(t *testing.T) {
	google, srv := setup(t)

	sheet, err := google.Create(context.Background(), "Quarterly Sales", "Report", 1000, 26, DefaultLocale, DefaultTimeZone)
	require.NoError(t, err)

	assert.Equal(t, &Spreadsheet{ID: "doc-1", SheetID: 0, SheetTitle: "Report"}, sheet)

	require.NotNil(t, srv.created)
	assert.Equal(t, "Quarterly Sales", srv.created.Properties.Title)
	assert.Equal(t, "en_US", srv.created.Properties.Locale)
	assert.Equal(t, "Etc/GMT", srv.created.Properties.TimeZone)
	assert.Equal(t, "GRID", srv.created.Sheets[0].Properties.SheetType)
	assert.Equal(t, int64(1000), srv.created.Sheets[0].Properties.GridProperties.RowCount)
	assert.Equal(t, int64(26), srv.created.Sheets[0].Properties.GridProperties.ColumnCount)
}

func TestGoogleShare(t *testing.T) {
	google, srv := setup(t)

	err := google.Share(context.Background(), "doc-1", DomainPermission("example.com", "reader"))
	require.NoError(t, err)

	require.NotNil(t, srv.permission)
	assert.Equal(t, "domain", srv.permission.Type)
	assert.Equal(t, "reader", srv.permission.Role)
	assert.Equal(t, "example.com", srv.permission.Domain)
	assert.Empty(t, srv.permission.EmailAddress)
}

func TestGoogleShareWithoutDocument(t *testing.T) {
	google, _ := setup(t)

	err := google.Share(context.Background(), "", DomainPermission("example.com", "reader"))

	assert.ErrorIs(t, err, ErrDocumentNotSet)
}

func TestGoogleBatchUpdate(t *testing.T) {
	google, srv := setup(t)

	b := NewBatcher(google)
	sheet := Spreadsheet{ID: "doc-1", SheetID: 0, SheetTitle: "Report"}

	id, err := b.AddSheet(context.Background(), &sheet, "Q3", 100, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(42), id)
	assert.Equal(t, "Q3", sheet.SheetTitle)

	require.NotNil(t, srv.batch)
	require.Len(t, srv.batch.Requests, 1)
	assert.Equal(t, "Q3", srv.batch.Requests[0].AddSheet.Properties.Title)
}

func TestGoogleBatchUpdateValues(t *testing.T) {
	google, srv := setup(t)

	b := NewBatcher(google)
	require.NoError(t, b.UpdateRows("Report", [][]any{{"Region", "Amount"}, {"North", "10"}, {"South", nil}}, ""))

	_, responses, err := b.Flush(context.Background(), "doc-1")
	require.NoError(t, err)

	require.Len(t, responses, 1)
	assert.Equal(t, int64(3), responses[0].UpdatedRows)

	require.NotNil(t, srv.values)
	assert.Equal(t, UserEntered, srv.values.ValueInputOption)
	require.Len(t, srv.values.Data, 1)
	assert.Equal(t, "'Report'", srv.values.Data[0].Range)
	assert.Equal(t, "ROWS", srv.values.Data[0].MajorDimension)
	assert.Len(t, srv.values.Data[0].Values, 3)
}

func TestGoogleUpdateValues(t *testing.T) {
	google, srv := setup(t)

	b := NewBatcher(google)
	err := b.WriteRows(context.Background(), "doc-1", "Report", [][]any{{"Region"}, {"North"}})
	require.NoError(t, err)

	require.NotNil(t, srv.update)
	assert.Equal(t, "'Report'", srv.updateRange)
	assert.Equal(t, UserEntered, srv.updateInput)
	assert.Len(t, srv.update.Values, 2)
}

func TestGoogleGet(t *testing.T) {
	google, _ := setup(t)

	sheet, err := google.Get(context.Background(), "doc-1")
	require.NoError(t, err)

	assert.Equal(t, &Spreadsheet{ID: "doc-1", SheetID: 9, SheetTitle: "Sales"}, sheet)
}

func TestGoogleGetWithUnknownDocument(t *testing.T) {
	google, _ := setup(t)

	_, err := google.Get(context.Background(), "doc-2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}
