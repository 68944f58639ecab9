package render

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uhppoted/uhppoted-app-reports/spreadsheet"
)

func TestCreateSpreadsheet(t *testing.T) {
	api := fake{}
	service := NewService(&api)
	permission := spreadsheet.DomainPermission("example.com", "reader")

	url, err := service.CreateSpreadsheet(context.Background(), permission, "Quarterly Sales", NewReport(sales(t), spreadsheet.ColumnsWidth(0, 2, 120)))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/doc-1/", url)
	assert.Equal(t, []string{"Quarterly Sales"}, api.created)
	assert.Equal(t, []spreadsheet.Permission{permission}, api.shared)

	require.Len(t, api.values, 1)
	assert.Equal(t, "'Report'", api.values[0][0].Range)

	require.Len(t, api.requests, 1)
	assert.Len(t, api.requests[0], 2)
}

func TestAddSheet(t *testing.T) {
	api := fake{}
	service := NewService(&api)

	url, err := service.AddSheet(context.Background(), "doc-1", "Q3", NewReport(sales(t)))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.google.com/spreadsheets/d/doc-1/", url)

	// ... add-sheet flush followed by the render flush against the new sheet
	require.Len(t, api.requests, 2)
	assert.NotNil(t, api.requests[0][0].AddSheet)
	assert.Equal(t, int64(99), api.requests[1][0].RepeatCell.Range.SheetId)

	require.Len(t, api.values, 1)
	assert.Equal(t, "'Q3'", api.values[0][0].Range)
}

func TestAddSheetWithUnknownDocument(t *testing.T) {
	service := NewService(&fake{})

	_, err := service.AddSheet(context.Background(), "doc-2", "Q3", NewReport(sales(t)))

	assert.Error(t, err)
}

func TestRenderWithoutSpreadsheet(t *testing.T) {
	service := NewService(&fake{})

	_, err := service.Render(context.Background(), nil, NewReport(sales(t)))

	assert.ErrorIs(t, err, spreadsheet.ErrDocumentNotSet)
}
