package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/api/sheets/v4"
	"gopkg.in/yaml.v3"

	"github.com/uhppoted/uhppoted-app-reports/spreadsheet"
)

// layout is the optional YAML report layout file e.g.
//
//	title: Quarterly Sales
//	sheet: Sales
//	group-by: [Region]
//	share:
//	  type: domain
//	  role: reader
//	  domain: example.com
//	header:
//	  bold: true
//	  background: "#1565C0"
//	  foreground: "#FFFFFF"
//	  height: 32
//	columns:
//	  - name: Amount
//	    width: 120
//	    number: "#,##0"
//	merge:
//	  - A1:C1
type layout struct {
	Title   string                  `yaml:"title"`
	Sheet   string                  `yaml:"sheet"`
	GroupBy []string                `yaml:"group-by"`
	Share   *spreadsheet.Permission `yaml:"share"`
	Header  *header                 `yaml:"header"`
	Columns []column                `yaml:"columns"`
	Merge   []string                `yaml:"merge"`
}

type header struct {
	Bold       bool   `yaml:"bold"`
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Height     int64  `yaml:"height"`
}

type column struct {
	Name   string `yaml:"name"`
	Width  int64  `yaml:"width"`
	Number string `yaml:"number"`
}

func loadLayout(file string) (*layout, error) {
	if strings.TrimSpace(file) == "" {
		return &layout{}, nil
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	return parseLayout(f)
}

func parseLayout(r io.Reader) (*layout, error) {
	l := layout{}

	if err := yaml.NewDecoder(r).Decode(&l); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid layout (%w)", err)
	}

	return &l, nil
}

// rules translates the layout into formatting rules for a table with the given headers.
func (l *layout) rules(headers []string) ([]spreadsheet.Rule, error) {
	rules := []spreadsheet.Rule{}

	if l.Header != nil {
		last, err := columnLetter(len(headers) - 1)
		if err != nil {
			return nil, err
		}

		format := sheets.CellFormat{
			TextFormat: &sheets.TextFormat{
				Bold: l.Header.Bold,
			},
		}

		fields := []string{"textFormat"}

		if l.Header.Foreground != "" {
			color, err := spreadsheet.Color(l.Header.Foreground)
			if err != nil {
				return nil, err
			}

			format.TextFormat.ForegroundColor = color
		}

		if l.Header.Background != "" {
			color, err := spreadsheet.Color(l.Header.Background)
			if err != nil {
				return nil, err
			}

			format.BackgroundColor = color
			fields = append(fields, "backgroundColor")
		}

		r, err := spreadsheet.NewCellsRange("A1", fmt.Sprintf("%v1", last))
		if err != nil {
			return nil, err
		}

		rules = append(rules, spreadsheet.FormatCellsFields(r, &format, fmt.Sprintf("userEnteredFormat(%v)", strings.Join(fields, ","))))

		if l.Header.Height > 0 {
			rules = append(rules, spreadsheet.RowsHeight(0, 0, l.Header.Height))
		}
	}

	for _, c := range l.Columns {
		ix := -1
		for i, h := range headers {
			if normalise(h) == normalise(c.Name) {
				ix = i
				break
			}
		}

		if ix < 0 {
			return nil, fmt.Errorf("layout column '%v' is not in the report", c.Name)
		}

		if c.Width > 0 {
			rules = append(rules, spreadsheet.ColumnsWidth(int64(ix), int64(ix), c.Width))
		}

		if c.Number != "" {
			col, err := columnLetter(ix)
			if err != nil {
				return nil, err
			}

			format := sheets.CellFormat{
				NumberFormat: &sheets.NumberFormat{
					Type:    "NUMBER",
					Pattern: c.Number,
				},
			}

			rules = append(rules, spreadsheet.FormatCellsFields(spreadsheet.MustCellsRange(col, col), &format, "userEnteredFormat.numberFormat"))
		}
	}

	for _, m := range l.Merge {
		bounds := strings.Split(strings.TrimSpace(m), ":")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid merge range '%v' - expected something like 'A1:C1'", m)
		}

		r, err := spreadsheet.NewCellsRange(strings.ToUpper(bounds[0]), strings.ToUpper(bounds[1]))
		if err != nil {
			return nil, err
		}

		rules = append(rules, spreadsheet.Merge(r, spreadsheet.MergeAll))
	}

	return rules, nil
}

func columnLetter(index int) (string, error) {
	if index < 0 || index > 25 {
		return "", fmt.Errorf("column %v is outside the supported range A-Z", index+1)
	}

	return string(rune('A' + index)), nil
}
