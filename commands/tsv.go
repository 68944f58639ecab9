package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/uhppoted/uhppoted-app-reports/table"
)

// readTSV reads a TSV file with a header row. Blank cells are left out of the record.
func readTSV(f io.Reader) ([]string, []table.Record, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("TSV file is empty")
	}

	// ... header
	header := []string{}
	index := map[string]bool{}

	for _, v := range rows[0] {
		h := clean(v)
		if h == "" {
			return nil, nil, fmt.Errorf("missing/invalid header row")
		}

		if index[normalise(h)] {
			return nil, nil, fmt.Errorf("duplicate column name '%s'", h)
		}

		index[normalise(h)] = true
		header = append(header, h)
	}

	if len(header) == 0 {
		return nil, nil, fmt.Errorf("missing/invalid header row")
	}

	// ... records
	records := []table.Record{}
	for _, row := range rows[1:] {
		record := table.Record{}
		for i, v := range row {
			if i < len(header) && clean(v) != "" {
				record[header[i]] = clean(v)
			}
		}

		if len(record) > 0 {
			records = append(records, record)
		}
	}

	return header, records, nil
}

func clean(v string) string {
	return strings.TrimSpace(v)
}

func normalise(v string) string {
	return strings.ToLower(strings.ReplaceAll(v, " ", ""))
}
