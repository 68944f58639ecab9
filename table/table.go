package table

// HeaderProvider supplies the fixed column headers of a report table.
type HeaderProvider interface {
	Headers() []string
}

// Headers is a HeaderProvider for a literal list of headers.
type Headers []string

func (h Headers) Headers() []string {
	return h
}

// Table is a report: an ordered set of column headers and the parts that make up its rows.
type Table struct {
	headers []string
	parts   []*Part
}

func NewTable(provider HeaderProvider, parts ...*Part) *Table {
	headers := append([]string{}, provider.Headers()...)

	return &Table{
		headers: headers,
		parts:   append([]*Part{}, parts...),
	}
}

func (t *Table) Headers() []string {
	return t.headers
}

func (t *Table) Parts() []*Part {
	return t.parts
}

func (t *Table) Add(parts ...*Part) {
	t.parts = append(t.parts, parts...)
}

// Rows flattens every part in order. Each row has every table header as a key, with nil for any
// header the row does not have a value for. The parts themselves are not modified.
func (t *Table) Rows() []Row {
	rows := []Row{}

	for _, part := range t.parts {
		for _, record := range part.Data() {
			row := make(Row, len(t.headers))
			for _, h := range t.headers {
				row[h] = nil
			}

			for k, v := range record {
				row[k] = v
			}

			rows = append(rows, row)
		}
	}

	return rows
}

// Values lays the rows out as a header row followed by one row per record, in header order.
func Values(headers []string, rows []Row) [][]any {
	values := make([][]any, 0, len(rows)+1)

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	values = append(values, header)

	for _, row := range rows {
		record := make([]any, len(headers))
		for i, h := range headers {
			record[i] = row[h]
		}

		values = append(values, record)
	}

	return values
}
