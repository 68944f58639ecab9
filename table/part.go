package table

import (
	"errors"
	"fmt"
)

// Record is a single item of report data, keyed by field name.
type Record map[string]any

// Row is a rendered report row, keyed by column header.
type Row map[string]any

// Extractor computes a column value from a record.
type Extractor func(Record) (any, error)

// Column is a named extractor. Columns are kept in slices so that the column order is the order
// in which they were declared.
type Column struct {
	Name  string
	Value Extractor
}

var ErrMissingField = errors.New("missing field")

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field '%v'", e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// Field returns an extractor for a record field, failing with a MissingFieldError if the record
// does not have the field.
func Field(name string) Extractor {
	return func(r Record) (any, error) {
		if v, ok := r[name]; ok {
			return v, nil
		}

		return nil, &MissingFieldError{Field: name}
	}
}

// Const returns an extractor that ignores the record e.g. for a group label.
func Const(v any) Extractor {
	return func(Record) (any, error) {
		return v, nil
	}
}

// Part is a labelled block of report rows: a head row followed by the rows of the part's own
// records and then the rows of each child part, depth first.
type Part struct {
	head     Row
	body     []Row
	children []*Part
}

// NewPart builds the head and body rows immediately. Body values are rendered as strings and a
// body column whose record is missing a field is left out of that row. Any other extractor error
// fails the part.
func NewPart(head []Column, headData Record, body []Column, bodyData []Record, children ...*Part) (*Part, error) {
	p := Part{
		children: children,
	}

	if h, err := makeHead(head, headData); err != nil {
		return nil, err
	} else {
		p.head = h
	}

	if b, err := makeBody(body, bodyData, children); err != nil {
		return nil, err
	} else {
		p.body = b
	}

	return &p, nil
}

func makeHead(columns []Column, data Record) (Row, error) {
	head := Row{}

	for _, c := range columns {
		v, err := c.Value(data)
		if err != nil {
			return nil, fmt.Errorf("head column '%v' (%w)", c.Name, err)
		}

		head[c.Name] = v
	}

	return head, nil
}

func makeBody(columns []Column, records []Record, children []*Part) ([]Row, error) {
	body := []Row{}

	for _, record := range records {
		row := Row{}
		for _, c := range columns {
			v, err := c.Value(record)
			if errors.Is(err, ErrMissingField) {
				continue
			} else if err != nil {
				return nil, fmt.Errorf("body column '%v' (%w)", c.Name, err)
			}

			row[c.Name] = fmt.Sprintf("%v", v)
		}

		body = append(body, row)
	}

	for _, child := range children {
		body = append(body, child.Data()...)
	}

	return body, nil
}

func (p *Part) Head() Row {
	return p.head
}

// Body returns the part's own rows followed by the flattened rows of its children.
func (p *Part) Body() []Row {
	return p.body
}

func (p *Part) Children() []*Part {
	return p.children
}

// Data returns the flattened rows of the part, head first.
func (p *Part) Data() []Row {
	data := make([]Row, 0, len(p.body)+1)

	data = append(data, p.head)
	data = append(data, p.body...)

	return data
}
