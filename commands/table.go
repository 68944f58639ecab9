package commands

import (
	"fmt"
	"slices"

	"github.com/uhppoted/uhppoted-app-reports/table"
)

// makeTable builds a report table from TSV records. Without any group-by columns the records
// form a single part headed by the title. Otherwise the records are grouped (in order of first
// appearance) by the first group-by column, each group being a part headed by the group value,
// with the groups for the next group-by column nested inside.
func makeTable(title string, header []string, records []table.Record, groupBy []string) (*table.Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("missing/invalid header row")
	}

	for _, g := range groupBy {
		if !slices.Contains(header, g) {
			return nil, fmt.Errorf("missing group-by column '%v'", g)
		}
	}

	body := []table.Column{}
	for _, h := range header {
		if !slices.Contains(groupBy, h) {
			body = append(body, table.Column{Name: h, Value: table.Field(h)})
		}
	}

	if len(groupBy) == 0 {
		head := []table.Column{
			{Name: header[0], Value: table.Const(title)},
		}

		part, err := table.NewPart(head, nil, body, records)
		if err != nil {
			return nil, err
		}

		return table.NewTable(table.Headers(header), part), nil
	}

	parts, err := makeParts(records, groupBy, body)
	if err != nil {
		return nil, err
	}

	return table.NewTable(table.Headers(header), parts...), nil
}

func makeParts(records []table.Record, groupBy []string, body []table.Column) ([]*table.Part, error) {
	key := groupBy[0]
	order := []any{}
	groups := map[any][]table.Record{}

	for _, record := range records {
		v := record[key]
		if _, ok := groups[v]; !ok {
			order = append(order, v)
		}

		groups[v] = append(groups[v], record)
	}

	head := []table.Column{
		{Name: key, Value: table.Field(key)},
	}

	parts := []*table.Part{}
	for _, v := range order {
		var data []table.Record
		var children []*table.Part

		if len(groupBy) > 1 {
			if p, err := makeParts(groups[v], groupBy[1:], body); err != nil {
				return nil, err
			} else {
				children = p
			}
		} else {
			data = groups[v]
		}

		label := table.Record{key: v}
		if v == nil {
			label = table.Record{key: ""}
		}

		part, err := table.NewPart(head, label, body, data, children...)
		if err != nil {
			return nil, err
		}

		parts = append(parts, part)
	}

	return parts, nil
}
