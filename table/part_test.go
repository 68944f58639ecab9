package table

import (
	"errors"
	"reflect"
	"testing"
)

var head = []Column{
	{Name: "Region", Value: Field("region")},
}

var body = []Column{
	{Name: "Product", Value: Field("product")},
	{Name: "Amount", Value: Field("amount")},
}

func TestPartWithoutBody(t *testing.T) {
	expected := []Row{
		{"Region": "North"},
	}

	part, err := NewPart(head, Record{"region": "North"}, body, nil)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewPart (%v)", err)
	}

	if data := part.Data(); !reflect.DeepEqual(data, expected) {
		t.Errorf("Incorrect part data\n   expected: %v\n   got:      %v\n", expected, data)
	}
}

func TestPartFlattening(t *testing.T) {
	child, err := NewPart(head, Record{"region": "North-East"}, body, []Record{
		{"product": "Widget", "amount": 3},
	})
	if err != nil {
		t.Fatalf("Unexpected error returned from NewPart (%v)", err)
	}

	part, err := NewPart(head, Record{"region": "North"}, body, []Record{
		{"product": "Gadget", "amount": 10},
		{"product": "Gizmo", "amount": 12.5},
	}, child)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewPart (%v)", err)
	}

	expected := []Row{
		{"Region": "North"},
		{"Product": "Gadget", "Amount": "10"},
		{"Product": "Gizmo", "Amount": "12.5"},
	}

	expected = append(expected, child.Data()...)

	if data := part.Data(); !reflect.DeepEqual(data, expected) {
		t.Errorf("Incorrect part data\n   expected: %v\n   got:      %v\n", expected, data)
	}
}

func TestPartFlatteningIsDepthFirst(t *testing.T) {
	leaf := func(region string, children ...*Part) *Part {
		p, err := NewPart(head, Record{"region": region}, body, nil, children...)
		if err != nil {
			t.Fatalf("Unexpected error returned from NewPart (%v)", err)
		}
		return p
	}

	root := leaf("1", leaf("1.1", leaf("1.1.1")), leaf("1.2"))

	expected := []string{"1", "1.1", "1.1.1", "1.2"}
	got := []string{}
	for _, row := range root.Data() {
		got = append(got, row["Region"].(string))
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Incorrect row order\n   expected: %v\n   got:      %v\n", expected, got)
	}
}

func TestPartWithMissingField(t *testing.T) {
	expected := []Row{
		{"Region": "South"},
		{"Product": "Gadget"},
		{"Amount": "7"},
	}

	part, err := NewPart(head, Record{"region": "South"}, body, []Record{
		{"product": "Gadget"},
		{"amount": 7},
	})
	if err != nil {
		t.Fatalf("Unexpected error returned from NewPart (%v)", err)
	}

	if data := part.Data(); !reflect.DeepEqual(data, expected) {
		t.Errorf("Incorrect part data\n   expected: %v\n   got:      %v\n", expected, data)
	}
}

func TestPartWithExtractorError(t *testing.T) {
	broken := []Column{
		{Name: "Amount", Value: func(Record) (any, error) { return nil, errors.New("not a number") }},
	}

	if _, err := NewPart(head, Record{"region": "South"}, broken, []Record{{"amount": "x"}}); err == nil {
		t.Errorf("Expected error from NewPart with failing extractor, got %v", err)
	}
}

func TestPartWithMissingHeadField(t *testing.T) {
	_, err := NewPart(head, Record{}, body, nil)
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("Expected ErrMissingField for missing head field, got %v", err)
	}
}

func TestPartHeadIsNotStringified(t *testing.T) {
	part, err := NewPart([]Column{{Name: "Total", Value: Const(42)}}, nil, body, nil)
	if err != nil {
		t.Fatalf("Unexpected error returned from NewPart (%v)", err)
	}

	if v := part.Head()["Total"]; v != 42 {
		t.Errorf("Incorrect head value - expected:%v, got:%v", 42, v)
	}
}

func TestMissingFieldError(t *testing.T) {
	_, err := Field("amount")(Record{})

	var missing *MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "amount" {
		t.Errorf("Expected MissingFieldError for 'amount', got %v", err)
	}
}
