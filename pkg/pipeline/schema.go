package pipeline

import (
	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/edaerr"
)

// Field is a column a dataset must carry.
type Field struct {
	Name string
	Kind data.Kind
}

// Schema describes the columns a command relies on. Extra columns are allowed.
type Schema struct {
	Fields []Field
}

// Check reports the first missing or mistyped field.
func (s Schema) Check(ds *data.Dataset) error {
	for _, f := range s.Fields {
		col, ok := ds.Column(f.Name)
		if !ok {
			return edaerr.InvalidArgument("Schema.Check", "%s: missing column %q", ds.Source(), f.Name)
		}
		if col.Kind() != f.Kind {
			return edaerr.InvalidArgument("Schema.Check", "%s: column %q is %s, expected %s",
				ds.Source(), f.Name, col.Kind(), f.Kind)
		}
	}
	return nil
}

// Require fails the pipeline when ds does not match s.
func Require(s Schema) Step {
	return StepFunc{
		Label: "require_schema",
		Fn: func(ds *data.Dataset) (*data.Dataset, error) {
			if err := s.Check(ds); err != nil {
				return nil, err
			}
			return ds, nil
		},
	}
}

// Columns read by the prices and map commands.
var (
	CalendarPrices = Schema{Fields: []Field{
		{Name: "date", Kind: data.Date},
		{Name: "price", Kind: data.Numeric},
	}}
	ListingsMap = Schema{Fields: []Field{
		{Name: "latitude", Kind: data.Numeric},
		{Name: "longitude", Kind: data.Numeric},
		{Name: "price", Kind: data.Numeric},
		{Name: "reviews_per_month", Kind: data.Numeric},
	}}
)
