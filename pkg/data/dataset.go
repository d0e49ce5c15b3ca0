package data

import (
	"airbnb-eda/pkg/edaerr"
)

// Dataset is an ordered collection of equal-length columns.
//
// Datasets are values in practice: every transform returns a new Dataset and
// leaves its input untouched. Columns are shared between datasets, which is
// safe because columns are immutable.
type Dataset struct {
	source  string
	rows    int
	columns []*Column
	index   map[string]int
}

// New builds a dataset from columns. Column names must be unique and every
// column must have the same length.
func New(source string, columns ...*Column) (*Dataset, error) {
	d := &Dataset{
		source:  source,
		columns: append([]*Column(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range d.columns {
		if _, dup := d.index[c.Name()]; dup {
			return nil, edaerr.InvalidArgument("data.New", "duplicate column %q", c.Name())
		}
		if i == 0 {
			d.rows = c.Len()
		} else if c.Len() != d.rows {
			return nil, edaerr.InvalidArgument("data.New",
				"column %q has %d rows, expected %d", c.Name(), c.Len(), d.rows)
		}
		d.index[c.Name()] = i
	}
	return d, nil
}

// Source returns the path the dataset was loaded from, if any.
func (d *Dataset) Source() string { return d.source }

func (d *Dataset) NumRows() int { return d.rows }
func (d *Dataset) NumCols() int { return len(d.columns) }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name()
	}
	return names
}

// Columns returns the columns in order.
func (d *Dataset) Columns() []*Column {
	return append([]*Column(nil), d.columns...)
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Col is Column with an InvalidArgument error for unknown names.
func (d *Dataset) Col(name string) (*Column, error) {
	c, ok := d.Column(name)
	if !ok {
		return nil, edaerr.InvalidArgument("Dataset.Col", "no column named %q", name)
	}
	return c, nil
}

// Replace returns a copy of d with the column of the same name swapped for c.
func (d *Dataset) Replace(c *Column) (*Dataset, error) {
	i, ok := d.index[c.Name()]
	if !ok {
		return nil, edaerr.InvalidArgument("Dataset.Replace", "no column named %q", c.Name())
	}
	if c.Len() != d.rows {
		return nil, edaerr.InvalidArgument("Dataset.Replace",
			"column %q has %d rows, expected %d", c.Name(), c.Len(), d.rows)
	}
	cols := d.Columns()
	cols[i] = c
	return New(d.source, cols...)
}

// Select returns a copy of d holding only the columns keep accepts, in order.
func (d *Dataset) Select(keep func(*Column) bool) *Dataset {
	out := &Dataset{
		source: d.source,
		rows:   d.rows,
		index:  make(map[string]int),
	}
	for _, c := range d.columns {
		if keep(c) {
			out.index[c.Name()] = len(out.columns)
			out.columns = append(out.columns, c)
		}
	}
	return out
}

// Records renders the dataset as a header row followed by one row per record.
func (d *Dataset) Records() [][]string {
	records := make([][]string, 0, d.rows+1)
	records = append(records, d.Names())
	for r := 0; r < d.rows; r++ {
		row := make([]string, len(d.columns))
		for j, c := range d.columns {
			row[j] = c.Format(r)
		}
		records = append(records, row)
	}
	return records
}
