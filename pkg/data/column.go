package data

import (
	"math"
	"strconv"
	"time"
)

// Kind is the nominal type of a column.
type Kind int

const (
	// Text holds free text and categorical values.
	Text Kind = iota
	// Numeric holds float64 values; NaN marks a null.
	Numeric
	// Date holds time.Time values with an explicit null mask.
	Date
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Numeric:
		return "numeric"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// Column is a named, typed sequence of values. Columns are never modified
// after construction; conversions build new columns.
type Column struct {
	name  string
	kind  Kind
	text  []string
	num   []float64
	dates []time.Time
	null  []bool
}

// NewText creates a text column. null may be nil when no value is missing;
// otherwise it must have the same length as values.
func NewText(name string, values []string, null []bool) *Column {
	c := &Column{
		name: name,
		kind: Text,
		text: append([]string(nil), values...),
		null: make([]bool, len(values)),
	}
	copy(c.null, null)
	return c
}

// NewNumeric creates a numeric column. NaN values are nulls.
func NewNumeric(name string, values []float64) *Column {
	c := &Column{
		name: name,
		kind: Numeric,
		num:  append([]float64(nil), values...),
		null: make([]bool, len(values)),
	}
	for i, v := range c.num {
		c.null[i] = math.IsNaN(v)
	}
	return c
}

// NewDate creates a date column. null follows the NewText rules, so the
// zero time is an ordinary value unless it is masked.
func NewDate(name string, values []time.Time, null []bool) *Column {
	c := &Column{
		name:  name,
		kind:  Date,
		dates: append([]time.Time(nil), values...),
		null:  make([]bool, len(values)),
	}
	copy(c.null, null)
	return c
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }
func (c *Column) Len() int     { return len(c.null) }

// IsNull reports whether row i holds no value.
func (c *Column) IsNull(i int) bool { return c.null[i] }

// NullCount returns the number of null rows.
func (c *Column) NullCount() int {
	n := 0
	for _, isNull := range c.null {
		if isNull {
			n++
		}
	}
	return n
}

// Text returns the raw text at row i. Only valid for text columns.
func (c *Column) Text(i int) string { return c.text[i] }

// Float returns the value at row i. Only valid for numeric columns.
func (c *Column) Float(i int) float64 { return c.num[i] }

// Time returns the value at row i. Only valid for date columns.
func (c *Column) Time(i int) time.Time { return c.dates[i] }

// Strings returns a copy of a text column's values. Nulls are "".
func (c *Column) Strings() []string {
	out := make([]string, c.Len())
	if c.kind != Text {
		for i := range out {
			out[i] = c.Format(i)
		}
		return out
	}
	for i, v := range c.text {
		if !c.null[i] {
			out[i] = v
		}
	}
	return out
}

// Floats returns a copy of a numeric column's values.
func (c *Column) Floats() []float64 {
	return append([]float64(nil), c.num...)
}

// Times returns a copy of a date column's values. Nulls are the zero time.
func (c *Column) Times() []time.Time {
	out := make([]time.Time, len(c.dates))
	for i, v := range c.dates {
		if !c.null[i] {
			out[i] = v
		}
	}
	return out
}

// Nulls returns a copy of the null mask.
func (c *Column) Nulls() []bool {
	return append([]bool(nil), c.null...)
}

// Format renders row i as text. Nulls render as "".
func (c *Column) Format(i int) string {
	if c.null[i] {
		return ""
	}
	switch c.kind {
	case Numeric:
		return strconv.FormatFloat(c.num[i], 'f', -1, 64)
	case Date:
		t := c.dates[i]
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.RFC3339)
	default:
		return c.text[i]
	}
}

// Cardinality returns the number of distinct non-null values.
func (c *Column) Cardinality() int {
	switch c.kind {
	case Numeric:
		seen := make(map[float64]struct{})
		for i, v := range c.num {
			if !c.null[i] {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	case Date:
		seen := make(map[int64]struct{})
		for i, v := range c.dates {
			if !c.null[i] {
				seen[v.UnixNano()] = struct{}{}
			}
		}
		return len(seen)
	default:
		seen := make(map[string]struct{})
		for i, v := range c.text {
			if !c.null[i] {
				seen[v] = struct{}{}
			}
		}
		return len(seen)
	}
}
