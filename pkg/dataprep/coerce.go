package dataprep

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/edaerr"
)

// currencyChars matches every character stripped before numeric parsing.
var currencyChars = regexp.MustCompile(`[$,%]`)

// decimalNumber is the text left after stripping that may be parsed. It
// rules out the hex and underscore forms strconv also accepts.
var decimalNumber = regexp.MustCompile(`^[+-]?(?:(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?|(?i:inf|infinity|nan))$`)

// CoerceOption tunes ParseDate and ParseCurrencyNumeric.
type CoerceOption func(*coerceOptions)

type coerceOptions struct {
	lenient      bool
	location     *time.Location
	percentScale bool
}

// WithLenient turns unparseable dates into nulls instead of failing.
func WithLenient() CoerceOption {
	return func(o *coerceOptions) { o.lenient = true }
}

// WithLocation sets the zone for dates that carry no offset. Defaults to UTC.
func WithLocation(loc *time.Location) CoerceOption {
	return func(o *coerceOptions) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithPercentScale divides values written with a % sign by 100, so "95%"
// becomes 0.95 rather than 95.
func WithPercentScale() CoerceOption {
	return func(o *coerceOptions) { o.percentScale = true }
}

func newCoerceOptions(opts []CoerceOption) coerceOptions {
	o := coerceOptions{location: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ParseDate converts a text column to a date column. Layouts are detected
// per value. The first unparseable value fails the whole column unless
// WithLenient is given. Nulls stay null.
func ParseDate(col *data.Column, opts ...CoerceOption) (*data.Column, error) {
	o := newCoerceOptions(opts)

	switch col.Kind() {
	case data.Date:
		return data.NewDate(col.Name(), col.Times(), col.Nulls()), nil
	case data.Numeric:
		return nil, edaerr.InvalidArgument("ParseDate", "column %q is numeric, not text", col.Name())
	}

	out := make([]time.Time, col.Len())
	null := make([]bool, col.Len())
	for i := range out {
		if col.IsNull(i) {
			null[i] = true
			continue
		}
		raw := strings.TrimSpace(col.Text(i))
		t, err := dateparse.ParseIn(raw, o.location)
		if err != nil {
			if o.lenient {
				null[i] = true
				continue
			}
			return nil, edaerr.Parse("ParseDate", col.Name(), i, col.Text(i), err)
		}
		out[i] = t
	}
	return data.NewDate(col.Name(), out, null), nil
}

// ParseCurrencyNumeric strips "$", "," and "%" from every value and parses
// the rest as float64. Nulls become NaN.
func ParseCurrencyNumeric(col *data.Column, opts ...CoerceOption) (*data.Column, error) {
	o := newCoerceOptions(opts)

	switch col.Kind() {
	case data.Numeric:
		return data.NewNumeric(col.Name(), col.Floats()), nil
	case data.Date:
		return nil, edaerr.InvalidArgument("ParseCurrencyNumeric", "column %q is a date column", col.Name())
	}

	out := make([]float64, col.Len())
	for i := range out {
		if col.IsNull(i) {
			out[i] = math.NaN()
			continue
		}
		raw := col.Text(i)
		v, err := parseCurrency(raw)
		if err != nil {
			return nil, edaerr.Parse("ParseCurrencyNumeric", col.Name(), i, raw, err)
		}
		if o.percentScale && strings.ContainsRune(raw, '%') {
			v /= 100
		}
		out[i] = v
	}
	return data.NewNumeric(col.Name(), out), nil
}

func parseCurrency(raw string) (float64, error) {
	cleaned := strings.TrimSpace(currencyChars.ReplaceAllString(raw, ""))
	if !decimalNumber.MatchString(cleaned) {
		return 0, fmt.Errorf("invalid number %q", cleaned)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		// Out of range values saturate to ±Inf like any float parser.
		if errors.Is(err, strconv.ErrRange) {
			return v, nil
		}
		return 0, err
	}
	return v, nil
}
