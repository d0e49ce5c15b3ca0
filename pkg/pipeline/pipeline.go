// Package pipeline chains dataset transformations. Every step returns a new
// dataset, so a failed run leaves its input untouched.
package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/dataprep"
)

// Step transforms a dataset.
type Step interface {
	Name() string
	Apply(ds *data.Dataset) (*data.Dataset, error)
}

// StepFunc adapts a function to a Step.
type StepFunc struct {
	Label string
	Fn    func(*data.Dataset) (*data.Dataset, error)
}

func (s StepFunc) Name() string { return s.Label }

func (s StepFunc) Apply(ds *data.Dataset) (*data.Dataset, error) { return s.Fn(ds) }

// Pipeline chains multiple steps.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

func NewPipeline(logger *slog.Logger, steps ...Step) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{steps: steps, logger: logger}
}

// Add appends steps and returns p.
func (p *Pipeline) Add(steps ...Step) *Pipeline {
	p.steps = append(p.steps, steps...)
	return p
}

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.steps) }

// Run applies the steps in order and stops at the first failure.
func (p *Pipeline) Run(ds *data.Dataset) (*data.Dataset, error) {
	for i, step := range p.steps {
		start := time.Now()
		out, err := step.Apply(ds)
		if err != nil {
			p.logger.Error("Pipeline step failed",
				slog.Int("step", i),
				slog.String("name", step.Name()),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Name(), err)
		}
		p.logger.Debug("Pipeline step completed",
			slog.String("name", step.Name()),
			slog.Int("columns", out.NumCols()),
			slog.Duration("duration", time.Since(start)))
		ds = out
	}
	return ds, nil
}

// mapColumns replaces each named column with fn applied to it.
func mapColumns(label string, cols []string, fn func(*data.Column) (*data.Column, error)) Step {
	return StepFunc{
		Label: fmt.Sprintf("%s%v", label, cols),
		Fn: func(ds *data.Dataset) (*data.Dataset, error) {
			for _, name := range cols {
				col, err := ds.Col(name)
				if err != nil {
					return nil, err
				}
				converted, err := fn(col)
				if err != nil {
					return nil, err
				}
				if ds, err = ds.Replace(converted); err != nil {
					return nil, err
				}
			}
			return ds, nil
		},
	}
}

type columnConverter func(*data.Column, ...dataprep.CoerceOption) (*data.Column, error)

func convertColumns(label string, convert columnConverter, opts []dataprep.CoerceOption, cols []string) Step {
	return mapColumns(label, cols, func(c *data.Column) (*data.Column, error) {
		return convert(c, opts...)
	})
}

// CoerceCurrency parses the named columns as currency or plain numbers.
func CoerceCurrency(cols ...string) Step {
	return CoerceCurrencyWith(nil, cols...)
}

// CoerceCurrencyWith is CoerceCurrency with parsing options.
func CoerceCurrencyWith(opts []dataprep.CoerceOption, cols ...string) Step {
	return convertColumns("coerce_currency", dataprep.ParseCurrencyNumeric, opts, cols)
}

// CoerceDate parses the named columns as dates.
func CoerceDate(cols ...string) Step {
	return CoerceDateWith(nil, cols...)
}

// CoerceDateWith is CoerceDate with parsing options.
func CoerceDateWith(opts []dataprep.CoerceOption, cols ...string) Step {
	return convertColumns("coerce_date", dataprep.ParseDate, opts, cols)
}

// DropLowInformation drops text columns outside [minUnique, maxUnique]
// distinct values.
func DropLowInformation(maxUnique, minUnique int, logger *slog.Logger) Step {
	f := dataprep.NewColumnFilter(logger)
	f.MaxUnique, f.MinUnique = maxUnique, minUnique
	return StepFunc{Label: "drop_low_information", Fn: f.Apply}
}

// DropSparse drops columns with a larger share of nulls than maxNullRatio.
func DropSparse(maxNullRatio float64, logger *slog.Logger) Step {
	return StepFunc{
		Label: "drop_sparse",
		Fn: func(ds *data.Dataset) (*data.Dataset, error) {
			return dataprep.DropMissing(ds, maxNullRatio, logger)
		},
	}
}

// Impute fills the nulls of the named numeric columns.
func Impute(strategy dataprep.Strategy, constant float64, cols ...string) Step {
	return mapColumns("impute_"+string(strategy), cols, func(c *data.Column) (*data.Column, error) {
		return dataprep.Impute(c, strategy, constant)
	})
}

// ClipOutliers pins the named numeric columns to their [lower, upper]
// percentile range.
func ClipOutliers(lower, upper float64, cols ...string) Step {
	return mapColumns("clip_outliers", cols, func(c *data.Column) (*data.Column, error) {
		return dataprep.ClipOutliers(c, lower, upper)
	})
}
