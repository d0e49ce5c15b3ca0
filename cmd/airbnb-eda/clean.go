package main

import (
	"encoding/csv"
	"io"

	"github.com/spf13/cobra"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/dataprep"
	"airbnb-eda/pkg/pipeline"
)

func newCleanCmd(a *app) *cobra.Command {
	var (
		city, kind, out        string
		currency, dates        []string
		impute, clip           []string
		strategy               string
		fill, clipLo, clipHigh float64
		keepLowInfo            bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Coerce columns and drop low-information ones",
		Long: `Parse the --currency columns as numbers ("$1,200.00" -> 1200) and the --date
columns as dates, optionally fill nulls and clip outliers in numeric columns,
drop text columns with too many or too few distinct values
and columns with too many nulls, then write the result as CSV.`,
		Example: "  airbnb-eda clean --city seattle --kind listings --currency price,weekly_price --date host_since --out clean.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := data.ParseTable(kind)
			if err != nil {
				return err
			}
			ds, err := a.loader.Get(city, t)
			if err != nil {
				return err
			}

			p := pipeline.NewPipeline(a.logger.Logger)
			if len(currency) > 0 {
				p.Add(pipeline.CoerceCurrencyWith(a.coerceOptions(), currency...))
			}
			if len(dates) > 0 {
				p.Add(pipeline.CoerceDateWith(a.coerceOptions(), dates...))
			}
			if len(impute) > 0 {
				st, err := dataprep.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				p.Add(pipeline.Impute(st, fill, impute...))
			}
			if len(clip) > 0 {
				p.Add(pipeline.ClipOutliers(clipLo, clipHigh, clip...))
			}
			if !keepLowInfo {
				p.Add(pipeline.DropLowInformation(a.cfg.Filter.MaxUnique, a.cfg.Filter.MinUnique, a.logger.Logger))
			}
			p.Add(pipeline.DropSparse(a.cfg.Filter.MaxNullRatio, a.logger.Logger))

			cleaned, err := p.Run(ds)
			if err != nil {
				return err
			}
			a.logger.Info("Cleaned table",
				"city", city,
				"table", string(t),
				"columns_in", ds.NumCols(),
				"columns_out", cleaned.NumCols(),
				"rows", cleaned.NumRows())

			return writeTo(cmd.OutOrStdout(), out, func(w io.Writer) error {
				cw := csv.NewWriter(w)
				if err := cw.WriteAll(cleaned.Records()); err != nil {
					return err
				}
				return cw.Error()
			})
		},
	}

	addCityFlags(cmd, &city, &kind, data.Listings)
	cmd.Flags().StringSliceVar(&currency, "currency", nil, "columns to parse as currency or percentages")
	cmd.Flags().StringSliceVar(&dates, "date", nil, "columns to parse as dates")
	cmd.Flags().StringSliceVar(&impute, "impute", nil, "numeric columns whose nulls are filled")
	cmd.Flags().StringVar(&strategy, "impute-strategy", string(dataprep.ImputeMedian), "mean, median or constant")
	cmd.Flags().Float64Var(&fill, "impute-value", 0, "fill value for the constant strategy")
	cmd.Flags().StringSliceVar(&clip, "clip", nil, "numeric columns clipped to [--clip-lower, --clip-upper] percentiles")
	cmd.Flags().Float64Var(&clipLo, "clip-lower", 1, "lower clipping percentile")
	cmd.Flags().Float64Var(&clipHigh, "clip-upper", 99, "upper clipping percentile")
	cmd.Flags().BoolVar(&keepLowInfo, "keep-low-information", false, "skip the cardinality filter")
	cmd.Flags().StringVar(&out, "out", "", "output CSV file; stdout when empty")
	return cmd
}
