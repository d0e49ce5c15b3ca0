package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"airbnb-eda/pkg/chart"
	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/model"
	"airbnb-eda/pkg/pipeline"
	"airbnb-eda/pkg/stats"
)

func newPricesCmd(a *app) *cobra.Command {
	var (
		city, out string
		trend     bool
	)

	cmd := &cobra.Command{
		Use:     "prices",
		Short:   "Chart the average listing price over time",
		Long:    `Average the calendar price of every listing per day and plot the series.`,
		Example: "  airbnb-eda prices --city seattle --trend --out seattle-prices.svg",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loader.Get(city, data.Calendar)
			if err != nil {
				return err
			}

			ds, err = pipeline.NewPipeline(a.logger.Logger,
				pipeline.CoerceCurrencyWith(a.coerceOptions(), "price"),
				pipeline.CoerceDateWith(a.coerceOptions(), "date"),
				pipeline.Require(pipeline.CalendarPrices),
			).Run(ds)
			if err != nil {
				return err
			}

			dateCol, _ := ds.Column("date")
			priceCol, _ := ds.Column("price")
			daily, err := stats.AverageByDay(dateCol.Times(), priceCol.Floats())
			if err != nil {
				return err
			}
			days, means := stats.Split(daily)

			opts := []chart.TimeSeriesOption{
				chart.WithTitle(city),
				chart.WithTickLocation(a.cfg.Location()),
			}
			if trend {
				if fit, err := model.FitTrend(days, means); err == nil {
					opts = append(opts, chart.WithTrendLine(fit))
					a.logger.Info("Fitted price trend",
						slog.Float64("slope_per_day", fit.Slope),
						slog.Float64("intercept", fit.Intercept),
						slog.Float64("r2", fit.R2))
				} else {
					a.logger.Warn("Could not fit price trend", slog.String("error", err.Error()))
				}
			}

			if err := chart.SaveTimeSeries(out, days, means, opts...); err != nil {
				return err
			}
			a.logger.Info("Wrote price chart",
				slog.String("city", city),
				slog.Int("days", len(days)),
				slog.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city folder under the data directory")
	cmd.MarkFlagRequired("city")
	cmd.Flags().BoolVar(&trend, "trend", false, "overlay a least-squares trend line")
	cmd.Flags().StringVar(&out, "out", "prices.png", "output image; format follows the extension")
	return cmd
}
