package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"airbnb-eda/pkg/chart"
	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/pipeline"
)

func newMapCmd(a *app) *cobra.Command {
	var city, out string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map listings coloured by price and sized by reviews",
		Long: `Scatter every listing over coastline, country and county outlines. Colour
follows the nightly price and marker size the reviews per month. Outline
GeoJSON files come from the chart section of the config.`,
		Example: "  airbnb-eda map --city seattle --out seattle-map.png",
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := a.loader.Get(city, data.Listings)
			if err != nil {
				return err
			}

			ds, err = pipeline.NewPipeline(a.logger.Logger,
				pipeline.CoerceCurrencyWith(a.coerceOptions(), "price", "latitude", "longitude", "reviews_per_month"),
				pipeline.Require(pipeline.ListingsMap),
			).Run(ds)
			if err != nil {
				return err
			}

			floats := func(name string) []float64 {
				col, _ := ds.Column(name)
				return col.Floats()
			}

			c := a.cfg.Chart
			g := chart.NewGeoScatterPlotter(chart.DefaultLayers(c.Coastlines, c.Countries, c.Counties), a.logger.Logger)
			g.Margin = c.Margin
			g.ColorQuantile = c.ColorQuantile
			g.SizeScale = c.SizeScale

			if err := g.Save(out, floats("latitude"), floats("longitude"), floats("price"), floats("reviews_per_month")); err != nil {
				return err
			}
			a.logger.Info("Wrote listings map",
				slog.String("city", city),
				slog.Int("listings", ds.NumRows()),
				slog.String("path", out))
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city folder under the data directory")
	cmd.MarkFlagRequired("city")
	cmd.Flags().StringVar(&out, "out", "map.png", "output image; format follows the extension")
	return cmd
}
