package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"airbnb-eda/pkg/data"
	"airbnb-eda/pkg/report"
)

func newProfileCmd(a *app) *cobra.Command {
	var city, kind, out string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Summarise every column of a table",
		Long: `Print the kind, null count, cardinality and numeric range of every column,
and whether the low-information filter would drop it. Write CSV to stdout or
--out; an --out path ending in .xlsx produces an Excel workbook.`,
		Example: "  airbnb-eda profile --city seattle --kind listings --out listings-profile.xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := data.ParseTable(kind)
			if err != nil {
				return err
			}
			ds, err := a.loader.Get(city, t)
			if err != nil {
				return err
			}

			profiles := report.Profile(ds, a.cfg.Filter.MaxUnique, a.cfg.Filter.MinUnique)
			a.logger.Info("Profiled table",
				"city", city,
				"table", string(t),
				"columns", len(profiles))

			if strings.EqualFold(filepath.Ext(out), ".xlsx") {
				return report.WriteXLSX(out, profiles)
			}
			return writeTo(cmd.OutOrStdout(), out, func(w io.Writer) error {
				return report.WriteCSV(w, profiles)
			})
		},
	}

	addCityFlags(cmd, &city, &kind, data.Listings)
	cmd.Flags().StringVar(&out, "out", "", "output file (.csv or .xlsx); stdout when empty")
	return cmd
}

// writeTo runs write against path, or against stdout when path is empty.
func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
