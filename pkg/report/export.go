package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Profile"

// Header is the first row written by WriteCSV and WriteXLSX.
var Header = []string{
	"column", "kind", "rows", "nulls", "null_ratio", "cardinality",
	"min", "mean", "max", "earliest", "latest", "would_drop",
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

func (p ColumnProfile) record() []string {
	return []string{
		p.Name,
		p.Kind.String(),
		strconv.Itoa(p.Rows),
		strconv.Itoa(p.Nulls),
		strconv.FormatFloat(p.NullRatio(), 'f', 4, 64),
		strconv.Itoa(p.Cardinality),
		formatFloat(p.Min),
		formatFloat(p.Mean),
		formatFloat(p.Max),
		formatDate(p.Earliest),
		formatDate(p.Latest),
		strconv.FormatBool(p.WouldDrop),
	}
}

// WriteCSV writes the profiles as CSV, one row per column.
func WriteCSV(w io.Writer, profiles []ColumnProfile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write profile header: %w", err)
	}
	for _, p := range profiles {
		if err := cw.Write(p.record()); err != nil {
			return fmt.Errorf("failed to write profile of %s: %w", p.Name, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// cells returns the row with numbers kept numeric so spreadsheets can sort them.
func (p ColumnProfile) cells() []interface{} {
	row := make([]interface{}, 0, len(Header))
	row = append(row, p.Name, p.Kind.String(), p.Rows, p.Nulls, p.NullRatio(), p.Cardinality)
	for _, v := range []float64{p.Min, p.Mean, p.Max} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			row = append(row, nil)
		} else {
			row = append(row, v)
		}
	}
	row = append(row, formatDate(p.Earliest), formatDate(p.Latest), p.WouldDrop)
	return row
}

// WriteXLSX saves the profiles to an Excel workbook at path.
func WriteXLSX(path string, profiles []ColumnProfile) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write profile header: %w", err)
	}

	for i, p := range profiles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := p.cells()
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write profile of %s: %w", p.Name, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
