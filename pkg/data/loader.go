package data

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"airbnb-eda/pkg/edaerr"
)

// Table names one of the files published for every city.
type Table string

const (
	Calendar Table = "calendar"
	Listings Table = "listings"
	Reviews  Table = "reviews"
)

var tableFiles = map[Table]string{
	Calendar: "calendar.csv",
	Listings: "listings.csv",
	Reviews:  "reviews.csv",
}

// Tables lists the known tables in a stable order.
func Tables() []Table { return []Table{Calendar, Listings, Reviews} }

// Filename returns the file a table is stored in.
func (t Table) Filename() (string, error) {
	name, ok := tableFiles[t]
	if !ok {
		return "", edaerr.InvalidArgument("Table.Filename",
			"unknown table %q (want calendar, listings or reviews)", string(t))
	}
	return name, nil
}

// ParseTable converts a table name such as "listings" to a Table.
func ParseTable(s string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(s)))
	if _, err := t.Filename(); err != nil {
		return "", err
	}
	return t, nil
}

// NullTokens are the cell values read as missing. The set mirrors the
// defaults analysts expect from dataframe tooling.
var NullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "n/a", "nan", "null",
}

// Loader reads city datasets from a directory tree laid out as
// <Root>/<city>/<table>.csv.
type Loader struct {
	Root      string
	Delimiter rune
	Logger    *slog.Logger
}

// NewLoader creates a loader rooted at root. An empty root means the
// working directory.
func NewLoader(root string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{Root: root, Delimiter: ',', Logger: logger}
}

// Path resolves the file holding table t for city.
func (l *Loader) Path(city string, t Table) (string, error) {
	if strings.TrimSpace(city) == "" {
		return "", edaerr.InvalidArgument("Loader.Path", "city must not be empty")
	}
	name, err := t.Filename()
	if err != nil {
		return "", err
	}
	return filepath.Join(l.Root, city, name), nil
}

// Get loads table t for city.
func (l *Loader) Get(city string, t Table) (*Dataset, error) {
	path, err := l.Path(city, t)
	if err != nil {
		return nil, err
	}

	ds, err := l.Load(path)
	if err != nil {
		l.logger().Error("Failed to load dataset",
			slog.String("city", city),
			slog.String("table", string(t)),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	l.logger().Info("Loaded dataset",
		slog.String("city", city),
		slog.String("table", string(t)),
		slog.String("path", path),
		slog.Int("rows", ds.NumRows()),
		slog.Int("columns", ds.NumCols()))
	return ds, nil
}

// Load reads the delimited file at path.
func (l *Loader) Load(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, edaerr.FileNotFound("Load", path, err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	return l.Read(file, path)
}

// Read parses delimited text with a header row from r. Integer and float
// columns become Numeric; everything else stays Text, so "true"/"false"
// columns keep their raw spelling. A header with no rows gives a dataset of
// empty Text columns. A leading UTF-8 byte order mark is dropped.
func (l *Loader) Read(r io.Reader, source string) (*Dataset, error) {
	delim := l.Delimiter
	if delim == 0 {
		delim = ','
	}

	records, err := readRecords(r, delim)
	if err != nil {
		return nil, edaerr.ParseFile("Read", source, err)
	}
	if len(records) == 0 {
		return nil, edaerr.ParseFile("Read", source, errors.New("no header row"))
	}

	var columns []*Column
	if len(records) == 1 {
		for _, name := range records[0] {
			columns = append(columns, NewText(name, nil, nil))
		}
	} else {
		df := dataframe.LoadRecords(records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(true),
			dataframe.NaNValues(NullTokens),
		)
		if df.Err != nil {
			return nil, edaerr.ParseFile("Read", source, df.Err)
		}
		for j, name := range df.Names() {
			s := df.Col(name)
			if s.Type() == series.Bool {
				columns = append(columns, rawText(name, records[1:], j))
				continue
			}
			columns = append(columns, fromSeries(name, s))
		}
	}

	ds, err := New(source, columns...)
	if err != nil {
		return nil, edaerr.ParseFile("Read", source, err)
	}
	return ds, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readRecords(r io.Reader, delim rune) ([][]string, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	return cr.ReadAll()
}

// rawText builds a text column from field j of rows.
func rawText(name string, rows [][]string, j int) *Column {
	values := make([]string, len(rows))
	null := make([]bool, len(rows))
	for i, row := range rows {
		if slices.Contains(NullTokens, row[j]) {
			null[i] = true
			continue
		}
		values[i] = row[j]
	}
	return NewText(name, values, null)
}

func (l *Loader) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// fromSeries converts a gota series to a typed column.
func fromSeries(name string, s series.Series) *Column {
	n := s.Len()
	switch s.Type() {
	case series.Int, series.Float:
		values := make([]float64, n)
		for i := 0; i < n; i++ {
			e := s.Elem(i)
			if e.IsNA() {
				values[i] = math.NaN()
				continue
			}
			values[i] = e.Float()
		}
		return NewNumeric(name, values)
	default:
		values := make([]string, n)
		null := make([]bool, n)
		for i := 0; i < n; i++ {
			e := s.Elem(i)
			if e.IsNA() {
				null[i] = true
				continue
			}
			values[i] = e.String()
		}
		return NewText(name, values, null)
	}
}

// GetData loads table t for city relative to the working directory.
func GetData(city string, t Table) (*Dataset, error) {
	return NewLoader("", nil).Get(city, t)
}

// Load reads a delimited file with the default loader.
func Load(path string) (*Dataset, error) {
	return NewLoader("", nil).Load(path)
}
