// Package loader reads and writes datasets as CSV.
//
// Column types are inferred from the data: a column whose every non-NA
// value parses as a float is numeric, anything else is nominal.
// Inference can be overridden per column with WithTypes.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/aretw0/espalier/pkg/domain"
)

type config struct {
	naStrings map[string]bool
	types     map[string]domain.ColumnType
}

// Option configures CSV reading.
type Option func(*config)

// WithNAStrings replaces the default NA markers ("" and "NA").
// Numeric NA values become NaN; nominal NA values become the literal
// marker string unchanged.
func WithNAStrings(markers ...string) Option {
	return func(c *config) {
		c.naStrings = make(map[string]bool, len(markers))
		for _, m := range markers {
			c.naStrings[m] = true
		}
	}
}

// WithTypes forces the type of the named columns, bypassing inference.
func WithTypes(types map[string]domain.ColumnType) Option {
	return func(c *config) {
		c.types = types
	}
}

// ReadFile reads a CSV file into a dataset.
func ReadFile(path string, opts ...Option) (*domain.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ds, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Read reads CSV data with a header row into a dataset.
func Read(r io.Reader, opts ...Option) (*domain.Dataset, error) {
	cfg := config{naStrings: map[string]bool{"": true, "NA": true}}
	for _, opt := range opts {
		opt(&cfg)
	}

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	raw := make([][]string, len(header))
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, v := range rec {
			raw[i] = append(raw[i], v)
		}
	}

	cols := make([]domain.Column, len(header))
	for i, name := range header {
		cols[i] = buildColumn(name, raw[i], cfg)
	}
	return domain.New(cols...)
}

func buildColumn(name string, raw []string, cfg config) domain.Column {
	typ, forced := cfg.types[name]
	if !forced {
		typ = inferType(raw, cfg.naStrings)
	}
	switch typ {
	case domain.Numeric:
		vals := make([]float64, len(raw))
		for i, s := range raw {
			if cfg.naStrings[s] {
				vals[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				v = math.NaN()
			}
			vals[i] = v
		}
		return domain.NumCol(name, vals)
	default:
		vals := make([]string, len(raw))
		copy(vals, raw)
		return domain.StrCol(name, vals)
	}
}

func inferType(raw []string, na map[string]bool) domain.ColumnType {
	sawValue := false
	for _, s := range raw {
		if na[s] {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return domain.Nominal
		}
		sawValue = true
	}
	if !sawValue {
		return domain.Nominal
	}
	return domain.Numeric
}

// WriteFile writes a dataset to a CSV file.
func WriteFile(path string, ds *domain.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, ds)
}

// Write writes a dataset as CSV with a header row. NaN values are
// written as "NA".
func Write(w io.Writer, ds *domain.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Names()); err != nil {
		return err
	}
	names := ds.Names()
	rows := ds.Rows()
	rec := make([]string, len(names))
	for i := 0; i < rows; i++ {
		for j, name := range names {
			col, _ := ds.Column(name)
			switch col.Type {
			case domain.Numeric:
				v := col.Float[i]
				if math.IsNaN(v) {
					rec[j] = "NA"
				} else {
					rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
				}
			case domain.Nominal:
				rec[j] = col.Str[i]
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
