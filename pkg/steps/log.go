package steps

import (
	"fmt"
	"math"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

// Log transforms numeric columns to log scale with an explicit base.
type Log struct {
	Sel selector.Selector
	// Base of the logarithm. Zero means natural log.
	Base float64
}

func (s Log) Kind() string { return KindLog }

func (s Log) Describe() string {
	return fmt.Sprintf("log(%s, base=%s)", s.Sel.Describe(), baseLabel(s.Base))
}

// Fit records the matched columns and base. The log step learns no
// statistics; fitting exists so apply-time behavior is pinned to the
// fit-time column set like every other step.
func (s Log) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	cols, err := resolve(s.Kind(), s.Sel, ctx)
	if err != nil {
		return nil, err
	}
	for _, col := range cols {
		if _, err := ds.Numeric(col); err != nil {
			return nil, err
		}
	}
	base := s.Base
	if base == 0 {
		base = math.E
	}
	if base <= 0 || base == 1 {
		return nil, &domain.FitError{Step: s.Kind(), Reason: fmt.Sprintf("invalid log base %v", base)}
	}
	return &FittedLog{Cols: cols, Base: base}, nil
}

// FittedLog applies a fixed-base log transform in place.
type FittedLog struct {
	Cols []string `json:"columns"`
	Base float64  `json:"base"`
}

func (f *FittedLog) Kind() string      { return KindLog }
func (f *FittedLog) Columns() []string { return f.Cols }

func (f *FittedLog) Describe() string {
	return fmt.Sprintf("log(base=%s) on %d column(s)", baseLabel(f.Base), len(f.Cols))
}

// Apply replaces each column with log_base(x). Non-positive inputs are
// outside the domain and fail; NaN passes through as NaN.
func (f *FittedLog) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	logBase := math.Log(f.Base)
	for _, col := range f.Cols {
		in, err := out.Numeric(col)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(in))
		for i, v := range in {
			if math.IsNaN(v) {
				vals[i] = v
				continue
			}
			if v <= 0 {
				return nil, &domain.DomainError{
					Step: KindLog, Column: col, Row: i, Value: v,
					Reason: "log requires strictly positive input",
				}
			}
			vals[i] = math.Log(v) / logBase
		}
		out, err = out.WithColumn(domain.NumCol(col, vals))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func baseLabel(base float64) string {
	if base == 0 || base == math.E {
		return "e"
	}
	return fmt.Sprintf("%g", base)
}
