package steps

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
	"github.com/aretw0/espalier/pkg/spline"
)

// NaturalSpline replaces numeric columns with a natural cubic spline
// basis expansion. Knot positions come from training quantiles and are
// frozen into the fitted state; apply-time values outside the training
// range extrapolate linearly (see package spline).
type NaturalSpline struct {
	Sel selector.Selector
	// DF is the number of basis columns each input column expands into.
	DF int
}

func (s NaturalSpline) Kind() string { return KindSpline }

func (s NaturalSpline) Describe() string {
	return fmt.Sprintf("ns(%s, df=%d)", s.Sel.Describe(), s.DF)
}

// Fit places knots for each matched column from its training values.
func (s NaturalSpline) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	cols, err := resolve(s.Kind(), s.Sel, ctx)
	if err != nil {
		return nil, err
	}
	fitted := &FittedNaturalSpline{Cols: cols, Bases: make(map[string]*spline.Basis, len(cols))}
	for _, col := range cols {
		vals, err := ds.Numeric(col)
		if err != nil {
			return nil, err
		}
		basis, err := spline.NewBasis(vals, s.DF)
		if err != nil {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: err.Error()}
		}
		fitted.Bases[col] = basis
	}
	return fitted, nil
}

// FittedNaturalSpline replaces each column with its basis columns,
// named col_ns_1 … col_ns_df.
type FittedNaturalSpline struct {
	Cols  []string                 `json:"columns"`
	Bases map[string]*spline.Basis `json:"bases"`
}

func (f *FittedNaturalSpline) Kind() string      { return KindSpline }
func (f *FittedNaturalSpline) Columns() []string { return f.Cols }

func (f *FittedNaturalSpline) Describe() string {
	df := 0
	for _, b := range f.Bases {
		df = b.DF()
		break
	}
	return fmt.Sprintf("ns(df=%d) on %d column(s)", df, len(f.Cols))
}

func (f *FittedNaturalSpline) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	for _, col := range f.Cols {
		vals, err := out.Numeric(col)
		if err != nil {
			return nil, err
		}
		basis := f.Bases[col]
		expanded := basis.EvalAll(vals)
		cols := make([]domain.Column, basis.DF())
		for j, basisVals := range expanded {
			cols[j] = domain.NumCol(fmt.Sprintf("%s_ns_%d", col, j+1), basisVals)
		}
		out, err = out.Splice(col, cols...)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
