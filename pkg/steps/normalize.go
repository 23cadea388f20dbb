package steps

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

// Center subtracts the training mean from numeric columns.
type Center struct {
	Sel selector.Selector
}

func (s Center) Kind() string     { return KindCenter }
func (s Center) Describe() string { return fmt.Sprintf("center(%s)", s.Sel.Describe()) }

func (s Center) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	cols, err := resolve(s.Kind(), s.Sel, ctx)
	if err != nil {
		return nil, err
	}
	fitted := &FittedCenter{Cols: cols, Means: make(map[string]float64, len(cols))}
	for _, col := range cols {
		vals, err := ds.Numeric(col)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: "no observations"}
		}
		fitted.Means[col] = stat.Mean(vals, nil)
	}
	return fitted, nil
}

// FittedCenter shifts each column by its stored training mean.
type FittedCenter struct {
	Cols  []string           `json:"columns"`
	Means map[string]float64 `json:"means"`
}

func (f *FittedCenter) Kind() string      { return KindCenter }
func (f *FittedCenter) Columns() []string { return f.Cols }

func (f *FittedCenter) Describe() string {
	return fmt.Sprintf("center on %d column(s)", len(f.Cols))
}

func (f *FittedCenter) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	for _, col := range f.Cols {
		in, err := out.Numeric(col)
		if err != nil {
			return nil, err
		}
		mean := f.Means[col]
		vals := make([]float64, len(in))
		for i, v := range in {
			vals[i] = v - mean
		}
		out, err = out.WithColumn(domain.NumCol(col, vals))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Scale divides numeric columns by their training standard deviation
// (sample, n-1).
type Scale struct {
	Sel selector.Selector
}

func (s Scale) Kind() string     { return KindScale }
func (s Scale) Describe() string { return fmt.Sprintf("scale(%s)", s.Sel.Describe()) }

func (s Scale) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	cols, err := resolve(s.Kind(), s.Sel, ctx)
	if err != nil {
		return nil, err
	}
	fitted := &FittedScale{Cols: cols, Sds: make(map[string]float64, len(cols))}
	for _, col := range cols {
		vals, err := ds.Numeric(col)
		if err != nil {
			return nil, err
		}
		if len(vals) < 2 {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: "needs at least 2 observations"}
		}
		sd := stat.StdDev(vals, nil)
		if sd == 0 || math.IsNaN(sd) {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: "zero variance"}
		}
		fitted.Sds[col] = sd
	}
	return fitted, nil
}

// FittedScale divides each column by its stored training deviation.
type FittedScale struct {
	Cols []string           `json:"columns"`
	Sds  map[string]float64 `json:"sds"`
}

func (f *FittedScale) Kind() string      { return KindScale }
func (f *FittedScale) Columns() []string { return f.Cols }

func (f *FittedScale) Describe() string {
	return fmt.Sprintf("scale on %d column(s)", len(f.Cols))
}

func (f *FittedScale) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	for _, col := range f.Cols {
		in, err := out.Numeric(col)
		if err != nil {
			return nil, err
		}
		sd := f.Sds[col]
		vals := make([]float64, len(in))
		for i, v := range in {
			vals[i] = v / sd
		}
		out, err = out.WithColumn(domain.NumCol(col, vals))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
