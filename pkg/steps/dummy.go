package steps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

// Dummy one-hot encodes nominal columns. The level set is frozen at fit
// time (after any upstream lumping); the lexicographically first level
// becomes the reference and gets no indicator column.
type Dummy struct {
	Sel selector.Selector
}

func (s Dummy) Kind() string     { return KindDummy }
func (s Dummy) Describe() string { return fmt.Sprintf("dummy(%s)", s.Sel.Describe()) }

// Fit freezes the sorted level list of each matched column.
func (s Dummy) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	cols, err := resolve(s.Kind(), s.Sel, ctx)
	if err != nil {
		return nil, err
	}
	fitted := &FittedDummy{Cols: cols, Levels: make(map[string][]string, len(cols))}
	for _, col := range cols {
		vals, err := ds.Nominal(col)
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		for _, v := range vals {
			seen[v] = true
		}
		if len(seen) < 2 {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: "needs at least 2 distinct levels"}
		}
		levels := make([]string, 0, len(seen))
		for level := range seen {
			levels = append(levels, level)
		}
		sort.Strings(levels)
		fitted.Levels[col] = levels
	}
	return fitted, nil
}

// FittedDummy replaces each nominal column with one indicator column
// per non-reference level. The first stored level is the reference.
//
// A level not in the stored list (unseen at fit time) encodes as all
// zeros, the same row the reference level gets; it is never an error.
// Routing unseen levels to a bucket instead is the job of an upstream
// Other step.
type FittedDummy struct {
	Cols   []string            `json:"columns"`
	Levels map[string][]string `json:"levels"`
}

func (f *FittedDummy) Kind() string      { return KindDummy }
func (f *FittedDummy) Columns() []string { return f.Cols }

func (f *FittedDummy) Describe() string {
	total := 0
	for _, levels := range f.Levels {
		total += len(levels) - 1
	}
	return fmt.Sprintf("dummy on %d column(s) -> %d indicator(s)", len(f.Cols), total)
}

func (f *FittedDummy) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	for _, col := range f.Cols {
		in, err := out.Nominal(col)
		if err != nil {
			return nil, err
		}
		levels := f.Levels[col]
		indicators := make([]domain.Column, 0, len(levels)-1)
		for _, level := range levels[1:] {
			vals := make([]float64, len(in))
			for i, v := range in {
				if v == level {
					vals[i] = 1
				}
			}
			indicators = append(indicators, domain.NumCol(IndicatorName(col, level), vals))
		}
		out, err = out.Splice(col, indicators...)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// IndicatorName builds the output column name for one level of an
// encoded column, e.g. Bldg_Type + "TwoFmCon" -> "Bldg_Type_TwoFmCon".
func IndicatorName(col, level string) string {
	return col + "_" + strings.ReplaceAll(level, " ", "_")
}
