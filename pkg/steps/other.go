package steps

import (
	"fmt"
	"sort"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

// DefaultOtherLabel is the bucket rare and unseen levels collapse into.
const DefaultOtherLabel = "other"

// Other lumps rare levels of nominal columns into a single bucket.
// A level survives when its training frequency is at least Threshold.
type Other struct {
	Sel selector.Selector
	// Threshold is the minimum training frequency (0..1) a level needs
	// to stay distinct.
	Threshold float64
	// Label for the collapsed bucket. Empty means DefaultOtherLabel.
	Label string
}

func (s Other) Kind() string { return KindOther }

func (s Other) Describe() string {
	return fmt.Sprintf("other(%s, threshold=%g)", s.Sel.Describe(), s.Threshold)
}

// Fit computes, per column, the set of levels that stay distinct.
func (s Other) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	if s.Threshold < 0 || s.Threshold > 1 {
		return nil, &domain.FitError{Step: s.Kind(), Reason: fmt.Sprintf("threshold %g outside [0,1]", s.Threshold)}
	}
	cols, err := resolve(s.Kind(), s.Sel, ctx)
	if err != nil {
		return nil, err
	}
	label := s.Label
	if label == "" {
		label = DefaultOtherLabel
	}

	fitted := &FittedOther{Cols: cols, Keep: make(map[string][]string, len(cols)), Label: label}
	for _, col := range cols {
		vals, err := ds.Nominal(col)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: "no observations"}
		}
		counts := make(map[string]int)
		for _, v := range vals {
			counts[v]++
		}
		if len(counts) < 2 {
			return nil, &domain.FitError{Step: s.Kind(), Column: col, Reason: "needs at least 2 distinct levels"}
		}
		n := float64(len(vals))
		var keep []string
		for level, c := range counts {
			if float64(c)/n >= s.Threshold {
				keep = append(keep, level)
			}
		}
		sort.Strings(keep)
		fitted.Keep[col] = keep
	}
	return fitted, nil
}

// FittedOther maps levels outside the per-column keep set to Label.
// Levels unseen at fit time are by definition not in the keep set and
// land in the bucket too.
type FittedOther struct {
	Cols  []string            `json:"columns"`
	Keep  map[string][]string `json:"keep"`
	Label string              `json:"label"`
}

func (f *FittedOther) Kind() string      { return KindOther }
func (f *FittedOther) Columns() []string { return f.Cols }

func (f *FittedOther) Describe() string {
	return fmt.Sprintf("other(label=%q) on %d column(s)", f.Label, len(f.Cols))
}

func (f *FittedOther) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	for _, col := range f.Cols {
		in, err := out.Nominal(col)
		if err != nil {
			return nil, err
		}
		keep := make(map[string]bool, len(f.Keep[col]))
		for _, level := range f.Keep[col] {
			keep[level] = true
		}
		vals := make([]string, len(in))
		for i, v := range in {
			if keep[v] {
				vals[i] = v
			} else {
				vals[i] = f.Label
			}
		}
		out, err = out.WithColumn(domain.StrCol(col, vals))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
