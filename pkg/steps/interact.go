package steps

import (
	"fmt"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

// Interact appends elementwise products of numeric column pairs: every
// column matched by Left crossed with every column matched by Right.
// Selectors are resolved against the working schema at the step's
// position, so Right can match indicator columns created by an earlier
// Dummy step (e.g. selector.StartsWith("Bldg_Type_")).
type Interact struct {
	Left  selector.Selector
	Right selector.Selector
}

func (s Interact) Kind() string { return KindInteract }

func (s Interact) Describe() string {
	return fmt.Sprintf("interact(%s : %s)", s.Left.Describe(), s.Right.Describe())
}

// Fit resolves both selectors and freezes the resulting pair list.
// Interaction itself learns no statistics; it is pure arithmetic over
// columns that exist by this point in the recipe.
func (s Interact) Fit(ds *domain.Dataset, ctx Context) (FittedStep, error) {
	left, err := resolve(s.Kind(), s.Left, ctx)
	if err != nil {
		return nil, err
	}
	right, err := resolve(s.Kind(), s.Right, ctx)
	if err != nil {
		return nil, err
	}
	fitted := &FittedInteract{}
	for _, l := range left {
		if _, err := ds.Numeric(l); err != nil {
			return nil, err
		}
		for _, r := range right {
			if l == r {
				continue
			}
			if _, err := ds.Numeric(r); err != nil {
				return nil, err
			}
			fitted.Pairs = append(fitted.Pairs, [2]string{l, r})
		}
	}
	if len(fitted.Pairs) == 0 {
		return nil, &domain.FitError{Step: s.Kind(), Reason: "selectors produce no column pairs"}
	}
	return fitted, nil
}

// FittedInteract appends one product column per stored pair, named
// left_x_right.
type FittedInteract struct {
	Pairs [][2]string `json:"pairs"`
}

func (f *FittedInteract) Kind() string { return KindInteract }

func (f *FittedInteract) Columns() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range f.Pairs {
		for _, c := range p {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func (f *FittedInteract) Describe() string {
	return fmt.Sprintf("interact -> %d product column(s)", len(f.Pairs))
}

func (f *FittedInteract) Apply(ds *domain.Dataset) (*domain.Dataset, error) {
	out := ds
	for _, p := range f.Pairs {
		l, err := out.Numeric(p[0])
		if err != nil {
			return nil, err
		}
		r, err := out.Numeric(p[1])
		if err != nil {
			return nil, err
		}
		vals := make([]float64, len(l))
		for i := range l {
			vals[i] = l[i] * r[i]
		}
		out, err = out.WithColumn(domain.NumCol(p[0]+"_x_"+p[1], vals))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
