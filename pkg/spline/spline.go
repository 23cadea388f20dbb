// Package spline implements the natural cubic spline basis used by the
// natural-spline recipe step.
//
// Basis construction:
//
//  1. Given training values x and a degrees-of-freedom parameter df,
//     place boundary knots at min(x) and max(x) and df-1 interior knots
//     at evenly spaced quantiles of x (empirical quantiles, gonum).
//  2. The basis follows the truncated-power construction for natural
//     cubic splines. With knots ξ_1 < … < ξ_m (m = df+1, boundaries
//     included), define
//
//	d_k(t) = ((t-ξ_k)_+³ - (t-ξ_m)_+³) / (ξ_m - ξ_k)
//
//     and basis functions
//
//	N_1(t) = t
//	N_{k+1}(t) = d_k(t) - d_{m-1}(t),  k = 1 … m-2
//
//     giving df output columns per input column.
//
// The natural constraints force the cubic and quadratic terms to cancel
// outside the boundary knots, so evaluation beyond the training range
// extrapolates linearly. That is the boundary policy of this package:
// linear extrapolation on both sides, by construction, not clamping.
package spline

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDegreesOfFreedom indicates df < 2. One degree of freedom is a
	// plain linear term; the spline step requires at least two.
	ErrDegreesOfFreedom = errors.New("spline: degrees of freedom must be at least 2")

	// ErrInsufficientUnique indicates the training column has too few
	// distinct values to place the requested knots.
	ErrInsufficientUnique = errors.New("spline: not enough distinct values for knot placement")

	// ErrDegenerateKnots indicates quantile knot placement collapsed two
	// knots onto the same value.
	ErrDegenerateKnots = errors.New("spline: duplicate knot positions")
)

// Basis is a fitted natural cubic spline basis. Knots are fixed at
// construction and never recomputed; evaluating the basis on new data
// replays the training-time knots exactly.
type Basis struct {
	// Interior knots in increasing order, between the boundary knots.
	Interior []float64 `json:"interior"`
	// Boundary knots: the training min and max.
	Boundary [2]float64 `json:"boundary"`
}

// NewBasis places knots from the training values for the given degrees
// of freedom. df columns are produced by Eval; df-1 interior knots are
// placed at the i/df quantiles, i = 1 … df-1.
func NewBasis(x []float64, df int) (*Basis, error) {
	if df < 2 {
		return nil, ErrDegreesOfFreedom
	}
	if countDistinct(x) < df+1 {
		return nil, ErrInsufficientUnique
	}

	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)

	b := &Basis{
		Interior: make([]float64, df-1),
		Boundary: [2]float64{sorted[0], sorted[len(sorted)-1]},
	}
	for i := 1; i < df; i++ {
		p := float64(i) / float64(df)
		b.Interior[i-1] = stat.Quantile(p, stat.Empirical, sorted, nil)
	}

	knots := b.knots()
	for i := 1; i < len(knots); i++ {
		if knots[i] <= knots[i-1] {
			return nil, ErrDegenerateKnots
		}
	}
	return b, nil
}

// DF returns the number of basis columns.
func (b *Basis) DF() int { return len(b.Interior) + 1 }

// knots returns all knots, boundaries included, in increasing order.
func (b *Basis) knots() []float64 {
	out := make([]float64, 0, len(b.Interior)+2)
	out = append(out, b.Boundary[0])
	out = append(out, b.Interior...)
	out = append(out, b.Boundary[1])
	return out
}

// Eval computes the basis functions at t, returning DF() values.
func (b *Basis) Eval(t float64) []float64 {
	knots := b.knots()
	m := len(knots)
	out := make([]float64, b.DF())
	out[0] = t
	dLast := b.d(t, knots, m-2)
	for k := 1; k <= m-2; k++ {
		out[k] = b.d(t, knots, k-1) - dLast
	}
	return out
}

// EvalAll evaluates the basis at each input value, returning one slice
// per basis column (column-major, matching dataset column layout).
func (b *Basis) EvalAll(xs []float64) [][]float64 {
	cols := make([][]float64, b.DF())
	for j := range cols {
		cols[j] = make([]float64, len(xs))
	}
	for i, t := range xs {
		row := b.Eval(t)
		for j, v := range row {
			cols[j][i] = v
		}
	}
	return cols
}

// d computes the divided truncated-power term d_k for knot index k.
func (b *Basis) d(t float64, knots []float64, k int) float64 {
	last := knots[len(knots)-1]
	return (cubePlus(t-knots[k]) - cubePlus(t-last)) / (last - knots[k])
}

func cubePlus(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v * v * v
}

func countDistinct(x []float64) int {
	seen := make(map[float64]bool, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			seen[v] = true
		}
	}
	return len(seen)
}
