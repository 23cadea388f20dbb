package spline

import (
	"errors"
	"math"
	"testing"
)

func trainingValues() []float64 {
	vals := make([]float64, 101)
	for i := range vals {
		vals[i] = float64(i) / 10 // 0.0 … 10.0
	}
	return vals
}

func TestNewBasis_Errors(t *testing.T) {
	if _, err := NewBasis(trainingValues(), 1); !errors.Is(err, ErrDegreesOfFreedom) {
		t.Errorf("df=1: got %v, want ErrDegreesOfFreedom", err)
	}
	if _, err := NewBasis([]float64{1, 1, 1, 2}, 4); !errors.Is(err, ErrInsufficientUnique) {
		t.Errorf("degenerate input: got %v, want ErrInsufficientUnique", err)
	}
}

func TestNewBasis_KnotPlacement(t *testing.T) {
	b, err := NewBasis(trainingValues(), 4)
	if err != nil {
		t.Fatal(err)
	}
	if b.DF() != 4 {
		t.Fatalf("DF() = %d, want 4", b.DF())
	}
	if b.Boundary[0] != 0 || b.Boundary[1] != 10 {
		t.Errorf("Boundary = %v, want [0 10]", b.Boundary)
	}
	if len(b.Interior) != 3 {
		t.Fatalf("len(Interior) = %d, want 3", len(b.Interior))
	}
	for i := 1; i < len(b.Interior); i++ {
		if b.Interior[i] <= b.Interior[i-1] {
			t.Errorf("interior knots not increasing: %v", b.Interior)
		}
	}
}

func TestEval_FirstBasisIsIdentity(t *testing.T) {
	b, err := NewBasis(trainingValues(), 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{0, 2.5, 7.1, 10} {
		if got := b.Eval(x)[0]; math.Abs(got-x) > 1e-9 {
			t.Errorf("Eval(%v)[0] = %v, want %v", x, got, x)
		}
	}
}

// Beyond the boundary knots a natural spline is linear, so the second
// difference of every basis function must vanish there.
func TestEval_LinearExtrapolation(t *testing.T) {
	b, err := NewBasis(trainingValues(), 5)
	if err != nil {
		t.Fatal(err)
	}
	const h = 0.5
	for _, x := range []float64{12, 20, -3, -10} {
		lo, mid, hi := b.Eval(x-h), b.Eval(x), b.Eval(x+h)
		for j := range mid {
			secondDiff := hi[j] - 2*mid[j] + lo[j]
			if math.Abs(secondDiff) > 1e-6 {
				t.Errorf("basis %d not linear at %v: second difference %v", j, x, secondDiff)
			}
		}
	}
}

func TestEvalAll_Deterministic(t *testing.T) {
	b, err := NewBasis(trainingValues(), 4)
	if err != nil {
		t.Fatal(err)
	}
	xs := []float64{0.3, 5.5, 9.9, 42}
	first := b.EvalAll(xs)
	second := b.EvalAll(xs)
	for j := range first {
		for i := range first[j] {
			if first[j][i] != second[j][i] {
				t.Fatal("EvalAll is not deterministic")
			}
		}
	}
	if len(first) != b.DF() {
		t.Errorf("EvalAll returned %d columns, want %d", len(first), b.DF())
	}
}
