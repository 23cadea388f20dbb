package engine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/espalier/internal/engine"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
	"github.com/aretw0/espalier/pkg/steps"
)

func trainData(t *testing.T) (*domain.Dataset, domain.Roles) {
	t.Helper()
	ds := domain.MustNew(
		domain.NumCol("y", []float64{1, 2, 3, 4}),
		domain.NumCol("a", []float64{1, 10, 100, 1000}),
		domain.NumCol("b", []float64{2, 2, 2, 2}),
	)
	roles, err := domain.NewRoles(ds.Schema(), "y")
	if err != nil {
		t.Fatal(err)
	}
	return ds, roles
}

func TestFit_StepOrderMatters(t *testing.T) {
	ds, roles := trainData(t)
	logger := logging.NewNop()

	logThenInteract := []steps.Step{
		steps.Log{Sel: selector.Cols("a"), Base: 10},
		steps.Interact{Left: selector.Cols("a"), Right: selector.Cols("b")},
	}
	interactThenLog := []steps.Step{
		steps.Interact{Left: selector.Cols("a"), Right: selector.Cols("b")},
		steps.Log{Sel: selector.Cols("a"), Base: 10},
	}

	_, out1, err := engine.Fit(ds, roles, logThenInteract, logger)
	if err != nil {
		t.Fatal(err)
	}
	_, out2, err := engine.Fit(ds, roles, interactThenLog, logger)
	if err != nil {
		t.Fatal(err)
	}

	// log first: a_x_b = log10(a) * b. interact first: a_x_b = a * b.
	p1, _ := out1.Numeric("a_x_b")
	p2, _ := out2.Numeric("a_x_b")
	if p1[3] == p2[3] {
		t.Error("reordering steps should change the interaction column")
	}
	if want := 3.0 * 2.0; math.Abs(p1[3]-want) > 1e-9 {
		t.Errorf("log-then-interact a_x_b[3] = %v, want %v", p1[3], want)
	}
	if want := 1000.0 * 2.0; math.Abs(p2[3]-want) > 1e-9 {
		t.Errorf("interact-then-log a_x_b[3] = %v, want %v", p2[3], want)
	}
}

func TestFit_SelectorsSeeDerivedColumns(t *testing.T) {
	ds := domain.MustNew(
		domain.NumCol("y", []float64{1, 2, 3}),
		domain.StrCol("g", []string{"A", "B", "A"}),
		domain.NumCol("x", []float64{2, 4, 8}),
	)
	roles, err := domain.NewRoles(ds.Schema(), "y")
	if err != nil {
		t.Fatal(err)
	}

	// The interact step's left selector matches the indicator columns
	// the dummy step created, which did not exist at declaration time.
	list := []steps.Step{
		steps.Dummy{Sel: selector.Cols("g")},
		steps.Interact{Left: selector.StartsWith("g_"), Right: selector.Cols("x")},
	}
	_, out, err := engine.Fit(ds, roles, list, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	prod, err := out.Numeric("g_B_x_x")
	if err != nil {
		t.Fatal(err)
	}
	if prod[0] != 0 || prod[1] != 4 || prod[2] != 0 {
		t.Errorf("g_B_x_x = %v, want [0 4 0]", prod)
	}
}

func TestFit_AllOrNothing(t *testing.T) {
	ds, roles := trainData(t)
	list := []steps.Step{
		steps.Log{Sel: selector.Cols("a"), Base: 10},
		steps.Dummy{Sel: selector.Cols("missing")},
	}
	fitted, out, err := engine.Fit(ds, roles, list, logging.NewNop())
	if err == nil {
		t.Fatal("expected second step to fail the whole fit")
	}
	if fitted != nil || out != nil {
		t.Error("failed fit must not return partial results")
	}
	var unresolved *domain.UnresolvedSelectorError
	if !errors.As(err, &unresolved) {
		t.Errorf("got %v, want UnresolvedSelectorError", err)
	}
	// Training data untouched by the partial fit.
	a, _ := ds.Numeric("a")
	if a[1] != 10 {
		t.Error("Fit mutated the training data")
	}
}

func TestFit_MissingOutcome(t *testing.T) {
	ds, roles := trainData(t)
	stripped := ds.Drop("y")
	var schemaErr *domain.SchemaError
	_, _, err := engine.Fit(stripped, roles, nil, logging.NewNop())
	if !errors.As(err, &schemaErr) {
		t.Errorf("got %v, want SchemaError for missing outcome", err)
	}
}

func TestFit_EmptyTrainingData(t *testing.T) {
	ds := domain.MustNew(
		domain.NumCol("y", nil),
		domain.NumCol("x", nil),
	)
	roles, err := domain.NewRoles(ds.Schema(), "y")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := engine.Fit(ds, roles, nil, logging.NewNop()); err == nil {
		t.Error("expected zero-row training data to fail")
	}
}

func TestApply_ReplaysFittedState(t *testing.T) {
	ds, roles := trainData(t)
	list := []steps.Step{steps.Log{Sel: selector.Cols("a"), Base: 10}}
	fitted, _, err := engine.Fit(ds, roles, list, logging.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	fresh := domain.MustNew(
		domain.NumCol("y", []float64{0}),
		domain.NumCol("a", []float64{100}),
		domain.NumCol("b", []float64{1}),
	)
	out, err := engine.Apply(fresh, fitted)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := out.Numeric("a")
	if math.Abs(a[0]-2) > 1e-9 {
		t.Errorf("a[0] = %v, want 2", a[0])
	}

	// Apply twice yields identical output.
	again, err := engine.Apply(fresh, fitted)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := again.Numeric("a")
	if a[0] != b[0] {
		t.Error("repeated Apply diverged")
	}
}
