package recipe_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
	"github.com/aretw0/espalier/pkg/selector"
	"github.com/aretw0/espalier/pkg/steps"
)

func trainData() *domain.Dataset {
	x := make([]float64, 40)
	price := make([]float64, 40)
	hood := make([]string, 40)
	for i := range x {
		x[i] = float64(i + 1)
		price[i] = 100 + 3*float64(i)
		switch {
		case i < 18:
			hood[i] = "North"
		case i < 38:
			hood[i] = "South"
		default:
			hood[i] = "Island"
		}
	}
	return domain.MustNew(
		domain.NumCol("price", price),
		domain.NumCol("area", x),
		domain.StrCol("hood", hood),
	)
}

func TestRecipe_EndToEnd(t *testing.T) {
	train := trainData()

	r, err := recipe.New(train.Schema(), "price")
	require.NoError(t, err)
	r.Log(selector.Cols("area"), 10).
		Other(selector.AllNominal(), 0.1).
		Dummy(selector.AllNominal())

	fitted, err := r.Fit(train)
	require.NoError(t, err)
	assert.Len(t, fitted.Steps(), 3)
	assert.Equal(t, "price", fitted.Outcome())

	out, err := fitted.Apply(train)
	require.NoError(t, err)

	area, err := out.Numeric("area")
	require.NoError(t, err)
	assert.InDelta(t, 1, area[9], 1e-9, "area row 10 is 10, log10 = 1")

	// "Island" is below the 0.1 threshold: lumped to "other" before
	// encoding, so its indicator exists and the level's own does not.
	names := out.Names()
	assert.Contains(t, names, steps.IndicatorName("hood", steps.DefaultOtherLabel))
	assert.NotContains(t, names, steps.IndicatorName("hood", "Island"))
}

func TestRecipe_ApplyIsDeterministic(t *testing.T) {
	train := trainData()
	r, err := recipe.New(train.Schema(), "price")
	require.NoError(t, err)
	r.NaturalSpline(selector.Cols("area"), 4).Center(selector.StartsWith("area_ns"))

	fitted, err := r.Fit(train)
	require.NoError(t, err)

	first, err := fitted.Apply(train)
	require.NoError(t, err)
	second, err := fitted.Apply(train)
	require.NoError(t, err)

	require.Equal(t, first.Names(), second.Names())
	for _, name := range first.Names() {
		typ, ok := first.Schema().Type(name)
		if !ok || typ != domain.Numeric {
			continue
		}
		a, _ := first.Numeric(name)
		b, _ := second.Numeric(name)
		assert.Equal(t, a, b, "column %s diverged between applies", name)
	}
}

func TestRecipe_FitLeavesBuilderReusable(t *testing.T) {
	train := trainData()
	r, err := recipe.New(train.Schema(), "price")
	require.NoError(t, err)
	r.Log(selector.Cols("area"), 0)

	f1, err := r.Fit(train)
	require.NoError(t, err)
	f2, err := r.Fit(train)
	require.NoError(t, err)

	out1, err := f1.Apply(train)
	require.NoError(t, err)
	out2, err := f2.Apply(train)
	require.NoError(t, err)

	a1, _ := out1.Numeric("area")
	a2, _ := out2.Numeric("area")
	assert.Equal(t, a1, a2)
	assert.Len(t, r.Steps(), 1, "Fit must not consume the declared steps")
}

func TestRecipe_MissingOutcome(t *testing.T) {
	train := trainData()
	_, err := recipe.New(train.Schema(), "absent")
	var schemaErr *domain.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "absent", schemaErr.Column)
}

func TestRecipe_FitRejectsMissingOutcomeColumn(t *testing.T) {
	train := trainData()
	r, err := recipe.New(train.Schema(), "price")
	require.NoError(t, err)

	var schemaErr *domain.SchemaError
	_, err = r.Fit(train.Drop("price"))
	require.ErrorAs(t, err, &schemaErr)
}

func TestFitted_SerializationRoundTrip(t *testing.T) {
	train := trainData()
	r, err := recipe.New(train.Schema(), "price")
	require.NoError(t, err)
	r.Log(selector.Cols("area"), 10).
		Other(selector.Cols("hood"), 0.1).
		Dummy(selector.Cols("hood")).
		NaturalSpline(selector.Cols("area"), 3)

	fitted, err := r.Fit(train)
	require.NoError(t, err)

	blob, err := json.Marshal(fitted)
	require.NoError(t, err)

	var restored recipe.Fitted
	require.NoError(t, json.Unmarshal(blob, &restored))
	assert.Equal(t, fitted.Outcome(), restored.Outcome())

	fresh := domain.MustNew(
		domain.NumCol("price", []float64{0, 0}),
		domain.NumCol("area", []float64{7, 21}),
		domain.StrCol("hood", []string{"South", "Harbor"}),
	)
	want, err := fitted.Apply(fresh)
	require.NoError(t, err)
	got, err := restored.Apply(fresh)
	require.NoError(t, err)

	require.Equal(t, want.Names(), got.Names())
	for _, name := range want.Names() {
		a, err := want.Numeric(name)
		require.NoError(t, err)
		b, err := got.Numeric(name)
		require.NoError(t, err)
		for i := range a {
			assert.InDelta(t, a[i], b[i], 1e-12, "column %s row %d", name, i)
		}
	}
}

func TestFitted_UnmarshalRejectsUnknownVersion(t *testing.T) {
	var f recipe.Fitted
	err := json.Unmarshal([]byte(`{"version": 99, "outcome": "y", "steps": []}`), &f)
	require.Error(t, err)
}

func TestFitted_UnmarshalRejectsUnknownKind(t *testing.T) {
	var f recipe.Fitted
	blob := `{"version": 1, "outcome": "y", "roles": {"y": "outcome"}, "steps": [{"kind": "quantum", "state": {}}]}`
	err := json.Unmarshal([]byte(blob), &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantum")
}

func TestRecipe_LogDomainErrorOnApply(t *testing.T) {
	train := trainData()
	r, err := recipe.New(train.Schema(), "price")
	require.NoError(t, err)
	r.Log(selector.Cols("area"), 0)

	fitted, err := r.Fit(train)
	require.NoError(t, err)

	bad := domain.MustNew(
		domain.NumCol("price", []float64{1}),
		domain.NumCol("area", []float64{-4}),
		domain.StrCol("hood", []string{"North"}),
	)
	_, err = fitted.Apply(bad)
	var domErr *domain.DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, "area", domErr.Column)
	assert.Equal(t, -4.0, domErr.Value)
	assert.Equal(t, 0, domErr.Row)
}
