package selector_test

import (
	"reflect"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/selector"
)

func fixture(t *testing.T) (domain.Schema, domain.Roles) {
	t.Helper()
	schema := domain.Schema{
		{Name: "price", Type: domain.Numeric},
		{Name: "area", Type: domain.Numeric},
		{Name: "kind", Type: domain.Nominal},
		{Name: "kind_a", Type: domain.Numeric},
		{Name: "id", Type: domain.Nominal},
	}
	roles, err := domain.NewRoles(schema, "price", "area", "kind", "kind_a")
	if err != nil {
		t.Fatal(err)
	}
	return schema, roles
}

func TestResolve(t *testing.T) {
	schema, roles := fixture(t)

	cases := []struct {
		sel  selector.Selector
		want []string
	}{
		{selector.Cols("area", "kind"), []string{"area", "kind"}},
		{selector.AllNumeric(), []string{"price", "area", "kind_a"}},
		{selector.AllNominal(), []string{"kind"}}, // id is ignored
		{selector.AllPredictors(), []string{"area", "kind", "kind_a"}},
		{selector.StartsWith("kind_"), []string{"kind_a"}},
		{selector.And(selector.AllNumeric(), selector.AllPredictors()), []string{"area", "kind_a"}},
		{selector.Not(selector.AllNumeric()), []string{"kind", "id"}},
		{selector.Cols("nope"), nil},
	}
	for _, tc := range cases {
		got := selector.Resolve(tc.sel, schema, roles)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Resolve(%s) = %v, want %v", tc.sel.Describe(), got, tc.want)
		}
	}
}

func TestDescribe(t *testing.T) {
	if got := selector.Cols("a", "b").Describe(); got != "cols(a,b)" {
		t.Errorf("Describe() = %q", got)
	}
	if got := selector.Not(selector.AllNominal()).Describe(); got != "not(all_nominal)" {
		t.Errorf("Describe() = %q", got)
	}
}
