package loader_test

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/loader"
)

func TestRead_TypeInference(t *testing.T) {
	in := strings.NewReader("price,hood,area\n100.5,North,12\n200,South,30\n")
	ds, err := loader.Read(in)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Rows() != 2 || ds.Cols() != 3 {
		t.Fatalf("got %dx%d, want 2x3", ds.Rows(), ds.Cols())
	}
	for col, want := range map[string]domain.ColumnType{
		"price": domain.Numeric,
		"hood":  domain.Nominal,
		"area":  domain.Numeric,
	} {
		typ, ok := ds.Schema().Type(col)
		if !ok || typ != want {
			t.Errorf("%s inferred as %v, want %v", col, typ, want)
		}
	}
	price, _ := ds.Numeric("price")
	if price[0] != 100.5 {
		t.Errorf("price[0] = %v", price[0])
	}
}

func TestRead_NAHandling(t *testing.T) {
	in := strings.NewReader("x,g\n1,A\nNA,B\n,A\n")
	ds, err := loader.Read(in)
	if err != nil {
		t.Fatal(err)
	}
	typ, _ := ds.Schema().Type("x")
	if typ != domain.Numeric {
		t.Fatalf("x with NA markers should stay numeric, got %v", typ)
	}
	x, _ := ds.Numeric("x")
	if !math.IsNaN(x[1]) || !math.IsNaN(x[2]) {
		t.Errorf("NA cells should be NaN, got %v", x)
	}
}

func TestRead_CustomNAStrings(t *testing.T) {
	in := strings.NewReader("x\n1\n?\n")
	ds, err := loader.Read(in, loader.WithNAStrings("?"))
	if err != nil {
		t.Fatal(err)
	}
	x, err := ds.Numeric("x")
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(x[1]) {
		t.Errorf("custom NA marker not honored: %v", x)
	}
}

func TestRead_ForcedTypes(t *testing.T) {
	in := strings.NewReader("zip\n01234\n98765\n")
	ds, err := loader.Read(in, loader.WithTypes(map[string]domain.ColumnType{"zip": domain.Nominal}))
	if err != nil {
		t.Fatal(err)
	}
	vals, err := ds.Nominal("zip")
	if err != nil {
		t.Fatal(err)
	}
	if vals[0] != "01234" {
		t.Errorf("forced nominal lost leading zero: %q", vals[0])
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	ds := domain.MustNew(
		domain.NumCol("x", []float64{1.25, math.NaN(), -3}),
		domain.StrCol("g", []string{"A", "b c", "other"}),
	)
	var buf bytes.Buffer
	if err := loader.Write(&buf, ds); err != nil {
		t.Fatal(err)
	}
	back, err := loader.Read(&buf)
	if err != nil {
		t.Fatal(err)
	}
	x, _ := back.Numeric("x")
	if x[0] != 1.25 || !math.IsNaN(x[1]) || x[2] != -3 {
		t.Errorf("x round trip = %v", x)
	}
	g, _ := back.Nominal("g")
	if g[1] != "b c" {
		t.Errorf("g round trip = %v", g)
	}
}
