package espalier_test

import (
	"fmt"
	"log"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
	"github.com/aretw0/espalier/pkg/selector"
)

// Build a recipe against a training schema, fit it once, then apply
// the frozen result to new data.
func Example() {
	train := domain.MustNew(
		domain.NumCol("price", []float64{120, 95, 210, 180}),
		domain.NumCol("area", []float64{100, 80, 250, 190}),
		domain.StrCol("type", []string{"house", "flat", "house", "flat"}),
	)

	r, err := recipe.New(train.Schema(), "price")
	if err != nil {
		log.Fatal(err)
	}
	r.Log(selector.Cols("area"), 10).Dummy(selector.AllNominal())

	fitted, err := r.Fit(train)
	if err != nil {
		log.Fatal(err)
	}

	fresh := domain.MustNew(
		domain.NumCol("price", []float64{150}),
		domain.NumCol("area", []float64{1000}),
		domain.StrCol("type", []string{"house"}),
	)
	out, err := fitted.Apply(fresh)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(out.Names())
	area, _ := out.Numeric("area")
	house, _ := out.Numeric("type_house")
	fmt.Println(area[0], house[0])
	// Output:
	// [price area type_house]
	// 3 1
}
