package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/espalier/pkg/adapters/memory"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/recipe"
	"github.com/aretw0/espalier/pkg/selector"
)

func TestStore_Contract(t *testing.T) {
	ports.RunRecipeStoreContract(t, memory.NewStore())
}

func TestStore_SaveIsolatesSnapshot(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	train := domain.MustNew(
		domain.NumCol("y", []float64{1, 2}),
		domain.StrCol("g", []string{"a", "b"}),
	)
	r, err := recipe.New(train.Schema(), "y")
	if err != nil {
		t.Fatal(err)
	}
	fitted, err := r.Dummy(selector.AllNominal()).Fit(train)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, "a", fitted); err != nil {
		t.Fatal(err)
	}

	// Two loads return independent snapshots.
	first, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.Load(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("loads should not alias the same snapshot")
	}
}
