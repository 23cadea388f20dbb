package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/recipe"
	"github.com/aretw0/espalier/pkg/selector"
)

// RunRecipeStoreContract exercises the RecipeStore behavior every
// implementation must share. Adapter test suites call it with a fresh
// store.
func RunRecipeStoreContract(t *testing.T, store RecipeStore) {
	t.Helper()
	ctx := context.Background()

	train := domain.MustNew(
		domain.NumCol("price", []float64{1, 2, 3, 4}),
		domain.StrCol("kind", []string{"a", "b", "a", "b"}),
	)
	r, err := recipe.New(train.Schema(), "price")
	if err != nil {
		t.Fatalf("define recipe: %v", err)
	}
	fitted, err := r.Dummy(selector.AllNominal()).Fit(train)
	if err != nil {
		t.Fatalf("fit recipe: %v", err)
	}

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("Load(missing) = %v, want ErrRecipeNotFound", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrRecipeNotFound", err)
	}

	if err := store.Save(ctx, "ames", fitted); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := store.Load(ctx, "ames")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Outcome() != "price" {
		t.Errorf("loaded outcome = %q, want price", loaded.Outcome())
	}

	// The loaded snapshot must transform exactly as the original.
	want, err := fitted.Apply(train)
	if err != nil {
		t.Fatalf("apply original: %v", err)
	}
	got, err := loaded.Apply(train)
	if err != nil {
		t.Fatalf("apply loaded: %v", err)
	}
	if gotNames, wantNames := got.Names(), want.Names(); len(gotNames) != len(wantNames) {
		t.Fatalf("loaded apply columns = %v, want %v", gotNames, wantNames)
	}

	ids, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 1 || ids[0] != "ames" {
		t.Errorf("List = %v, want [ames]", ids)
	}

	if err := store.Delete(ctx, "ames"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Load(ctx, "ames"); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("Load after delete = %v, want ErrRecipeNotFound", err)
	}
}
