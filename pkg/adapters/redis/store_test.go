package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/recipe"
	"github.com/aretw0/espalier/pkg/selector"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func fittedRecipe(t *testing.T) *recipe.Fitted {
	t.Helper()
	train := domain.MustNew(
		domain.NumCol("y", []float64{1, 2, 3}),
		domain.StrCol("g", []string{"a", "b", "a"}),
	)
	r, err := recipe.New(train.Schema(), "y")
	if err != nil {
		t.Fatal(err)
	}
	fitted, err := r.Dummy(selector.AllNominal()).Fit(train)
	if err != nil {
		t.Fatal(err)
	}
	return fitted
}

func TestStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunRecipeStoreContract(t, store)
}

func TestStore_KeyPrefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("custom:"))
	ctx := context.Background()

	if err := store.Save(ctx, "r1", fittedRecipe(t)); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("custom:r1") {
		t.Error("recipe not stored under the configured prefix")
	}
	if !mr.Exists("custom:index") {
		t.Error("index set not stored under the configured prefix")
	}
}

func TestStore_TTLExpiryPrunedFromList(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Minute))
	ctx := context.Background()

	if err := store.Save(ctx, "ephemeral", fittedRecipe(t)); err != nil {
		t.Fatal(err)
	}
	ids, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("List before expiry = %v", ids)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Load(ctx, "ephemeral"); err != domain.ErrRecipeNotFound {
		t.Errorf("Load after expiry = %v, want ErrRecipeNotFound", err)
	}
	ids, err = store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Errorf("List after expiry = %v, want empty", ids)
	}
}

func TestStore_ConnectionFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client)
	mr.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "r1", fittedRecipe(t)); err == nil {
		t.Error("Save against a closed server should fail")
	}
	if _, err := store.Load(ctx, "r1"); err == nil || err == domain.ErrRecipeNotFound {
		t.Errorf("Load against a closed server = %v, want transport error", err)
	}
}
