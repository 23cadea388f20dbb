// Package ports declares the driven-side interfaces of espalier.
package ports

import (
	"context"

	"github.com/aretw0/espalier/pkg/recipe"
)

// RecipeStore persists fitted recipes by ID.
// Implementations must return domain.ErrRecipeNotFound from Load and
// Delete when the ID does not exist.
type RecipeStore interface {
	Save(ctx context.Context, id string, fitted *recipe.Fitted) error
	Load(ctx context.Context, id string) (*recipe.Fitted, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}
