package interfaces

import (
	"context"

	"recipe-cook-api/core/recipe"
)

// RecipeStore looks up named recipes.
type RecipeStore interface {
	// Get returns a copy of the named recipe or a NotFoundError.
	Get(ctx context.Context, name string) (*recipe.Recipe, error)

	// List returns every recipe name in sorted order.
	List(ctx context.Context) ([]string, error)
}
