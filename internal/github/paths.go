// ABOUTME: Repository paths for the full collection and per-category files.

package github

import "github.com/harper/recipebook/internal/models"

const DefaultDocumentPath = "data/recipes.json"

// PathForCategory returns the per-category file a single recipe is saved to.
func PathForCategory(c models.Category) string {
	switch c {
	case models.CategorySauce:
		return "public/sauce.json"
	case models.CategoryPizza:
		return "public/pizza.json"
	case models.CategoryDough:
		return "public/dough.json"
	case models.CategoryToppings:
		return "public/toppings.json"
	default:
		return "public/recipes.json"
	}
}
