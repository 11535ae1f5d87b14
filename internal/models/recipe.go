// ABOUTME: Recipe model with structured ingredients, instructions, and notes.
// ABOUTME: Provides constructor and lifecycle methods for recipes.

package models

import "time"

type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Instruction is one step of a recipe. Step always equals its 1-based position.
type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Time        int    `json:"time"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

type Recipe struct {
	ID                int           `json:"id"`
	Title             string        `json:"title"`
	Content           string        `json:"content"`
	Description       string        `json:"description,omitempty"`
	Category          Category      `json:"category,omitempty"`
	Cuisine           string        `json:"cuisine,omitempty"`
	Difficulty        Difficulty    `json:"difficulty,omitempty"`
	PrepTime          int           `json:"prepTime,omitempty"`
	CookTime          int           `json:"cookTime,omitempty"`
	Servings          int           `json:"servings,omitempty"`
	Image             string        `json:"image,omitempty"`
	Tags              []string      `json:"tags,omitempty"`
	Nutrition         *Nutrition    `json:"nutrition,omitempty"`
	Flavor            string        `json:"flavor,omitempty"`
	Usage             string        `json:"usage,omitempty"`
	SuggestedToppings []string      `json:"suggestedToppings,omitempty"`
	Ingredients       []Ingredient  `json:"ingredients,omitempty"`
	Instructions      []Instruction `json:"instructions,omitempty"`
	Notes             []Note        `json:"notes"`
	IsFavorite        bool          `json:"isFavorite"`
	ViewCount         int           `json:"viewCount"`
	LastViewed        *time.Time    `json:"lastViewed,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// RecipeDraft carries the user-supplied fields of a recipe being created.
type RecipeDraft struct {
	Title             string
	Content           string
	Description       string
	Category          Category
	Cuisine           string
	Difficulty        Difficulty
	PrepTime          int
	CookTime          int
	Servings          int
	Image             string
	Tags              []string
	Nutrition         *Nutrition
	Flavor            string
	Usage             string
	SuggestedToppings []string
	Ingredients       []Ingredient
	Instructions      []Instruction
}

// NewRecipe builds a canonical recipe with zeroed counters and equal timestamps.
func NewRecipe(id int, d RecipeDraft, now time.Time) Recipe {
	return Recipe{
		ID:                id,
		Title:             d.Title,
		Content:           d.Content,
		Description:       d.Description,
		Category:          d.Category,
		Cuisine:           d.Cuisine,
		Difficulty:        d.Difficulty,
		PrepTime:          clampNonNegative(d.PrepTime),
		CookTime:          clampNonNegative(d.CookTime),
		Servings:          clampNonNegative(d.Servings),
		Image:             d.Image,
		Tags:              UniqueTags(d.Tags),
		Nutrition:         d.Nutrition,
		Flavor:            d.Flavor,
		Usage:             d.Usage,
		SuggestedToppings: append([]string(nil), d.SuggestedToppings...),
		Ingredients:       append([]Ingredient(nil), d.Ingredients...),
		Instructions:      RenumberSteps(d.Instructions),
		Notes:             []Note{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}.Canonical()
}

func (r *Recipe) Touch(now time.Time) {
	r.UpdatedAt = now
}

func (r Recipe) GetID() int { return r.ID }

// Clone returns a copy of r that shares no slices with it.
func (r Recipe) Clone() Recipe {
	c := r
	c.Tags = cloneSlice(r.Tags)
	c.SuggestedToppings = cloneSlice(r.SuggestedToppings)
	c.Ingredients = cloneSlice(r.Ingredients)
	c.Instructions = cloneSlice(r.Instructions)
	c.Notes = cloneSlice(r.Notes)
	if r.Nutrition != nil {
		n := *r.Nutrition
		c.Nutrition = &n
	}
	if r.LastViewed != nil {
		t := *r.LastViewed
		c.LastViewed = &t
	}
	return c
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
