// ABOUTME: Read-only queries over recipe and note collections.
// ABOUTME: Filtering, ordering, and lookup used by the CLI, MCP, and HTTP surfaces.

package state

import (
	"sort"
	"strings"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/richtext"
)

type RecipeFilter struct {
	Search        string
	Category      models.Category
	FavoritesOnly bool
	Tag           string
}

// FilterRecipes matches Search case-insensitively against title, plain-text
// content, description, and category. Order is preserved.
func FilterRecipes(recipes []models.Recipe, f RecipeFilter) []models.Recipe {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.Recipe{}
	for _, r := range recipes {
		if f.Category != models.CategoryNone && r.Category != f.Category {
			continue
		}
		if f.FavoritesOnly && !r.IsFavorite {
			continue
		}
		if f.Tag != "" && !models.HasTag(r.Tags, f.Tag) {
			continue
		}
		if q != "" && !containsAny(q, r.Title, richtext.PlainText(r.Content), r.Description, string(r.Category)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

type NoteFilter struct {
	Search     string
	Tag        string
	PinnedOnly bool
}

// FilterNotes returns matching notes, pinned first, then newest first.
func FilterNotes(notes []models.GeneralNote, f NoteFilter) []models.GeneralNote {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := []models.GeneralNote{}
	for _, n := range notes {
		if f.PinnedOnly && !n.IsPinned {
			continue
		}
		if f.Tag != "" && !models.HasTag(n.Tags, f.Tag) {
			continue
		}
		if q != "" && !containsAny(q, append([]string{n.Title, richtext.PlainText(n.Text)}, n.Tags...)...) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func FindRecipe(recipes []models.Recipe, id int) (models.Recipe, bool) {
	if i := models.IndexByID(recipes, id); i >= 0 {
		return recipes[i], true
	}
	return models.Recipe{}, false
}

func FindNote(notes []models.GeneralNote, id int) (models.GeneralNote, bool) {
	if i := models.IndexByID(notes, id); i >= 0 {
		return notes[i], true
	}
	return models.GeneralNote{}, false
}

// NotesForRecipe returns general notes linked to recipeID.
func NotesForRecipe(notes []models.GeneralNote, recipeID int) []models.GeneralNote {
	out := []models.GeneralNote{}
	for _, n := range notes {
		if n.LinkedRecipeID != nil && *n.LinkedRecipeID == recipeID {
			out = append(out, n)
		}
	}
	return out
}

// MostViewed returns up to n recipes with at least one view, most viewed first.
func MostViewed(recipes []models.Recipe, n int) []models.Recipe {
	out := []models.Recipe{}
	for _, r := range recipes {
		if r.ViewCount > 0 {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ViewCount > out[j].ViewCount
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// AllTags lists every tag used by general notes, sorted.
func AllTags(notes []models.GeneralNote) []string {
	var tags []string
	for _, n := range notes {
		for _, t := range n.Tags {
			tags = models.AddTag(tags, t)
		}
	}
	sort.Strings(tags)
	return tags
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
