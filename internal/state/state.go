// ABOUTME: Application state and the pure reducer that transitions it.
// ABOUTME: Reduce never mutates its input; callers get a fresh State back.

package state

import (
	"time"

	"github.com/harper/recipebook/internal/models"
)

type State struct {
	Recipes          []models.Recipe
	GeneralNotes     []models.GeneralNote
	SelectedRecipeID int
}

// Empty returns a state with non-nil, empty collections.
func Empty() State {
	return State{Recipes: []models.Recipe{}, GeneralNotes: []models.GeneralNote{}}
}

// Reduce applies a to s. Unknown IDs leave the state unchanged.
func Reduce(s State, a Action) State {
	now := a.at()
	switch a := a.(type) {
	case AddRecipe:
		r := models.NewRecipe(models.NextID(s.Recipes), a.Draft, now)
		s.Recipes = prepend(s.Recipes, r)

	case UpdateRecipe:
		s.Recipes = updateRecipe(s.Recipes, a.Recipe.ID, now, func(cur *models.Recipe) {
			next := a.Recipe.Clone()
			next.ID = cur.ID
			next.CreatedAt = cur.CreatedAt
			next.ViewCount = cur.ViewCount
			next.LastViewed = cur.LastViewed
			next.Notes = cur.Notes
			*cur = next
		})

	case DeleteRecipe:
		s.Recipes = removeByID(s.Recipes, a.ID)
		if s.SelectedRecipeID == a.ID {
			s.SelectedRecipeID = 0
		}

	case SelectRecipe:
		if models.IndexByID(s.Recipes, a.ID) >= 0 {
			s.SelectedRecipeID = a.ID
		}

	case ViewRecipe:
		if models.IndexByID(s.Recipes, a.ID) < 0 {
			return s
		}
		s.Recipes = mapByID(s.Recipes, a.ID, func(cur *models.Recipe) {
			cur.ViewCount++
			viewed := now
			cur.LastViewed = &viewed
		})
		s.SelectedRecipeID = a.ID

	case ToggleFavorite:
		s.Recipes = updateRecipe(s.Recipes, a.ID, now, func(cur *models.Recipe) {
			cur.IsFavorite = !cur.IsFavorite
		})

	case AddRecipeNote:
		s.Recipes = updateRecipe(s.Recipes, a.RecipeID, now, func(cur *models.Recipe) {
			note := models.Note{
				ID:        models.NextID(cur.Notes),
				Title:     a.Title,
				Text:      a.Text,
				HTML:      a.Text,
				Template:  a.Template,
				CreatedAt: now,
			}
			cur.Notes = prepend(cur.Notes, note)
		})

	case DeleteRecipeNote:
		s.Recipes = updateRecipe(s.Recipes, a.RecipeID, now, func(cur *models.Recipe) {
			cur.Notes = removeByID(cur.Notes, a.NoteID)
		})

	case AddInstruction:
		s.Recipes = updateRecipe(s.Recipes, a.RecipeID, now, func(cur *models.Recipe) {
			pos := a.Position
			if pos < 0 {
				pos = len(cur.Instructions)
			}
			cur.Instructions = models.InsertInstruction(cur.Instructions, pos, a.Instruction)
		})

	case RemoveInstruction:
		s.Recipes = updateRecipe(s.Recipes, a.RecipeID, now, func(cur *models.Recipe) {
			cur.Instructions = models.RemoveInstruction(cur.Instructions, a.Index)
		})

	case AddGeneralNote:
		n := models.NewGeneralNote(models.NextID(s.GeneralNotes), a.Title, a.Text, a.Tags, now)
		n.Template = a.Template
		if a.LinkedRecipeID != nil {
			id := *a.LinkedRecipeID
			n.LinkedRecipeID = &id
		}
		s.GeneralNotes = prepend(s.GeneralNotes, n)

	case UpdateGeneralNote:
		s.GeneralNotes = updateNote(s.GeneralNotes, a.Note.ID, now, func(cur *models.GeneralNote) {
			next := a.Note.Clone()
			next.ID = cur.ID
			next.CreatedAt = cur.CreatedAt
			*cur = next
		})

	case DeleteGeneralNote:
		s.GeneralNotes = removeByID(s.GeneralNotes, a.ID)

	case TogglePin:
		s.GeneralNotes = updateNote(s.GeneralNotes, a.ID, now, func(cur *models.GeneralNote) {
			cur.IsPinned = !cur.IsPinned
		})

	case AddNoteTag:
		s.GeneralNotes = updateNote(s.GeneralNotes, a.ID, now, func(cur *models.GeneralNote) {
			cur.Tags = models.AddTag(cur.Tags, a.Tag)
		})

	case RemoveNoteTag:
		s.GeneralNotes = updateNote(s.GeneralNotes, a.ID, now, func(cur *models.GeneralNote) {
			cur.Tags = models.RemoveTag(cur.Tags, a.Tag)
		})

	case ReplaceAll:
		s.Recipes = cloneAll(a.Recipes, models.Recipe.Canonical)
		s.GeneralNotes = cloneAll(a.GeneralNotes, models.GeneralNote.Canonical)
		if models.IndexByID(s.Recipes, s.SelectedRecipeID) < 0 {
			s.SelectedRecipeID = 0
		}

	case MergeRecipes:
		s.Recipes, _, _ = models.MergeByID(s.Recipes, cloneAll(a.Recipes, models.Recipe.Canonical))
		for i := range s.Recipes {
			stampNew(&s.Recipes[i].CreatedAt, &s.Recipes[i].UpdatedAt, now)
		}

	case MergeGeneralNotes:
		s.GeneralNotes, _, _ = models.MergeByID(s.GeneralNotes, cloneAll(a.Notes, models.GeneralNote.Canonical))
		for i := range s.GeneralNotes {
			stampNew(&s.GeneralNotes[i].CreatedAt, &s.GeneralNotes[i].UpdatedAt, now)
		}
	}
	return s
}

// stampNew fills missing timestamps on merged records. It runs after the
// merge, so a record lacking UpdatedAt never wins a collision.
func stampNew(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	if updated.IsZero() {
		*updated = *created
	}
}

func prepend[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

func removeByID[T models.Identified](list []T, id int) []T {
	out := make([]T, 0, len(list))
	for _, it := range list {
		if it.GetID() != id {
			out = append(out, it)
		}
	}
	return out
}

func cloneAll[T any](list []T, clone func(T) T) []T {
	out := make([]T, len(list))
	for i, it := range list {
		out[i] = clone(it)
	}
	return out
}

// mapByID copies list and applies fn to a clone of the matching recipe.
func mapByID(list []models.Recipe, id int, fn func(*models.Recipe)) []models.Recipe {
	out := append(make([]models.Recipe, 0, len(list)), list...)
	if i := models.IndexByID(out, id); i >= 0 {
		r := out[i].Clone()
		fn(&r)
		out[i] = r
	}
	return out
}

// updateRecipe is mapByID plus canonicalization and an UpdatedAt refresh.
func updateRecipe(list []models.Recipe, id int, now time.Time, fn func(*models.Recipe)) []models.Recipe {
	return mapByID(list, id, func(r *models.Recipe) {
		fn(r)
		*r = r.Canonical()
		r.Touch(now)
	})
}

func updateNote(list []models.GeneralNote, id int, now time.Time, fn func(*models.GeneralNote)) []models.GeneralNote {
	out := append(make([]models.GeneralNote, 0, len(list)), list...)
	if i := models.IndexByID(out, id); i >= 0 {
		n := out[i].Clone()
		fn(&n)
		n = n.Canonical()
		n.Touch(now)
		out[i] = n
	}
	return out
}
