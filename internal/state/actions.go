// ABOUTME: Actions accepted by the recipe book reducer.
// ABOUTME: Each action carries the time it was dispatched.

package state

import (
	"time"

	"github.com/harper/recipebook/internal/models"
)

// Action is a state transition request. At is stamped by the Store when zero.
type Action interface {
	stamp(at time.Time) Action
	at() time.Time
}

// Stamp carries the dispatch time of an action.
type Stamp struct {
	At time.Time
}

func (s Stamp) at() time.Time { return s.At }

type AddRecipe struct {
	Stamp
	Draft models.RecipeDraft
}

// UpdateRecipe replaces the stored recipe with the same ID. ID, CreatedAt,
// view counters, and notes are kept from the stored copy.
type UpdateRecipe struct {
	Stamp
	Recipe models.Recipe
}

type DeleteRecipe struct {
	Stamp
	ID int
}

type SelectRecipe struct {
	Stamp
	ID int
}

// ViewRecipe counts a view and selects the recipe.
type ViewRecipe struct {
	Stamp
	ID int
}

type ToggleFavorite struct {
	Stamp
	ID int
}

type AddRecipeNote struct {
	Stamp
	RecipeID int
	Title    string
	Text     string
	Template models.NoteTemplate
}

type DeleteRecipeNote struct {
	Stamp
	RecipeID int
	NoteID   int
}

// AddInstruction inserts before 0-based Position; a negative position appends.
type AddInstruction struct {
	Stamp
	RecipeID    int
	Position    int
	Instruction models.Instruction
}

// RemoveInstruction drops the 0-based Index.
type RemoveInstruction struct {
	Stamp
	RecipeID int
	Index    int
}

type AddGeneralNote struct {
	Stamp
	Title          string
	Text           string
	Tags           []string
	Template       models.NoteTemplate
	LinkedRecipeID *int
}

type UpdateGeneralNote struct {
	Stamp
	Note models.GeneralNote
}

type DeleteGeneralNote struct {
	Stamp
	ID int
}

type TogglePin struct {
	Stamp
	ID int
}

type AddNoteTag struct {
	Stamp
	ID  int
	Tag string
}

type RemoveNoteTag struct {
	Stamp
	ID  int
	Tag string
}

// ReplaceAll swaps both collections, as a backup import does.
type ReplaceAll struct {
	Stamp
	Recipes      []models.Recipe
	GeneralNotes []models.GeneralNote
}

// MergeRecipes folds incoming records in by ID. See MergeByID.
type MergeRecipes struct {
	Stamp
	Recipes []models.Recipe
}

type MergeGeneralNotes struct {
	Stamp
	Notes []models.GeneralNote
}

func (a AddRecipe) stamp(t time.Time) Action         { a.At = t; return a }
func (a UpdateRecipe) stamp(t time.Time) Action      { a.At = t; return a }
func (a DeleteRecipe) stamp(t time.Time) Action      { a.At = t; return a }
func (a SelectRecipe) stamp(t time.Time) Action      { a.At = t; return a }
func (a ViewRecipe) stamp(t time.Time) Action        { a.At = t; return a }
func (a ToggleFavorite) stamp(t time.Time) Action    { a.At = t; return a }
func (a AddRecipeNote) stamp(t time.Time) Action     { a.At = t; return a }
func (a DeleteRecipeNote) stamp(t time.Time) Action  { a.At = t; return a }
func (a AddInstruction) stamp(t time.Time) Action    { a.At = t; return a }
func (a RemoveInstruction) stamp(t time.Time) Action { a.At = t; return a }
func (a AddGeneralNote) stamp(t time.Time) Action    { a.At = t; return a }
func (a UpdateGeneralNote) stamp(t time.Time) Action { a.At = t; return a }
func (a DeleteGeneralNote) stamp(t time.Time) Action { a.At = t; return a }
func (a TogglePin) stamp(t time.Time) Action         { a.At = t; return a }
func (a AddNoteTag) stamp(t time.Time) Action        { a.At = t; return a }
func (a RemoveNoteTag) stamp(t time.Time) Action     { a.At = t; return a }
func (a ReplaceAll) stamp(t time.Time) Action        { a.At = t; return a }
func (a MergeRecipes) stamp(t time.Time) Action      { a.At = t; return a }
func (a MergeGeneralNotes) stamp(t time.Time) Action { a.At = t; return a }
