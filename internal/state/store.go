// ABOUTME: Store owns the current State and mirrors it to the key-value backend.
// ABOUTME: Dispatch reduces an action, persists changed collections, then notifies subscribers.

package state

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/recipebook/internal/kv"
	"github.com/harper/recipebook/internal/models"
)

// Change describes one dispatched action and which collections it touched.
type Change struct {
	Action       Action
	State        State
	Recipes      bool
	GeneralNotes bool
}

type Store struct {
	recipes *kv.Value[[]models.Recipe]
	notes   *kv.Value[[]models.GeneralNote]
	logger  *log.Logger
	now     func() time.Time

	mu     sync.Mutex
	state  State
	subs   map[int]func(Change)
	nextID int
}

type StoreOption func(*Store)

// WithClock replaces time.Now for action stamping.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func NewStore(backend kv.Backend, logger *log.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		recipes: kv.NewValue(backend, kv.KeyRecipes, []models.Recipe{}, logger),
		notes:   kv.NewValue(backend, kv.KeyNotes, []models.GeneralNote{}, logger),
		logger:  logger.WithPrefix("store"),
		now:     time.Now,
		state:   Empty(),
		subs:    map[int]func(Change){},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads both collections from the backend. Unreadable values fall back
// to empty collections.
func (s *Store) Hydrate(ctx context.Context) error {
	if err := s.recipes.Load(ctx); err != nil {
		return err
	}
	if err := s.notes.Load(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Recipes = nonNil(s.recipes.Get())
	s.state.GeneralNotes = nonNil(s.notes.Get())
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the resulting state. Persistence failures
// are logged; the in-memory state advances regardless.
func (s *Store) Dispatch(ctx context.Context, a Action) State {
	if a.at().IsZero() {
		a = a.stamp(s.now())
	}

	s.mu.Lock()
	next := Reduce(s.state, a)
	s.state = next
	change := Change{Action: a, State: next}
	change.Recipes, change.GeneralNotes = touches(a)
	if change.Recipes {
		_ = s.recipes.Set(ctx, next.Recipes)
	}
	if change.GeneralNotes {
		_ = s.notes.Set(ctx, next.GeneralNotes)
	}
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.Debug("dispatched", "action", actionName(a), "recipes", len(next.Recipes), "notes", len(next.GeneralNotes))
	for _, fn := range subs {
		fn(change)
	}
	return next
}

// Subscribe registers fn for every later dispatch. The returned func removes it.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func touches(a Action) (recipes, notes bool) {
	switch a.(type) {
	case AddGeneralNote, UpdateGeneralNote, DeleteGeneralNote, TogglePin, AddNoteTag, RemoveNoteTag, MergeGeneralNotes:
		return false, true
	case ReplaceAll:
		return true, true
	case SelectRecipe:
		return false, false
	default:
		return true, false
	}
}

func actionName(a Action) string {
	switch a.(type) {
	case AddRecipe:
		return "add-recipe"
	case UpdateRecipe:
		return "update-recipe"
	case DeleteRecipe:
		return "delete-recipe"
	case SelectRecipe:
		return "select-recipe"
	case ViewRecipe:
		return "view-recipe"
	case ToggleFavorite:
		return "toggle-favorite"
	case AddRecipeNote:
		return "add-recipe-note"
	case DeleteRecipeNote:
		return "delete-recipe-note"
	case AddInstruction:
		return "add-instruction"
	case RemoveInstruction:
		return "remove-instruction"
	case AddGeneralNote:
		return "add-note"
	case UpdateGeneralNote:
		return "update-note"
	case DeleteGeneralNote:
		return "delete-note"
	case TogglePin:
		return "toggle-pin"
	case AddNoteTag:
		return "add-tag"
	case RemoveNoteTag:
		return "remove-tag"
	case ReplaceAll:
		return "replace-all"
	case MergeRecipes:
		return "merge-recipes"
	case MergeGeneralNotes:
		return "merge-notes"
	}
	return "unknown"
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
