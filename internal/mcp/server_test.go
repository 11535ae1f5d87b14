// ABOUTME: Tests for MCP tool, resource, and prompt handlers.
// ABOUTME: Calls handlers directly against an in-memory store.

package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/kv"
	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/sync"
)

var t0 = time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)

type fakeSyncer struct {
	calls   int
	outcome github.Outcome
	saved   []models.Recipe
	result  sync.SaveResult
}

func (f *fakeSyncer) Push(context.Context) github.Outcome {
	f.calls++
	return f.outcome
}

func (f *fakeSyncer) SaveRecipe(_ context.Context, r models.Recipe) (sync.SaveResult, error) {
	f.saved = append(f.saved, r)
	res := f.result
	res.File = github.PathForCategory(r.Category)
	return res, nil
}

func newTestServer(t *testing.T) (*Server, *state.Store, *fakeSyncer) {
	t.Helper()
	backend, err := kv.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	store := state.NewStore(backend, nil, state.WithClock(func() time.Time { return t0 }))
	require.NoError(t, store.Hydrate(context.Background()))

	syncer := &fakeSyncer{
		outcome: github.Outcome{Kind: github.Saved, Path: github.DefaultDocumentPath},
		result:  sync.SaveResult{Saved: sync.SavedGitHub},
	}
	return NewServer(store, syncer), store, syncer
}

func call(t *testing.T, handler func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error), args string) (string, bool) {
	t.Helper()
	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{Arguments: json.RawMessage(args)}}
	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestAddAndGetRecipe(t *testing.T) {
	s, store, _ := newTestServer(t)

	out, isErr := call(t, s.handleAddRecipe, `{
		"title": "Margherita",
		"category": "Pizza",
		"difficulty": "easy",
		"tags": ["classic"],
		"ingredients": [{"name": "flour", "amount": "500", "unit": "g"}],
		"instructions": ["Mix", "Bake"]
	}`)
	require.False(t, isErr, out)
	assert.Equal(t, "Created recipe 1 and saved to public/pizza.json", out)

	out, isErr = call(t, s.handleGetRecipe, `{"id": 1}`)
	require.False(t, isErr, out)

	var got models.Recipe
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Margherita", got.Title)
	assert.Equal(t, models.CategoryPizza, got.Category)
	assert.Equal(t, 1, got.ViewCount)
	require.Len(t, got.Instructions, 2)
	assert.Equal(t, 2, got.Instructions[1].Step)

	assert.Equal(t, 1, store.State().SelectedRecipeID)
}

func TestAddRecipeRejectsEmptyTitle(t *testing.T) {
	s, store, _ := newTestServer(t)

	_, isErr := call(t, s.handleAddRecipe, `{"title": "  "}`)
	assert.True(t, isErr)
	assert.Empty(t, store.State().Recipes)
}

func TestUpdateAndDeleteRecipe(t *testing.T) {
	s, store, _ := newTestServer(t)
	call(t, s.handleAddRecipe, `{"title": "Marinara"}`)

	out, isErr := call(t, s.handleUpdateRecipe, `{"id": 1, "category": "Sauce", "tags": ["red"]}`)
	require.False(t, isErr, out)
	r, _ := state.FindRecipe(store.State().Recipes, 1)
	assert.Equal(t, "Marinara", r.Title)
	assert.Equal(t, models.CategorySauce, r.Category)
	assert.Equal(t, []string{"red"}, r.Tags)

	_, isErr = call(t, s.handleUpdateRecipe, `{"id": 1, "category": "Soup"}`)
	assert.True(t, isErr)

	_, isErr = call(t, s.handleDeleteRecipe, `{"id": 9}`)
	assert.True(t, isErr)

	_, isErr = call(t, s.handleDeleteRecipe, `{"id": 1}`)
	assert.False(t, isErr)
	assert.Empty(t, store.State().Recipes)
}

func TestToggleFavoriteAndRecipeNotes(t *testing.T) {
	s, store, _ := newTestServer(t)
	call(t, s.handleAddRecipe, `{"title": "Neapolitan dough"}`)

	out, _ := call(t, s.handleToggleFavorite, `{"id": 1}`)
	assert.Equal(t, "Recipe 1 favorite: true", out)

	out, isErr := call(t, s.handleAddRecipeNote, `{"recipe_id": 1, "text": "Rest overnight", "template": "warning"}`)
	require.False(t, isErr, out)
	assert.Equal(t, "Added note 1 to recipe 1", out)

	r, _ := state.FindRecipe(store.State().Recipes, 1)
	require.Len(t, r.Notes, 1)
	assert.Equal(t, models.TemplateWarning, r.Notes[0].Template)

	_, isErr = call(t, s.handleDeleteRecipeNote, `{"recipe_id": 1, "note_id": 5}`)
	assert.True(t, isErr)

	_, isErr = call(t, s.handleDeleteRecipeNote, `{"recipe_id": 1, "note_id": 1}`)
	assert.False(t, isErr)
	r, _ = state.FindRecipe(store.State().Recipes, 1)
	assert.Empty(t, r.Notes)
}

func TestListRecipesFilters(t *testing.T) {
	s, _, _ := newTestServer(t)
	call(t, s.handleAddRecipe, `{"title": "Marinara", "category": "Sauce"}`)
	call(t, s.handleAddRecipe, `{"title": "Margherita", "category": "Pizza"}`)
	call(t, s.handleAddRecipe, `{"title": "Diavola", "category": "Pizza"}`)

	out, _ := call(t, s.handleListRecipes, `{"category": "Pizza", "limit": 1}`)
	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Diavola", got[0]["title"])

	out, _ = call(t, s.handleListRecipes, `{}`)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 3)
}

func TestGeneralNoteTools(t *testing.T) {
	s, store, _ := newTestServer(t)

	_, isErr := call(t, s.handleAddNote, `{"text": "orphan", "recipe_id": 4}`)
	assert.True(t, isErr, "linking to a missing recipe is rejected")

	out, isErr := call(t, s.handleAddNote, `{"title": "Flour", "text": "Use 00", "tags": ["dough"]}`)
	require.False(t, isErr, out)
	assert.Equal(t, "Created note 1", out)

	call(t, s.handleAddTag, `{"id": 1, "tag": "italian"}`)
	call(t, s.handleRemoveTag, `{"id": 1, "tag": "dough"}`)
	out, _ = call(t, s.handlePinNote, `{"id": 1}`)
	assert.Equal(t, "Note 1 pinned: true", out)

	_, isErr = call(t, s.handleUpdateNote, `{"id": 1, "text": ""}`)
	assert.True(t, isErr)
	call(t, s.handleUpdateNote, `{"id": 1, "text": "Use tipo 00"}`)

	n, ok := state.FindNote(store.State().GeneralNotes, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"italian"}, n.Tags)
	assert.True(t, n.IsPinned)
	assert.Equal(t, "Use tipo 00", n.Text)

	out, _ = call(t, s.handleListNotes, `{"tag": "italian"}`)
	var listed []models.GeneralNote
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)

	_, isErr = call(t, s.handleAddTag, `{"id": 1, "tag": " "}`)
	assert.True(t, isErr)

	call(t, s.handleDeleteNote, `{"id": 1}`)
	assert.Empty(t, store.State().GeneralNotes)
}

func TestSyncPush(t *testing.T) {
	s, _, syncer := newTestServer(t)

	out, isErr := call(t, s.handleSyncPush, `{}`)
	assert.False(t, isErr)
	assert.Contains(t, out, "saved")
	assert.Equal(t, 1, syncer.calls)

	syncer.outcome = github.Outcome{Kind: github.Conflict, Path: github.DefaultDocumentPath, Err: github.ErrStaleRevision}
	_, isErr = call(t, s.handleSyncPush, `{}`)
	assert.True(t, isErr)
}

func TestReadRecipeResource(t *testing.T) {
	s, _, _ := newTestServer(t)
	call(t, s.handleAddRecipe, `{"title": "Margherita", "instructions": ["Bake"]}`)

	res, err := s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "recipebook://recipe/1"},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "# Margherita")
	assert.Contains(t, res.Contents[0].Text, "1. Bake")

	_, err = s.handleReadResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: "recipebook://recipe/42"},
	})
	assert.Error(t, err)
}

func TestPrompts(t *testing.T) {
	s, _, _ := newTestServer(t)
	call(t, s.handleAddRecipe, `{"title": "Margherita"}`)
	call(t, s.handleAddNote, `{"text": "Oven at max", "tags": ["oven"]}`)

	get := func(fn func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error), args map[string]string) (string, error) {
		res, err := fn(context.Background(), &mcp.GetPromptRequest{Params: &mcp.GetPromptParams{Arguments: args}})
		if err != nil {
			return "", err
		}
		return res.Messages[0].Content.(*mcp.TextContent).Text, nil
	}

	text, err := get(s.getCreateRecipePrompt, map[string]string{"dish": "calzone"})
	require.NoError(t, err)
	assert.Contains(t, text, "calzone")
	assert.Contains(t, text, `"Pizza"`)

	text, err = get(s.getSummarizeRecipePrompt, map[string]string{"recipe_id": "1"})
	require.NoError(t, err)
	assert.Contains(t, text, "Margherita")

	_, err = get(s.getSummarizeRecipePrompt, map[string]string{"recipe_id": "abc"})
	assert.Error(t, err)

	text, err = get(s.getOrganizeNotesPrompt, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "oven")
}

func TestCreateAndUpdateSaveCategoryFile(t *testing.T) {
	s, _, syncer := newTestServer(t)

	call(t, s.handleAddRecipe, `{"title": "Marinara"}`)
	out, isErr := call(t, s.handleUpdateRecipe, `{"id": 1, "category": "Sauce"}`)
	require.False(t, isErr, out)
	assert.Equal(t, "Updated recipe 1 and saved to public/sauce.json", out)

	require.Len(t, syncer.saved, 2)
	assert.Equal(t, models.CategoryNone, syncer.saved[0].Category)
	assert.Equal(t, models.CategorySauce, syncer.saved[1].Category)

	syncer.result = sync.SaveResult{Saved: sync.SavedLocalOnly, Warning: "GitHub save failed, data saved locally only"}
	out, isErr = call(t, s.handleAddRecipe, `{"title": "Pesto", "category": "Sauce"}`)
	require.False(t, isErr, out)
	assert.Equal(t, "Created recipe 2 (GitHub save failed, data saved locally only)", out)
}

func TestLocalOnlyServerSkipsCategorySave(t *testing.T) {
	backend, err := kv.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	store := state.NewStore(backend, nil)
	require.NoError(t, store.Hydrate(context.Background()))

	out, isErr := call(t, NewServer(store, nil).handleAddRecipe, `{"title": "Marinara"}`)
	require.False(t, isErr, out)
	assert.Equal(t, "Created recipe 1", out)
}
