// ABOUTME: MCP tools for recipe and general note operations.
// ABOUTME: Maps CLI functionality to MCP tool interface.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/sync"
)

const idOnlySchema = `{
	"type": "object",
	"properties": {
		"id": {"type": "integer", "description": "Numeric ID"}
	},
	"required": ["id"]
}`

func (s *Server) registerTools() {
	// Recipes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_recipes",
		Description: "List recipes with optional filtering",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string", "description": "Match title, content, description, or category"},
				"category": {"type": "string", "enum": ["Pizza", "Dough", "Sauce", "Toppings", "Other"]},
				"favorites": {"type": "boolean", "description": "Only favorites"},
				"tag": {"type": "string", "description": "Filter by tag"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListRecipes)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_recipe",
		Description: "Get a recipe by ID and count a view",
		InputSchema: json.RawMessage(idOnlySchema),
	}, s.handleGetRecipe)

	s.server.AddTool(&mcp.Tool{
		Name:        "add_recipe",
		Description: "Create a new recipe",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string"},
				"content": {"type": "string", "description": "Recipe body (HTML or plain text)"},
				"description": {"type": "string"},
				"category": {"type": "string", "enum": ["Pizza", "Dough", "Sauce", "Toppings", "Other"]},
				"cuisine": {"type": "string"},
				"difficulty": {"type": "string", "enum": ["easy", "medium", "hard"]},
				"prep_time": {"type": "integer", "description": "Minutes"},
				"cook_time": {"type": "integer", "description": "Minutes"},
				"servings": {"type": "integer"},
				"tags": {"type": "array", "items": {"type": "string"}},
				"ingredients": {"type": "array", "items": {
					"type": "object",
					"properties": {"name": {"type": "string"}, "amount": {"type": "string"}, "unit": {"type": "string"}}
				}},
				"instructions": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["title"]
		}`),
	}, s.handleAddRecipe)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_recipe",
		Description: "Update fields of an existing recipe",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer"},
				"title": {"type": "string"},
				"content": {"type": "string"},
				"description": {"type": "string"},
				"category": {"type": "string"},
				"tags": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateRecipe)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_recipe",
		Description: "Delete a recipe",
		InputSchema: json.RawMessage(idOnlySchema),
	}, s.handleDeleteRecipe)

	s.server.AddTool(&mcp.Tool{
		Name:        "toggle_favorite",
		Description: "Flip the favorite flag of a recipe",
		InputSchema: json.RawMessage(idOnlySchema),
	}, s.handleToggleFavorite)

	s.server.AddTool(&mcp.Tool{
		Name:        "add_recipe_note",
		Description: "Attach a note to a recipe",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"recipe_id": {"type": "integer"},
				"title": {"type": "string"},
				"text": {"type": "string"},
				"template": {"type": "string", "enum": ["info", "success", "warning", "danger", "dark"]}
			},
			"required": ["recipe_id", "text"]
		}`),
	}, s.handleAddRecipeNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_recipe_note",
		Description: "Remove a note from a recipe",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"recipe_id": {"type": "integer"},
				"note_id": {"type": "integer"}
			},
			"required": ["recipe_id", "note_id"]
		}`),
	}, s.handleDeleteRecipeNote)

	// General notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List general notes, pinned first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"search": {"type": "string"},
				"tag": {"type": "string"},
				"pinned": {"type": "boolean"},
				"limit": {"type": "integer", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	s.server.AddTool(&mcp.Tool{
		Name:        "add_note",
		Description: "Create a general note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string"},
				"text": {"type": "string"},
				"tags": {"type": "array", "items": {"type": "string"}},
				"template": {"type": "string"},
				"recipe_id": {"type": "integer", "description": "Optional linked recipe"}
			},
			"required": ["text"]
		}`),
	}, s.handleAddNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a general note's title or text",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer"},
				"title": {"type": "string"},
				"text": {"type": "string"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a general note",
		InputSchema: json.RawMessage(idOnlySchema),
	}, s.handleDeleteNote)

	s.server.AddTool(&mcp.Tool{
		Name:        "pin_note",
		Description: "Toggle the pinned flag of a general note",
		InputSchema: json.RawMessage(idOnlySchema),
	}, s.handlePinNote)

	tagSchema := json.RawMessage(`{
		"type": "object",
		"properties": {
			"id": {"type": "integer", "description": "General note ID"},
			"tag": {"type": "string", "description": "Tag name"}
		},
		"required": ["id", "tag"]
	}`)
	s.server.AddTool(&mcp.Tool{
		Name:        "add_tag",
		Description: "Add a tag to a general note",
		InputSchema: tagSchema,
	}, s.handleAddTag)

	s.server.AddTool(&mcp.Tool{
		Name:        "remove_tag",
		Description: "Remove a tag from a general note",
		InputSchema: tagSchema,
	}, s.handleRemoveTag)

	// Sync
	s.server.AddTool(&mcp.Tool{
		Name:        "sync_push",
		Description: "Push all recipes and notes to the GitHub repository now",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleSyncPush)
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	data, _ := json.MarshalIndent(v, "", "  ")
	return textResult(string(data))
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func limitTo[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}

func (s *Server) handleListRecipes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search    string `json:"search"`
		Category  string `json:"category"`
		Favorites bool   `json:"favorites"`
		Tag       string `json:"tag"`
		Limit     int    `json:"limit"`
	}
	params.Limit = 20 // default
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	category, _ := models.ParseCategory(params.Category)
	recipes := state.FilterRecipes(s.store.State().Recipes, state.RecipeFilter{
		Search:        params.Search,
		Category:      category,
		FavoritesOnly: params.Favorites,
		Tag:           params.Tag,
	})

	type summary struct {
		ID         int             `json:"id"`
		Title      string          `json:"title"`
		Category   models.Category `json:"category,omitempty"`
		IsFavorite bool            `json:"isFavorite"`
		ViewCount  int             `json:"viewCount"`
	}
	out := []summary{}
	for _, r := range limitTo(recipes, params.Limit) {
		out = append(out, summary{r.ID, r.Title, r.Category, r.IsFavorite, r.ViewCount})
	}
	return jsonResult(out), nil
}

func (s *Server) handleGetRecipe(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	st := s.store.Dispatch(ctx, state.ViewRecipe{ID: params.ID})
	r, ok := state.FindRecipe(st.Recipes, params.ID)
	if !ok {
		return toolError("recipe %d not found", params.ID), nil
	}
	return jsonResult(r), nil
}

func (s *Server) handleAddRecipe(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title        string              `json:"title"`
		Content      string              `json:"content"`
		Description  string              `json:"description"`
		Category     string              `json:"category"`
		Cuisine      string              `json:"cuisine"`
		Difficulty   string              `json:"difficulty"`
		PrepTime     int                 `json:"prep_time"`
		CookTime     int                 `json:"cook_time"`
		Servings     int                 `json:"servings"`
		Tags         []string            `json:"tags"`
		Ingredients  []models.Ingredient `json:"ingredients"`
		Instructions []string            `json:"instructions"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Title) == "" {
		return toolError("recipe title cannot be empty"), nil
	}
	category, _ := models.ParseCategory(params.Category)
	difficulty, _ := models.ParseDifficulty(params.Difficulty)

	var steps []models.Instruction
	for _, text := range params.Instructions {
		steps = append(steps, models.Instruction{Description: text})
	}

	st := s.store.Dispatch(ctx, state.AddRecipe{Draft: models.RecipeDraft{
		Title:        strings.TrimSpace(params.Title),
		Content:      params.Content,
		Description:  params.Description,
		Category:     category,
		Cuisine:      params.Cuisine,
		Difficulty:   difficulty,
		PrepTime:     params.PrepTime,
		CookTime:     params.CookTime,
		Servings:     params.Servings,
		Tags:         params.Tags,
		Ingredients:  params.Ingredients,
		Instructions: steps,
	}})
	created := st.Recipes[0]
	return textResult(fmt.Sprintf("Created recipe %d", created.ID) + s.saveToCategory(ctx, created)), nil
}

func (s *Server) handleUpdateRecipe(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID          int       `json:"id"`
		Title       *string   `json:"title"`
		Content     *string   `json:"content"`
		Description *string   `json:"description"`
		Category    *string   `json:"category"`
		Tags        *[]string `json:"tags"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	r, ok := state.FindRecipe(s.store.State().Recipes, params.ID)
	if !ok {
		return toolError("recipe %d not found", params.ID), nil
	}
	if params.Title != nil {
		if strings.TrimSpace(*params.Title) == "" {
			return toolError("recipe title cannot be empty"), nil
		}
		r.Title = strings.TrimSpace(*params.Title)
	}
	if params.Content != nil {
		r.Content = *params.Content
	}
	if params.Description != nil {
		r.Description = *params.Description
	}
	if params.Category != nil {
		cat, valid := models.ParseCategory(*params.Category)
		if !valid {
			return toolError("unknown category %q", *params.Category), nil
		}
		r.Category = cat
	}
	if params.Tags != nil {
		r.Tags = *params.Tags
	}

	st := s.store.Dispatch(ctx, state.UpdateRecipe{Recipe: r})
	r, _ = state.FindRecipe(st.Recipes, r.ID)
	return textResult(fmt.Sprintf("Updated recipe %d", r.ID) + s.saveToCategory(ctx, r)), nil
}

// saveToCategory writes r to its category file and describes the result as a
// suffix for the tool's reply.
func (s *Server) saveToCategory(ctx context.Context, r models.Recipe) string {
	if s.syncer == nil {
		return ""
	}
	res, err := s.syncer.SaveRecipe(ctx, r)
	switch {
	case err != nil:
		return fmt.Sprintf(" (category save failed: %v)", err)
	case res.Saved == sync.SavedLocalOnly:
		return " (" + res.Warning + ")"
	default:
		return " and saved to " + res.File
	}
}

func (s *Server) handleDeleteRecipe(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if _, ok := state.FindRecipe(s.store.State().Recipes, params.ID); !ok {
		return toolError("recipe %d not found", params.ID), nil
	}

	s.store.Dispatch(ctx, state.DeleteRecipe{ID: params.ID})
	return textResult(fmt.Sprintf("Deleted recipe %d", params.ID)), nil
}

func (s *Server) handleToggleFavorite(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if _, ok := state.FindRecipe(s.store.State().Recipes, params.ID); !ok {
		return toolError("recipe %d not found", params.ID), nil
	}

	st := s.store.Dispatch(ctx, state.ToggleFavorite{ID: params.ID})
	r, _ := state.FindRecipe(st.Recipes, params.ID)
	return textResult(fmt.Sprintf("Recipe %d favorite: %t", r.ID, r.IsFavorite)), nil
}

func (s *Server) handleAddRecipeNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		RecipeID int    `json:"recipe_id"`
		Title    string `json:"title"`
		Text     string `json:"text"`
		Template string `json:"template"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Text) == "" {
		return toolError("note text cannot be empty"), nil
	}
	if _, ok := state.FindRecipe(s.store.State().Recipes, params.RecipeID); !ok {
		return toolError("recipe %d not found", params.RecipeID), nil
	}

	template, _ := models.ParseTemplate(params.Template)
	st := s.store.Dispatch(ctx, state.AddRecipeNote{
		RecipeID: params.RecipeID,
		Title:    params.Title,
		Text:     params.Text,
		Template: template,
	})
	r, _ := state.FindRecipe(st.Recipes, params.RecipeID)
	return textResult(fmt.Sprintf("Added note %d to recipe %d", r.Notes[0].ID, r.ID)), nil
}

func (s *Server) handleDeleteRecipeNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		RecipeID int `json:"recipe_id"`
		NoteID   int `json:"note_id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	r, ok := state.FindRecipe(s.store.State().Recipes, params.RecipeID)
	if !ok {
		return toolError("recipe %d not found", params.RecipeID), nil
	}
	if models.IndexByID(r.Notes, params.NoteID) < 0 {
		return toolError("note %d not found on recipe %d", params.NoteID, params.RecipeID), nil
	}

	s.store.Dispatch(ctx, state.DeleteRecipeNote{RecipeID: params.RecipeID, NoteID: params.NoteID})
	return textResult(fmt.Sprintf("Deleted note %d from recipe %d", params.NoteID, params.RecipeID)), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Search string `json:"search"`
		Tag    string `json:"tag"`
		Pinned bool   `json:"pinned"`
		Limit  int    `json:"limit"`
	}
	params.Limit = 20 // default
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	notes := state.FilterNotes(s.store.State().GeneralNotes, state.NoteFilter{
		Search:     params.Search,
		Tag:        params.Tag,
		PinnedOnly: params.Pinned,
	})
	return jsonResult(limitTo(notes, params.Limit)), nil
}

func (s *Server) handleAddNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title    string   `json:"title"`
		Text     string   `json:"text"`
		Tags     []string `json:"tags"`
		Template string   `json:"template"`
		RecipeID *int     `json:"recipe_id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if strings.TrimSpace(params.Text) == "" {
		return toolError("note text cannot be empty"), nil
	}
	if params.RecipeID != nil {
		if _, ok := state.FindRecipe(s.store.State().Recipes, *params.RecipeID); !ok {
			return toolError("recipe %d not found", *params.RecipeID), nil
		}
	}

	template, _ := models.ParseTemplate(params.Template)
	st := s.store.Dispatch(ctx, state.AddGeneralNote{
		Title:          params.Title,
		Text:           params.Text,
		Tags:           params.Tags,
		Template:       template,
		LinkedRecipeID: params.RecipeID,
	})
	return textResult(fmt.Sprintf("Created note %d", st.GeneralNotes[0].ID)), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID    int     `json:"id"`
		Title *string `json:"title"`
		Text  *string `json:"text"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	n, ok := state.FindNote(s.store.State().GeneralNotes, params.ID)
	if !ok {
		return toolError("note %d not found", params.ID), nil
	}
	if params.Title != nil {
		n.Title = *params.Title
	}
	if params.Text != nil {
		if strings.TrimSpace(*params.Text) == "" {
			return toolError("note text cannot be empty"), nil
		}
		n.Text = *params.Text
		n.HTML = *params.Text
	}

	s.store.Dispatch(ctx, state.UpdateGeneralNote{Note: n})
	return textResult(fmt.Sprintf("Updated note %d", n.ID)), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if _, ok := state.FindNote(s.store.State().GeneralNotes, params.ID); !ok {
		return toolError("note %d not found", params.ID), nil
	}

	s.store.Dispatch(ctx, state.DeleteGeneralNote{ID: params.ID})
	return textResult(fmt.Sprintf("Deleted note %d", params.ID)), nil
}

func (s *Server) handlePinNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID int `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if _, ok := state.FindNote(s.store.State().GeneralNotes, params.ID); !ok {
		return toolError("note %d not found", params.ID), nil
	}

	st := s.store.Dispatch(ctx, state.TogglePin{ID: params.ID})
	n, _ := state.FindNote(st.GeneralNotes, params.ID)
	return textResult(fmt.Sprintf("Note %d pinned: %t", n.ID, n.IsPinned)), nil
}

func (s *Server) handleAddTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.changeTag(ctx, req, true)
}

func (s *Server) handleRemoveTag(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.changeTag(ctx, req, false)
}

func (s *Server) changeTag(ctx context.Context, req *mcp.CallToolRequest, add bool) (*mcp.CallToolResult, error) {
	var params struct {
		ID  int    `json:"id"`
		Tag string `json:"tag"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	tag := models.NormalizeTag(params.Tag)
	if tag == "" {
		return toolError("tag cannot be empty"), nil
	}
	if _, ok := state.FindNote(s.store.State().GeneralNotes, params.ID); !ok {
		return toolError("note %d not found", params.ID), nil
	}

	if add {
		s.store.Dispatch(ctx, state.AddNoteTag{ID: params.ID, Tag: tag})
		return textResult(fmt.Sprintf("Added tag %q to note %d", tag, params.ID)), nil
	}
	s.store.Dispatch(ctx, state.RemoveNoteTag{ID: params.ID, Tag: tag})
	return textResult(fmt.Sprintf("Removed tag %q from note %d", tag, params.ID)), nil
}

func (s *Server) handleSyncPush(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.syncer == nil {
		return toolError("sync is not available"), nil
	}
	outcome := s.syncer.Push(ctx)
	if outcome.Kind == github.Failed || outcome.Kind == github.Conflict {
		return toolError("push failed: %s", outcome), nil
	}
	return textResult(fmt.Sprintf("Push %s", outcome)), nil
}
