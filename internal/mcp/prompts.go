// ABOUTME: MCP prompts for common recipe and note workflows.
// ABOUTME: Provides pre-configured prompts for AI agent interactions.

package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/recipebook/internal/backup"
	"github.com/harper/recipebook/internal/state"
)

func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-recipe",
		Description: "Draft a structured recipe with ingredients and numbered steps",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "dish",
				Description: "What to cook",
				Required:    true,
			},
			{
				Name:        "category",
				Description: "Pizza, Dough, Sauce, Toppings, or Other",
				Required:    false,
			},
		},
	}, s.getCreateRecipePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-recipe",
		Description: "Summarize an existing recipe and its notes",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "recipe_id",
				Description: "ID of the recipe to summarize",
				Required:    true,
			},
		},
	}, s.getSummarizeRecipePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "organize-notes",
		Description: "Get suggestions for tagging and pinning general notes",
	}, s.getOrganizeNotesPrompt)
}

func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: text,
				},
			},
		},
	}
}

func (s *Server) getCreateRecipePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	dish, ok := req.Params.Arguments["dish"]
	if !ok || dish == "" {
		dish = "a new pizza"
	}
	category := req.Params.Arguments["category"]
	if category == "" {
		category = "Pizza"
	}

	template := fmt.Sprintf(`Create a recipe for: %s

Please include:
- A short title and one-line description
- Ingredients with amount and unit (grams where possible)
- Numbered instructions, one action per step, with minutes where timing matters
- Prep time, cook time, servings, and difficulty (easy, medium, or hard)

Use the add_recipe tool with category %q to save it.`, dish, category)

	return userPrompt(template), nil
}

func (s *Server) getSummarizeRecipePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	raw, ok := req.Params.Arguments["recipe_id"]
	if !ok || raw == "" {
		return nil, fmt.Errorf("recipe_id is required")
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("recipe_id must be a number: %q", raw)
	}

	r, found := state.FindRecipe(s.store.State().Recipes, id)
	if !found {
		return nil, fmt.Errorf("recipe %d not found", id)
	}
	body, err := backup.RecipeMarkdown(r)
	if err != nil {
		return nil, err
	}

	template := fmt.Sprintf(`Summarize this recipe in a few sentences. Point out the critical steps and anything the notes say went wrong or worked well.

%s`, body)

	return userPrompt(template), nil
}

func (s *Server) getOrganizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	st := s.store.State()
	tags := state.AllTags(st.GeneralNotes)

	template := fmt.Sprintf(`Help me organize my kitchen notes by:

1. Reviewing the %d general notes (use list_notes)
2. Suggesting consistent tags; existing tags are: %s
3. Pinning the notes I will need most often (use pin_note)
4. Linking notes to the recipes they describe where it is obvious

Apply changes with add_tag, remove_tag, and pin_note.`, len(st.GeneralNotes), strings.Join(tags, ", "))

	return userPrompt(template), nil
}
