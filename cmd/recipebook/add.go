// ABOUTME: Add command for creating new recipes.
// ABOUTME: Supports inline content, file input, ingredients, and steps via flags.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new recipe",
	Long: `Create a new recipe with the given title. Ingredients are given as
"500 g flour" or "flour:500:g"; steps are added in order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := strings.TrimSpace(args[0])
		if title == "" {
			return fmt.Errorf("recipe title cannot be empty")
		}

		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")
		descFlag, _ := cmd.Flags().GetString("description")
		categoryFlag, _ := cmd.Flags().GetString("category")
		cuisineFlag, _ := cmd.Flags().GetString("cuisine")
		difficultyFlag, _ := cmd.Flags().GetString("difficulty")
		prepFlag, _ := cmd.Flags().GetInt("prep")
		cookFlag, _ := cmd.Flags().GetInt("cook")
		servingsFlag, _ := cmd.Flags().GetInt("servings")
		tagsFlag, _ := cmd.Flags().GetString("tags")
		ingredientFlags, _ := cmd.Flags().GetStringArray("ingredient")
		stepFlags, _ := cmd.Flags().GetStringArray("step")

		content, err := readContent(contentFlag, fileFlag)
		if err != nil {
			return err
		}
		category, err := parseCategoryFlag(categoryFlag)
		if err != nil {
			return err
		}
		difficulty, _ := models.ParseDifficulty(difficultyFlag)

		draft := models.RecipeDraft{
			Title:       title,
			Content:     content,
			Description: descFlag,
			Category:    category,
			Cuisine:     cuisineFlag,
			Difficulty:  difficulty,
			PrepTime:    prepFlag,
			CookTime:    cookFlag,
			Servings:    servingsFlag,
			Tags:        models.SplitList(tagsFlag),
		}
		for _, raw := range ingredientFlags {
			draft.Ingredients = append(draft.Ingredients, parseIngredient(raw))
		}
		for _, raw := range stepFlags {
			draft.Instructions = append(draft.Instructions, models.Instruction{Description: raw})
		}

		st := env.store.Dispatch(cmd.Context(), state.AddRecipe{Draft: draft})
		created := st.Recipes[0]
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Created recipe %d", created.ID)))
		saveToCategory(cmd, created)
		return nil
	},
}

func init() {
	addCmd.Flags().String("content", "", "recipe body (inline)")
	addCmd.Flags().String("file", "", "read recipe body from file")
	addCmd.Flags().String("description", "", "short description")
	addCmd.Flags().String("category", "", "Pizza, Dough, Sauce, Toppings, or Other")
	addCmd.Flags().String("cuisine", "", "cuisine")
	addCmd.Flags().String("difficulty", "", "easy, medium, or hard")
	addCmd.Flags().Int("prep", 0, "prep time in minutes")
	addCmd.Flags().Int("cook", 0, "cook time in minutes")
	addCmd.Flags().Int("servings", 0, "servings")
	addCmd.Flags().String("tags", "", "comma-separated tags")
	addCmd.Flags().StringArray("ingredient", nil, "ingredient (repeatable)")
	addCmd.Flags().StringArray("step", nil, "instruction step (repeatable)")
	rootCmd.AddCommand(addCmd)
}
