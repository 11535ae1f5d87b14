// ABOUTME: Edit command for modifying existing recipes.
// ABOUTME: Updates fields from flags, or opens $EDITOR on the body when none are given.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var recipeEditFlags = []string{"title", "content", "file", "description", "category", "difficulty", "servings", "prep", "cook", "tags"}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a recipe",
	Long:  `Update recipe fields from flags. Without flags, opens the recipe body in $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		flags := cmd.Flags()

		if !anyChanged(cmd, recipeEditFlags...) {
			newContent, err := openEditor(r.Content)
			if err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
			if newContent == r.Content {
				fmt.Fprintln(out(cmd), "No changes made.")
				return nil
			}
			r.Content = newContent
		}

		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			if strings.TrimSpace(title) == "" {
				return fmt.Errorf("recipe title cannot be empty")
			}
			r.Title = strings.TrimSpace(title)
		}
		if flags.Changed("content") || flags.Changed("file") {
			contentFlag, _ := flags.GetString("content")
			fileFlag, _ := flags.GetString("file")
			if r.Content, err = readContent(contentFlag, fileFlag); err != nil {
				return err
			}
		}
		if flags.Changed("description") {
			r.Description, _ = flags.GetString("description")
		}
		if flags.Changed("category") {
			categoryFlag, _ := flags.GetString("category")
			if r.Category, err = parseCategoryFlag(categoryFlag); err != nil {
				return err
			}
		}
		if flags.Changed("difficulty") {
			d, _ := flags.GetString("difficulty")
			r.Difficulty, _ = models.ParseDifficulty(d)
		}
		if flags.Changed("servings") {
			r.Servings, _ = flags.GetInt("servings")
		}
		if flags.Changed("prep") {
			r.PrepTime, _ = flags.GetInt("prep")
		}
		if flags.Changed("cook") {
			r.CookTime, _ = flags.GetInt("cook")
		}
		if flags.Changed("tags") {
			tags, _ := flags.GetString("tags")
			r.Tags = models.SplitList(tags)
		}

		st := env.store.Dispatch(cmd.Context(), state.UpdateRecipe{Recipe: r})
		r, _ = state.FindRecipe(st.Recipes, r.ID)
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Updated recipe %d", r.ID)))
		saveToCategory(cmd, r)
		return nil
	},
}

func init() {
	editCmd.Flags().String("title", "", "new title")
	editCmd.Flags().String("content", "", "new body (inline)")
	editCmd.Flags().String("file", "", "read new body from file")
	editCmd.Flags().String("description", "", "new description")
	editCmd.Flags().String("category", "", "new category")
	editCmd.Flags().String("difficulty", "", "easy, medium, or hard")
	editCmd.Flags().Int("servings", 0, "servings")
	editCmd.Flags().Int("prep", 0, "prep time in minutes")
	editCmd.Flags().Int("cook", 0, "cook time in minutes")
	editCmd.Flags().String("tags", "", "comma-separated tags (replaces existing)")
	rootCmd.AddCommand(editCmd)
}
