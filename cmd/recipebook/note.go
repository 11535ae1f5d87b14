// ABOUTME: Recipe note and instruction step commands.
// ABOUTME: Adds and removes notes and numbered steps on a single recipe.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes on a recipe",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <recipe-id> <text>",
	Short: "Add a note to a recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		text := strings.TrimSpace(args[1])
		if text == "" {
			return fmt.Errorf("note text cannot be empty")
		}
		title, _ := cmd.Flags().GetString("title")
		templateFlag, _ := cmd.Flags().GetString("template")
		template, _ := models.ParseTemplate(templateFlag)

		st := env.store.Dispatch(cmd.Context(), state.AddRecipeNote{
			RecipeID: r.ID,
			Title:    title,
			Text:     text,
			Template: template,
		})
		r, _ = state.FindRecipe(st.Recipes, r.ID)
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Added note %d to recipe %d", r.Notes[0].ID, r.ID)))
		return nil
	},
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <recipe-id> <note-id>",
	Short: "Remove a note from a recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		noteID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if models.IndexByID(r.Notes, noteID) < 0 {
			return fmt.Errorf("note %d not found on recipe %d", noteID, r.ID)
		}

		env.store.Dispatch(cmd.Context(), state.DeleteRecipeNote{RecipeID: r.ID, NoteID: noteID})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Deleted note %d from recipe %d", noteID, r.ID)))
		return nil
	},
}

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Manage instruction steps on a recipe",
}

var stepAddCmd = &cobra.Command{
	Use:   "add <recipe-id> <description>",
	Short: "Add an instruction step",
	Long:  `Add a step at the end, or before the 1-based step given with --at. Later steps are renumbered.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		at, _ := cmd.Flags().GetInt("at")
		minutes, _ := cmd.Flags().GetInt("time")

		pos := -1
		if at > 0 {
			pos = at - 1
		}
		env.store.Dispatch(cmd.Context(), state.AddInstruction{
			RecipeID:    r.ID,
			Position:    pos,
			Instruction: models.Instruction{Description: strings.TrimSpace(args[1]), Time: minutes},
		})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Added step to recipe %d", r.ID)))
		return nil
	},
}

var stepRmCmd = &cobra.Command{
	Use:   "rm <recipe-id> <step>",
	Short: "Remove an instruction step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		step, err := parseID(args[1])
		if err != nil {
			return err
		}
		if step > len(r.Instructions) {
			return fmt.Errorf("recipe %d has %d steps", r.ID, len(r.Instructions))
		}

		env.store.Dispatch(cmd.Context(), state.RemoveInstruction{RecipeID: r.ID, Index: step - 1})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Removed step %d from recipe %d", step, r.ID)))
		return nil
	},
}

func init() {
	noteAddCmd.Flags().String("title", "", "note title")
	noteAddCmd.Flags().String("template", "", "info, success, warning, danger, or dark")
	noteCmd.AddCommand(noteAddCmd, noteRmCmd)
	rootCmd.AddCommand(noteCmd)

	stepAddCmd.Flags().Int("at", 0, "insert before this 1-based step")
	stepAddCmd.Flags().Int("time", 0, "minutes for this step")
	stepCmd.AddCommand(stepAddCmd, stepRmCmd)
	rootCmd.AddCommand(stepCmd)
}
