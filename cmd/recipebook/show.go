// ABOUTME: Show command for displaying a single recipe.
// ABOUTME: Counts a view and renders the recipe body with glamour.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe",
	Long:  `Display a recipe with rendered ingredients, steps, and notes. Each show counts as a view.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		rawFlag, _ := cmd.Flags().GetBool("raw")

		st := env.store.Dispatch(cmd.Context(), state.ViewRecipe{ID: r.ID})
		r, _ = state.FindRecipe(st.Recipes, r.ID)

		fmt.Fprint(out(cmd), ui.FormatRecipeHeader(r))
		body := ui.RecipeMarkdown(r)
		if !rawFlag {
			body, _ = ui.FormatMarkdown(body, env.darkMode.Get())
		}
		fmt.Fprint(out(cmd), body)

		if linked := state.NotesForRecipe(st.GeneralNotes, r.ID); len(linked) > 0 {
			fmt.Fprintln(out(cmd), "\nLinked notes:")
			for _, n := range linked {
				fmt.Fprint(out(cmd), ui.FormatNoteListItem(n))
			}
		}
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("raw", false, "print markdown without rendering")
	rootCmd.AddCommand(showCmd)
}
