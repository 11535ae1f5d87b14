// ABOUTME: Remove and favorite commands for recipes.
// ABOUTME: Deletes a recipe or flips its favorite flag.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recipe",
	Long:  `Delete a recipe and its notes. Asks for confirmation unless --force is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		if !force {
			fmt.Fprintf(out(cmd), "Delete recipe %d %q? (y/n) ", r.ID, r.Title)
			answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Fprintln(out(cmd), "Cancelled.")
				return nil
			}
		}

		env.store.Dispatch(cmd.Context(), state.DeleteRecipe{ID: r.ID})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Deleted recipe %d", r.ID)))
		return nil
	},
}

var favCmd = &cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle a recipe's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		st := env.store.Dispatch(cmd.Context(), state.ToggleFavorite{ID: r.ID})
		r, _ = state.FindRecipe(st.Recipes, r.ID)
		if r.IsFavorite {
			fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Recipe %d is a favorite", r.ID)))
		} else {
			fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Recipe %d is no longer a favorite", r.ID)))
		}
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(favCmd)
}
