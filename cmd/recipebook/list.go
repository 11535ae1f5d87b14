// ABOUTME: List command for displaying recipes.
// ABOUTME: Supports filtering by search text, category, tag, and favorites.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes",
	Long:  `List recipes, newest first, optionally filtered by search text, category, tag, or favorites.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		categoryFlag, _ := cmd.Flags().GetString("category")
		tagFlag, _ := cmd.Flags().GetString("tag")
		favFlag, _ := cmd.Flags().GetBool("favorites")
		popularFlag, _ := cmd.Flags().GetBool("popular")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		category, err := parseCategoryFlag(categoryFlag)
		if err != nil {
			return err
		}

		recipes := state.FilterRecipes(env.store.State().Recipes, state.RecipeFilter{
			Search:        searchFlag,
			Category:      category,
			FavoritesOnly: favFlag,
			Tag:           tagFlag,
		})
		if popularFlag {
			recipes = state.MostViewed(recipes, limitFlag)
		}

		if len(recipes) == 0 {
			fmt.Fprintln(out(cmd), "No recipes found.")
			return nil
		}
		if limitFlag > 0 && len(recipes) > limitFlag {
			recipes = recipes[:limitFlag]
		}
		for _, r := range recipes {
			fmt.Fprint(out(cmd), ui.FormatRecipeListItem(r))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "search title, content, description, and category")
	listCmd.Flags().StringP("category", "c", "", "filter by category")
	listCmd.Flags().StringP("tag", "t", "", "filter by tag")
	listCmd.Flags().BoolP("favorites", "f", false, "only favorites")
	listCmd.Flags().Bool("popular", false, "order by view count")
	listCmd.Flags().IntP("limit", "n", 0, "max results (0 for all)")
	rootCmd.AddCommand(listCmd)
}
