// ABOUTME: Import command for restoring recipes and notes.
// ABOUTME: JSON backups replace everything; markdown files are merged by ID.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/backup"
	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import recipes and notes",
	Long: `Import a JSON backup, which replaces all recipes and notes, or a markdown
file or directory, whose recipes are merged by ID.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		if info.IsDir() {
			return importMarkdownDir(cmd, path)
		}
		if strings.HasSuffix(path, ".json") {
			return importJSON(cmd, path)
		}
		return importMarkdownFiles(cmd, []string{path})
	},
}

func importJSON(cmd *cobra.Command, path string) error {
	f, err := os.Open(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	doc, err := backup.Import(f)
	switch {
	case errors.Is(err, backup.ErrParse):
		return fmt.Errorf("could not read %s as JSON: %w", path, err)
	case errors.Is(err, backup.ErrInvalidFormat):
		return fmt.Errorf("%s is not a recipe backup: %w", path, err)
	case err != nil:
		return err
	}

	env.store.Dispatch(cmd.Context(), state.ReplaceAll{Recipes: doc.Recipes, GeneralNotes: doc.GeneralNotes})
	fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Imported %d recipes and %d notes",
		len(doc.Recipes), len(doc.GeneralNotes))))
	return nil
}

func importMarkdownDir(cmd *cobra.Command, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return err
	}
	return importMarkdownFiles(cmd, paths)
}

func importMarkdownFiles(cmd *cobra.Command, paths []string) error {
	var recipes []models.Recipe
	next := models.NextID(env.store.State().Recipes)
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to read %s: %v\n", path, err)
			continue
		}
		r, err := backup.ParseMarkdown(data)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to parse %s: %v\n", path, err)
			continue
		}
		if r.ID == 0 {
			r.ID = next
			next++
		}
		recipes = append(recipes, r)
	}

	env.store.Dispatch(cmd.Context(), state.MergeRecipes{Recipes: recipes})
	fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Imported %d recipes", len(recipes))))
	return nil
}

func init() {
	rootCmd.AddCommand(importCmd)
}
