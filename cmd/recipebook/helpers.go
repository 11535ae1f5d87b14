// ABOUTME: Shared argument parsing and lookup helpers for CLI commands.
// ABOUTME: Resolves numeric IDs and parses ingredient and tag flags.

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/sync"
	"github.com/harper/recipebook/internal/ui"
)

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// saveToCategory writes r to its category file on GitHub. Offline runs skip it.
func saveToCategory(cmd *cobra.Command, r models.Recipe) {
	if offline {
		return
	}
	res, err := env.engine.SaveRecipe(cmd.Context(), r)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warning(fmt.Sprintf("Could not save recipe %d to %s: %v", r.ID, res.File, err)))
		return
	}
	if res.Saved == sync.SavedLocalOnly {
		fmt.Fprintln(out(cmd), ui.Warning(res.Warning))
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func lookupRecipe(arg string) (models.Recipe, error) {
	id, err := parseID(arg)
	if err != nil {
		return models.Recipe{}, err
	}
	r, ok := state.FindRecipe(env.store.State().Recipes, id)
	if !ok {
		return models.Recipe{}, fmt.Errorf("recipe %d not found", id)
	}
	return r, nil
}

func lookupNote(arg string) (models.GeneralNote, error) {
	id, err := parseID(arg)
	if err != nil {
		return models.GeneralNote{}, err
	}
	n, ok := state.FindNote(env.store.State().GeneralNotes, id)
	if !ok {
		return models.GeneralNote{}, fmt.Errorf("note %d not found", id)
	}
	return n, nil
}

// parseIngredient reads "amount unit name" or "name:amount:unit".
func parseIngredient(s string) models.Ingredient {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 3)
		ing := models.Ingredient{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			ing.Amount = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			ing.Unit = strings.TrimSpace(parts[2])
		}
		return ing
	}
	fields := strings.Fields(s)
	if len(fields) >= 3 {
		if _, err := strconv.ParseFloat(strings.Split(fields[0], "/")[0], 64); err == nil {
			return models.Ingredient{Amount: fields[0], Unit: fields[1], Name: strings.Join(fields[2:], " ")}
		}
	}
	return models.Ingredient{Name: s}
}

func parseCategoryFlag(s string) (models.Category, error) {
	if s == "" {
		return models.CategoryNone, nil
	}
	c, ok := models.ParseCategory(s)
	if !ok {
		return models.CategoryNone, fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func readContent(content, file string) (string, error) {
	if file == "" {
		return content, nil
	}
	data, err := os.ReadFile(file) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func openEditor(initial string) (string, error) {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}

	tmpFile, err := os.CreateTemp("", "recipebook-*.md")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Best-effort cleanup
	}()

	if initial != "" {
		if _, err := tmpFile.WriteString(initial); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write initial content: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	cmd := exec.Command(editor, tmpFile.Name()) //nolint:gosec // Launching $EDITOR is expected CLI behavior
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(tmpFile.Name())
	if err != nil {
		return "", err
	}
	return string(data), nil
}
