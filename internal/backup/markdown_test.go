// ABOUTME: Tests for markdown export and import.
// ABOUTME: Files written by ExportMarkdown must parse back into equivalent recipes.

package backup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportMarkdownWritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	st := sampleState()

	n, err := ExportMarkdown(dir, st.Recipes)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 file, got %d", n)
	}

	data, err := os.ReadFile(filepath.Join(dir, "001-Margherita.md"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	text := string(data)
	for _, want := range []string{"---\n", "title: Margherita", "category: Pizza", "# Margherita", "1. stretch", "- hot oven"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in export:\n%s", want, text)
		}
	}
}

func TestMarkdownRoundTrip(t *testing.T) {
	want := sampleState().Recipes[0]
	data, err := RecipeMarkdown(want)
	if err != nil {
		t.Fatal(err)
	}

	got, err := ParseMarkdown(data)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got.ID != want.ID || got.Title != want.Title || got.Category != want.Category {
		t.Errorf("identity differs: %+v", got)
	}
	if got.Content != "Classic" {
		t.Errorf("expected plain content, got %q", got.Content)
	}
	if len(got.Instructions) != 2 || got.Instructions[1].Description != "bake" || got.Instructions[1].Step != 2 {
		t.Errorf("instructions differ: %+v", got.Instructions)
	}
	if !got.IsFavorite || !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("metadata differs: %+v", got)
	}
	if len(got.Ingredients) != 1 || got.Ingredients[0] != want.Ingredients[0] {
		t.Errorf("ingredients differ: %+v", got.Ingredients)
	}
}

func TestParseMarkdownWithoutFrontmatter(t *testing.T) {
	if _, err := ParseMarkdown([]byte("# just a heading")); !errors.Is(err, ErrNoFrontmatter) {
		t.Errorf("expected ErrNoFrontmatter, got %v", err)
	}
}
