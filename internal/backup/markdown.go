// ABOUTME: Markdown export and import of recipes with YAML frontmatter.
// ABOUTME: One file per recipe; the body holds content and instructions.

package backup

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/richtext"
)

type frontmatter struct {
	ID          int                 `yaml:"id"`
	Title       string              `yaml:"title"`
	Category    string              `yaml:"category,omitempty"`
	Difficulty  string              `yaml:"difficulty,omitempty"`
	Cuisine     string              `yaml:"cuisine,omitempty"`
	PrepTime    int                 `yaml:"prep_time,omitempty"`
	CookTime    int                 `yaml:"cook_time,omitempty"`
	Servings    int                 `yaml:"servings,omitempty"`
	Tags        []string            `yaml:"tags,omitempty"`
	Favorite    bool                `yaml:"favorite,omitempty"`
	Ingredients []models.Ingredient `yaml:"ingredients,omitempty"`
	Created     time.Time           `yaml:"created"`
	Updated     time.Time           `yaml:"updated"`
}

var ErrNoFrontmatter = errors.New("markdown file has no frontmatter")

// ExportMarkdown writes one .md file per recipe into dir and returns the count.
func ExportMarkdown(dir string, recipes []models.Recipe) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	for _, r := range recipes {
		data, err := RecipeMarkdown(r)
		if err != nil {
			return 0, err
		}
		name := fmt.Sprintf("%03d-%s.md", r.ID, sanitizeFilename(r.Title))
		if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
			return 0, err
		}
	}
	return len(recipes), nil
}

// RecipeMarkdown renders r as frontmatter plus a markdown body.
func RecipeMarkdown(r models.Recipe) ([]byte, error) {
	fm := frontmatter{
		ID:          r.ID,
		Title:       r.Title,
		Category:    string(r.Category),
		Difficulty:  string(r.Difficulty),
		Cuisine:     r.Cuisine,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Servings:    r.Servings,
		Tags:        r.Tags,
		Favorite:    r.IsFavorite,
		Ingredients: r.Ingredients,
		Created:     r.CreatedAt,
		Updated:     r.UpdatedAt,
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(head)
	sb.WriteString("---\n\n")
	sb.WriteString("# " + r.Title + "\n\n")
	if r.Description != "" {
		sb.WriteString(r.Description + "\n\n")
	}
	if body := richtext.PlainText(r.Content); body != "" {
		sb.WriteString(body + "\n\n")
	}
	if len(r.Instructions) > 0 {
		sb.WriteString("## Instructions\n\n")
		for _, ins := range r.Instructions {
			fmt.Fprintf(&sb, "%d. %s\n", ins.Step, ins.Description)
		}
		sb.WriteString("\n")
	}
	if len(r.Notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, n := range r.Notes {
			sb.WriteString("- " + richtext.PlainText(n.Text) + "\n")
		}
	}
	return []byte(sb.String()), nil
}

// ParseMarkdown reads a file written by RecipeMarkdown back into a recipe.
// The body up to the first section heading becomes the content.
func ParseMarkdown(data []byte) (models.Recipe, error) {
	rest, ok := bytes.CutPrefix(data, []byte("---\n"))
	if !ok {
		return models.Recipe{}, ErrNoFrontmatter
	}
	head, body, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return models.Recipe{}, ErrNoFrontmatter
	}

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return models.Recipe{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	content, instructions := splitBody(string(body), fm.Title)
	category, _ := models.ParseCategory(fm.Category)
	difficulty, _ := models.ParseDifficulty(fm.Difficulty)
	r := models.NewRecipe(fm.ID, models.RecipeDraft{
		Title:        fm.Title,
		Content:      content,
		Category:     category,
		Cuisine:      fm.Cuisine,
		Difficulty:   difficulty,
		PrepTime:     fm.PrepTime,
		CookTime:     fm.CookTime,
		Servings:     fm.Servings,
		Tags:         fm.Tags,
		Ingredients:  fm.Ingredients,
		Instructions: instructions,
	}, fm.Created)
	r.IsFavorite = fm.Favorite
	if !fm.Updated.IsZero() {
		r.UpdatedAt = fm.Updated
	}
	return r, nil
}

func splitBody(body, title string) (string, []models.Instruction) {
	var content []string
	var steps []models.Instruction
	section := ""
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "# "+title:
			continue
		case strings.HasPrefix(trimmed, "## "):
			section = strings.ToLower(strings.TrimPrefix(trimmed, "## "))
			continue
		}
		switch section {
		case "":
			content = append(content, line)
		case "instructions":
			if _, desc, ok := strings.Cut(trimmed, ". "); ok && desc != "" {
				steps = append(steps, models.Instruction{Description: desc})
			}
		}
	}
	return strings.TrimSpace(strings.Join(content, "\n")), steps
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if len(name) > 100 {
		name = name[:100]
	}
	return name
}
