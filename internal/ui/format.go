// ABOUTME: Terminal UI formatting for recipebook output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/richtext"
)

const dateLayout = "2006-01-02 15:04"

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

type TagCount struct {
	Name  string
	Count int
}

func FormatRecipeListItem(r models.Recipe) string {
	var sb strings.Builder

	star := " "
	if r.IsFavorite {
		star = yellow("★")
	}
	sb.WriteString(fmt.Sprintf("  %s %s  %s", star, faint(fmt.Sprintf("#%-4d", r.ID)), bold(r.Title)))
	if r.Category != models.CategoryNone {
		sb.WriteString(" " + cyan("["+string(r.Category)+"]"))
	}
	sb.WriteString("\n")

	var meta []string
	if total := r.PrepTime + r.CookTime; total > 0 {
		meta = append(meta, fmt.Sprintf("%d min", total))
	}
	if r.Difficulty != "" {
		meta = append(meta, string(r.Difficulty))
	}
	if r.ViewCount > 0 {
		meta = append(meta, fmt.Sprintf("%d views", r.ViewCount))
	}
	if len(meta) > 0 {
		sb.WriteString(fmt.Sprintf("          %s\n", faint(strings.Join(meta, " · "))))
	}
	return sb.String()
}

func FormatRecipeHeader(r models.Recipe) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(r.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(r.ID)))
	if r.Category != models.CategoryNone {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Category:"), cyan(string(r.Category))))
	}
	if r.Cuisine != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Cuisine:"), r.Cuisine))
	}
	if r.Servings > 0 {
		sb.WriteString(fmt.Sprintf("%s %d\n", faint("Servings:"), r.Servings))
	}
	if r.PrepTime > 0 || r.CookTime > 0 {
		sb.WriteString(fmt.Sprintf("%s %d min prep, %d min cook\n", faint("Time:"), r.PrepTime, r.CookTime))
	}
	if len(r.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(r.Tags, ", "))))
	}
	if r.IsFavorite {
		sb.WriteString(yellow("★ Favorite") + "\n")
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(r.UpdatedAt.Format(dateLayout))))

	sb.WriteString(Separator())
	return sb.String()
}

// RecipeMarkdown renders the body of a recipe as markdown for the terminal.
func RecipeMarkdown(r models.Recipe) string {
	var sb strings.Builder

	if r.Description != "" {
		sb.WriteString(richtext.PlainText(r.Description) + "\n\n")
	}
	if len(r.Ingredients) > 0 {
		sb.WriteString("## Ingredients\n\n")
		for _, ing := range r.Ingredients {
			amount := strings.TrimSpace(ing.Amount + " " + ing.Unit)
			if amount != "" {
				sb.WriteString(fmt.Sprintf("- **%s** %s\n", amount, ing.Name))
			} else {
				sb.WriteString(fmt.Sprintf("- %s\n", ing.Name))
			}
		}
		sb.WriteString("\n")
	}
	if content := richtext.PlainText(r.Content); content != "" {
		sb.WriteString(content + "\n\n")
	}
	if len(r.Instructions) > 0 {
		sb.WriteString("## Instructions\n\n")
		for _, ins := range r.Instructions {
			line := fmt.Sprintf("%d. %s", ins.Step, ins.Description)
			if ins.Time > 0 {
				line += fmt.Sprintf(" _(%d min)_", ins.Time)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}
	if len(r.SuggestedToppings) > 0 {
		sb.WriteString("## Suggested toppings\n\n")
		for _, t := range r.SuggestedToppings {
			sb.WriteString("- " + t + "\n")
		}
		sb.WriteString("\n")
	}
	if len(r.Notes) > 0 {
		sb.WriteString("## Notes\n\n")
		for _, n := range r.Notes {
			text := richtext.PlainText(n.Text)
			if n.Title != "" {
				sb.WriteString(fmt.Sprintf("- **%s** (#%d): %s\n", n.Title, n.ID, text))
			} else {
				sb.WriteString(fmt.Sprintf("- (#%d) %s\n", n.ID, text))
			}
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

// FormatMarkdown renders markdown with the dark or light glamour style.
func FormatMarkdown(content string, dark bool) (string, error) {
	style := "light"
	if dark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteListItem(n models.GeneralNote) string {
	var sb strings.Builder

	pin := " "
	if n.IsPinned {
		pin = yellow("▲")
	}
	title := n.Title
	if title == "" {
		title = richtext.Preview(n.Text, 50)
	}
	sb.WriteString(fmt.Sprintf("  %s %s  %s\n", pin, faint(fmt.Sprintf("#%-4d", n.ID)), bold(title)))

	if len(n.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("          %s %s\n", faint("Tags:"), cyan(strings.Join(n.Tags, ", "))))
	}
	sb.WriteString(fmt.Sprintf("          %s %s\n", faint("Updated:"), faint(n.UpdatedAt.Format(dateLayout))))
	return sb.String()
}

func FormatNoteHeader(n models.GeneralNote) string {
	var sb strings.Builder

	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("%s\n", bold(title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(n.ID)))
	if n.Template != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Template:"), n.Template))
	}
	if n.LinkedRecipeID != nil {
		sb.WriteString(fmt.Sprintf("%s #%d\n", faint("Recipe:"), *n.LinkedRecipeID))
	}
	if len(n.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Tags:"), cyan(strings.Join(n.Tags, ", "))))
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(n.CreatedAt.Format(dateLayout))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(n.UpdatedAt.Format(dateLayout))))

	sb.WriteString(Separator())
	return sb.String()
}

func FormatTagList(tags []TagCount) string {
	var sb strings.Builder

	for _, t := range tags {
		sb.WriteString(fmt.Sprintf("  %s %s\n",
			cyan(t.Name),
			faint(fmt.Sprintf("(%d)", t.Count))))
	}

	return sb.String()
}

// CountTags tallies tag usage across general notes, in first-seen order.
func CountTags(notes []models.GeneralNote) []TagCount {
	index := map[string]int{}
	var out []TagCount
	for _, n := range notes {
		for _, tag := range n.Tags {
			if i, ok := index[tag]; ok {
				out[i].Count++
				continue
			}
			index[tag] = len(out)
			out = append(out, TagCount{Name: tag, Count: 1})
		}
	}
	return out
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}
