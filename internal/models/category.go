// ABOUTME: Fixed enumerations used by recipes and notes.
// ABOUTME: Category, difficulty, and note template parsing.

package models

import "strings"

// Category groups recipes. The zero value means uncategorized, which is
// distinct from CategoryOther.
type Category string

const (
	CategoryNone     Category = ""
	CategoryPizza    Category = "Pizza"
	CategoryDough    Category = "Dough"
	CategorySauce    Category = "Sauce"
	CategoryToppings Category = "Toppings"
	CategoryOther    Category = "Other"
)

// Categories lists every named category in display order.
var Categories = []Category{CategoryPizza, CategoryDough, CategorySauce, CategoryToppings, CategoryOther}

// ParseCategory matches s case-insensitively against the known categories.
// Empty or unknown input yields CategoryNone and false.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return CategoryNone, false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	}
	return "", false
}

// NoteTemplate is the visual tag attached to a note.
type NoteTemplate string

const (
	TemplateInfo    NoteTemplate = "info"
	TemplateSuccess NoteTemplate = "success"
	TemplateWarning NoteTemplate = "warning"
	TemplateDanger  NoteTemplate = "danger"
	TemplateDark    NoteTemplate = "dark"
)

var Templates = []NoteTemplate{TemplateInfo, TemplateSuccess, TemplateWarning, TemplateDanger, TemplateDark}

func ParseTemplate(s string) (NoteTemplate, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, t := range Templates {
		if s == string(t) {
			return t, true
		}
	}
	return "", false
}
