// ABOUTME: Schema-version normalization for records read from any source.
// ABOUTME: Reconciles legacy field names (name, imageUrl, toppings) with the current schema.

package models

import (
	"encoding/json"
	"strings"
)

// SchemaVersion is the record layout written by this package. Version 1
// records used name/imageUrl and stored toppings as one comma-separated string.
const SchemaVersion = 2

type recipeAlias Recipe

// recipeWire shadows the fields whose shape varies between schema versions.
// Shallower fields win over the embedded ones in encoding/json.
type recipeWire struct {
	recipeAlias
	Name              string          `json:"name"`
	ImageURL          string          `json:"imageUrl"`
	Category          string          `json:"category"`
	Difficulty        string          `json:"difficulty"`
	Tags              json.RawMessage `json:"tags"`
	SuggestedToppings json.RawMessage `json:"suggestedToppings"`
	Toppings          json.RawMessage `json:"toppings"`
}

// UnmarshalJSON accepts every known schema version and yields the canonical form.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var w recipeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*r = normalizeRecipe(w)
	return nil
}

// MarshalJSON writes the canonical fields plus the version 1 mirrors so older
// readers keep working.
func (r Recipe) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		recipeAlias
		Name     string `json:"name,omitempty"`
		ImageURL string `json:"imageUrl,omitempty"`
	}{recipeAlias(r), r.Title, r.Image})
}

func normalizeRecipe(w recipeWire) Recipe {
	r := Recipe(w.recipeAlias)

	if strings.TrimSpace(r.Title) == "" {
		r.Title = w.Name
	}
	if r.Image == "" {
		r.Image = w.ImageURL
	}

	r.Category, _ = ParseCategory(w.Category)
	r.Difficulty, _ = ParseDifficulty(w.Difficulty)

	r.Tags = parseStringList(w.Tags)
	r.SuggestedToppings = parseStringList(w.SuggestedToppings)
	if len(r.SuggestedToppings) == 0 {
		r.SuggestedToppings = parseStringList(w.Toppings)
	}
	if r.ViewCount < 0 {
		r.ViewCount = 0
	}
	return r.Canonical()
}

// Canonical returns r in the form every ingestion path stores: trimmed title,
// unique tags, steps numbered 1..n, non-negative times, and nil for empty
// optional lists.
func (r Recipe) Canonical() Recipe {
	r = r.Clone()
	r.Title = strings.TrimSpace(r.Title)
	r.Tags = UniqueTags(r.Tags)
	r.PrepTime = clampNonNegative(r.PrepTime)
	r.CookTime = clampNonNegative(r.CookTime)
	r.Servings = clampNonNegative(r.Servings)
	r.Instructions = RenumberSteps(nilIfEmpty(r.Instructions))
	r.Ingredients = nilIfEmpty(r.Ingredients)
	r.SuggestedToppings = nilIfEmpty(r.SuggestedToppings)
	if r.Notes == nil {
		r.Notes = []Note{}
	}
	for i := range r.Notes {
		r.Notes[i] = r.Notes[i].Canonical()
	}
	return r
}

// Canonical fills an empty Text from HTML.
func (n Note) Canonical() Note {
	if n.Text == "" {
		n.Text = n.HTML
	}
	return n
}

// Canonical returns n with unique, non-nil tags and Text filled from HTML.
func (n GeneralNote) Canonical() GeneralNote {
	n = n.Clone()
	n.Tags = UniqueTags(n.Tags)
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Text == "" {
		n.Text = n.HTML
	}
	return n
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}

type generalNoteAlias GeneralNote

type generalNoteWire struct {
	generalNoteAlias
	Tags     json.RawMessage `json:"tags"`
	Template string          `json:"template"`
}

func (n *GeneralNote) UnmarshalJSON(data []byte) error {
	var w generalNoteWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g := GeneralNote(w.generalNoteAlias)
	g.Tags = parseStringList(w.Tags)
	g.Template, _ = ParseTemplate(w.Template)
	g = g.Canonical()
	*n = g
	return nil
}

// parseStringList reads either a JSON array of strings or a single string of
// comma or newline separated items (bullets are stripped).
func parseStringList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return trimAll(list)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return SplitList(s)
}

// SplitList splits a comma or newline separated string into trimmed items.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	return trimAll(fields)
}

func trimAll(in []string) []string {
	var out []string
	for _, item := range in {
		item = strings.TrimSpace(item)
		item = strings.TrimLeft(item, "•-* \t")
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
