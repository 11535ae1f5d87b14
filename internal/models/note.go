// ABOUTME: Note models for recipe-scoped notes and standalone general notes.
// ABOUTME: Provides constructors and methods for note lifecycle.

package models

import "time"

// Note is owned by its parent recipe.
type Note struct {
	ID        int          `json:"id"`
	Title     string       `json:"title,omitempty"`
	Text      string       `json:"text"`
	HTML      string       `json:"html,omitempty"`
	Template  NoteTemplate `json:"template,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (n Note) GetID() int { return n.ID }

// GeneralNote stands alone. LinkedRecipeID is a weak reference used only for lookup.
type GeneralNote struct {
	ID             int          `json:"id"`
	Title          string       `json:"title,omitempty"`
	Text           string       `json:"text"`
	HTML           string       `json:"html,omitempty"`
	Tags           []string     `json:"tags"`
	IsPinned       bool         `json:"isPinned"`
	Template       NoteTemplate `json:"template,omitempty"`
	LinkedRecipeID *int         `json:"linkedRecipeId,omitempty"`
	ImageURL       string       `json:"imageUrl,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func NewGeneralNote(id int, title, text string, tags []string, now time.Time) GeneralNote {
	t := UniqueTags(tags)
	if t == nil {
		t = []string{}
	}
	return GeneralNote{
		ID:        id,
		Title:     title,
		Text:      text,
		HTML:      text,
		Tags:      t,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *GeneralNote) Touch(now time.Time) {
	n.UpdatedAt = now
}

func (n GeneralNote) GetID() int { return n.ID }

func (n GeneralNote) Clone() GeneralNote {
	c := n
	c.Tags = cloneSlice(n.Tags)
	if n.LinkedRecipeID != nil {
		id := *n.LinkedRecipeID
		c.LinkedRecipeID = &id
	}
	return c
}
