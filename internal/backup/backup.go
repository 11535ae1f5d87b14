// ABOUTME: Backup document codec for the full recipe book.
// ABOUTME: Exports pretty JSON and validates imports against a JSON Schema.

package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
)

var (
	ErrParse         = errors.New("backup is not valid JSON")
	ErrInvalidFormat = errors.New("backup is missing recipes or generalNotes")
)

// Document is the shape shared by backups and the remote full-collection file.
type Document struct {
	Recipes      []models.Recipe      `json:"recipes"`
	GeneralNotes []models.GeneralNote `json:"generalNotes"`
}

func FromState(s state.State) Document {
	return Document{Recipes: s.Recipes, GeneralNotes: s.GeneralNotes}
}

// Empty reports whether the document holds no records at all.
func (d Document) Empty() bool {
	return len(d.Recipes) == 0 && len(d.GeneralNotes) == 0
}

// Marshal encodes d with two-space indentation. Nil collections encode as [].
func Marshal(d Document) ([]byte, error) {
	if d.Recipes == nil {
		d.Recipes = []models.Recipe{}
	}
	if d.GeneralNotes == nil {
		d.GeneralNotes = []models.GeneralNote{}
	}
	return json.MarshalIndent(d, "", "  ")
}

func Export(w io.Writer, s state.State) error {
	data, err := Marshal(FromState(s))
	if err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Filename is the suggested name for a backup taken at now.
func Filename(now time.Time) string {
	return "pizza-recipes-backup-" + now.Format("2006-01-02") + ".json"
}

const schemaURL = "backup.schema.json"

const schemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["recipes", "generalNotes"],
  "properties": {
    "recipes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {"id": {"type": "integer"}}
      }
    },
    "generalNotes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {"id": {"type": "integer"}}
      }
    }
  }
}`

var schema = mustCompile()

func mustCompile() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
	if err != nil {
		panic(err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		panic(err)
	}
	return c.MustCompile(schemaURL)
}

// Import reads a backup. The caller applies it with state.ReplaceAll; nothing
// is changed here on error.
func Import(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := schema.Validate(inst); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return doc, nil
}

// Parse decodes a remote document leniently: missing collections are empty
// and empty input is an empty document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{Recipes: []models.Recipe{}, GeneralNotes: []models.GeneralNote{}}, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if doc.Recipes == nil {
		doc.Recipes = []models.Recipe{}
	}
	if doc.GeneralNotes == nil {
		doc.GeneralNotes = []models.GeneralNote{}
	}
	return doc, nil
}
