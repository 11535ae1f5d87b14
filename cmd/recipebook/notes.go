// ABOUTME: Commands for standalone kitchen notes.
// ABOUTME: Add, list, edit, remove, pin, and tag general notes.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/ui"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage general kitchen notes",
}

var notesAddCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a general note",
	Long:  `Create a general note from the argument, --file, or $EDITOR.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		tagsFlag, _ := cmd.Flags().GetString("tags")
		templateFlag, _ := cmd.Flags().GetString("template")
		fileFlag, _ := cmd.Flags().GetString("file")
		recipeFlag, _ := cmd.Flags().GetInt("recipe")

		var text string
		var err error
		switch {
		case len(args) == 1:
			text = args[0]
		case fileFlag != "":
			text, err = readContent("", fileFlag)
		default:
			text, err = openEditor("")
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("note text cannot be empty")
		}

		var linked *int
		if recipeFlag > 0 {
			if _, ok := state.FindRecipe(env.store.State().Recipes, recipeFlag); !ok {
				return fmt.Errorf("recipe %d not found", recipeFlag)
			}
			linked = &recipeFlag
		}
		template, _ := models.ParseTemplate(templateFlag)

		st := env.store.Dispatch(cmd.Context(), state.AddGeneralNote{
			Title:          title,
			Text:           text,
			Tags:           models.SplitList(tagsFlag),
			Template:       template,
			LinkedRecipeID: linked,
		})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Created note %d", st.GeneralNotes[0].ID)))
		return nil
	},
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List general notes, pinned first",
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		tagFlag, _ := cmd.Flags().GetString("tag")
		pinnedFlag, _ := cmd.Flags().GetBool("pinned")
		tagsFlag, _ := cmd.Flags().GetBool("tags")

		all := env.store.State().GeneralNotes
		if tagsFlag {
			fmt.Fprint(out(cmd), ui.FormatTagList(ui.CountTags(all)))
			return nil
		}

		notes := state.FilterNotes(all, state.NoteFilter{
			Search:     searchFlag,
			Tag:        tagFlag,
			PinnedOnly: pinnedFlag,
		})
		if len(notes) == 0 {
			fmt.Fprintln(out(cmd), "No notes found.")
			return nil
		}
		for _, n := range notes {
			fmt.Fprint(out(cmd), ui.FormatNoteListItem(n))
		}
		return nil
	},
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a general note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNote(args[0])
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			n.Title, _ = cmd.Flags().GetString("title")
		}
		text := n.Text
		if cmd.Flags().Changed("text") {
			text, _ = cmd.Flags().GetString("text")
		} else if !cmd.Flags().Changed("title") {
			if text, err = openEditor(n.Text); err != nil {
				return fmt.Errorf("failed to open editor: %w", err)
			}
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("note text cannot be empty")
		}
		n.Text = text
		n.HTML = text

		env.store.Dispatch(cmd.Context(), state.UpdateGeneralNote{Note: n})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Updated note %d", n.ID)))
		return nil
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a general note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNote(args[0])
		if err != nil {
			return err
		}
		env.store.Dispatch(cmd.Context(), state.DeleteGeneralNote{ID: n.ID})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Deleted note %d", n.ID)))
		return nil
	},
}

var notesPinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a note's pinned flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := lookupNote(args[0])
		if err != nil {
			return err
		}
		st := env.store.Dispatch(cmd.Context(), state.TogglePin{ID: n.ID})
		n, _ = state.FindNote(st.GeneralNotes, n.ID)
		if n.IsPinned {
			fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Pinned note %d", n.ID)))
		} else {
			fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Unpinned note %d", n.ID)))
		}
		return nil
	},
}

var notesTagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags on a general note",
}

var notesTagAddCmd = &cobra.Command{
	Use:   "add <id> <tag>",
	Short: "Add a tag to a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, tag, err := noteAndTag(args)
		if err != nil {
			return err
		}
		env.store.Dispatch(cmd.Context(), state.AddNoteTag{ID: n.ID, Tag: tag})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Added tag %q to note %d", tag, n.ID)))
		return nil
	},
}

var notesTagRmCmd = &cobra.Command{
	Use:   "rm <id> <tag>",
	Short: "Remove a tag from a note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, tag, err := noteAndTag(args)
		if err != nil {
			return err
		}
		if !models.HasTag(n.Tags, tag) {
			return fmt.Errorf("note %d has no tag %q", n.ID, tag)
		}
		env.store.Dispatch(cmd.Context(), state.RemoveNoteTag{ID: n.ID, Tag: tag})
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Removed tag %q from note %d", tag, n.ID)))
		return nil
	},
}

func noteAndTag(args []string) (models.GeneralNote, string, error) {
	n, err := lookupNote(args[0])
	if err != nil {
		return n, "", err
	}
	tag := models.NormalizeTag(args[1])
	if tag == "" {
		return n, "", fmt.Errorf("tag cannot be empty")
	}
	return n, tag, nil
}

func init() {
	notesAddCmd.Flags().String("title", "", "note title")
	notesAddCmd.Flags().String("tags", "", "comma-separated tags")
	notesAddCmd.Flags().String("template", "", "info, success, warning, danger, or dark")
	notesAddCmd.Flags().String("file", "", "read note text from file")
	notesAddCmd.Flags().Int("recipe", 0, "link the note to a recipe")

	notesListCmd.Flags().StringP("search", "s", "", "search title and text")
	notesListCmd.Flags().StringP("tag", "t", "", "filter by tag")
	notesListCmd.Flags().Bool("pinned", false, "only pinned notes")
	notesListCmd.Flags().Bool("tags", false, "list tags with counts instead of notes")

	notesEditCmd.Flags().String("title", "", "new title")
	notesEditCmd.Flags().String("text", "", "new text")

	notesTagCmd.AddCommand(notesTagAddCmd, notesTagRmCmd)
	notesCmd.AddCommand(notesAddCmd, notesListCmd, notesEditCmd, notesRmCmd, notesPinCmd, notesTagCmd)
	rootCmd.AddCommand(notesCmd)
}
