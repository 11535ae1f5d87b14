// ABOUTME: Export command for backing up recipes and notes.
// ABOUTME: Writes the JSON backup document or one markdown file per recipe.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/backup"
	"github.com/harper/recipebook/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recipes and notes",
	Long: `Export everything to a JSON backup (pizza-recipes-backup-YYYY-MM-DD.json by
default, "-" for stdout) or to a directory of markdown files.`,
	Annotations: map[string]string{skipStart: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")

		switch format {
		case "json":
			return exportJSON(cmd, outputPath)
		case "md":
			return exportMarkdown(cmd, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(cmd *cobra.Command, outputPath string) error {
	st := env.store.State()
	if outputPath == "-" {
		return backup.Export(out(cmd), st)
	}
	if outputPath == "" {
		outputPath = backup.Filename(nowFunc())
	}

	f, err := os.Create(outputPath) //nolint:gosec // User-specified output path is expected CLI behavior
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := backup.Export(f, st); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Exported %d recipes and %d notes to %s",
		len(st.Recipes), len(st.GeneralNotes), outputPath)))
	return nil
}

func exportMarkdown(cmd *cobra.Command, outputPath string) error {
	if outputPath == "" || outputPath == "-" {
		outputPath = "recipes-export"
	}
	count, err := backup.ExportMarkdown(outputPath, env.store.State().Recipes)
	if err != nil {
		return fmt.Errorf("failed to export markdown: %w", err)
	}
	abs, _ := filepath.Abs(outputPath)
	fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Exported %d recipes to %s", count, abs)))
	return nil
}

func init() {
	exportCmd.Flags().String("format", "json", "export format: json or md")
	exportCmd.Flags().StringP("output", "o", "", "output file (json) or directory (md)")
	rootCmd.AddCommand(exportCmd)
}
