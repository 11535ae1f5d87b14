// ABOUTME: Sync commands for the GitHub-backed recipe document.
// ABOUTME: Shows status, pushes, pulls, loads the seed, and saves single recipes by category.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/sync"
	"github.com/harper/recipebook/internal/ui"
)

var noStart = map[string]string{skipStart: "true"}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync recipes with GitHub",
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show sync configuration and last backup",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := env.cfg
		w := out(cmd)
		st := env.store.State()

		fmt.Fprintf(w, "Repository:   %s/%s\n", cfg.GitHub.Owner, cfg.GitHub.Repo)
		fmt.Fprintf(w, "Document:     %s\n", cfg.GitHub.DocumentPath)
		if env.client.Configured() {
			fmt.Fprintln(w, "Token:        set")
		} else {
			fmt.Fprintln(w, "Token:        not set (local only)")
		}
		last := env.engine.LastBackup(cmd.Context())
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(w, "Last backup:  %s\n", last)
		fmt.Fprintf(w, "Recipes:      %d\n", len(st.Recipes))
		fmt.Fprintf(w, "Notes:        %d\n", len(st.GeneralNotes))
		return nil
	},
}

var syncPushCmd = &cobra.Command{
	Use:         "push",
	Short:       "Push all recipes and notes now",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := env.engine.Push(cmd.Context())
		switch outcome.Kind {
		case github.Saved:
			fmt.Fprintln(out(cmd), ui.Success("Pushed to "+outcome.Path))
		case github.Skipped:
			fmt.Fprintln(out(cmd), ui.Warning("Nothing pushed: no data or GitHub is not configured"))
		case github.Conflict:
			return fmt.Errorf("remote changed since it was read; run 'recipebook sync pull' first: %w", outcome.Err)
		default:
			return fmt.Errorf("push failed: %w", outcome.Err)
		}
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:         "pull",
	Short:       "Merge the remote document into local recipes",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		changed, err := env.engine.PullRemote(cmd.Context())
		if err != nil {
			return fmt.Errorf("pull failed: %w", err)
		}
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Merged %d records from GitHub", changed)))
		return nil
	},
}

var syncSeedCmd = &cobra.Command{
	Use:         "seed",
	Short:       "Merge the configured seed recipes",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		if env.cfg.Seed.URL == "" && env.cfg.Seed.File == "" {
			return fmt.Errorf("no seed configured; set seed.url or seed.file in %s", configPathHint())
		}
		added, err := env.engine.LoadSeed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Added %d seed recipes", added)))
		return nil
	},
}

var syncSaveCmd = &cobra.Command{
	Use:         "save <id>",
	Short:       "Save one recipe to its category file on GitHub",
	Annotations: noStart,
	Args:        cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		res, err := env.engine.SaveRecipe(cmd.Context(), r)
		if err != nil {
			return err
		}
		if res.Saved == sync.SavedGitHub {
			fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Saved recipe %d to %s", r.ID, res.File)))
		} else {
			fmt.Fprintln(out(cmd), ui.Warning(res.Warning))
		}
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncStatusCmd, syncPushCmd, syncPullCmd, syncSeedCmd, syncSaveCmd)
	rootCmd.AddCommand(syncCmd)
}
