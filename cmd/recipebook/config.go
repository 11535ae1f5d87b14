// ABOUTME: Config commands for GitHub credentials, theme, and diagnostics.
// ABOUTME: GitHub settings and theme are saved in the store; show prints the merged view.

package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/recipebook/internal/config"
	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change settings",
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(env.cfg.Redacted())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "# %s\n", configPathHint())
		fmt.Fprint(out(cmd), string(data))
		fmt.Fprintf(out(cmd), "dark_mode: %t\n", env.darkMode.Get())
		return nil
	},
}

var configGitHubCmd = &cobra.Command{
	Use:         "github",
	Short:       "Save GitHub owner, repository, and token",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		clearFlag, _ := cmd.Flags().GetBool("clear")
		if clearFlag {
			if err := env.stored.Set(cmd.Context(), config.StoredGitHub{}); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), ui.Success("Cleared saved GitHub settings"))
			return nil
		}

		err := env.stored.Update(cmd.Context(), func(s config.StoredGitHub) config.StoredGitHub {
			if cmd.Flags().Changed("owner") {
				s.Username, _ = cmd.Flags().GetString("owner")
			}
			if cmd.Flags().Changed("repo") {
				s.Repository, _ = cmd.Flags().GetString("repo")
			}
			if cmd.Flags().Changed("token") {
				s.Token, _ = cmd.Flags().GetString("token")
			}
			return s
		})
		if err != nil {
			return fmt.Errorf("failed to save GitHub settings: %w", err)
		}
		s := env.stored.Get()
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Saved GitHub settings for %s/%s",
			orDefault(s.Username, env.cfg.GitHub.Owner), orDefault(s.Repository, env.cfg.GitHub.Repo))))
		return nil
	},
}

var configTestCmd = &cobra.Command{
	Use:         "test",
	Short:       "Check that the GitHub repository is reachable with the token",
	Annotations: noStart,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		if err := env.client.CheckAccess(ctx); err != nil {
			if errors.Is(err, github.ErrNotConfigured) {
				return fmt.Errorf("GitHub token is not set; use 'recipebook config github --token'")
			}
			return fmt.Errorf("cannot reach %s/%s: %w", env.cfg.GitHub.Owner, env.cfg.GitHub.Repo, err)
		}
		fmt.Fprintln(out(cmd), ui.Success(fmt.Sprintf("Connected to %s/%s", env.cfg.GitHub.Owner, env.cfg.GitHub.Repo)))
		return nil
	},
}

var configThemeCmd = &cobra.Command{
	Use:         "theme [dark|light]",
	Short:       "Show or set the rendering theme",
	Annotations: noStart,
	Args:        cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Fprintln(out(cmd), themeName(env.darkMode.Get()))
			return nil
		}
		var dark bool
		switch strings.ToLower(args[0]) {
		case "dark":
			dark = true
		case "light":
			dark = false
		default:
			return fmt.Errorf("unknown theme %q (use dark or light)", args[0])
		}
		if err := env.darkMode.Set(cmd.Context(), dark); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		fmt.Fprintln(out(cmd), ui.Success("Theme set to "+themeName(dark)))
		return nil
	},
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func configPathHint() string {
	return config.ConfigPath()
}

func init() {
	configGitHubCmd.Flags().String("owner", "", "repository owner")
	configGitHubCmd.Flags().String("repo", "", "repository name")
	configGitHubCmd.Flags().String("token", "", "personal access token")
	configGitHubCmd.Flags().Bool("clear", false, "forget saved GitHub settings")

	configCmd.AddCommand(configShowCmd, configGitHubCmd, configTestCmd, configThemeCmd)
	rootCmd.AddCommand(configCmd)
}
