// ABOUTME: Root command and shared wiring for every recipebook subcommand.
// ABOUTME: Opens the store, hydrates state, and starts the sync engine before commands run.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/config"
	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/kv"
	"github.com/harper/recipebook/internal/state"
	"github.com/harper/recipebook/internal/sync"
)

// skipStart marks commands that run without the seed and remote pull.
const skipStart = "skip-start"

type appEnv struct {
	cfg      *config.Config
	logger   *log.Logger
	backend  kv.Backend
	store    *state.Store
	client   *github.Client
	engine   *sync.Engine
	darkMode *kv.Value[bool]
	stored   *kv.Value[config.StoredGitHub]
}

var (
	env       *appEnv
	storeFlag string
	offline   bool
	verbose   bool
	nowFunc   = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "recipebook",
	Short: "Personal pizza recipe book and kitchen notes",
	Long: `recipebook keeps recipes and kitchen notes in a local store and mirrors
them to a GitHub repository.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		env = e
		if !offline && cmd.Annotations[skipStart] == "" {
			env.engine.Start(cmd.Context())
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeEnv(cmd.Context())
	},
}

func openEnv(ctx context.Context) (*appEnv, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.LoadFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyEnv()
	if storeFlag != "" {
		cfg.Store = storeFlag
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "recipebook",
		ReportTimestamp: verbose,
	})

	backend, err := kv.Open(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	e := &appEnv{
		backend:  backend,
		darkMode: kv.NewValue(backend, kv.KeyDarkMode, false, logger),
		stored:   kv.NewValue(backend, kv.KeyGitHubConfig, config.StoredGitHub{}, logger),
	}
	if err := e.stored.Load(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to read github settings: %w", err)
	}
	if err := e.darkMode.Load(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to read theme: %w", err)
	}

	// Environment still wins over settings saved with "config github".
	cfg.ApplyStored(e.stored.Get())
	cfg.ApplyEnv()
	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	logger.SetLevel(cfg.Level())
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	e.cfg = cfg
	e.logger = logger
	e.store = state.NewStore(backend, logger, state.WithClock(nowFunc))
	if err := e.store.Hydrate(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	e.client = github.New(cfg.GitHubClientConfig(), github.WithLogger(logger))
	e.engine = sync.NewEngine(e.store, backend, e.client, seedSource(cfg), sync.Options{
		DocumentPath: cfg.GitHub.DocumentPath,
		SeedCategory: cfg.SeedCategory(),
		Debounce:     cfg.Debounce(),
		Now:          nowFunc,
		Logger:       logger,
	})
	return e, nil
}

func closeEnv(ctx context.Context) error {
	if env == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	env.engine.Close(ctx)
	err := env.backend.Close()
	env = nil
	return err
}

func seedSource(cfg *config.Config) sync.SeedSource {
	switch {
	case cfg.Seed.File != "":
		return sync.FileSeed{Path: cfg.Seed.File}
	case cfg.Seed.URL != "":
		return sync.HTTPSeed{URL: cfg.Seed.URL}
	default:
		return nil
	}
}

func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeEnv(context.Background()); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "store DSN (badger path, sqlite://, postgres://, redis://, memory://)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip seed and GitHub pull at startup")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
