// ABOUTME: Tests for configuration management.
// ABOUTME: Verifies config loading, saving, layering, and environment overrides.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestConfigPath(t *testing.T) {
	path := ConfigPath()
	if path == "" {
		t.Error("ConfigPath returned empty string")
	}
	if !filepath.IsAbs(path) {
		t.Errorf("ConfigPath should return absolute path, got %s", path)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := ConfigDir(); got != "/tmp/xdg/recipebook" {
		t.Errorf("ConfigDir() = %s", got)
	}
	if ConfigDir() != filepath.Dir(ConfigPath()) {
		t.Error("ConfigPath should live in ConfigDir")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.GitHub.DocumentPath != "data/recipes.json" {
		t.Errorf("unexpected document path %q", cfg.GitHub.DocumentPath)
	}
	if cfg.GitHub.Owner != DefaultOwner || cfg.GitHub.Repo != DefaultRepo {
		t.Errorf("unexpected default repository %s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}
	if cfg.Debounce() != 10*time.Second {
		t.Errorf("expected 10s debounce, got %v", cfg.Debounce())
	}
	if cfg.SeedCategory() != "Sauce" {
		t.Errorf("expected Sauce seed category, got %q", cfg.SeedCategory())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Errorf("LoadConfig should not error on missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("LoadConfig should return default config when file doesn't exist")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GITHUB_OWNER", "")

	cfg := DefaultConfig()
	cfg.Store = "sqlite://" + filepath.Join(tmpDir, "kv.db")
	cfg.GitHub.Owner = "pizzaiolo"
	cfg.GitHub.Repo = "recipes"
	cfg.GitHub.Token = "secret"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	if !ConfigExists() {
		t.Error("ConfigExists should return true after SaveConfig")
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Store != cfg.Store {
		t.Errorf("Store = %q, want %q", loaded.Store, cfg.Store)
	}
	if loaded.GitHub.Owner != "pizzaiolo" || loaded.GitHub.Token != "secret" {
		t.Errorf("GitHub = %+v", loaded.GitHub)
	}
	if loaded.Server.Addr != cfg.Server.Addr {
		t.Errorf("Server.Addr = %q, want %q", loaded.Server.Addr, cfg.Server.Addr)
	}
}

func TestPrecedenceFileStoredEnv(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.Owner = "from-file"
	cfg.GitHub.Repo = "file-repo"
	cfg.GitHub.Token = "file-token"

	cfg.ApplyStored(StoredGitHub{Username: "from-store", Token: "store-token"})
	if cfg.GitHub.Owner != "from-store" || cfg.GitHub.Repo != "file-repo" {
		t.Errorf("stored settings should override only what they set: %+v", cfg.GitHub)
	}

	t.Setenv("GITHUB_TOKEN", "env-token")
	t.Setenv("GITHUB_OWNER", "")
	cfg.ApplyEnv()
	if cfg.GitHub.Token != "env-token" {
		t.Errorf("env should win, got %q", cfg.GitHub.Token)
	}
	if cfg.GitHub.Owner != "from-store" {
		t.Errorf("empty env must not clear values, got %q", cfg.GitHub.Owner)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("RECIPEBOOK_STORE", "memory://")
	t.Setenv("RECIPEBOOK_SEED_URL", "https://example.com/sauce.json")
	t.Setenv("RECIPEBOOK_LOG_LEVEL", "debug")
	t.Setenv("RECIPEBOOK_DEBOUNCE_SECONDS", "3")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if cfg.Store != "memory://" {
		t.Errorf("Store = %q", cfg.Store)
	}
	if cfg.Seed.URL != "https://example.com/sauce.json" {
		t.Errorf("Seed.URL = %q", cfg.Seed.URL)
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level = %v", cfg.Level())
	}
	if cfg.Debounce() != 3*time.Second {
		t.Errorf("Debounce = %v", cfg.Debounce())
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	if err := LoadDotEnv(); err != nil {
		t.Errorf("missing .env should not error, got %v", err)
	}

	t.Setenv("GITHUB_REPO", "")
	os.Unsetenv("GITHUB_REPO")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GITHUB_REPO=dotenv-repo\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv("GITHUB_REPO"); got != "dotenv-repo" {
		t.Errorf("GITHUB_REPO = %q", got)
	}
}

func TestRedacted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GitHub.Token = "ghp_abcdefgh1234"
	r := cfg.Redacted()
	if r.GitHub.Token != "****1234" {
		t.Errorf("Redacted token = %q", r.GitHub.Token)
	}
	if cfg.GitHub.Token != "ghp_abcdefgh1234" {
		t.Error("Redacted must not modify the original")
	}
}

func TestExpandPath(t *testing.T) {
	if got := expandPath("/foo/bar"); got != "/foo/bar" {
		t.Errorf("absolute path changed: %q", got)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home dir")
	}
	if got := expandPath("~/test"); got != filepath.Join(home, "test") {
		t.Errorf("expandPath(~/test) = %q", got)
	}
}
