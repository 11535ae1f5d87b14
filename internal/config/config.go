// ABOUTME: Configuration for recipebook: store, GitHub, seed, server, and logging.
// ABOUTME: Defaults, then the YAML file, then stored GitHub settings, then the environment.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/models"
)

const (
	DefaultOwner = "husseinmint"
	DefaultRepo  = "pizza-recipe-app"
)

type GitHubConfig struct {
	Owner        string `yaml:"owner,omitempty"`
	Repo         string `yaml:"repo,omitempty"`
	Token        string `yaml:"token,omitempty"`
	DocumentPath string `yaml:"document_path,omitempty"`
	BaseURL      string `yaml:"base_url,omitempty"`
}

type SeedConfig struct {
	URL      string `yaml:"url,omitempty"`
	File     string `yaml:"file,omitempty"`
	Category string `yaml:"category,omitempty"`
}

type ServerConfig struct {
	Addr        string   `yaml:"addr"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
	// RateLimit is requests per second per client IP; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
}

type Config struct {
	// Store is a kv DSN such as badger:///path, sqlite:///path.db, or memory://.
	Store           string       `yaml:"store,omitempty"`
	GitHub          GitHubConfig `yaml:"github"`
	Seed            SeedConfig   `yaml:"seed"`
	Server          ServerConfig `yaml:"server"`
	DebounceSeconds int          `yaml:"debounce_seconds"`
	LogLevel        string       `yaml:"log_level"`
}

// StoredGitHub is the github-config value kept in the key-value store.
type StoredGitHub struct {
	Username   string `json:"username"`
	Repository string `json:"repository"`
	Token      string `json:"token"`
}

func (s StoredGitHub) Empty() bool {
	return s.Username == "" && s.Repository == "" && s.Token == ""
}

func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Owner:        DefaultOwner,
			Repo:         DefaultRepo,
			DocumentPath: github.DefaultDocumentPath,
			BaseURL:      github.DefaultBaseURL,
		},
		Seed: SeedConfig{Category: string(models.CategorySauce)},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			CORSOrigins: []string{"*"},
			RateLimit:   5,
			Burst:       10,
		},
		DebounceSeconds: 10,
		LogLevel:        "info",
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "recipebook")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LoadFile reads defaults and the config file without consulting the environment.
func LoadFile() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Store = expandPath(cfg.Store)
	cfg.Seed.File = expandPath(cfg.Seed.File)
	return cfg, nil
}

// LoadConfig reads the file and applies environment overrides.
func LoadConfig() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// SaveConfig writes configuration to disk.
func SaveConfig(cfg *Config) error {
	if err := os.MkdirAll(ConfigDir(), 0750); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(ConfigPath(), data, 0600)
}

// ConfigExists returns true if a config file exists.
func ConfigExists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// LoadDotEnv loads .env from the working directory if present. Variables
// already set in the environment win.
func LoadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyStored layers GitHub settings saved through the app over the file values.
func (c *Config) ApplyStored(s StoredGitHub) {
	if s.Username != "" {
		c.GitHub.Owner = s.Username
	}
	if s.Repository != "" {
		c.GitHub.Repo = s.Repository
	}
	if s.Token != "" {
		c.GitHub.Token = s.Token
	}
}

func (c *Config) ApplyEnv() {
	setString(&c.GitHub.Token, "GITHUB_TOKEN")
	setString(&c.GitHub.Owner, "GITHUB_OWNER")
	setString(&c.GitHub.Repo, "GITHUB_REPO")
	setString(&c.GitHub.BaseURL, "GITHUB_API_URL")
	setString(&c.Store, "RECIPEBOOK_STORE")
	setString(&c.Seed.URL, "RECIPEBOOK_SEED_URL")
	setString(&c.LogLevel, "RECIPEBOOK_LOG_LEVEL")
	setString(&c.Server.Addr, "RECIPEBOOK_ADDR")
	if v := os.Getenv("RECIPEBOOK_DEBOUNCE_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.DebounceSeconds = n
		}
	}
}

func setString(dst *string, env string) {
	if v := strings.TrimSpace(os.Getenv(env)); v != "" {
		*dst = v
	}
}

func (c *Config) GitHubClientConfig() github.Config {
	return github.Config{
		Owner:   c.GitHub.Owner,
		Repo:    c.GitHub.Repo,
		Token:   c.GitHub.Token,
		BaseURL: c.GitHub.BaseURL,
	}
}

func (c *Config) Debounce() time.Duration {
	if c.DebounceSeconds <= 0 {
		return 0
	}
	return time.Duration(c.DebounceSeconds) * time.Second
}

func (c *Config) SeedCategory() models.Category {
	cat, _ := models.ParseCategory(c.Seed.Category)
	return cat
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.GitHub.Token != "" {
		cp.GitHub.Token = "****" + lastN(cp.GitHub.Token, 4)
	}
	return &cp
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return ""
	}
	return s[len(s)-n:]
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
