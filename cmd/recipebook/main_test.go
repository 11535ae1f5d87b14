// ABOUTME: In-process tests for recipebook CLI commands.
// ABOUTME: Runs full command workflows against a temporary SQLite store.

package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type cli struct {
	t     *testing.T
	store string
	args  []string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, key := range []string{"GITHUB_TOKEN", "GITHUB_OWNER", "GITHUB_REPO", "GITHUB_API_URL", "RECIPEBOOK_STORE"} {
		t.Setenv(key, "")
	}
	t.Setenv("RECIPEBOOK_SEED_URL", "")
	return &cli{t: t, store: "sqlite://" + filepath.Join(dir, "kv.db"), args: []string{"--offline"}}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	return c.runWithInput("", args...)
}

func (c *cli) runWithInput(input string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(input))
	full := append([]string{"--store", c.store}, c.args...)
	rootCmd.SetArgs(append(full, args...))
	err := Execute()
	return buf.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestRecipeLifecycle(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("add", "Margherita",
		"--category", "Pizza",
		"--servings", "2",
		"--tags", "classic, quick",
		"--ingredient", "500 g flour",
		"--ingredient", "basil",
		"--step", "Mix",
		"--step", "Bake")
	assert.Contains(t, out, "Created recipe 1")

	c.mustRun("add", "Marinara", "--category", "Sauce")

	out = c.mustRun("list")
	assert.Contains(t, out, "Margherita")
	assert.Contains(t, out, "Marinara")

	out = c.mustRun("list", "--category", "Sauce")
	assert.NotContains(t, out, "Margherita")

	out = c.mustRun("show", "1", "--raw")
	assert.Contains(t, out, "Margherita")
	assert.Contains(t, out, "- **500 g** flour")
	assert.Contains(t, out, "2. Bake")

	out = c.mustRun("list", "--popular", "--limit", "1")
	assert.Contains(t, out, "1 views")

	c.mustRun("edit", "1", "--title", "Margherita DOC")
	c.mustRun("fav", "1")
	out = c.mustRun("list", "--favorites")
	assert.Contains(t, out, "Margherita DOC")
	assert.NotContains(t, out, "Marinara")

	out = c.mustRun("note", "add", "1", "Use fior di latte", "--template", "warning")
	assert.Contains(t, out, "Added note 1 to recipe 1")

	c.mustRun("step", "add", "1", "Proof", "--at", "1", "--time", "60")
	out = c.mustRun("show", "1", "--raw")
	assert.Contains(t, out, "1. Proof _(60 min)_")
	assert.Contains(t, out, "3. Bake")
	assert.Contains(t, out, "Use fior di latte")

	c.mustRun("step", "rm", "1", "2")
	out = c.mustRun("show", "1", "--raw")
	assert.Contains(t, out, "2. Bake")
	assert.NotContains(t, out, "Mix")

	c.mustRun("note", "rm", "1", "1")
	_, err := c.run("note", "rm", "1", "1")
	assert.Error(t, err)

	out, err = c.runWithInput("n\n", "rm", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled.")

	c.mustRun("rm", "2", "--force")
	c.mustRun("rm", "1", "--force")
	out = c.mustRun("list")
	assert.Contains(t, out, "No recipes found.")
}

func TestRecipeErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("show", "7")
	assert.ErrorContains(t, err, "recipe 7 not found")

	_, err = c.run("show", "abc")
	assert.ErrorContains(t, err, "invalid id")

	_, err = c.run("add", "Soup", "--category", "Soup")
	assert.ErrorContains(t, err, "unknown category")
}

func TestGeneralNotes(t *testing.T) {
	c := newCLI(t)
	c.mustRun("add", "Margherita")

	out := c.mustRun("notes", "add", "Hydration 65%", "--title", "Dough", "--tags", "dough", "--recipe", "1")
	assert.Contains(t, out, "Created note 1")
	c.mustRun("notes", "add", "Preheat for an hour", "--tags", "oven")

	c.mustRun("notes", "tag", "add", "1", "bread")
	c.mustRun("notes", "tag", "rm", "1", "dough")
	_, err := c.run("notes", "tag", "rm", "1", "dough")
	assert.Error(t, err)

	c.mustRun("notes", "pin", "2")
	out = c.mustRun("notes", "list", "--pinned")
	assert.Contains(t, out, "Preheat for an hour")
	assert.NotContains(t, out, "Dough")

	out = c.mustRun("notes", "list", "--tags")
	assert.Contains(t, out, "bread")
	assert.Contains(t, out, "oven")

	c.mustRun("notes", "edit", "1", "--text", "Hydration 70%")
	out = c.mustRun("notes", "list", "--search", "70%")
	assert.Contains(t, out, "Dough")

	out = c.mustRun("show", "1", "--raw")
	assert.Contains(t, out, "Linked notes:")

	c.mustRun("notes", "rm", "1")
	c.mustRun("notes", "rm", "2")
	out = c.mustRun("notes", "list")
	assert.Contains(t, out, "No notes found.")
}

func TestExportImport(t *testing.T) {
	c := newCLI(t)
	c.mustRun("add", "Margherita", "--step", "Bake")
	c.mustRun("notes", "add", "Buy flour")

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	out := c.mustRun("export", "-o", backupPath)
	assert.Contains(t, out, "Exported 1 recipes and 1 notes")

	data, err := os.ReadFile(backupPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"generalNotes"`)

	mdDir := filepath.Join(t.TempDir(), "md")
	c.mustRun("export", "--format", "md", "-o", mdDir)

	other := newCLI(t)
	out = other.mustRun("import", backupPath)
	assert.Contains(t, out, "Imported 1 recipes and 1 notes")
	out = other.mustRun("list")
	assert.Contains(t, out, "Margherita")

	third := newCLI(t)
	third.mustRun("import", mdDir)
	out = third.mustRun("show", "1", "--raw")
	assert.Contains(t, out, "1. Bake")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"recipes": "nope"}`), 0600))
	_, err = other.run("import", bad)
	assert.ErrorContains(t, err, "not a recipe backup")
	out = other.mustRun("list")
	assert.Contains(t, out, "Margherita", "a rejected import leaves data alone")
}

func TestKitchenCommands(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("convert", "1", "kg", "g")
	assert.Contains(t, out, "1 kg = 1000.00 g")

	_, err := c.run("convert", "1", "kg", "ml")
	assert.Error(t, err)

	out = c.mustRun("temp", "220", "c")
	assert.Contains(t, out, "220°C = 428°F")

	c.mustRun("add", "Dough", "--servings", "2", "--ingredient", "500 g flour", "--ingredient", "1/2 tsp yeast")
	out = c.mustRun("scale", "1", "--servings", "4")
	assert.Contains(t, out, "1000 g flour")
	assert.Contains(t, out, "1 tsp yeast")
}

func TestConfigCommands(t *testing.T) {
	c := newCLI(t)

	assert.Equal(t, "light\n", c.mustRun("config", "theme"))
	c.mustRun("config", "theme", "dark")
	assert.Equal(t, "dark\n", c.mustRun("config", "theme"))

	c.mustRun("config", "github", "--owner", "me", "--repo", "pies", "--token", "ghp_secret1234")
	out := c.mustRun("config", "show")
	assert.Contains(t, out, "owner: me")
	assert.Contains(t, out, "repo: pies")
	assert.Contains(t, out, "****1234")
	assert.NotContains(t, out, "ghp_secret1234")
	assert.Contains(t, out, "dark_mode: true")

	c.mustRun("config", "github", "--clear")
	out = c.mustRun("config", "show")
	assert.NotContains(t, out, "owner: me")

	_, err := c.run("config", "test")
	assert.ErrorContains(t, err, "token is not set")
}

// fakeContents is a minimal contents API keyed by file path.
type fakeContents struct {
	mu    sync.Mutex
	files map[string][]byte
	shas  map[string]string
	puts  []string
}

func (f *fakeContents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	const prefix = "/repos/me/pies"
	if r.URL.Path == prefix {
		_, _ = w.Write([]byte(`{}`))
		return
	}
	path := strings.TrimPrefix(r.URL.Path, prefix+"/contents/")
	switch r.Method {
	case http.MethodGet:
		content, ok := f.files[path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sha":      f.shas[path],
			"content":  base64.StdEncoding.EncodeToString(content),
			"encoding": "base64",
		})
	case http.MethodPut:
		var body struct {
			Content string `json:"content"`
			SHA     string `json:"sha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.SHA != f.shas[path] {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"sha mismatch"}`))
			return
		}
		content, _ := base64.StdEncoding.DecodeString(body.Content)
		f.files[path] = content
		f.shas[path] = fmt.Sprintf("sha-%d", len(f.puts)+1)
		f.puts = append(f.puts, path)
		_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": f.shas[path]}})
	}
}

func TestMutationsPushOnExit(t *testing.T) {
	remote := &fakeContents{files: map[string][]byte{}, shas: map[string]string{}}
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	online := func() *cli {
		c := newCLI(t)
		c.args = nil
		t.Setenv("GITHUB_TOKEN", "test-token")
		t.Setenv("GITHUB_OWNER", "me")
		t.Setenv("GITHUB_REPO", "pies")
		t.Setenv("GITHUB_API_URL", srv.URL)
		return c
	}

	c := online()

	c.mustRun("add", "Margherita", "--category", "Pizza")

	remote.mu.Lock()
	require.Equal(t, []string{"public/pizza.json", "data/recipes.json"}, remote.puts)
	assert.Contains(t, string(remote.files["data/recipes.json"]), "Margherita")
	remote.mu.Unlock()

	out := c.mustRun("sync", "status")
	assert.Contains(t, out, "Token:        set")
	assert.NotContains(t, out, "Last backup:  never")

	out = c.mustRun("sync", "save", "1")
	assert.NotContains(t, out, "saved locally only")
	assert.Contains(t, out, "Saved recipe 1 to public/pizza.json")

	out = c.mustRun("config", "test")
	assert.Contains(t, out, "Connected to me/pies")

	// A fresh store pulls the pushed document on startup.
	fresh := online()
	out = fresh.mustRun("list")
	assert.Contains(t, out, "Margherita")
}

func TestCreateAndEditSaveCategoryFile(t *testing.T) {
	remote := &fakeContents{files: map[string][]byte{}, shas: map[string]string{}}
	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	c := newCLI(t)
	c.args = nil
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_OWNER", "me")
	t.Setenv("GITHUB_REPO", "pies")
	t.Setenv("GITHUB_API_URL", srv.URL)

	out := c.mustRun("add", "Marinara", "--category", "Sauce")
	assert.NotContains(t, out, "saved locally only")

	remote.mu.Lock()
	sauce := string(remote.files["public/sauce.json"])
	remote.mu.Unlock()
	assert.Contains(t, sauce, `"title": "Marinara"`)

	c.mustRun("edit", "1", "--title", "Marinara Napoletana")

	remote.mu.Lock()
	sauce = string(remote.files["public/sauce.json"])
	remote.mu.Unlock()
	assert.Contains(t, sauce, "Marinara Napoletana")
	assert.Equal(t, 1, strings.Count(sauce, `"id": 1`), "the edit replaces the record by id")
}

func TestCreateWithoutTokenWarnsLocalOnly(t *testing.T) {
	c := newCLI(t)
	c.args = nil

	out := c.mustRun("add", "Marinara", "--category", "Sauce")
	assert.Contains(t, out, "Created recipe 1")
	assert.Contains(t, out, "GitHub save failed, data saved locally only")

	c.args = []string{"--offline"}
	out = c.mustRun("add", "Pesto")
	assert.NotContains(t, out, "saved locally only")
}
