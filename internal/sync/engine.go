// ABOUTME: Reconciles local state with seed data and the remote repository.
// ABOUTME: Pulls on start, pushes debounced snapshots, and saves single recipes by category.

package sync

import (
	"context"
	"encoding/json"
	"fmt"
	gosync "sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harper/recipebook/internal/backup"
	"github.com/harper/recipebook/internal/github"
	"github.com/harper/recipebook/internal/kv"
	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/state"
)

const (
	SavedGitHub    = "github"
	SavedLocalOnly = "local-only"

	localOnlyWarning = "GitHub save failed, data saved locally only"
)

// Remote is the document store the engine syncs with.
type Remote interface {
	Read(ctx context.Context, path string) (github.Document, error)
	Write(ctx context.Context, path string, content []byte, rev github.Revision, message string) github.Outcome
}

type Options struct {
	// DocumentPath holds the full collection. Defaults to data/recipes.json.
	DocumentPath string
	// SeedCategory is forced onto every seed record. Defaults to Sauce.
	SeedCategory models.Category
	Debounce     time.Duration
	Timer        TimerFunc
	Now          func() time.Time
	Logger       *log.Logger
}

type SaveResult struct {
	File    string `json:"file"`
	Saved   string `json:"saved"`
	Warning string `json:"warning,omitempty"`
}

type Engine struct {
	store      *state.Store
	remote     Remote
	seed       SeedSource
	lastBackup *kv.Value[string]
	debouncer  *Debouncer
	opts       Options
	logger     *log.Logger

	mu          gosync.Mutex
	seedLoaded  bool
	pushCtx     context.Context
	unsubscribe func()
}

func NewEngine(store *state.Store, backend kv.Backend, remote Remote, seed SeedSource, opts Options) *Engine {
	if opts.DocumentPath == "" {
		opts.DocumentPath = github.DefaultDocumentPath
	}
	if opts.SeedCategory == models.CategoryNone {
		opts.SeedCategory = models.CategorySauce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	e := &Engine{
		store:      store,
		remote:     remote,
		seed:       seed,
		lastBackup: kv.NewValue(backend, kv.KeyLastBackup, "", opts.Logger),
		opts:       opts,
		logger:     opts.Logger.WithPrefix("sync"),
		pushCtx:    context.Background(),
	}
	e.debouncer = NewDebouncer(opts.Debounce, e.debouncedPush, opts.Timer)
	return e
}

// Start merges the seed and the remote document, then schedules a push after
// every change to either collection.
func (e *Engine) Start(ctx context.Context) {
	if added, err := e.LoadSeed(ctx); err != nil {
		e.logger.Warn("seed load failed", "err", err)
	} else if added > 0 {
		e.logger.Info("seed merged", "added", added)
	}
	if changed, err := e.PullRemote(ctx); err != nil {
		e.logger.Warn("remote pull failed", "err", err)
	} else if changed > 0 {
		e.logger.Info("remote merged", "changed", changed)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.unsubscribe != nil {
		return
	}
	e.pushCtx = context.WithoutCancel(ctx)
	e.unsubscribe = e.store.Subscribe(func(c state.Change) {
		if c.Recipes || c.GeneralNotes {
			e.debouncer.Schedule()
		}
	})
}

// LoadSeed merges the seed document into local recipes. It does its work at
// most once per engine; later calls return zero.
func (e *Engine) LoadSeed(ctx context.Context) (int, error) {
	e.mu.Lock()
	if e.seedLoaded || e.seed == nil {
		e.mu.Unlock()
		return 0, nil
	}
	e.seedLoaded = true
	e.mu.Unlock()

	data, err := e.seed.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch seed: %w", err)
	}
	doc, err := backup.Parse(data)
	if err != nil {
		return 0, fmt.Errorf("parse seed: %w", err)
	}
	for i := range doc.Recipes {
		doc.Recipes[i].Category = e.opts.SeedCategory
	}

	_, added, _ := models.MergeByID(e.store.State().Recipes, doc.Recipes)
	if added > 0 {
		e.store.Dispatch(ctx, state.MergeRecipes{Recipes: doc.Recipes})
	}
	return added, nil
}

// PullRemote merges the remote full-collection document into local state and
// returns how many records were added or replaced.
func (e *Engine) PullRemote(ctx context.Context) (int, error) {
	doc, err := e.remote.Read(ctx, e.opts.DocumentPath)
	if err != nil {
		return 0, err
	}
	if doc.Skipped || !doc.Exists {
		return 0, nil
	}
	remote, err := backup.Parse(doc.Content)
	if err != nil {
		return 0, err
	}

	cur := e.store.State()
	_, addedR, replacedR := models.MergeByID(cur.Recipes, remote.Recipes)
	_, addedN, replacedN := models.MergeByID(cur.GeneralNotes, remote.GeneralNotes)
	if addedR+replacedR > 0 {
		e.store.Dispatch(ctx, state.MergeRecipes{Recipes: remote.Recipes})
	}
	if addedN+replacedN > 0 {
		e.store.Dispatch(ctx, state.MergeGeneralNotes{Notes: remote.GeneralNotes})
	}
	return addedR + replacedR + addedN + replacedN, nil
}

// Push writes the whole local state to the remote document. A stale revision
// comes back as Conflict and is not retried.
func (e *Engine) Push(ctx context.Context) github.Outcome {
	path := e.opts.DocumentPath
	doc := backup.FromState(e.store.State())
	if doc.Empty() {
		return github.Outcome{Kind: github.Skipped, Path: path}
	}
	content, err := backup.Marshal(doc)
	if err != nil {
		return github.Outcome{Kind: github.Failed, Path: path, Err: err}
	}

	rev := github.CreateRevision()
	current, err := e.remote.Read(ctx, path)
	switch {
	case err != nil:
		e.logger.Warn("revision read failed, writing as new", "path", path, "err", err)
	case current.Skipped:
		return github.Outcome{Kind: github.Skipped, Path: path}
	default:
		rev = current.Revision()
	}

	now := e.opts.Now()
	out := e.remote.Write(ctx, path, content, rev, "Update recipes - "+now.UTC().Format(time.RFC3339))
	if out.OK() {
		_ = e.lastBackup.Load(ctx)
		_ = e.lastBackup.Set(ctx, now.UTC().Format(time.RFC3339))
		e.logger.Info("pushed", "path", path, "recipes", len(doc.Recipes), "notes", len(doc.GeneralNotes))
	}
	return out
}

func (e *Engine) debouncedPush() {
	e.mu.Lock()
	ctx := e.pushCtx
	e.mu.Unlock()
	if out := e.Push(ctx); !out.OK() && out.Kind != github.Skipped {
		e.logger.Warn("background push did not save", "outcome", out.String())
	}
}

// SaveRecipe upserts r into its category file: replace by id, else prepend.
// Remote failures downgrade the result to local-only; the error return is
// reserved for encoding failures.
func (e *Engine) SaveRecipe(ctx context.Context, r models.Recipe) (SaveResult, error) {
	path := github.PathForCategory(r.Category)
	res := SaveResult{File: path}

	doc, err := e.remote.Read(ctx, path)
	if err != nil {
		e.logger.Warn("category read failed, writing as new", "path", path, "err", err)
		doc = github.Document{Path: path}
	}

	content, err := upsertRecipe(doc.Content, r)
	if err != nil {
		return res, err
	}

	msg := fmt.Sprintf("Update %s - %s", path, e.opts.Now().UTC().Format(time.RFC3339))
	if out := e.remote.Write(ctx, path, content, doc.Revision(), msg); out.OK() {
		res.Saved = SavedGitHub
	} else {
		res.Saved = SavedLocalOnly
		res.Warning = localOnlyWarning
	}
	return res, nil
}

// upsertRecipe edits a category document without touching other records'
// fields. Unreadable documents start over empty.
func upsertRecipe(existing []byte, r models.Recipe) ([]byte, error) {
	var current struct {
		Recipes []json.RawMessage `json:"recipes"`
	}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &current); err != nil {
			current.Recipes = nil
		}
	}

	encoded, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode recipe: %w", err)
	}

	list := make([]json.RawMessage, 0, len(current.Recipes)+1)
	replaced := false
	for _, raw := range current.Recipes {
		var head struct {
			ID *float64 `json:"id"`
		}
		if json.Unmarshal(raw, &head) == nil && head.ID != nil && *head.ID == float64(r.ID) && !replaced {
			list = append(list, encoded)
			replaced = true
			continue
		}
		list = append(list, raw)
	}
	if !replaced {
		list = append([]json.RawMessage{encoded}, list...)
	}

	return json.MarshalIndent(map[string]any{"recipes": list}, "", "  ")
}

// PendingPush reports whether a debounced push is waiting.
func (e *Engine) PendingPush() bool {
	return e.debouncer.Pending()
}

// LastBackup returns the RFC 3339 time of the last successful push, or "".
func (e *Engine) LastBackup(ctx context.Context) string {
	_ = e.lastBackup.Load(ctx)
	return e.lastBackup.Get()
}

// Close stops listening for changes, runs any pending push now, and waits for
// a push the timer already started.
func (e *Engine) Close(ctx context.Context) {
	e.mu.Lock()
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	e.pushCtx = ctx
	e.mu.Unlock()
	e.debouncer.Flush()
	e.debouncer.Wait()
}
