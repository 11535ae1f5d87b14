// ABOUTME: Typed JSON value bound to one key of a Backend.
// ABOUTME: Loads once, then writes through on every change.

package kv

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// Value holds the in-memory copy of one persisted key. It starts at its
// default and is usable for reads before Load; writes require Load first.
type Value[T any] struct {
	backend Backend
	key     string
	logger  *log.Logger

	mu     sync.RWMutex
	value  T
	loaded bool
}

func NewValue[T any](backend Backend, key string, def T, logger *log.Logger) *Value[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Value[T]{
		backend: backend,
		key:     key,
		logger:  logger.With("key", key),
		value:   def,
	}
}

// Load reads the stored value once. A missing key or unreadable payload keeps
// the default; only storage failures are returned, and they leave the value
// unloaded so writes stay blocked until a later Load succeeds.
func (v *Value[T]) Load(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.loaded {
		return nil
	}

	data, err := v.backend.Get(ctx, v.key)
	if errors.Is(err, ErrNotFound) {
		v.loaded = true
		return nil
	}
	if err != nil {
		v.logger.Warn("read failed, using default", "err", err)
		return err
	}
	v.loaded = true

	if string(data) == "null" {
		return nil
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		v.logger.Warn("stored value unreadable, using default", "err", err)
		return nil
	}
	v.value = decoded
	return nil
}

func (v *Value[T]) Loaded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loaded
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// Set replaces the value and persists it. On a persistence error the
// in-memory value is still updated.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setLocked(ctx, value)
}

// Update applies fn to the current value and persists the result.
func (v *Value[T]) Update(ctx context.Context, fn func(T) T) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.loaded {
		v.logger.Warn("update before load ignored")
		return ErrNotLoaded
	}
	return v.setLocked(ctx, fn(v.value))
}

func (v *Value[T]) setLocked(ctx context.Context, value T) error {
	if !v.loaded {
		v.logger.Warn("write before load ignored")
		return ErrNotLoaded
	}
	v.value = value

	data, err := json.Marshal(value)
	if err != nil {
		v.logger.Error("encode failed", "err", err)
		return err
	}
	if err := v.backend.Set(ctx, v.key, data); err != nil {
		v.logger.Error("write failed", "err", err)
		return err
	}
	return nil
}
