// ABOUTME: Tests for the key-value backends and DSN selection.
// ABOUTME: Postgres and redis run only when their test DSNs are set.

package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Get(ctx, "missing-key"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := b.Set(ctx, KeyRecipes, []byte(`[1]`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := b.Set(ctx, KeyRecipes, []byte(`[1,2]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, err := b.Get(ctx, KeyRecipes)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != `[1,2]` {
		t.Errorf("expected [1,2], got %s", got)
	}
}

func TestMemoryBackend(t *testing.T) {
	b, err := OpenMemory()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestBadgerBackendPersists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")

	b, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	exerciseBackend(t, b)
	if err := b.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), KeyRecipes)
	if err != nil || string(got) != `[1,2]` {
		t.Errorf("expected value to survive reopen, got %s, %v", got, err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "kv.db"))
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestPostgresBackend(t *testing.T) {
	dsn := os.Getenv("RECIPEBOOK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RECIPEBOOK_TEST_POSTGRES_DSN not set")
	}
	b, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestRedisBackend(t *testing.T) {
	url := os.Getenv("RECIPEBOOK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("RECIPEBOOK_TEST_REDIS_URL not set")
	}
	b, err := OpenRedis(url)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer b.Close()
	exerciseBackend(t, b)
}

func TestOpenSelectsBackendByScheme(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		dsn  string
		want string
	}{
		{"memory://", "*kv.BadgerBackend"},
		{"sqlite://" + filepath.Join(dir, "a.db"), "*kv.SQLiteBackend"},
		{"badger://" + filepath.Join(dir, "b"), "*kv.BadgerBackend"},
		{filepath.Join(dir, "c"), "*kv.BadgerBackend"},
	}
	for _, tc := range cases {
		b, err := Open(tc.dsn)
		if err != nil {
			t.Fatalf("open %q failed: %v", tc.dsn, err)
		}
		if got := fmt.Sprintf("%T", b); got != tc.want {
			t.Errorf("open %q: expected %s, got %s", tc.dsn, tc.want, got)
		}
		b.Close()
	}
}

func TestOpenRejectsUnknownScheme(t *testing.T) {
	if _, err := Open("mysql://localhost/db"); !errors.Is(err, ErrInvalidDSN) {
		t.Errorf("expected ErrInvalidDSN, got %v", err)
	}
}
