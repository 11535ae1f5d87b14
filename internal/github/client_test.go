// ABOUTME: Tests for the contents API client.
// ABOUTME: Covers read misses, revision handling, conflicts, and unconfigured clients.

package github

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/recipebook/internal/models"
)

func TestReadMissingFileIsEmpty(t *testing.T) {
	_, srv := newFakeRepo(t)
	c := newTestClient(srv)

	doc, err := c.Read(context.Background(), "public/pizza.json")
	require.NoError(t, err)
	assert.False(t, doc.Exists)
	assert.Empty(t, doc.Content)
	assert.Empty(t, doc.SHA)
	assert.False(t, doc.Revision().IsUpdate())
}

func TestReadDecodesWrappedContent(t *testing.T) {
	repo, srv := newFakeRepo(t)
	body := []byte(`{"recipes":[` + strings.Repeat(`{"id":1},`, 20) + `{"id":2}]}`)
	sha := repo.put(DefaultDocumentPath, body)

	doc, err := newTestClient(srv).Read(context.Background(), DefaultDocumentPath)
	require.NoError(t, err)
	assert.True(t, doc.Exists)
	assert.Equal(t, string(body), string(doc.Content))
	assert.Equal(t, sha, doc.SHA)
	assert.Equal(t, UpdateRevision(sha), doc.Revision())
}

func TestReadServerErrorIsHTTPError(t *testing.T) {
	repo, srv := newFakeRepo(t)
	repo.status = http.StatusInternalServerError

	_, err := newTestClient(srv).Read(context.Background(), DefaultDocumentPath)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
}

func TestWriteCreateThenUpdate(t *testing.T) {
	_, srv := newFakeRepo(t)
	c := newTestClient(srv)
	ctx := context.Background()

	out := c.Write(ctx, "public/sauce.json", []byte(`{"recipes":[]}`), CreateRevision(), "")
	require.True(t, out.OK(), out.String())
	require.NotEmpty(t, out.SHA)

	doc, err := c.Read(ctx, "public/sauce.json")
	require.NoError(t, err)
	out = c.Write(ctx, "public/sauce.json", []byte(`{"recipes":[{"id":1}]}`), doc.Revision(), "update")
	assert.True(t, out.OK(), out.String())
}

func TestWriteStaleRevisionConflicts(t *testing.T) {
	repo, srv := newFakeRepo(t)
	c := newTestClient(srv)
	ctx := context.Background()
	stale := repo.put(DefaultDocumentPath, []byte(`{"recipes":[]}`))
	repo.put(DefaultDocumentPath, []byte(`{"recipes":[{"id":9}]}`))

	out := c.Write(ctx, DefaultDocumentPath, []byte(`{}`), UpdateRevision(stale), "")

	assert.Equal(t, Conflict, out.Kind)
	assert.False(t, out.OK())
	assert.True(t, errors.Is(out.Err, ErrStaleRevision))
	doc, err := c.Read(ctx, DefaultDocumentPath)
	require.NoError(t, err)
	assert.Equal(t, `{"recipes":[{"id":9}]}`, string(doc.Content), "remote must be unchanged")
}

func TestWriteCreateOverExistingConflicts(t *testing.T) {
	repo, srv := newFakeRepo(t)
	repo.put(DefaultDocumentPath, []byte(`{}`))

	out := newTestClient(srv).Write(context.Background(), DefaultDocumentPath, []byte(`{"x":1}`), CreateRevision(), "")
	assert.Equal(t, Conflict, out.Kind)
}

func TestWriteUpdateWithoutSHARejectedBeforeIO(t *testing.T) {
	repo, srv := newFakeRepo(t)

	out := newTestClient(srv).Write(context.Background(), DefaultDocumentPath, []byte(`{}`), UpdateRevision(""), "")

	assert.Equal(t, Failed, out.Kind)
	assert.ErrorIs(t, out.Err, ErrMissingSHA)
	assert.Zero(t, repo.requestCount())
}

func TestUnconfiguredClientSkips(t *testing.T) {
	repo, srv := newFakeRepo(t)
	c := New(Config{Owner: "owner", Repo: "repo", BaseURL: srv.URL})
	ctx := context.Background()

	doc, err := c.Read(ctx, DefaultDocumentPath)
	require.NoError(t, err)
	assert.True(t, doc.Skipped)

	out := c.Write(ctx, DefaultDocumentPath, []byte(`{}`), CreateRevision(), "")
	assert.Equal(t, Skipped, out.Kind)
	assert.False(t, out.OK())

	assert.ErrorIs(t, c.CheckAccess(ctx), ErrNotConfigured)
	assert.Zero(t, repo.requestCount())
}

func TestCheckAccess(t *testing.T) {
	_, srv := newFakeRepo(t)
	assert.NoError(t, newTestClient(srv).CheckAccess(context.Background()))

	bad := New(Config{Owner: "owner", Repo: "repo", Token: "wrong", BaseURL: srv.URL})
	var httpErr *HTTPError
	require.ErrorAs(t, bad.CheckAccess(context.Background()), &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestRequestsCarryHeaders(t *testing.T) {
	repo, srv := newFakeRepo(t)
	_, _ = newTestClient(srv).Read(context.Background(), "data/recipes.json")

	require.Equal(t, 1, repo.requestCount())
	req := repo.requests[0]
	assert.Equal(t, "application/vnd.github.v3+json", req.Header.Get("Accept"))
	assert.NotEmpty(t, req.Header.Get("X-Correlation-Id"))
	assert.Equal(t, "/repos/owner/repo/contents/data/recipes.json", req.URL.Path)
}

func TestPathForCategory(t *testing.T) {
	cases := map[models.Category]string{
		models.CategorySauce:    "public/sauce.json",
		models.CategoryPizza:    "public/pizza.json",
		models.CategoryDough:    "public/dough.json",
		models.CategoryToppings: "public/toppings.json",
		models.CategoryOther:    "public/recipes.json",
		models.CategoryNone:     "public/recipes.json",
	}
	for cat, want := range cases {
		assert.Equal(t, want, PathForCategory(cat), "category %q", cat)
	}
}
