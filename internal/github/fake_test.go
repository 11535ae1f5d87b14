// ABOUTME: In-memory fake of the contents API for client tests.
// ABOUTME: Enforces sha matching on writes the way the real service does.

package github

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type fakeRepo struct {
	mu       sync.Mutex
	files    map[string][]byte
	shas     map[string]string
	requests []*http.Request
	status   int
}

func newFakeRepo(t *testing.T) (*fakeRepo, *httptest.Server) {
	t.Helper()
	repo := &fakeRepo{files: map[string][]byte{}, shas: map[string]string{}}
	srv := httptest.NewServer(http.HandlerFunc(repo.serve))
	t.Cleanup(srv.Close)
	return repo, srv
}

func (f *fakeRepo) put(path string, content []byte) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.putLocked(path, content)
}

func (f *fakeRepo) putLocked(path string, content []byte) string {
	sum := sha1.Sum(content)
	sha := hex.EncodeToString(sum[:])
	f.files[path] = content
	f.shas[path] = sha
	return sha
}

func (f *fakeRepo) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *fakeRepo) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r)

	if f.status != 0 {
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(`{"message":"forced"}`))
		return
	}
	if r.Header.Get("Authorization") != "Bearer test-token" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
		return
	}

	const prefix = "/repos/owner/repo"
	if r.URL.Path == prefix {
		_, _ = w.Write([]byte(`{"full_name":"owner/repo"}`))
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
		encoded := base64.StdEncoding.EncodeToString(content)
		// the real API wraps the payload at 60 columns
		var wrapped strings.Builder
		for len(encoded) > 60 {
			wrapped.WriteString(encoded[:60] + "\n")
			encoded = encoded[60:]
		}
		wrapped.WriteString(encoded)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sha":      f.shas[path],
			"content":  wrapped.String(),
			"encoding": "base64",
		})
	case http.MethodPut:
		var req writeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		current, exists := f.shas[path]
		if (exists && req.SHA != current) || (!exists && req.SHA != "") {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"message":"sha does not match"}`))
			return
		}
		content, err := base64.StdEncoding.DecodeString(req.Content)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		sha := f.putLocked(path, content)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"content": map[string]string{"sha": sha}})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestClient(srv *httptest.Server) *Client {
	return New(Config{Owner: "owner", Repo: "repo", Token: "test-token", BaseURL: srv.URL})
}
