// ABOUTME: Sources for the bundled seed recipe document.
// ABOUTME: Seeds come from a URL or a local file and are read once per process.

package sync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// SeedSource returns the raw seed document {"recipes": [...]}.
type SeedSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type HTTPSeed struct {
	URL    string
	Client *http.Client
}

func (s HTTPSeed) Fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("seed %s: http %d", s.URL, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type FileSeed struct {
	Path string
}

func (s FileSeed) Fetch(context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}
