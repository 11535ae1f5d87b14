// ABOUTME: Client for the GitHub repository contents API.
// ABOUTME: Reads and writes whole JSON documents guarded by blob SHAs.

package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const DefaultBaseURL = "https://api.github.com"

var (
	ErrNotConfigured  = errors.New("github token, owner, or repository not configured")
	ErrMissingSHA     = errors.New("update revision requires a sha")
	ErrStaleRevision  = errors.New("remote file changed since it was read")
	ErrInvalidPayload = errors.New("unexpected contents response")
)

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("github http %d: %s", e.StatusCode, e.Message)
}

type Config struct {
	Owner   string
	Repo    string
	Token   string
	BaseURL string
}

func (c Config) Configured() bool {
	return c.Token != "" && c.Owner != "" && c.Repo != ""
}

type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *log.Logger
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
		logger:     log.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithPrefix("github")
	return c
}

func (c *Client) Configured() bool { return c.cfg.Configured() }

type contentsResponse struct {
	SHA      string `json:"sha"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type writeRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

type writeResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

// Read fetches path. A missing file is an empty document, not an error.
func (c *Client) Read(ctx context.Context, path string) (Document, error) {
	doc := Document{Path: path}
	if !c.Configured() {
		c.logger.Warn("not configured, skipping read", "path", path)
		doc.Skipped = true
		return doc, nil
	}

	var resp contentsResponse
	err := c.do(ctx, http.MethodGet, c.contentsPath(path), nil, &resp)
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read %s: %w", path, err)
	}

	content, err := decodeContent(resp.Content)
	if err != nil {
		return doc, fmt.Errorf("read %s: %w", path, err)
	}
	doc.Content = content
	doc.SHA = resp.SHA
	doc.Exists = true
	return doc, nil
}

// Write stores content at path. An update revision whose sha no longer
// matches comes back as Conflict and is not retried.
func (c *Client) Write(ctx context.Context, path string, content []byte, rev Revision, message string) Outcome {
	out := Outcome{Path: path}
	if !c.Configured() {
		c.logger.Warn("not configured, skipping write", "path", path)
		out.Kind = Skipped
		return out
	}
	if rev.IsUpdate() && rev.SHA() == "" {
		out.Kind = Failed
		out.Err = ErrMissingSHA
		c.logger.Error("write rejected", "path", path, "err", out.Err)
		return out
	}
	if message == "" {
		message = fmt.Sprintf("Update %s - %s", path, c.now().UTC().Format(time.RFC3339))
	}

	body := writeRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     rev.SHA(),
	}
	var resp writeResponse
	err := c.do(ctx, http.MethodPut, c.contentsPath(path), body, &resp)
	var httpErr *HTTPError
	switch {
	case err == nil:
		out.Kind = Saved
		out.SHA = resp.Content.SHA
		c.logger.Debug("saved", "path", path, "revision", rev, "sha", out.SHA)
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusConflict:
		out.Kind = Conflict
		out.Err = fmt.Errorf("%w: %v", ErrStaleRevision, err)
		c.logger.Warn("write conflict", "path", path, "revision", rev)
	default:
		out.Kind = Failed
		out.Err = err
		c.logger.Error("write failed", "path", path, "err", err)
	}
	return out
}

// CheckAccess confirms the token can see the repository.
func (c *Client) CheckAccess(ctx context.Context) error {
	if !c.Configured() {
		return ErrNotConfigured
	}
	return c.do(ctx, http.MethodGet, c.repoPath(), nil, nil)
}

func (c *Client) repoPath() string {
	return "/repos/" + url.PathEscape(c.cfg.Owner) + "/" + url.PathEscape(c.cfg.Repo)
}

func (c *Client) contentsPath(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return c.repoPath() + "/contents/" + strings.Join(segments, "/")
}

func (c *Client) do(ctx context.Context, method, requestPath string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+requestPath, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-Correlation-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	payload, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return readErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if out == nil || len(payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(payload, out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return nil
	}

	var errPayload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(payload, &errPayload)
	if errPayload.Message == "" {
		errPayload.Message = http.StatusText(resp.StatusCode)
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: errPayload.Message}
}

// decodeContent decodes the base64 body, which the API wraps at 60 columns.
func decodeContent(s string) ([]byte, error) {
	s = strings.NewReplacer("\n", "", "\r", "").Replace(s)
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}
