// ABOUTME: HTTP surface exposing the per-category recipe save endpoint.
// ABOUTME: Routes with httprouter behind CORS, rate limiting, and request logging.

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"

	"github.com/harper/recipebook/internal/models"
	"github.com/harper/recipebook/internal/sync"
)

const (
	SavePath   = "/api/recipes/save"
	HealthPath = "/health"

	invalidPayload = "Invalid recipe payload"
	maxBodyBytes   = 5 << 20
	shutdownGrace  = 10 * time.Second
)

// Saver persists one recipe to its category file.
type Saver interface {
	SaveRecipe(ctx context.Context, r models.Recipe) (sync.SaveResult, error)
}

type Options struct {
	Addr        string
	CORSOrigins []string
	RateLimit   float64
	Burst       int
	Logger      *log.Logger
}

type Server struct {
	saver   Saver
	opts    Options
	limiter *RateLimiter
	logger  *log.Logger
}

type saveRequest struct {
	Recipe json.RawMessage `json:"recipe"`
}

type saveResponse struct {
	OK bool `json:"ok"`
	sync.SaveResult
}

type errorBody struct {
	Error string `json:"error"`
}

func New(saver Saver, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Server{
		saver:   saver,
		opts:    opts,
		limiter: NewRateLimiter(opts.RateLimit, opts.Burst),
		logger:  opts.Logger.WithPrefix("http"),
	}
}

// Handler returns the full middleware chain around the router.
func (s *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET(HealthPath, s.health)
	router.POST(SavePath, s.limiter.Limit(s.saveRecipe))

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	return s.logRequests(securityHeaders(c.Handler(router)))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) saveRecipe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	recipe, ok := decodeSave(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: invalidPayload})
		return
	}

	res, err := s.saver.SaveRecipe(r.Context(), recipe)
	if err != nil {
		s.logger.Error("save recipe", "id", recipe.ID, "err", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResponse{OK: true, SaveResult: res})
}

// decodeSave accepts {"recipe": {...}} whose id is a JSON integer.
func decodeSave(body io.Reader) (models.Recipe, bool) {
	var req saveRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil || len(req.Recipe) == 0 {
		return models.Recipe{}, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(req.Recipe, &fields); err != nil || fields == nil {
		return models.Recipe{}, false
	}
	if !isInteger(fields["id"]) {
		return models.Recipe{}, false
	}

	var recipe models.Recipe
	if err := json.Unmarshal(req.Recipe, &recipe); err != nil {
		return models.Recipe{}, false
	}
	return recipe, true
}

func isInteger(raw json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return false
	}
	n, ok := v.(json.Number)
	if !ok {
		return false
	}
	_, err := n.Int64()
	return err == nil
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", clientIP(r),
			"duration", time.Since(start))
	})
}
