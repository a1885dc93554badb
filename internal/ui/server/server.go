// Package server serves the portfolio page and its WebAssembly bundle for
// local development.
package server

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Its-donkey/Sharpen-portfolio/logging"
	"github.com/Its-donkey/Sharpen-portfolio/site"
)

// Config holds server configuration.
type Config struct {
	// Dir is checked first for every asset. Files missing from it fall back
	// to the embedded page.
	Dir             string
	AllowAllOrigins bool
}

// Server is the static development server.
type Server struct {
	cfg        Config
	logger     *logging.Logger
	embedded   fs.FS
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. A nil logger discards request logs.
func New(cfg Config, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Server{cfg: cfg, logger: logger, embedded: site.Assets}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(logging.NewHTTPLogger(s.logger).Middleware)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/*", http.HandlerFunc(s.serveAsset))

	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := path.Clean("/" + r.URL.Path)
	if name == "/" {
		name = "/index.html"
	}
	if strings.HasSuffix(name, ".wasm") {
		w.Header().Set("Content-Type", "application/wasm")
	}

	if s.cfg.Dir != "" {
		full := filepath.Join(s.cfg.Dir, filepath.FromSlash(name))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			http.ServeFile(w, r, full)
			return
		}
	}
	rel := strings.TrimPrefix(name, "/")
	if info, err := fs.Stat(s.embedded, rel); err == nil && !info.IsDir() {
		http.ServeFileFS(w, r, s.embedded, rel)
		return
	}
	http.NotFound(w, r)
}

// Start listens on addr and blocks until the server stops. A clean Shutdown
// returns nil.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("server", "serving site", map[string]any{"addr": addr, "dir": s.cfg.Dir})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
