// Package ui provides the formbot web dashboard server.
package ui

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/formbot/internal/api"
	"github.com/leapstack-labs/formbot/internal/dashboard"
	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/notifier"
	"github.com/leapstack-labs/formbot/internal/ui/resources"
	"github.com/leapstack-labs/formbot/internal/ui/router"
	"github.com/leapstack-labs/formbot/internal/ui/session"
)

// DefaultViewIdle is how long a dashboard view survives without a stream.
const DefaultViewIdle = 2 * time.Minute

// Server is the main UI server.
type Server struct {
	client       *api.Client
	views        *dashboard.Registry
	sessionStore *sessions.CookieStore
	port         int
	watch        bool
	staticDir    string
	authURL      string
	workspaceURL string
	defaultTheme settings.Theme
	viewIdle     time.Duration
	logger       *slog.Logger
	reload       *notifier.Notifier
}

// Config holds configuration for the UI server.
type Config struct {
	Client        *api.Client
	Port          int
	Watch         bool
	SessionSecret string
	// SessionMaxAge is in seconds.
	SessionMaxAge int
	AuthURL       string
	WorkspaceURL  string
	DefaultTheme  settings.Theme
	ViewIdle      time.Duration
	Logger        *slog.Logger
	// StaticDir overrides the directory watched for asset changes.
	StaticDir string
}

// NewServer creates a new UI server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	idle := cfg.ViewIdle
	if idle <= 0 {
		idle = DefaultViewIdle
	}
	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = resources.Dir()
	}
	theme := cfg.DefaultTheme
	if theme == "" {
		theme = settings.DefaultTheme
	}

	return &Server{
		client:       cfg.Client,
		views:        dashboard.NewRegistry(),
		sessionStore: session.NewCookieStore(cfg.SessionSecret, cfg.SessionMaxAge),
		port:         cfg.Port,
		watch:        cfg.Watch,
		staticDir:    staticDir,
		authURL:      cfg.AuthURL,
		workspaceURL: cfg.WorkspaceURL,
		defaultTheme: theme,
		viewIdle:     idle,
		logger:       logger,
		reload:       notifier.New(),
	}
}

// Handler builds the router with middleware and all feature routes.
func (s *Server) Handler() (http.Handler, error) {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.client, s.views, s.sessionStore, router.Options{
		AuthURL:      s.authURL,
		WorkspaceURL: s.workspaceURL,
		DefaultTheme: s.defaultTheme,
		IsDev:        s.IsDev(),
		Logger:       s.logger,
		Reload:       s.reload,
	}); err != nil {
		return nil, fmt.Errorf("failed to setup routes: %w", err)
	}
	return r, nil
}

// Serve starts the UI server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting UI server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	handler, err := s.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start asset watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Drop dashboard views whose tab went away
	eg.Go(func() error {
		s.sweepViews(egctx)
		return nil
	})

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down UI server...")
		s.views.Close()
		s.reload.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true when assets are served from disk or watched.
func (s *Server) IsDev() bool {
	return resources.IsDev || s.watch
}

// Views returns the server's dashboard view registry.
func (s *Server) Views() *dashboard.Registry {
	return s.views
}

// sweepViews periodically unmounts views without an open stream.
func (s *Server) sweepViews(ctx context.Context) {
	ticker := time.NewTicker(s.viewIdle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.views.Sweep(now, s.viewIdle); n > 0 {
				s.logger.Debug("swept idle dashboard views", "count", n, "remaining", s.views.Len())
			}
		}
	}
}

// watchFiles watches the static asset directory and asks browsers to reload.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDirRecursive(watcher, s.staticDir); err != nil {
		s.logger.Error("failed to watch static directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if !isAsset(event.Name) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := event.Name
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("asset changed, reloading browsers", "file", name)
				s.reload.Broadcast()
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

func isAsset(name string) bool {
	switch filepath.Ext(name) {
	case ".css", ".js", ".svg", ".png", ".ico":
		return true
	}
	return false
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
