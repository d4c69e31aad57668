// Package ui provides the web console server for Quarterdeck.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/quarterdeck-labs/quarterdeck/internal/console"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/notifier"
	"github.com/quarterdeck-labs/quarterdeck/internal/ui/router"
	"golang.org/x/sync/errgroup"
)

// Server is the web console server.
type Server struct {
	source       console.Source
	sessionStore *sessions.CookieStore
	port         int
	pageSize     int
	watchDir     string
	reload       func() error
	logger       *slog.Logger
	notifier     *notifier.Notifier
}

// Config holds configuration for the console server.
type Config struct {
	Source        console.Source
	Port          int
	PageSize      int
	SessionSecret string
	Logger        *slog.Logger

	// WatchDir, when set, is a fixtures directory watched for changes;
	// Reload is invoked before connected browsers are refreshed.
	WatchDir string
	Reload   func() error
}

// NewServer creates a new console server instance.
func NewServer(cfg Config) *Server {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400 * 30) // 30 days
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		source:       cfg.Source,
		sessionStore: sessionStore,
		port:         cfg.Port,
		pageSize:     cfg.PageSize,
		watchDir:     cfg.WatchDir,
		reload:       cfg.Reload,
		logger:       cfg.Logger,
		notifier:     notifier.New(),
	}
}

// Serve starts the console server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting console server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	if err := router.SetupRoutes(r, s.source, s.sessionStore, s.notifier, s.pageSize, s.IsDev()); err != nil {
		return fmt.Errorf("failed to setup routes: %w", err)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Watch the fixtures directory if configured
	if s.watchDir != "" {
		eg.Go(func() error {
			return s.watchFixtures(egctx)
		})
	}

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

		s.logger.Debug("shutting down console server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// IsDev returns true if running in development mode.
func (s *Server) IsDev() bool {
	// Can be determined by build tag or config
	return true // For now, always dev mode
}

// Notifier returns the server's notifier for SSE updates.
func (s *Server) Notifier() *notifier.Notifier {
	return s.notifier
}

// watchFixtures watches the fixtures directory and pushes updates to
// connected browsers when a fixture file changes.
func (s *Server) watchFixtures(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.watchDir); err != nil {
		s.logger.Error("failed to watch fixtures directory", "dir", s.watchDir, "error", err)
		// Don't fail - continue without watching
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if filepath.Ext(event.Name) != ".json" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("fixture changed, reloading", "file", event.Name)

				if s.reload != nil {
					if err := s.reload(); err != nil {
						s.logger.Error("fixture reload failed", "error", err)
						return
					}
				}

				// Notify all SSE clients
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}
