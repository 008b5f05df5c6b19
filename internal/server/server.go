// Package server exposes the terminal, the connection settings and the file
// panel over HTTP and a websocket, and serves the embedded web UI.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/quocvuong92/remote-hub/internal/constants"
	"github.com/quocvuong92/remote-hub/internal/files"
	"github.com/quocvuong92/remote-hub/internal/logging"
	"github.com/quocvuong92/remote-hub/internal/terminal"
)

//go:embed web
var webFS embed.FS

// Options configures a Server.
type Options struct {
	ListenAddr     string
	MaxUploadBytes int64
	UploadDelay    time.Duration
	Logger         *logging.Logger
}

// Server owns the shared terminal session and file panel.
type Server struct {
	opts    Options
	session *terminal.Session
	panel   *files.Panel
	hub     *hub
	log     *logging.FieldLogger
}

// New creates a server around session. Every file record is described by
// describer. Every session operation, whatever its source, is pushed to
// websocket clients in the order the operations ran.
func New(session *terminal.Session, describer files.Describer, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.DefaultLogger
	}
	s := &Server{
		opts:    opts,
		session: session,
		hub:     newHub(opts.Logger),
		log:     opts.Logger.WithFields(logging.Fields{"component": "server"}),
	}
	s.panel = files.NewPanel(describer, files.Options{
		UploadDelay: opts.UploadDelay,
		Observer:    s.publishFile,
		Logger:      opts.Logger,
	})
	session.SetObserver(s.publishSnapshot)
	return s
}

// Panel returns the file panel.
func (s *Server) Panel() *files.Panel {
	return s.panel
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/terminal", func(r chi.Router) {
			r.Get("/", s.handleTerminal)
			r.Post("/submit", s.handleSubmit)
			r.Put("/input", s.handleInput)
			r.Post("/history/previous", s.handlePrevious)
			r.Post("/history/next", s.handleNext)
			r.Get("/ws", s.handleTerminalWS)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleSettings)
			r.Post("/open", s.handleOpenSettings)
			r.Put("/staged", s.handleStageSettings)
			r.Post("/save", s.handleSaveSettings)
			r.Post("/cancel", s.handleCancelSettings)
		})

		r.Route("/files", func(r chi.Router) {
			r.Get("/", s.handleListFiles)
			r.Post("/", s.handleUpload)
			r.Post("/remote", s.handleRemote)
		})
	})

	// SPA static files (embedded)
	distFS, _ := fs.Sub(webFS, "web")
	spa := NewSPAHandler(distFS)
	r.NotFound(spa.ServeHTTP)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully and waits for
// pending file lifecycles.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.opts.ListenAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", logging.Fields{"addr": s.opts.ListenAddr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	s.hub.closeAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	s.panel.Wait()
	s.log.Info("server stopped")
	return nil
}

func (s *Server) publishSnapshot(snap terminal.Snapshot) {
	s.hub.broadcast(ServerFrame{Type: FrameSnapshot, Snapshot: &snap})
}

func (s *Server) publishFile(r files.Record) {
	s.hub.broadcast(ServerFrame{Type: FrameFile, File: &r})
}
