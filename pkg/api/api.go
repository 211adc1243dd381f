// Package api serves the search portal: the HTML search UI, account
// login/registration, and a small JSON API over the shared index.
package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dkarwin/scour/pkg/index"
)

const (
	defaultTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Config holds the configuration for the API server.
type Config struct {
	Listen string `mapstructure:"listen"`
}

// Searcher answers one query line against the shared index.
type Searcher interface {
	Search(line string, exact bool) []index.Result
}

// IndexStats exposes the read-side index figures the portal displays.
type IndexStats interface {
	NumTerms() int
	CountedLocations() []string
	Count(location string) int
}

// UserStore persists portal accounts.
type UserStore interface {
	Register(username, password string) error
	Authenticate(username, password string) error
}

// ViewRenderer renders the portal's HTML pages.
type ViewRenderer interface {
	RenderHome(w io.Writer, terms, locations int, user string) error
	RenderSearch(w io.Writer, query string, exact bool, results []index.Result, user string) error
	RenderLocations(w io.Writer, locations []LocationCount, user string) error
	RenderLogin(w io.Writer, message string) error
	RenderRegister(w io.Writer, message string) error
}

// LocationCount is one row of the locations page.
type LocationCount struct {
	Location string
	Count    int
}

// API is the HTTP server fronting the engine.
type API struct {
	config   Config
	searcher Searcher
	stats    IndexStats
	users    UserStore
	views    ViewRenderer
	sessions *sessionStore
}

// New creates an API instance. The listen address must be set; users may be
// nil, which disables the account pages.
func New(cfg Config, searcher Searcher, stats IndexStats, users UserStore, views ViewRenderer) (*API, error) {
	if cfg.Listen == "" {
		return nil, fmt.Errorf("listen address must be specified")
	}

	return &API{
		config:   cfg,
		searcher: searcher,
		stats:    stats,
		users:    users,
		views:    views,
		sessions: newSessionStore(),
	}, nil
}

// Run starts the server and blocks until the context is cancelled or the
// listener fails. On cancellation, in-flight requests get a bounded grace
// period before the server is forcefully closed.
func (a *API) Run(ctx context.Context) error {
	s := &http.Server{
		Addr:              a.config.Listen,
		ReadHeaderTimeout: defaultTimeout,
		WriteTimeout:      defaultTimeout,
		Handler:           a.newMux(),
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.WarnContext(ctx, "shutting down API server")

		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "graceful shutdown failed, forcing close", "error", err)

			if closeErr := s.Close(); closeErr != nil {
				slog.ErrorContext(ctx, "forced close failed", "error", closeErr)
			}
		}
	}()

	if err := s.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	return nil
}
