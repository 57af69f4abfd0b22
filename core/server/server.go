// Package server exposes the work log and summary orchestrator over
// authenticated loopback HTTP for the external web viewer.
package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/adalundhe/aw/core/generate"
)

// Options configures a server instance.
type Options struct {
	Port     int
	DBPath   string
	BaseURL  string // optional web viewer base URL override
	Provider generate.Provider
	Logger   *slog.Logger
}

// Server is one explicit server instance: bearer token, listener, and
// lifecycle. No process-wide state is held; every request re-opens the
// store.
type Server struct {
	opts   Options
	token  string
	logger *slog.Logger
	http   *http.Server
}

// New builds a server and mints its bearer token. The token lives only in
// process memory and is required on every request except the liveness
// check.
func New(opts Options) (*Server, error) {
	if opts.DBPath == "" {
		return nil, errors.New("server: db path is required")
	}
	if opts.Provider == nil {
		return nil, errors.New("server: generation provider is required")
	}

	token, err := mintToken()
	if err != nil {
		return nil, fmt.Errorf("mint token: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{opts: opts, token: token, logger: logger}
	s.http = &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", opts.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // summary generation streams for as long as it takes
	}
	return s, nil
}

// Token returns the bearer token for this instance.
func (s *Server) Token() string { return s.token }

// URL returns the tokened address to open in a browser.
func (s *Server) URL() string {
	base := s.opts.BaseURL
	if base == "" {
		base = fmt.Sprintf("http://127.0.0.1:%d", s.opts.Port)
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%stoken=%s", base, sep, s.token)
}

// Start serves until ctx is canceled, then drains in-flight requests
// before returning.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.http.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func mintToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
