// Package site serves the generated weather page locally.
//
// The page is plain static files (index.html plus data/*.json); serving it
// over HTTP avoids browsers that refuse fetch() from file:// URLs.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Server serves a site directory over HTTP.
type Server struct {
	addr string
	dir  string
	srv  *http.Server
}

// NewServer creates a Server for dir on addr.
func NewServer(addr, dir string) *Server {
	return &Server{addr: addr, dir: dir}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if info, err := os.Stat(s.dir); err != nil || !info.IsDir() {
		return fmt.Errorf("site directory %s does not exist", s.dir)
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(s.dir)))

	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
