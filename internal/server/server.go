// Package server hosts an http.Handler until its context is done. The CLI
// uses it to serve the in-memory wallet service for local runs.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"
)

const _shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	s *http.Server
}

// NewHTTPServer listens on addr, either "host:port" or a bare port.
func NewHTTPServer(ctx context.Context, addr string, handler http.Handler) *HTTPServer {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = ":" + addr
	}

	return &HTTPServer{
		s: &http.Server{
			Handler:           handler,
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(listener net.Listener) context.Context {
				return ctx
			},
		},
	}
}

func (s *HTTPServer) Addr() string {
	return s.s.Addr
}

// Serve uses l when given, otherwise listens on the configured address.
func (s *HTTPServer) Serve(l net.Listener) error {
	var err error
	if l == nil {
		err = s.s.ListenAndServe()
	} else {
		err = s.s.Serve(l)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.s.Shutdown(ctx)
}

// Run serves on l (or the configured address when l is nil) until ctx is
// done, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(l)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
