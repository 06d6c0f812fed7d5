// Package site serves a built documentation directory over HTTP on the
// loopback interface, so a local build can be crawled like a deployed site.
package site

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrInvalidDir indicates the directory to serve is missing or not a directory.
var ErrInvalidDir = errors.New("invalid docs directory")

// Server serves one directory until Close.
type Server struct {
	srv  *http.Server
	ln   net.Listener
	done chan error
}

// Start serves dir on 127.0.0.1 with a random port.
func Start(dir string) (*Server, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDir, abs)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("listening: %w", err)
	}

	s := &Server{
		srv: &http.Server{
			Handler:           http.FileServer(http.Dir(abs)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		ln:   ln,
		done: make(chan error, 1),
	}
	go func() {
		err := s.srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		s.done <- err
	}()
	return s, nil
}

// URL returns the server root, ending in "/".
func (s *Server) URL() string {
	return "http://" + s.ln.Addr().String() + "/"
}

// Close stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Close(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return err
	}
	return <-s.done
}
