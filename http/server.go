// Package http serves rendered documents over HTTP.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/viewdocs"
)

// DefaultPortAttempts is the number of consecutive ports Open tries.
const DefaultPortAttempts = 10

// ShutdownTimeout is the time given to in-flight requests on Close.
const ShutdownTimeout = 5 * time.Second

// Server serves documents from a DocumentService over HTTP.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *http.ServeMux

	// Host and Port are the requested listen address. Port 0 picks an
	// ephemeral port.
	Host string
	Port int

	// Attempts is the number of consecutive ports tried, starting at Port.
	Attempts int

	// Target is the served root. Static files are read from Target.Root and
	// "/" serves Target.DefaultFile.
	Target *viewdocs.Target

	// ProjectName is shown in the sidebar and page titles.
	ProjectName string

	// Exclude lists directories whose static files are never served.
	Exclude viewdocs.ExcludeSet

	// Stylesheet is served as the code highlighting CSS.
	Stylesheet string

	// LiveReload enables the page script that polls for changes.
	LiveReload bool

	Logger *slog.Logger

	DocumentService viewdocs.DocumentService
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{
			ReadHeaderTimeout: 10 * time.Second,
		},
		router:     http.NewServeMux(),
		Host:       "localhost",
		Attempts:   DefaultPortAttempts,
		LiveReload: true,
		Logger:     slog.New(slog.DiscardHandler),
	}
	s.server.Handler = s
	s.registerRoutes()
	return s
}

// Open binds the first free port in Port..Port+Attempts-1 and begins
// serving in a separate goroutine. Returns EUNAVAILABLE if every port in
// the range is taken.
func (s *Server) Open() error {
	if s.Target == nil {
		return viewdocs.Errorf(viewdocs.EINVALID, "server target required")
	} else if s.DocumentService == nil {
		return viewdocs.Errorf(viewdocs.EINVALID, "server document service required")
	} else if s.Port < 0 || s.Port > 65535 {
		return viewdocs.Errorf(viewdocs.EINVALID, "invalid port %d: must be between 0 and 65535", s.Port)
	}

	ln, err := s.listen()
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

func (s *Server) listen() (net.Listener, error) {
	if s.Port == 0 {
		ln, err := net.Listen("tcp", net.JoinHostPort(s.Host, "0"))
		if err != nil {
			return nil, viewdocs.Errorf(viewdocs.EUNAVAILABLE, "cannot listen on %s: %v", s.Host, err)
		}
		return ln, nil
	}

	attempts := max(s.Attempts, 1)
	last := min(s.Port+attempts-1, 65535)

	var lastErr error
	for port := s.Port; port <= last; port++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(s.Host, strconv.Itoa(port)))
		if err == nil {
			if port != s.Port {
				s.Logger.Warn("requested port in use", "requested", s.Port, "port", port)
			}
			return ln, nil
		}
		lastErr = err
		s.Logger.Debug("port unavailable", "port", port, "err", err)
	}
	return nil, viewdocs.Errorf(viewdocs.EUNAVAILABLE,
		"no available port in range %d-%d on %s (last error: %v); stop the process using port %d or pass a different --port",
		s.Port, last, s.Host, lastErr, s.Port)
}

// Close gracefully shuts down the server, waiting for in-flight requests.
func (s *Server) Close() error {
	if s.ln == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// BoundPort returns the port the server is listening on, or 0 if closed.
func (s *Server) BoundPort() int {
	if s.ln == nil {
		return 0
	}
	return s.ln.Addr().(*net.TCPAddr).Port
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	host := s.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(s.BoundPort()))
}

// ServeHTTP handles a request, recording it in the access log.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logRequests(s.router).ServeHTTP(w, r)
}
