// Package api exposes the cache simulator as an HTTP server.
//
// The server owns the process-wide cache instance and serializes access to
// it with a mutex; the core itself stays single-threaded by design.
package api

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/cachesim/cache"
)

// A Server turns the cache simulator into a web service.
type Server struct {
	portNumber int
	log        *logrus.Logger

	mu    sync.Mutex
	cache *cache.Cache
}

// NewServer creates a new Server.
func NewServer() *Server {
	return &Server{log: logrus.StandardLogger()}
}

// WithPortNumber sets the port number of the server. Port 0 picks a free
// port.
func (s *Server) WithPortNumber(portNumber int) *Server {
	s.portNumber = portNumber
	return s
}

// WithLogger sets the logger used for request logging.
func (s *Server) WithLogger(log *logrus.Logger) *Server {
	s.log = log
	return s
}

// Router builds the HTTP route table.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/configure", s.configure).
		Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/access", s.access).
		Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/state", s.state).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/stats", s.stats).
		Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/reset", s.reset).
		Methods(http.MethodPost, http.MethodOptions)

	r.Use(s.corsMiddleware, s.loggingMiddleware)

	return r
}

// Run starts the server and blocks until it fails.
func (s *Server) Run() error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.portNumber))
	if err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	s.log.WithField("addr", listener.Addr().String()).
		Info("cache simulator API listening")

	return http.Serve(listener, s.Router())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.log.WithFields(logrus.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).Debug("handling request")

		next.ServeHTTP(w, r)
	})
}
