// Package web serves the show finder over HTTP: the server-rendered page,
// its form endpoints, HTML fragments for partial updates and a JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/gorilla/mux"

	"github.com/showfinder/showfinder/internal/client"
	"github.com/showfinder/showfinder/internal/config"
)

// Server is the HTTP front end. Each visitor gets their own widget through a
// session cookie; all widgets share one TVMaze client.
type Server struct {
	client     client.Client
	sessions   *SessionStore
	handler    http.Handler
	httpServer *http.Server
}

// NewServer wires routes and middleware for cfg.
func NewServer(cfg *config.Config, c client.Client) *Server {
	logger := config.GetLogger()

	ttl, err := time.ParseDuration(cfg.Sessions.TTL)
	if err != nil && cfg.Sessions.TTL != "" {
		logger.Warn().Err(err).Str("sessions.ttl", cfg.Sessions.TTL).Msg("Invalid session TTL, using default")
	}

	s := &Server{
		client:   c,
		sessions: NewSessionStore(c, cfg.Sessions.Size, ttl),
	}
	s.handler = s.routes()

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Address, port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	router := mux.NewRouter()
	router.Use(countRequests)

	router.HandleFunc("/", s.handlePage).Methods("GET")
	router.HandleFunc("/search", s.handleSearch).Methods("POST")
	router.HandleFunc("/episodes", s.handleEpisodes).Methods("POST")
	router.HandleFunc("/panels/shows", s.handleShowsPanel).Methods("GET")
	router.HandleFunc("/panels/episodes", s.handleEpisodesPanel).Methods("GET")
	router.HandleFunc("/healthz", s.handleHealthz).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/search", s.apiSearch).Methods("GET")
	api.HandleFunc("/shows/{id}/episodes", s.apiEpisodes).Methods("GET")

	sentryHandler := sentryhttp.New(sentryhttp.Options{Repanic: true})
	return requestLogger(recoverer(sentryHandler.Handle(router)))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the address Start listens on.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Sessions exposes the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Start listens on the configured address and blocks until Stop is called.
func (s *Server) Start() error {
	logger := config.GetLogger()
	logger.Info().Str("address", s.httpServer.Addr).Msg("Starting web server")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
