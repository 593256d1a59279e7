// Package server exposes the duel authority over short-polling HTTP.
package server

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/skyduel/skyduel/arena"
	"github.com/skyduel/skyduel/server/handler"
	"github.com/skyduel/skyduel/storage"
)

const (
	defaultPort     = "4176"
	shutdownTimeout = 5 * time.Second

	// maxBodyBytes caps request bodies; anything larger fails with
	// payload_too_large before reaching a handler.
	maxBodyBytes = 1 << 20
)

type Server struct {
	app  *fiber.App
	port string
}

// New returns an HTTP server with handlers for the join/send/poll protocol.
func New(a *arena.Arena, store storage.StatsStore, opts ...Option) (*Server, error) {
	if a == nil {
		return nil, eris.New("server requires a non-nil arena")
	}

	app := fiber.New(fiber.Config{
		Network:               "tcp", // Enable server listening on both ipv4 & ipv6 (default: ipv4 only)
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler,
		BodyLimit:             maxBodyBytes,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
	app.Use(cors.New())

	s := &Server{
		app:  app,
		port: defaultPort,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes(a, store)

	return s, nil
}

// App exposes the fiber app for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve serves the application, blocking the calling thread until the
// context is canceled or the listener fails.
func (s *Server) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		log.Info().Msgf("Starting HTTP server at port %s", s.port)
		if err := s.app.Listen(":" + s.port); err != nil {
			serverErr <- eris.Wrap(err, "error starting http server")
		}
	}()

	select {
	case err := <-serverErr:
		return eris.Wrap(err, "server encountered an error")
	case <-ctx.Done():
		if err := s.shutdown(); err != nil {
			return eris.Wrap(err, "error shutting down server")
		}
	}

	return nil
}

func (s *Server) shutdown() error {
	log.Info().Msg("Shutting down server")
	if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return eris.Wrap(err, "error shutting down server")
	}
	log.Info().Msg("Successfully shut down server")
	return nil
}

func (s *Server) setupRoutes(a *arena.Arena, store storage.StatsStore) {
	start := time.Now()

	s.app.Post("/join", handler.PostJoin(a))
	s.app.Post("/rejoin", handler.PostRejoin(a))
	s.app.Post("/send", handler.PostSend(a))
	s.app.Get("/poll", handler.GetPoll(a))
	s.app.Get("/status", handler.GetStatus(a, store))
	s.app.Get("/health", handler.GetHealth(start))
}
