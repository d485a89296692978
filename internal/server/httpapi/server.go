// Package httpapi exposes the server's HTTP surface: authentication and car
// routes behind the bearer-token guard, JSON in and out.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"carvault/internal/logging"
	"carvault/internal/server/auth"
	"carvault/internal/server/cars"
	"carvault/internal/server/users"
)

type Server struct {
	addr   string
	logger logging.Logger
	tokens *auth.TokenService
	users  *users.Service
	cars   *cars.Service
}

func NewServer(addr string, logger logging.Logger, tokens *auth.TokenService, us *users.Service, cs *cars.Service) *Server {
	return &Server{
		addr:   addr,
		logger: logger.With("module", "http_server"),
		tokens: tokens,
		users:  us,
		cars:   cs,
	}
}

// Router assembles the chi routing table. Register and login are public;
// every other route sits behind the authenticator.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/api/health", s.health)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticator)
			r.Get("/profile", s.profile)
		})
	})

	r.Route("/api/cars", func(r chi.Router) {
		r.Use(s.authenticator)
		r.Get("/", s.listCars)
		r.Post("/", s.createCar)
		r.Get("/{id}", s.getCar)
		r.Put("/{id}", s.updateCar)
		r.Delete("/{id}", s.deleteCar)
		r.Post("/{id}/sell", s.sellCar)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"message":   "Car Management API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
