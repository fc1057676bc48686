package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	config "github.com/avvvet/gamehub-services/configs"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
)

type RouterOptions struct {
	// RateLimit is requests per minute per client IP, 0 disables it.
	RateLimit      int
	RequestTimeout time.Duration
}

// NewRouter builds the middleware stack and the API routes.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"))
	r.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))
	r.Use(c.Handler)
	r.Use(Preflight)

	// to protect the service api from any over requests
	if opts.RateLimit > 0 {
		r.Use(httprate.Limit(opts.RateLimit, 1*time.Minute,
			httprate.WithKeyByIP(),
			httprate.WithLimitHandler(h.TooManyRequestsHandler),
		))
	}

	r.NotFound(h.NotFoundHandler)
	r.MethodNotAllowed(h.MethodNotAllowedHandler)

	h.SetRoutes(r, opts.RequestTimeout)
	return r
}

func (h *Handler) SetRoutes(r chi.Router, timeout time.Duration) {
	// long-lived websocket, outside the request timeout
	r.Get("/api/ws", h.EventsHandler)

	r.Group(func(r chi.Router) {
		if timeout > 0 {
			r.Use(h.Timeout(timeout))
		}

		r.Get("/api", h.InfoHandler)
		r.Get("/api/health", h.HealthHandler)

		r.Get("/api/games", h.ListGames)
		r.Post("/api/games", h.CreateGame)
		r.Get("/api/games/{id}", h.GetGame)
		r.Put("/api/games/{id}", h.UpdateGame)
		r.Delete("/api/games/{id}", h.DeleteGame)
	})
}

// Preflight answers every OPTIONS request that the CORS handler let through.
func Preflight(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Timeout cancels the request context after timeout and answers 504 when the
// handler gave up without writing a response.
func (h *Handler) Timeout(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				cancel()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) && ww.Status() == 0 {
					h.CreateResponse(ww, http.StatusGatewayTimeout, ErrorResponse{Error: "Request timed out"})
				}
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
