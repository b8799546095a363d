package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/studysphere/studysphere-go/internal/handler"
	"github.com/studysphere/studysphere-go/internal/middleware"
)

// Auth is everything the router needs from the auth service.
type Auth interface {
	handler.Authenticator
	middleware.TokenVerifier
}

// Options configures the router.
type Options struct {
	Auth               Auth
	Documents          handler.Documents
	CORSAllowedOrigins []string
	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// NewRouter builds the HTTP API.
func NewRouter(opts Options) http.Handler {
	authHandler := handler.NewAuthHandler(opts.Auth)
	docHandler := handler.NewDocumentHandler(opts.Documents)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if opts.AuthRateLimitRPS > 0 {
				r.Use(middleware.RateLimit(opts.AuthRateLimitRPS, opts.AuthRateLimitBurst))
			}
			r.Post("/signup", authHandler.HandleSignup)
			r.Post("/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(opts.Auth))
			r.Get("/me", authHandler.HandleMe)

			r.Get("/documents", docHandler.HandleList)
			r.Post("/documents", docHandler.HandleCreate)
			r.Get("/documents/{id}", docHandler.HandleGet)
			r.Put("/documents/{id}", docHandler.HandleUpdate)
			r.Delete("/documents/{id}", docHandler.HandleDelete)
		})
	})

	return r
}
