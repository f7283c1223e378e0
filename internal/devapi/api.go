// Package devapi is an in-memory implementation of the listing REST API
// for local development and tests. It follows the production contract:
// JWT bearer auth, JSON {"message": ...} errors and a 201 with no body
// when a listing is created.
package devapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/crypto/bcrypt"

	"github.com/imobi/client/types"
)

// Options configures the development API.
type Options struct {
	JWTSecret     string
	TokenTTL      time.Duration
	CORSOrigin    string
	AdminName     string
	AdminEmail    string
	AdminPassword string
	// HashCost is the bcrypt cost; tests lower it to bcrypt.MinCost.
	HashCost int
	Logger   *slog.Logger
}

// API serves the development endpoints.
type API struct {
	store      *Store
	secret     []byte
	tokenTTL   time.Duration
	hashCost   int
	corsOrigin string
	logger     *slog.Logger
}

// New constructs an API with a seeded administrator.
func New(opts Options) (*API, error) {
	if strings.TrimSpace(opts.JWTSecret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if opts.TokenTTL == 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.AdminEmail == "" {
		opts.AdminEmail = "admin@imobi.dev"
	}
	if opts.AdminPassword == "" {
		opts.AdminPassword = "admin123"
	}
	if opts.AdminName == "" {
		opts.AdminName = "Administrador"
	}

	a := &API{
		store:      NewStore(),
		secret:     []byte(opts.JWTSecret),
		tokenTTL:   opts.TokenTTL,
		hashCost:   opts.HashCost,
		corsOrigin: opts.CORSOrigin,
		logger:     opts.Logger,
	}
	if _, err := a.createUser(types.NewUser{
		Name:     opts.AdminName,
		Email:    opts.AdminEmail,
		Password: opts.AdminPassword,
		Role:     types.RoleAdmin,
	}); err != nil {
		return nil, err
	}
	return a, nil
}

// Store exposes the backing store, for seeding in tests.
func (a *API) Store() *Store {
	return a.store
}

// Router builds the HTTP handler with every endpoint.
func (a *API) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	if a.corsOrigin != "" {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{a.corsOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", a.Login)
		r.With(a.RequireAuth).Get("/me", a.Me)
	})
	router.Route("/imoveis", func(r chi.Router) {
		r.Get("/", a.ListImoveis)
		r.With(a.RequireAuth).Post("/", a.CreateImovel)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.GetImovel)
			r.With(a.RequireAuth).Put("/", a.UpdateImovel)
			r.With(a.RequireAuth).Delete("/", a.DeleteImovel)
		})
	})
	router.Get("/bairros", a.ListBairros)
	router.Get("/tiposImoveis", a.ListTiposImoveis)
	router.Route("/users", func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Get("/", a.ListUsers)
		r.With(a.RequireAdmin).Post("/", a.CreateUser)
	})
	return router
}
