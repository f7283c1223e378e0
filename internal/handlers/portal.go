package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/internal/services"
	"github.com/imobi/client/internal/session"
	"github.com/imobi/client/types"
)

// Portal serves the browser pages of the listing platform.
type Portal struct {
	client         *api.Client
	whatsAppNumber string
	logger         *slog.Logger
	pages          *renderer
}

// NewPortal constructs a Portal over the API client.
func NewPortal(client *api.Client, whatsAppNumber string, logger *slog.Logger) (*Portal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	pages, err := newRenderer(logger)
	if err != nil {
		return nil, err
	}
	return &Portal{
		client:         client,
		whatsAppNumber: whatsAppNumber,
		logger:         logger,
		pages:          pages,
	}, nil
}

// PortalRouter registers the portal pages on the given router. Requests
// must already carry a session (see WithSession).
func PortalRouter(r chi.Router, p *Portal) {
	r.Get("/", p.Home)
	r.Get("/login", p.LoginPage)
	r.Post("/login", p.Login)
	r.Post("/logout", p.Logout)
	r.Get("/publica/imovel/{id}", p.Detail)

	r.Route("/privado", func(r chi.Router) {
		r.Use(RequireAuth)
		r.Get("/imoveis", p.BrokerHome)
		r.Get("/imoveis/novo", p.NewListingPage)
		r.Post("/imoveis/novo", p.CreateListing)
		r.Group(func(r chi.Router) {
			r.Use(RequireRole(types.RoleAdmin))
			r.Get("/admin", p.AdminPage)
			r.Post("/admin/corretores", p.CreateBroker)
		})
	})
}

// Healthz reports liveness.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

type requestServices struct {
	sessions *session.Store
	auth     *services.AuthService
	listings *services.ListingService
	users    *services.UserService
}

// servicesFor binds the API client to the caller's session.
func (p *Portal) servicesFor(r *http.Request) requestServices {
	return p.servicesWith(sessionFromContext(r.Context()))
}

func (p *Portal) servicesWith(store *session.Store) requestServices {
	client := p.client.WithTokens(store)
	return requestServices{
		sessions: store,
		auth:     services.NewAuthService(client, store, p.logger),
		listings: services.NewListingService(client, store),
		users:    services.NewUserService(client, store),
	}
}

type navigation struct {
	Authenticated bool
	IsAdmin       bool
}

type page struct {
	Nav navigation
}

func (s requestServices) page(r *http.Request) page {
	ctx := r.Context()
	_, ok := s.sessions.Token(ctx)
	return page{Nav: navigation{
		Authenticated: ok,
		IsAdmin:       ok && session.HasRole(s.sessions.CurrentUser(ctx), types.RoleAdmin),
	}}
}
