package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/imobi/client/internal/services"
	"github.com/imobi/client/internal/session"
	"github.com/imobi/client/types"
)

type loginView struct {
	page
	Email    string
	Redirect string
	Message  string
}

// LoginPage shows the login form, or forwards visitors that already
// hold a session.
func (p *Portal) LoginPage(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	redirect := r.URL.Query().Get("redirect")
	if svc.auth.Authenticated(r.Context()) {
		landing := session.ResolveLandingRoute(svc.auth.CurrentUser(r.Context()))
		http.Redirect(w, r, session.SafeRedirect(redirect, landing), http.StatusSeeOther)
		return
	}
	p.pages.render(w, r, http.StatusOK, pageLogin, loginView{page: svc.page(r), Redirect: redirect})
}

func (p *Portal) Login(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	if err := r.ParseForm(); err != nil {
		p.pages.render(w, r, http.StatusBadRequest, pageLogin, loginView{page: svc.page(r), Message: "Formulário inválido."})
		return
	}

	// The login lands in a new sid; the cookie is only switched over once
	// it succeeds.
	browser := browserFromContext(r.Context())
	sid, store := browser.fresh()
	email := r.PostFormValue("email")
	redirect := r.PostFormValue("redirect")
	route, err := p.servicesWith(store).auth.Login(r.Context(), email, r.PostFormValue("password"), redirect)
	if err != nil {
		_ = store.ClearSession(r.Context())
		status := http.StatusBadGateway
		if services.IsNotAuthenticated(err) {
			status = http.StatusUnauthorized
		} else if errors.Is(err, services.ErrValidation) {
			status = http.StatusBadRequest
		}
		p.pages.render(w, r, status, pageLogin, loginView{
			page:     svc.page(r),
			Email:    email,
			Redirect: redirect,
			Message:  "Falha no login: " + err.Error(),
		})
		return
	}
	browser.adopt(r.Context(), w, sid, store)
	http.Redirect(w, r, route, http.StatusSeeOther)
}

func (p *Portal) Logout(w http.ResponseWriter, r *http.Request) {
	if err := p.servicesFor(r).auth.Logout(r.Context()); err != nil {
		p.logger.WarnContext(r.Context(), "failed to clear session", "err", err)
	}
	http.Redirect(w, r, session.RouteLogin, http.StatusSeeOther)
}

type listView struct {
	page
	Imoveis []types.Imovel
	Error   string
}

// Home lists public listings, optionally filtered by ?finalidade.
func (p *Portal) Home(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	view := listView{page: svc.page(r)}
	items, err := svc.listings.List(r.Context(), r.URL.Query().Get("finalidade"))
	if err != nil {
		view.Error = "Erro ao carregar imóveis: " + err.Error()
	}
	view.Imoveis = items
	p.pages.render(w, r, http.StatusOK, pageHome, view)
}

// BrokerHome is the landing page for brokers.
func (p *Portal) BrokerHome(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	view := listView{page: svc.page(r)}
	items, err := svc.listings.List(r.Context(), "")
	if err != nil {
		view.Error = "Erro ao carregar imóveis: " + err.Error()
	}
	view.Imoveis = items
	p.pages.render(w, r, http.StatusOK, pageBroker, view)
}

type detailView struct {
	page
	Imovel   types.Imovel
	Cover    *types.Foto
	WhatsApp string
}

type messageView struct {
	page
	Message string
}

// Detail is the public listing page. Bad ids and missing listings get
// the not-found page.
func (p *Portal) Detail(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	imovel, err := svc.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidID) || errors.Is(err, services.ErrNotFound) {
			p.pages.render(w, r, http.StatusNotFound, pageNotFound, messageView{page: svc.page(r), Message: "O imóvel procurado não existe."})
			return
		}
		p.pages.render(w, r, http.StatusBadGateway, pageNotFound, messageView{page: svc.page(r), Message: "Erro ao carregar imóvel: " + err.Error()})
		return
	}

	view := detailView{
		page:     svc.page(r),
		Imovel:   imovel,
		WhatsApp: services.WhatsAppLink(p.whatsAppNumber, imovel),
	}
	if cover, ok := imovel.Cover(); ok {
		view.Cover = &cover
	}
	p.pages.render(w, r, http.StatusOK, pageDetail, view)
}

type brokerForm struct {
	Name  string
	Email string
}

type adminView struct {
	page
	Imoveis       []types.Imovel
	Error         string
	Broker        brokerForm
	BrokerMessage string
}

func (p *Portal) adminView(r *http.Request, svc requestServices) adminView {
	view := adminView{page: svc.page(r)}
	items, err := svc.listings.List(r.Context(), "")
	if err != nil {
		view.Error = "Erro ao carregar imóveis: " + err.Error()
	}
	view.Imoveis = items
	return view
}

// AdminPage shows the broker registration form and the listing table.
func (p *Portal) AdminPage(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	p.pages.render(w, r, http.StatusOK, pageAdmin, p.adminView(r, svc))
}

func (p *Portal) CreateBroker(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	if err := r.ParseForm(); err != nil {
		view := p.adminView(r, svc)
		view.BrokerMessage = "Formulário inválido."
		p.pages.render(w, r, http.StatusBadRequest, pageAdmin, view)
		return
	}

	form := brokerForm{Name: r.PostFormValue("name"), Email: r.PostFormValue("email")}
	_, err := svc.users.RegisterBroker(r.Context(), form.Name, form.Email, r.PostFormValue("password"))

	view := p.adminView(r, svc)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		view.Broker = form
		if errors.Is(err, services.ErrNotAuthenticated) {
			view.BrokerMessage = "Você precisa estar logado como administrador."
		} else {
			view.BrokerMessage = "Erro ao cadastrar corretor: " + err.Error()
		}
	} else {
		view.BrokerMessage = "Corretor cadastrado com sucesso."
	}
	p.pages.render(w, r, status, pageAdmin, view)
}

type newListingView struct {
	page
	Form         services.ListingForm
	Options      services.FormOptions
	OptionErrors []string
	Message      string
}

func (p *Portal) newListingView(r *http.Request, svc requestServices, form services.ListingForm) newListingView {
	view := newListingView{page: svc.page(r), Form: form}
	view.Options = svc.listings.FormOptions(r.Context())
	if view.Options.BairrosErr != nil {
		view.OptionErrors = append(view.OptionErrors, "Não foi possível carregar a lista de bairros.")
	}
	if view.Options.TiposErr != nil {
		view.OptionErrors = append(view.OptionErrors, "Não foi possível carregar a lista de tipos de imóvel.")
	}
	return view
}

func blankListingForm() services.ListingForm {
	return services.ListingForm{Finalidade: string(types.FinalidadeVenda), Status: types.StatusAtivo}
}

func (p *Portal) NewListingPage(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	p.pages.render(w, r, http.StatusOK, pageNewListing, p.newListingView(r, svc, blankListingForm()))
}

func (p *Portal) CreateListing(w http.ResponseWriter, r *http.Request) {
	svc := p.servicesFor(r)
	if err := r.ParseForm(); err != nil {
		view := p.newListingView(r, svc, blankListingForm())
		view.Message = "Formulário inválido."
		p.pages.render(w, r, http.StatusBadRequest, pageNewListing, view)
		return
	}

	form := listingFormFromRequest(r)
	if _, err := svc.listings.Create(r.Context(), form); err != nil {
		view := p.newListingView(r, svc, form)
		if errors.Is(err, services.ErrNotAuthenticated) {
			view.Message = "Você precisa estar logado para cadastrar imóveis."
		} else {
			view.Message = "Erro ao salvar imóvel: " + err.Error()
		}
		p.pages.render(w, r, statusFor(err), pageNewListing, view)
		return
	}

	// Purpose, status and highlight survive so similar listings are
	// quick to enter.
	next := blankListingForm()
	next.Finalidade = form.Finalidade
	next.Status = form.Status
	next.Destaque = form.Destaque
	view := p.newListingView(r, svc, next)
	view.Message = "Imóvel cadastrado com sucesso."
	p.pages.render(w, r, http.StatusCreated, pageNewListing, view)
}

func listingFormFromRequest(r *http.Request) services.ListingForm {
	return services.ListingForm{
		Titulo:         r.PostFormValue("titulo"),
		Descricao:      r.PostFormValue("descricao"),
		Finalidade:     r.PostFormValue("finalidade"),
		Status:         r.PostFormValue("status"),
		Destaque:       r.PostFormValue("destaque") != "",
		PrecoVenda:     r.PostFormValue("precoVenda"),
		PrecoAluguel:   r.PostFormValue("precoAluguel"),
		Endereco:       r.PostFormValue("endereco"),
		Numero:         r.PostFormValue("numero"),
		CEP:            r.PostFormValue("cep"),
		Complemento:    r.PostFormValue("complemento"),
		Dormitorios:    r.PostFormValue("dormitorios"),
		Banheiros:      r.PostFormValue("banheiros"),
		Garagem:        r.PostFormValue("garagem"),
		AreaConstruida: r.PostFormValue("areaConstruida"),
		AreaTotal:      r.PostFormValue("areaTotal"),
		BairroID:       r.PostFormValue("bairroId"),
		TipoImovelID:   r.PostFormValue("tipoImovelId"),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest
	case services.IsNotAuthenticated(err):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}
