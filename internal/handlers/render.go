package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/imobi/client/internal/services"
	"github.com/imobi/client/types"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageLogin      = "login"
	pageHome       = "home"
	pageDetail     = "detail"
	pageNotFound   = "notfound"
	pageAdmin      = "admin"
	pageBroker     = "broker"
	pageNewListing = "new_listing"
)

var templateFuncs = template.FuncMap{
	"price":   services.DisplayPrice,
	"address": services.DisplayAddress,
	"purpose": func(f types.Finalidade) string { return services.DisplayPurpose(f) },
}

type renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

func newRenderer(logger *slog.Logger) (*renderer, error) {
	names := []string{pageLogin, pageHome, pageDetail, pageNotFound, pageAdmin, pageBroker, pageNewListing}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return &renderer{pages: pages, logger: logger}, nil
}

func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tmpl, ok := rd.pages[name]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.logger.ErrorContext(r.Context(), "render page", slog.String("page", name), slog.Any("err", err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
