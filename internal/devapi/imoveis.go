package devapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/imobi/client/types"
)

func (a *API) ListImoveis(w http.ResponseWriter, r *http.Request) {
	finalidade := types.Finalidade(strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("finalidade"))))
	if finalidade != "" && !finalidade.Valid() {
		writeError(w, http.StatusBadRequest, "invalid finalidade")
		return
	}
	writeJSON(w, http.StatusOK, a.store.ListImoveis(finalidade))
}

func (a *API) GetImovel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}
	imovel, err := a.store.GetImovel(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	writeJSON(w, http.StatusOK, imovel)
}

// CreateImovel answers 201 with no body, like the production API.
func (a *API) CreateImovel(w http.ResponseWriter, r *http.Request) {
	imovel, ok := decodeImovel(w, r)
	if !ok {
		return
	}
	created, err := a.store.CreateImovel(imovel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.logger.Info("listing created", "id", created.ID, "titulo", created.Titulo)
	w.WriteHeader(http.StatusCreated)
}

func (a *API) UpdateImovel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}
	imovel, ok := decodeImovel(w, r)
	if !ok {
		return
	}
	if err := a.store.UpdateImovel(id, imovel); err != nil {
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) DeleteImovel(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid listing id")
		return
	}
	if err := a.store.DeleteImovel(id); err != nil {
		writeError(w, http.StatusNotFound, "listing not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeImovel(w http.ResponseWriter, r *http.Request) (types.Imovel, bool) {
	var imovel types.Imovel
	if err := json.NewDecoder(r.Body).Decode(&imovel); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return types.Imovel{}, false
	}
	imovel.Titulo = strings.TrimSpace(imovel.Titulo)
	if imovel.Titulo == "" {
		writeError(w, http.StatusBadRequest, "titulo is required")
		return types.Imovel{}, false
	}
	if !imovel.Finalidade.Valid() {
		writeError(w, http.StatusBadRequest, "finalidade must be VENDA or ALUGUEL")
		return types.Imovel{}, false
	}
	if imovel.Status == "" {
		imovel.Status = types.StatusAtivo
	}
	return imovel, true
}

func (a *API) ListBairros(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.Bairros())
}

func (a *API) ListTiposImoveis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.TiposImoveis())
}
