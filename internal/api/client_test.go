package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imobi/client/types"
)

type capturedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          []byte
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()

	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.RawQuery
		captured.Authorization = r.Header.Get("Authorization")
		captured.ContentType = r.Header.Get("Content-Type")
		captured.Body, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func TestBearerAttachedWhenAuthAndTokenPresent(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `[]`)
	client := New(srv.URL, WithTokenSource(StaticToken("t1")))

	require.NoError(t, client.Do(context.Background(), Request{Path: "/users", Auth: true}, nil))
	assert.Equal(t, "Bearer t1", captured.Authorization)
	assert.Equal(t, "application/json", captured.ContentType)
}

func TestNoAuthorizationWithoutAuthFlag(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `[]`)
	client := New(srv.URL, WithTokenSource(StaticToken("t1")))

	header := http.Header{}
	header.Set("Authorization", "Bearer smuggled")
	require.NoError(t, client.Do(context.Background(), Request{Path: "/imoveis", Header: header}, nil))
	assert.Empty(t, captured.Authorization)
}

func TestAuthFlagWithoutTokenProceedsUnauthenticated(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `[]`)
	client := New(srv.URL, WithTokenSource(StaticToken("")))

	require.NoError(t, client.Do(context.Background(), Request{Path: "/users", Auth: true}, nil))
	assert.Equal(t, "/users", captured.Path)
	assert.Empty(t, captured.Authorization)
}

func TestHTTPErrorMessages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "message field", status: http.StatusUnauthorized, body: `{"message": "bad credentials"}`, message: "bad credentials"},
		{name: "error field", status: http.StatusBadRequest, body: `{"error":"missing fields"}`, message: "missing fields"},
		{name: "json string", status: http.StatusUnauthorized, body: `"Credenciais inválidas"`, message: "Credenciais inválidas"},
		{name: "empty body", status: http.StatusUnauthorized, body: ``, message: "HTTP 401"},
		{name: "unparseable body", status: http.StatusUnauthorized, body: `<html>nope</html>`, message: "HTTP 401"},
		{name: "object without message", status: http.StatusInternalServerError, body: `{"code":7}`, message: "HTTP 500"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tc.status, tc.body)
			client := New(srv.URL)

			err := client.Do(context.Background(), Request{Path: "/x"}, nil)
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tc.status, httpErr.Status)
			assert.Equal(t, tc.body, string(httpErr.Body))
		})
	}
}

func TestHTTPErrorStatusClasses(t *testing.T) {
	assert.ErrorIs(t, newHTTPError(http.StatusNotFound, nil), ErrNotFound)
	assert.ErrorIs(t, newHTTPError(http.StatusUnauthorized, nil), ErrUnauthorized)
	assert.ErrorIs(t, newHTTPError(http.StatusForbidden, nil), ErrUnauthorized)
	assert.NotErrorIs(t, newHTTPError(http.StatusInternalServerError, nil), ErrNotFound)
}

func TestEmptySuccessBodyIsAbsent(t *testing.T) {
	for _, status := range []int{http.StatusCreated, http.StatusNoContent, http.StatusOK} {
		srv, _ := newTestServer(t, status, "")
		client := New(srv.URL)

		raw, err := client.Raw(context.Background(), Request{Method: http.MethodPost, Path: "/imoveis"})
		require.NoError(t, err, "status %d", status)
		assert.Nil(t, raw)

		out := map[string]any{"untouched": true}
		require.NoError(t, client.Do(context.Background(), Request{Path: "/imoveis"}, &out))
		assert.Equal(t, true, out["untouched"])
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, "{not json")
	client := New(srv.URL)

	var out map[string]any
	err := client.Do(context.Background(), Request{Path: "/imoveis/1"}, &out)
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestMissingBaseURLFailsBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("unexpected network call")
	})
	client := New("  ", WithHTTPClient(&http.Client{Transport: transport}), WithTokenSource(StaticToken("t1")))
	ctx := context.Background()

	_, err := client.ListImoveis(ctx, "")
	assert.ErrorIs(t, err, ErrMissingBaseURL)
	_, err = client.GetImovel(ctx, 1)
	assert.ErrorIs(t, err, ErrMissingBaseURL)
	_, err = client.CreateImovel(ctx, types.Imovel{})
	assert.ErrorIs(t, err, ErrMissingBaseURL)
	assert.ErrorIs(t, client.DeleteImovel(ctx, 1), ErrMissingBaseURL)
	_, err = client.Login(ctx, "a@b.c", "x")
	assert.ErrorIs(t, err, ErrMissingBaseURL)
	_, err = client.ListUsers(ctx)
	assert.ErrorIs(t, err, ErrMissingBaseURL)
	assert.Equal(t, int32(0), calls.Load())
	assert.Contains(t, ErrMissingBaseURL.Error(), "API_BASE")
}

func TestBaseURLTrailingSlashAndQuery(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `[{"id":1,"titulo":"Casa","finalidade":"ALUGUEL","status":"ATIVO"}]`)
	client := New(srv.URL + "/")

	items, err := client.ListImoveis(context.Background(), types.FinalidadeAluguel)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/imoveis", captured.Path)
	assert.Equal(t, "finalidade=ALUGUEL", captured.Query)
	assert.Equal(t, types.FinalidadeAluguel, items[0].Finalidade)
}

func TestLoginRequiresToken(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `{"user":{"id":1}}`)
	client := New(srv.URL, WithTokenSource(StaticToken("stale")))

	_, err := client.Login(context.Background(), "ana@imobi.dev", "secret")
	assert.ErrorIs(t, err, ErrContractViolation)
	assert.Empty(t, captured.Authorization)

	var body types.LoginRequest
	require.NoError(t, json.Unmarshal(captured.Body, &body))
	assert.Equal(t, "ana@imobi.dev", body.Email)
}

func TestEndpointRoutes(t *testing.T) {
	router := chi.NewRouter()
	var seen []string
	record := func(status int, body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
			w.WriteHeader(status)
			_, _ = io.WriteString(w, body)
		}
	}
	router.Get("/imoveis/{id}", record(http.StatusOK, `{"id":7,"titulo":"Apto"}`))
	router.Post("/imoveis", record(http.StatusCreated, ""))
	router.Put("/imoveis/{id}", record(http.StatusNoContent, ""))
	router.Delete("/imoveis/{id}", record(http.StatusNoContent, ""))
	router.Get("/bairros", record(http.StatusOK, `[{"id":1,"nome":"Centro"}]`))
	router.Get("/tiposImoveis", record(http.StatusOK, `[{"id":2,"nome":"Casa"}]`))
	router.Post("/users", record(http.StatusCreated, `{"id":3,"name":"Bia","email":"bia@imobi.dev","role":"CORRETOR"}`))
	router.Get("/auth/me", record(http.StatusOK, `{"id":1,"role":"ADMIN"}`))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client := New(srv.URL, WithTokenSource(StaticToken("tok")))
	ctx := context.Background()

	imovel, err := client.GetImovel(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Apto", imovel.Titulo)

	created, err := client.CreateImovel(ctx, types.Imovel{Titulo: "Novo"})
	require.NoError(t, err)
	assert.Nil(t, created)

	require.NoError(t, client.UpdateImovel(ctx, 7, types.Imovel{Titulo: "Editado"}))
	require.NoError(t, client.DeleteImovel(ctx, 7))

	bairros, err := client.ListBairros(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Centro", bairros[0].Nome)

	tipos, err := client.ListTiposImoveis(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Casa", tipos[0].Nome)

	user, err := client.CreateUser(ctx, types.NewUser{Name: "Bia", Email: "bia@imobi.dev", Password: "x", Role: types.RoleCorretor})
	require.NoError(t, err)
	assert.Equal(t, 3, user.ID)

	me, err := client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, types.RoleAdmin, me.Role)

	assert.Equal(t, []string{
		"GET /imoveis/7 ",
		"POST /imoveis Bearer tok",
		"PUT /imoveis/7 Bearer tok",
		"DELETE /imoveis/7 Bearer tok",
		"GET /bairros ",
		"GET /tiposImoveis ",
		"POST /users Bearer tok",
		"GET /auth/me Bearer tok",
	}, seen)
}

func TestGetImovelNotFound(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNotFound, "")
	client := New(srv.URL)

	_, err := client.GetImovel(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "HTTP 404", err.Error())
}

func TestWithTokensRebindsSession(t *testing.T) {
	srv, captured := newTestServer(t, http.StatusOK, `[]`)
	base := New(srv.URL, WithTokenSource(StaticToken("first")))
	other := base.WithTokens(StaticToken("second"))

	_, err := other.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer second", captured.Authorization)

	_, err = base.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer first", captured.Authorization)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
