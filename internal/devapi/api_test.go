package devapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/types"
)

func newTestAPI(t *testing.T) (*API, *httptest.Server) {
	t.Helper()

	a, err := New(Options{
		JWTSecret:  "test-secret",
		HashCost:   bcrypt.MinCost,
		CORSOrigin: "http://localhost:3000",
	})
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(srv.Close)
	return a, srv
}

func TestNewRequiresSecret(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	_, srv := newTestAPI(t)
	client := api.New(srv.URL)

	resp, err := client.Login(context.Background(), "admin@imobi.dev", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, types.RoleAdmin, resp.User.Role)

	_, err = client.Login(context.Background(), "admin@imobi.dev", "wrong")
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
	assert.True(t, errors.Is(err, api.ErrUnauthorized))

	_, err = client.Login(context.Background(), "nobody@imobi.dev", "admin123")
	assert.EqualError(t, err, "invalid credentials")
}

func TestMe(t *testing.T) {
	_, srv := newTestAPI(t)
	resp, err := api.New(srv.URL).Login(context.Background(), "admin@imobi.dev", "admin123")
	require.NoError(t, err)

	me, err := api.New(srv.URL, api.WithTokenSource(api.StaticToken(resp.Token))).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@imobi.dev", me.Email)

	_, err = api.New(srv.URL, api.WithTokenSource(api.StaticToken("forged"))).Me(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestMeRejectsBadTokens(t *testing.T) {
	_, srv := newTestAPI(t)
	now := time.Now()

	sign := func(method jwt.SigningMethod, claims Claims, key any) string {
		t.Helper()
		raw, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return raw
	}
	valid := Claims{
		Role:   types.RoleAdmin,
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin@imobi.dev",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	noUID := valid
	noUID.UserID = 0
	otherUID := valid
	otherUID.UserID = 42
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	noExpiry := valid
	noExpiry.ExpiresAt = nil

	secret := []byte("test-secret")
	good := sign(jwt.SigningMethodHS256, valid, secret)
	me, err := api.New(srv.URL, api.WithTokenSource(api.StaticToken(good))).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin@imobi.dev", me.Email)

	for name, token := range map[string]string{
		"wrong key": sign(jwt.SigningMethodHS256, valid, []byte("other")),
		"other alg": sign(jwt.SigningMethodHS512, valid, secret),
		"no uid":    sign(jwt.SigningMethodHS256, noUID, secret),
		"other uid": sign(jwt.SigningMethodHS256, otherUID, secret),
		"expired":   sign(jwt.SigningMethodHS256, expired, secret),
		"no expiry": sign(jwt.SigningMethodHS256, noExpiry, secret),
		"not a jwt": "garbage",
	} {
		_, err := api.New(srv.URL, api.WithTokenSource(api.StaticToken(token))).Me(context.Background())
		assert.ErrorIs(t, err, api.ErrUnauthorized, name)
	}

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/auth/me", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Basic "+good)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestListingLifecycle(t *testing.T) {
	_, srv := newTestAPI(t)
	ctx := context.Background()

	login, err := api.New(srv.URL).Login(ctx, "admin@imobi.dev", "admin123")
	require.NoError(t, err)
	client := api.New(srv.URL, api.WithTokenSource(api.StaticToken(login.Token)))

	price := 450000.0
	created, err := client.CreateImovel(ctx, types.Imovel{
		Titulo:       "Casa no Centro",
		Finalidade:   types.FinalidadeVenda,
		PrecoVenda:   &price,
		BairroID:     1,
		TipoImovelID: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, created)

	items, err := client.ListImoveis(ctx, types.FinalidadeVenda)
	require.NoError(t, err)
	require.Len(t, items, 1)
	id := items[0].ID
	require.NotNil(t, items[0].Bairro)
	assert.Equal(t, "Centro", items[0].Bairro.Nome)
	assert.Equal(t, types.StatusAtivo, items[0].Status)

	rentals, err := client.ListImoveis(ctx, types.FinalidadeAluguel)
	require.NoError(t, err)
	assert.Empty(t, rentals)

	require.NoError(t, client.UpdateImovel(ctx, id, types.Imovel{
		Titulo:       "Casa reformada",
		Finalidade:   types.FinalidadeVenda,
		BairroID:     2,
		TipoImovelID: 1,
	}))
	fetched, err := client.GetImovel(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Casa reformada", fetched.Titulo)
	assert.Equal(t, "Moinhos de Vento", fetched.Bairro.Nome)

	require.NoError(t, client.DeleteImovel(ctx, id))
	_, err = client.GetImovel(ctx, id)
	assert.ErrorIs(t, err, api.ErrNotFound)
}

func TestWritesRequireAuth(t *testing.T) {
	_, srv := newTestAPI(t)
	client := api.New(srv.URL)

	_, err := client.CreateImovel(context.Background(), types.Imovel{Titulo: "x", Finalidade: types.FinalidadeVenda, BairroID: 1, TipoImovelID: 1})
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.ErrorIs(t, client.DeleteImovel(context.Background(), 1), api.ErrUnauthorized)
}

func TestCreateRejectsUnknownReferences(t *testing.T) {
	_, srv := newTestAPI(t)
	ctx := context.Background()
	login, err := api.New(srv.URL).Login(ctx, "admin@imobi.dev", "admin123")
	require.NoError(t, err)
	client := api.New(srv.URL, api.WithTokenSource(api.StaticToken(login.Token)))

	_, err = client.CreateImovel(ctx, types.Imovel{Titulo: "x", Finalidade: types.FinalidadeVenda, BairroID: 99, TipoImovelID: 1})
	require.Error(t, err)
	assert.Equal(t, errUnknownReference.Error(), err.Error())
}

func TestBrokerCreation(t *testing.T) {
	_, srv := newTestAPI(t)
	ctx := context.Background()
	login, err := api.New(srv.URL).Login(ctx, "admin@imobi.dev", "admin123")
	require.NoError(t, err)
	admin := api.New(srv.URL, api.WithTokenSource(api.StaticToken(login.Token)))

	broker, err := admin.CreateUser(ctx, types.NewUser{Name: "Bia", Email: "bia@imobi.dev", Password: "corretora", Role: types.RoleCorretor})
	require.NoError(t, err)
	assert.Equal(t, types.RoleCorretor, broker.Role)

	_, err = admin.CreateUser(ctx, types.NewUser{Name: "Bia", Email: "BIA@imobi.dev", Password: "x", Role: types.RoleCorretor})
	assert.EqualError(t, err, "email already registered")

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	brokerLogin, err := api.New(srv.URL).Login(ctx, "bia@imobi.dev", "corretora")
	require.NoError(t, err)
	brokerClient := api.New(srv.URL, api.WithTokenSource(api.StaticToken(brokerLogin.Token)))
	_, err = brokerClient.CreateUser(ctx, types.NewUser{Name: "X", Email: "x@imobi.dev", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "admin access required", err.Error())
}

func TestReferenceLists(t *testing.T) {
	_, srv := newTestAPI(t)
	client := api.New(srv.URL)

	bairros, err := client.ListBairros(context.Background())
	require.NoError(t, err)
	assert.Len(t, bairros, 3)

	tipos, err := client.ListTiposImoveis(context.Background())
	require.NoError(t, err)
	assert.Len(t, tipos, 3)
}

func TestCORSPreflight(t *testing.T) {
	_, srv := newTestAPI(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/imoveis", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
