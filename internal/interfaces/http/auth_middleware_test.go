package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	apphttp "github.com/jhoicas/inventario-ledger-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	validToken    = "token-valido"
	inactiveToken = "token-inactivo"
	testUserID    = "00000000-0000-0000-0000-000000000001"
)

// fakeAuthorizer acepta validToken y rechaza el resto.
type fakeAuthorizer struct {
	lastToken string
}

func (f *fakeAuthorizer) Authorize(_ context.Context, token string) (*entity.User, error) {
	f.lastToken = token
	switch token {
	case validToken:
		return &entity.User{ID: testUserID, Email: "ana@example.com", Role: entity.RoleUser, IsActive: true}, nil
	case inactiveToken:
		return nil, domain.ErrInactiveUser
	default:
		return nil, domain.ErrInvalidToken
	}
}

// buildTestApp construye una app mínima con AuthMiddleware y un handler que devuelve el usuario.
func buildTestApp(a apphttp.Authorizer) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/protected", apphttp.AuthMiddleware(a), func(c *fiber.Ctx) error {
		res := apphttp.GetAuth(c)
		return c.JSON(fiber.Map{
			"authenticated": res.Authenticated(),
			"email":         apphttp.GetUser(c).Email,
		})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, mutate func(r *http.Request)) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]any
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	require.Contains(t, body, "error", "todo error lleva el campo error")
	code, _ := body["code"].(string)
	return code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CookieValida(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.CookieAccessToken, Value: validToken})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "ana@example.com", body["email"])
}

func TestAuthMiddleware_BearerValido(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "bearer "+validToken)
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_CookieTienePrioridadSobreHeader(t *testing.T) {
	fa := &fakeAuthorizer{}
	app := buildTestApp(fa)
	resp := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.CookieAccessToken, Value: validToken})
		r.Header.Set("Authorization", "Bearer otro")
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, validToken, fa.lastToken)
}

func TestAuthMiddleware_CookieVencidaUsaHeader(t *testing.T) {
	fa := &fakeAuthorizer{}
	app := buildTestApp(fa)
	resp := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.CookieAccessToken, Value: "cookie-vencida"})
		r.Header.Set("Authorization", "Bearer "+validToken)
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, validToken, fa.lastToken)
}

func TestAuthMiddleware_CookieYHeaderInvalidos_Retorna401(t *testing.T) {
	fa := &fakeAuthorizer{}
	app := buildTestApp(fa)
	resp := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.CookieAccessToken, Value: "cookie-vencida"})
		r.Header.Set("Authorization", "Bearer "+inactiveToken)
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInactiveUser, errorCode(t, resp), "decide el error del header")
	assert.Equal(t, inactiveToken, fa.lastToken)
}

func TestAuthMiddleware_CookieVencidaSinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: apphttp.CookieAccessToken, Value: "cookie-vencida"})
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidToken, errorCode(t, resp))
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeUnauthorized, errorCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer token.invalido.aqui")
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInvalidToken, errorCode(t, resp))
}

func TestAuthMiddleware_UsuarioInactivo_Retorna401(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+inactiveToken)
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, apphttp.CodeInactiveUser, errorCode(t, resp))
}

func TestAuthMiddleware_FormatoHeaderIncorrecto(t *testing.T) {
	app := buildTestApp(&fakeAuthorizer{})
	resp := doRequest(t, app, func(r *http.Request) {
		r.Header.Set("Authorization", "Token "+validToken)
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetAuth_FueraDeRutaProtegida(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		res := apphttp.GetAuth(c)
		return c.JSON(fiber.Map{"authenticated": res.Authenticated(), "nil_user": apphttp.GetUser(c) == nil})
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body["authenticated"])
	assert.True(t, body["nil_user"])
}
