package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

// LocalAuth key de c.Locals donde queda el AuthResult.
const LocalAuth = "auth"

// Authorizer valida un access token y devuelve el usuario activo. auth.AuthUseCase lo cumple.
type Authorizer interface {
	Authorize(ctx context.Context, accessToken string) (*entity.User, error)
}

// AuthResult resultado tipado de la autenticación de una petición.
type AuthResult struct {
	User *entity.User
	Err  error
}

// Authenticated indica si la petición trae un usuario válido.
func (r AuthResult) Authenticated() bool {
	return r.Err == nil && r.User != nil
}

// AuthMiddleware toma el token de la cookie access_token o, si falta o no es válido, del header
// Authorization: Bearer; lo valida con Authorizer y deja el AuthResult en c.Locals. Sin usuario válido responde 401.
func AuthMiddleware(a Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := authenticate(c, a)
		c.Locals(LocalAuth, res)
		if !res.Authenticated() {
			return writeError(c, res.Err)
		}
		return c.Next()
	}
}

// authenticate prueba primero la cookie; si falla y hay un header Bearer distinto, decide el header.
func authenticate(c *fiber.Ctx, a Authorizer) AuthResult {
	var tokens []string
	if tok := c.Cookies(CookieAccessToken); tok != "" {
		tokens = append(tokens, tok)
	}
	if tok := bearerToken(c); tok != "" && (len(tokens) == 0 || tokens[0] != tok) {
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return AuthResult{Err: domain.ErrUnauthorized}
	}
	var err error
	for _, token := range tokens {
		var user *entity.User
		if user, err = a.Authorize(c.UserContext(), token); err == nil {
			return AuthResult{User: user}
		}
	}
	return AuthResult{Err: err}
}

func bearerToken(c *fiber.Ctx) string {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// GetAuth devuelve el AuthResult de la petición (vacío fuera de rutas protegidas).
func GetAuth(c *fiber.Ctx) AuthResult {
	res, _ := c.Locals(LocalAuth).(AuthResult)
	return res
}

// GetUser devuelve el usuario autenticado o nil.
func GetUser(c *fiber.Ctx) *entity.User {
	return GetAuth(c).User
}
