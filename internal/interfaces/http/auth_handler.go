package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/auth"
	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/pkg/metrics"
)

// AuthHandler maneja registro, login, refresh, logout y perfil.
type AuthHandler struct {
	uc       *auth.AuthUseCase
	cookies  CookiePolicy
	validate *Validator
	metrics  *metrics.Metrics
}

// NewAuthHandler construye el handler de auth. m puede ser nil.
func NewAuthHandler(uc *auth.AuthUseCase, cookies CookiePolicy, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies, validate: NewValidator(), metrics: m}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crea un usuario con rol "user" y deja las cookies access_token y refresh_token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, full_name"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	res, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	h.cookies.setTokens(c, res.Tokens)
	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{
		Message: "usuario registrado",
		User:    auth.ToUserResponse(res.User),
	})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	res, err := h.uc.Login(c.UserContext(), in)
	if h.metrics != nil {
		h.metrics.RecordAuthAttempt(err == nil)
	}
	if err != nil {
		return writeError(c, err)
	}
	h.cookies.setTokens(c, res.Tokens)
	return c.JSON(dto.AuthResponse{
		Message: "inicio de sesión exitoso",
		User:    auth.ToUserResponse(res.User),
	})
}

// Refresh godoc
// @Summary      Renovar access token
// @Description  Usa la cookie refresh_token y deja un nuevo access_token.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	token := c.Cookies(CookieRefreshToken)
	if token == "" {
		return unauthorized(c, CodeInvalidToken, "refresh token requerido")
	}
	access, err := h.uc.Refresh(c.UserContext(), token)
	if err != nil {
		return writeError(c, err)
	}
	h.cookies.setAccess(c, access, h.uc.AccessTTL())
	return c.JSON(dto.MessageResponse{Message: "token renovado"})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.cookies.clear(c)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return writeError(c, domain.ErrUnauthorized)
	}
	out, err := h.uc.Profile(c.UserContext(), user.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
