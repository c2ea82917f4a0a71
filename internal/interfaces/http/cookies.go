package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/auth"
)

// Nombres de las cookies de sesión.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
)

// CookiePolicy atributos comunes de las cookies de sesión. Secure solo en producción.
type CookiePolicy struct {
	Secure bool
}

func (p CookiePolicy) cookie(name, value string, ttl time.Duration) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   p.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
	}
}

func (p CookiePolicy) setTokens(c *fiber.Ctx, t auth.Tokens) {
	c.Cookie(p.cookie(CookieAccessToken, t.Access, t.AccessTTL))
	c.Cookie(p.cookie(CookieRefreshToken, t.Refresh, t.RefreshTTL))
}

func (p CookiePolicy) setAccess(c *fiber.Ctx, token string, ttl time.Duration) {
	c.Cookie(p.cookie(CookieAccessToken, token, ttl))
}

func (p CookiePolicy) clear(c *fiber.Ctx) {
	for _, name := range []string{CookieAccessToken, CookieRefreshToken} {
		ck := p.cookie(name, "", 0)
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		c.Cookie(ck)
	}
}
