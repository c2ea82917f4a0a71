package http

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Patrones de inyección SQL rechazados en strings del body y en la query.
var defaultSuspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\s|^)(SELECT|INSERT|UPDATE|DELETE|DROP|UNION|ALTER)(\s|$)`),
	regexp.MustCompile(`(?i)(\s|^)(FROM|WHERE|GROUP BY|ORDER BY|HAVING)(\s|$)`),
	regexp.MustCompile(`(--|#|/\*)`),
	regexp.MustCompile(`;(\s|$)`),
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// SanitizerConfig estado del saneador. Patterns vacío usa los patrones por defecto.
type SanitizerConfig struct {
	Enabled  bool
	Patterns []*regexp.Regexp
}

// Sanitizer rechaza entradas con patrones de inyección SQL y escapa HTML en los strings JSON.
type Sanitizer struct {
	enabled  bool
	patterns []*regexp.Regexp
}

// NewSanitizer construye el saneador.
func NewSanitizer(cfg SanitizerConfig) *Sanitizer {
	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = defaultSuspiciousPatterns
	}
	return &Sanitizer{enabled: cfg.Enabled, patterns: patterns}
}

// Middleware se aplica a rutas de escritura. Reescribe el body con los strings escapados.
func (s *Sanitizer) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !s.enabled {
			return c.Next()
		}
		var bad string
		c.Context().QueryArgs().VisitAll(func(k, v []byte) {
			if bad == "" && s.suspicious(string(v)) {
				bad = string(k)
			}
		})
		if bad != "" {
			return badRequest(c, CodeSuspiciousInput, "parámetro de consulta '"+bad+"' inválido")
		}

		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 || !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			return c.Next()
		}
		var data any
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil {
			return badRequest(c, CodeInvalidBody, "cuerpo JSON inválido")
		}
		if s.walkSuspicious(data) {
			return badRequest(c, CodeSuspiciousInput, "datos de entrada inválidos: posible intento de inyección")
		}
		clean, err := json.Marshal(s.escape(data))
		if err != nil {
			return badRequest(c, CodeInvalidBody, "cuerpo JSON inválido")
		}
		c.Request().SetBody(clean)
		return c.Next()
	}
}

func (s *Sanitizer) suspicious(v string) bool {
	for _, p := range s.patterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

func (s *Sanitizer) walkSuspicious(v any) bool {
	switch t := v.(type) {
	case string:
		return s.suspicious(t)
	case map[string]any:
		for _, item := range t {
			if s.walkSuspicious(item) {
				return true
			}
		}
	case []any:
		for _, item := range t {
			if s.walkSuspicious(item) {
				return true
			}
		}
	}
	return false
}

func (s *Sanitizer) escape(v any) any {
	switch t := v.(type) {
	case string:
		return htmlEscaper.Replace(t)
	case map[string]any:
		for k, item := range t {
			t[k] = s.escape(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = s.escape(item)
		}
		return t
	default:
		return v
	}
}

// RateLimitConfig límite por IP. Storage nil = memoria del proceso; para varias réplicas
// se inyecta un fiber.Storage compartido.
type RateLimitConfig struct {
	PerMinute int
	Storage   fiber.Storage
}

// RateLimiter construye el limitador de Fiber. PerMinute <= 0 lo desactiva.
func RateLimiter(cfg RateLimitConfig) fiber.Handler {
	if cfg.PerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        cfg.PerMinute,
		Expiration: time.Minute,
		Storage:    cfg.Storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, "60")
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "demasiadas solicitudes, intente más tarde",
				"code":        CodeRateLimited,
				"retry_after": "60 segundos",
			})
		},
	})
}
