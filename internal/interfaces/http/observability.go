package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger-api/pkg/metrics"
)

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// statusOf devuelve el status final; si el handler devolvió error aún no se escribió.
func statusOf(c *fiber.Ctx, err error) int {
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return fe.Code
		}
		status, _ := classify(err)
		return status
	}
	return c.Response().StatusCode()
}

// RequestLogger escribe una línea estructurada por petición.
func RequestLogger(l zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusOf(c, err)

		ev := l.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("ip", c.IP()).
			Msg("http")
		return err
	}
}

// MetricsMiddleware registra total y duración por método, ruta y status.
// Etiqueta con la ruta registrada (/api/v1/products/:id), no con la URL concreta.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		if path == "" || (path == "/" && c.Path() != "/") {
			path = "unmatched"
		}
		// Method() apunta al buffer de fasthttp, que se reutiliza; la etiqueta necesita copia.
		m.ObserveHTTP(utils.CopyString(c.Method()), path, strconv.Itoa(statusOf(c, err)), time.Since(start))
		return err
	}
}
