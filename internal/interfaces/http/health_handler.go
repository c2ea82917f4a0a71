package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
)

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/v1/health [get]
func Health(version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Version: version})
	}
}
