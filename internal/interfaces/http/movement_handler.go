package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/pkg/metrics"
)

// MovementHandler expone el libro de stock.
type MovementHandler struct {
	uc       *inventory.MovementUseCase
	validate *Validator
	metrics  *metrics.Metrics
}

// NewMovementHandler construye el handler. m puede ser nil.
func NewMovementHandler(uc *inventory.MovementUseCase, m *metrics.Metrics) *MovementHandler {
	return &MovementHandler{uc: uc, validate: NewValidator(), metrics: m}
}

// Record godoc
// @Summary      Registrar movimiento de stock
// @Description  in suma, out resta (400 si no alcanza el stock) y adjustment aplica un delta con signo
// @Description  sin bajar de cero. El movimiento y el nuevo stock se guardan en una sola transacción.
// @Tags         movements
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.uc.RecordMovement(c.UserContext(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      entity.MovementType(in.Type),
		Quantity:  *in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
		UserLabel: userLabel(c, in.User),
	})
	if err != nil {
		if h.metrics != nil && errors.Is(err, domain.ErrInsufficientStock) {
			h.metrics.InsufficientStock.Inc()
		}
		return writeError(c, err)
	}
	if h.metrics != nil {
		h.metrics.RecordMovement(out.Type)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Description  Del más reciente al más antiguo.
// @Tags         movements
// @Produce      json
// @Param        skip        query  int     false  "Registros a saltar"  default(0)
// @Param        limit       query  int     false  "Límite (1-100)"      default(100)
// @Param        type        query  string  false  "in | out | adjustment | all"
// @Param        product_id  query  string  false  "ID de producto"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c, h.validate)
	if err != nil {
		return writeBindError(c, err)
	}
	var filter dto.MovementFilterRequest
	if err := bindQuery(c, h.validate, &filter); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), page, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         movements
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        skip   query  int     false  "Registros a saltar"  default(0)
// @Param        limit  query  int     false  "Límite (1-100)"      default(100)
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/movements/product/{id} [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	page, err := parsePage(c, h.validate)
	if err != nil {
		return writeBindError(c, err)
	}
	out, err := h.uc.ListByProduct(c.UserContext(), c.Params("id"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
