package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc       *usecase.ProductUseCase
	validate *Validator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, validate: NewValidator()}
}

// Create godoc
// @Summary      Crear producto
// @Description  El código se guarda en mayúsculas y es único sin distinguir mayúsculas.
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        skip          query  int     false  "Registros a saltar"  default(0)
// @Param        limit         query  int     false  "Límite (1-100)"      default(100)
// @Param        category      query  string  false  "ID de categoría"
// @Param        location      query  string  false  "ID de ubicación"
// @Param        supplier      query  string  false  "ID de proveedor"
// @Param        search        query  string  false  "Busca en nombre y código"
// @Param        stock_status  query  string  false  "low | ok | all"
// @Success      200  {object}  dto.ProductListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page, err := parsePage(c, h.validate)
	if err != nil {
		return writeBindError(c, err)
	}
	var filter dto.ProductFilterRequest
	if err := bindQuery(c, h.validate, &filter); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), page, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  PUT y PATCH son parciales. Cambiar current_stock registra un ajuste en el libro.
// @Tags         products
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [put]
// @Router       /api/v1/products/{id} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in, userLabel(c, ""))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Description  Elimina también su historial de movimientos.
// @Tags         products
// @Security     BearerAuth
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "producto eliminado"})
}

// Alerts godoc
// @Summary      Productos bajo stock mínimo
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/v1/products/alerts [get]
func (h *ProductHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.uc.Alerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AlertsReport godoc
// @Summary      Reporte PDF de stock bajo
// @Tags         products
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/v1/products/alerts/report [get]
func (h *ProductHandler) AlertsReport(c *fiber.Ctx) error {
	pdf, err := h.uc.AlertsReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="stock-bajo-%s.pdf"`, time.Now().Format("20060102")))
	return c.Send(pdf)
}

// userLabel es el usuario que se guarda en el libro: el enviado o, si no viene, el email autenticado.
func userLabel(c *fiber.Ctx, sent string) string {
	if sent != "" {
		return sent
	}
	if u := GetUser(c); u != nil {
		return u.Email
	}
	return ""
}
