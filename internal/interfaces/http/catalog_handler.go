package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/application/usecase"
)

// CatalogHandler maneja categorías, ubicaciones y proveedores (listar y crear).
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	locations  *usecase.LocationUseCase
	suppliers  *usecase.SupplierUseCase
	validate   *Validator
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, locations *usecase.LocationUseCase, suppliers *usecase.SupplierUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, locations: locations, suppliers: suppliers, validate: NewValidator()}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Param        skip   query  int  false  "Registros a saltar"  default(0)
// @Param        limit  query  int  false  "Límite (1-100)"      default(100)
// @Success      200  {array}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	page, err := parsePage(c, h.validate)
	if err != nil {
		return writeBindError(c, err)
	}
	out, err := h.categories.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.categories.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLocations godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Param        skip   query  int  false  "Registros a saltar"  default(0)
// @Param        limit  query  int  false  "Límite (1-100)"      default(100)
// @Success      200  {array}  dto.LocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/locations [get]
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	page, err := parsePage(c, h.validate)
	if err != nil {
		return writeBindError(c, err)
	}
	out, err := h.locations.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateLocation godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "Nombre"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/locations [post]
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.locations.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Produce      json
// @Param        skip   query  int  false  "Registros a saltar"  default(0)
// @Param        limit  query  int  false  "Límite (1-100)"      default(100)
// @Success      200  {array}  dto.SupplierResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/v1/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	page, err := parsePage(c, h.validate)
	if err != nil {
		return writeBindError(c, err)
	}
	out, err := h.suppliers.List(c.UserContext(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreateSupplierRequest
	if err := bindJSON(c, h.validate, &in); err != nil {
		return writeBindError(c, err)
	}
	out, err := h.suppliers.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
