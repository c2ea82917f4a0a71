package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /products.
type CreateProductRequest struct {
	Code         string           `json:"code" validate:"required,min=1,max=50,product_code"`
	Name         string           `json:"name" validate:"required,min=1,max=100"`
	Description  string           `json:"description" validate:"max=1000"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	QCStatus     string           `json:"qc_status" validate:"max=50"`
	CurrentStock *decimal.Decimal `json:"current_stock" validate:"required"`
	MinStock     *decimal.Decimal `json:"min_stock" validate:"required"`
	CategoryID   *string          `json:"category_id,omitempty"`
	LocationID   *string          `json:"location_id,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
}

// UpdateProductRequest body para PUT/PATCH /products/{id}. Solo se aplican los campos presentes.
// Un cambio de current_stock queda registrado como ajuste en el libro.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	QCStatus     *string          `json:"qc_status,omitempty" validate:"omitempty,max=50"`
	CurrentStock *decimal.Decimal `json:"current_stock,omitempty"`
	MinStock     *decimal.Decimal `json:"min_stock,omitempty"`
	CategoryID   *string          `json:"category_id,omitempty"`
	LocationID   *string          `json:"location_id,omitempty"`
	SupplierID   *string          `json:"supplier_id,omitempty"`
}

// ProductFilterRequest filtros de GET /products ("all" o vacío = sin filtro).
type ProductFilterRequest struct {
	Category    string `query:"category"`
	Location    string `query:"location"`
	Supplier    string `query:"supplier"`
	Search      string `query:"search" validate:"max=100"`
	StockStatus string `query:"stock_status" validate:"omitempty,oneof=low ok all"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string           `json:"id"`
	Code         string           `json:"code"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	QCStatus     string           `json:"qc_status"`
	CurrentStock decimal.Decimal  `json:"current_stock"`
	MinStock     decimal.Decimal  `json:"min_stock"`
	CategoryID   *string          `json:"category_id"`
	LocationID   *string          `json:"location_id"`
	SupplierID   *string          `json:"supplier_id"`
	Category     *string          `json:"category"`
	Location     *string          `json:"location"`
	Supplier     *string          `json:"supplier"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
	Limit int               `json:"limit"`
}

// StockAlertResponse producto por debajo de su stock mínimo.
type StockAlertResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Code         string          `json:"code"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Difference   decimal.Decimal `json:"difference"` // min_stock - current_stock
}
