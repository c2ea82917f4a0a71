package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /movements.
// En adjustment la cantidad es un delta con signo; en in/out debe ser >= 0.
type RecordMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required,movement_type"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"required"`
	Reference string           `json:"reference" validate:"max=50"`
	Notes     string           `json:"notes" validate:"max=1000"`
	User      string           `json:"user" validate:"max=100"`
}

// MovementFilterRequest filtros de GET /movements.
type MovementFilterRequest struct {
	Type      string `query:"type" validate:"omitempty,oneof=in out adjustment all"`
	ProductID string `query:"product_id"`
}

// MovementResponse salida de una entrada del libro de stock.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	ProductCode    string          `json:"product_code,omitempty"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	Reference      string          `json:"reference"`
	Notes          string          `json:"notes"`
	User           string          `json:"user"`
	CreatedAt      time.Time       `json:"created_at"`
}
