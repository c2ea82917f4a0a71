package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del inventario.
// CurrentStock solo cambia junto con un Movement en la misma transacción.
type Product struct {
	ID           string
	Code         string // único sin distinguir mayúsculas; se guarda en mayúsculas
	Name         string
	Description  string
	Price        *decimal.Decimal
	QCStatus     string
	CurrentStock decimal.Decimal
	MinStock     decimal.Decimal
	CategoryID   *string
	LocationID   *string
	SupplierID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Nombres resueltos en lecturas (no se persisten en products).
	CategoryName string
	LocationName string
	SupplierName string
}

// IsLowStock indica si el stock actual está por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThan(p.MinStock)
}

// Shortfall devuelve min_stock - current_stock (positivo si hay alerta).
func (p *Product) Shortfall() decimal.Decimal {
	return p.MinStock.Sub(p.CurrentStock)
}
