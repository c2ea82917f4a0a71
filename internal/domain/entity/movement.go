package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// Valid indica si el tipo es uno de in, out o adjustment.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdjustment:
		return true
	}
	return false
}

// Movement es una entrada inmutable del libro de stock de un producto.
// Quantity se guarda en valor absoluto; ResultingStock es el stock tras aplicarlo.
type Movement struct {
	ID             string
	ProductID      string
	Type           MovementType
	Quantity       decimal.Decimal
	ResultingStock decimal.Decimal
	Reference      string
	Notes          string
	UserLabel      string
	CreatedAt      time.Time

	// Datos del producto resueltos en listados.
	ProductName string
	ProductCode string
}
