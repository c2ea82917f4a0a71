package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

// Las cantidades se guardan como NUMERIC(18,4): hasta 4 decimales y menos de 10^14 en valor absoluto.
const AmountScale = 4

var amountLimit = decimal.New(1, 14)

// ValidateAmount revisa que v quepa en la columna sin redondeo ni desborde.
func ValidateAmount(field string, v decimal.Decimal) error {
	if !v.Equal(v.Truncate(AmountScale)) {
		return domain.Invalid("%s admite como máximo %d decimales", field, AmountScale)
	}
	if v.Abs().GreaterThanOrEqual(amountLimit) {
		return domain.Invalid("%s fuera de rango (máximo %s)", field, amountLimit.Sub(decimal.New(1, -AmountScale)).String())
	}
	return nil
}

// ApplyMovement calcula el stock resultante de aplicar un movimiento (servicio de dominio).
//
//	in:         stock + cantidad
//	out:        stock - cantidad, falla con ErrInsufficientStock si stock < cantidad
//	adjustment: max(0, stock + cantidad), donde cantidad es un delta con signo
func ApplyMovement(current decimal.Decimal, t entity.MovementType, quantity decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateQuantity(t, quantity); err != nil {
		return current, err
	}
	var next decimal.Decimal
	switch t {
	case entity.MovementIn:
		next = current.Add(quantity)
	case entity.MovementOut:
		if current.LessThan(quantity) {
			return current, fmt.Errorf("%w: disponible %s, solicitado %s", domain.ErrInsufficientStock, current.String(), quantity.String())
		}
		next = current.Sub(quantity)
	default:
		next = current.Add(quantity)
		if next.IsNegative() {
			next = decimal.Zero
		}
	}
	if err := ValidateAmount("el stock resultante", next); err != nil {
		return current, err
	}
	return next, nil
}

// ValidateQuantity revisa el tipo, que in/out no lleven cantidades negativas y que la cantidad sea representable.
func ValidateQuantity(t entity.MovementType, quantity decimal.Decimal) error {
	if !t.Valid() {
		return domain.Invalid("tipo de movimiento inválido: %q", string(t))
	}
	if t != entity.MovementAdjustment && quantity.IsNegative() {
		return domain.Invalid("la cantidad no puede ser negativa")
	}
	return ValidateAmount("quantity", quantity)
}

// RecordedQuantity es la cantidad que se guarda en el libro (valor absoluto).
func RecordedQuantity(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Abs()
}
