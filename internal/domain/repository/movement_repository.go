package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

// MovementFilter criterios de listado del libro de stock.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType // vacío = todos
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia para el libro de movimientos (DIP).
// Los movimientos son inmutables: solo se insertan y se listan.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// List devuelve los movimientos del más reciente al más antiguo, con nombre y código del producto.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}
