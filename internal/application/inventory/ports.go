package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace rollback de todo; los errores de commit envuelven domain.ErrPersistence.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.MovementRepository,
	) error) error
}

// MovementEvent se publica tras confirmar un movimiento.
type MovementEvent struct {
	MovementID     string          `json:"movement_id"`
	ProductID      string          `json:"product_id"`
	ProductCode    string          `json:"product_code"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	ResultingStock decimal.Decimal `json:"resulting_stock"`
	User           string          `json:"user"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// LowStockEvent se publica cuando un movimiento deja el producto bajo su mínimo.
type LowStockEvent struct {
	ProductID    string          `json:"product_id"`
	ProductCode  string          `json:"product_code"`
	ProductName  string          `json:"product_name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	OccurredAt   time.Time       `json:"occurred_at"`
}

// EventPublisher publica eventos de inventario hacia un broker. Es opcional.
type EventPublisher interface {
	PublishMovementRecorded(ctx context.Context, evt MovementEvent) error
	PublishLowStock(ctx context.Context, evt LowStockEvent) error
}

// StockReportGenerator genera el reporte PDF de productos bajo mínimo.
type StockReportGenerator interface {
	GenerateLowStockReport(ctx context.Context, items []*entity.Product, generatedAt time.Time) ([]byte, error)
}
