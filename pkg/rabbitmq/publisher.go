package rabbitmq

import (
	"context"

	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
)

// Tipos de evento (amqp.Publishing.Type).
const (
	RoutingMovementRecorded = "movement.recorded"
	RoutingStockLow         = "stock.low"
)

// Publisher es lo mínimo que necesita el adaptador; *Client lo cumple.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// MovementEventPublisher adapta un Publisher al puerto inventory.EventPublisher.
type MovementEventPublisher struct {
	pub Publisher
}

var _ inventory.EventPublisher = (*MovementEventPublisher)(nil)

// NewMovementEventPublisher construye el adaptador.
func NewMovementEventPublisher(pub Publisher) *MovementEventPublisher {
	return &MovementEventPublisher{pub: pub}
}

func (p *MovementEventPublisher) PublishMovementRecorded(ctx context.Context, evt inventory.MovementEvent) error {
	return p.pub.Publish(ctx, RoutingMovementRecorded, evt)
}

func (p *MovementEventPublisher) PublishLowStock(ctx context.Context, evt inventory.LowStockEvent) error {
	return p.pub.Publish(ctx, RoutingStockLow, evt)
}
