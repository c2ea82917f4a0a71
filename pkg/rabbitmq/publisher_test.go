package rabbitmq

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	return m.Called(ctx, routingKey, payload).Error(0)
}

func TestMovementEventPublisher_RoutingKeys(t *testing.T) {
	ctx := context.Background()
	pub := new(mockPublisher)
	mov := inventory.MovementEvent{MovementID: "m1", Type: "out", Quantity: decimal.NewFromInt(3)}
	low := inventory.LowStockEvent{ProductID: "p1", ProductCode: "TP002"}
	pub.On("Publish", ctx, RoutingMovementRecorded, mov).Return(nil).Once()
	pub.On("Publish", ctx, RoutingStockLow, low).Return(nil).Once()

	p := NewMovementEventPublisher(pub)
	require.NoError(t, p.PublishMovementRecorded(ctx, mov))
	require.NoError(t, p.PublishLowStock(ctx, low))
	pub.AssertExpectations(t)
}

func TestNewClient_SinURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
