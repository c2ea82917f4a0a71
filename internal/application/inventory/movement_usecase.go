package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

// MovementUseCase es el libro de stock: registra movimientos de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y los lista.
type MovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	events       EventPublisher
}

// NewMovementUseCase construye el caso de uso. events puede ser nil.
func NewMovementUseCase(txRunner TxRunner, movementRepo repository.MovementRepository, events EventPublisher) *MovementUseCase {
	return &MovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		events:       events,
	}
}

// MovementInput entrada del caso de uso RecordMovement.
type MovementInput struct {
	ProductID string
	Type      entity.MovementType
	Quantity  decimal.Decimal
	Reference string
	Notes     string
	UserLabel string
}

// RecordMovement bloquea el producto, calcula el nuevo stock, inserta el movimiento y
// actualiza current_stock en una sola transacción. Si algo falla no queda nada escrito.
func (uc *MovementUseCase) RecordMovement(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.Invalid("product_id es requerido")
	}
	if err := domaininv.ValidateQuantity(in.Type, in.Quantity); err != nil {
		return nil, err
	}

	var (
		movement *entity.Movement
		product  *entity.Product
	)
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto")
		}
		newStock, err := domaininv.ApplyMovement(p.CurrentStock, in.Type, in.Quantity)
		if err != nil {
			return err
		}
		m := newMovement(p, in.Type, in.Quantity, newStock, in.Reference, in.Notes, in.UserLabel)
		if err := movementRepo.Create(ctx, m); err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, p.ID, newStock); err != nil {
			return err
		}
		p.CurrentStock = newStock
		movement, product = m, p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, movement, product)
	out := toMovementResponse(movement)
	return &out, nil
}

// List lista movimientos del más reciente al más antiguo.
func (uc *MovementUseCase) List(ctx context.Context, page dto.PageRequest, filter dto.MovementFilterRequest) ([]dto.MovementResponse, error) {
	f := repository.MovementFilter{
		ProductID: strings.TrimSpace(filter.ProductID),
		Limit:     page.Limit,
		Offset:    page.Skip,
	}
	if filter.Type != "" && filter.Type != "all" {
		t := entity.MovementType(filter.Type)
		if !t.Valid() {
			return nil, domain.Invalid("tipo de movimiento inválido: %q", filter.Type)
		}
		f.Type = t
	}
	list, err := uc.movementRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// ListByProduct lista los movimientos de un producto (vacío si el producto no existe).
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.Invalid("product_id inválido")
	}
	return uc.List(ctx, page, dto.MovementFilterRequest{ProductID: productID})
}

func (uc *MovementUseCase) publish(ctx context.Context, m *entity.Movement, p *entity.Product) {
	if uc.events == nil {
		return
	}
	evt := MovementEvent{
		MovementID:     m.ID,
		ProductID:      p.ID,
		ProductCode:    p.Code,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		ResultingStock: m.ResultingStock,
		User:           m.UserLabel,
		OccurredAt:     m.CreatedAt,
	}
	if err := uc.events.PublishMovementRecorded(ctx, evt); err != nil {
		log.Warn().Err(err).Str("movement_id", m.ID).Msg("no se pudo publicar movement.recorded")
	}
	if !p.IsLowStock() {
		return
	}
	low := LowStockEvent{
		ProductID:    p.ID,
		ProductCode:  p.Code,
		ProductName:  p.Name,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		OccurredAt:   m.CreatedAt,
	}
	if err := uc.events.PublishLowStock(ctx, low); err != nil {
		log.Warn().Err(err).Str("product_id", p.ID).Msg("no se pudo publicar stock.low")
	}
}

// newMovement arma la entrada del libro. La cantidad se guarda en valor absoluto.
func newMovement(p *entity.Product, t entity.MovementType, qty, resulting decimal.Decimal, reference, notes, user string) *entity.Movement {
	return &entity.Movement{
		ID:             uuid.New().String(),
		ProductID:      p.ID,
		Type:           t,
		Quantity:       domaininv.RecordedQuantity(qty),
		ResultingStock: resulting,
		Reference:      strings.TrimSpace(reference),
		Notes:          strings.TrimSpace(notes),
		UserLabel:      strings.TrimSpace(user),
		CreatedAt:      time.Now().UTC(),
		ProductName:    p.Name,
		ProductCode:    p.Code,
	}
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		ProductCode:    m.ProductCode,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		ResultingStock: m.ResultingStock,
		Reference:      m.Reference,
		Notes:          m.Notes,
		User:           m.UserLabel,
		CreatedAt:      m.CreatedAt,
	}
}

// SetStock lleva el stock de p (obtenido con GetForUpdate dentro de la tx) a target y
// registra la diferencia como adjustment. Devuelve nil si el stock no cambia.
func SetStock(ctx context.Context, movementRepo repository.MovementRepository, p *entity.Product, target decimal.Decimal, reference, notes, user string) (*entity.Movement, error) {
	if target.IsNegative() {
		return nil, domain.Invalid("current_stock no puede ser negativo")
	}
	if target.Equal(p.CurrentStock) {
		return nil, nil
	}
	delta := target.Sub(p.CurrentStock)
	newStock, err := domaininv.ApplyMovement(p.CurrentStock, entity.MovementAdjustment, delta)
	if err != nil {
		return nil, err
	}
	m := newMovement(p, entity.MovementAdjustment, delta, newStock, reference, notes, user)
	if err := movementRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	p.CurrentStock = newStock
	return m, nil
}
