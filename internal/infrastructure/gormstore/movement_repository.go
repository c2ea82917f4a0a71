package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación GORM del libro de movimientos.
type MovementRepo struct {
	db *gorm.DB
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(db *gorm.DB) *MovementRepo {
	return &MovementRepo{db: db}
}

// Create inserta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	model := MovementModel{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Type:           string(m.Type),
		Quantity:       m.Quantity,
		ResultingStock: m.ResultingStock,
		Reference:      m.Reference,
		Notes:          m.Notes,
		UserLabel:      m.UserLabel,
		CreatedAt:      m.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista movimientos del más reciente al más antiguo con nombre y código del producto.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	q := r.db.WithContext(ctx).
		Table("movements AS m").
		Select("m.*, p.name AS product_name, p.code AS product_code").
		Joins("JOIN products p ON p.id = m.product_id")
	if f.ProductID != "" {
		q = q.Where("m.product_id = ?", f.ProductID)
	}
	if f.Type != "" {
		q = q.Where("m.type = ?", string(f.Type))
	}
	var rows []movementRow
	err := q.Order("m.created_at DESC, m.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
