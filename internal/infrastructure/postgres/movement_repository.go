package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo persistencia del libro de movimientos (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, product_id, type, quantity, resulting_stock, reference, notes, user_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.ResultingStock, m.Reference, m.Notes, m.UserLabel, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista movimientos del más reciente al más antiguo con nombre y código del producto.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	query, args := movementListQuery(f)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var (
			m   entity.Movement
			typ string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.ResultingStock, &m.Reference, &m.Notes,
			&m.UserLabel, &m.CreatedAt, &m.ProductName, &m.ProductCode); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// movementListQuery arma el SELECT del libro con filtros opcionales; limit y offset son los dos últimos argumentos.
func movementListQuery(f repository.MovementFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("m.product_id = $%d", len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		conds = append(conds, fmt.Sprintf("m.type = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT m.id, m.product_id, m.type, m.quantity, m.resulting_stock, m.reference, m.notes, m.user_label, m.created_at,
			p.name, p.code
		FROM movements m
		JOIN products p ON p.id = m.product_id
		%s
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))
	return query, args
}
