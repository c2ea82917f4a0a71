package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.code, p.name, p.description, p.price, p.qc_status, p.current_stock, p.min_stock,
	p.category_id, p.location_id, p.supplier_id, p.created_at, p.updated_at,
	COALESCE(c.name, ''), COALESCE(l.name, ''), COALESCE(s.name, '')`

const productFrom = `
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Price, &p.QCStatus, &p.CurrentStock, &p.MinStock,
		&p.CategoryID, &p.LocationID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.LocationName, &p.SupplierName,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, code, name, description, price, qc_status, current_stock, min_stock,
			category_id, location_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Description, product.Price, product.QCStatus,
		product.CurrentStock, product.MinStock, product.CategoryID, product.LocationID, product.SupplierID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el código %s ya existe", product.Code)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con los nombres de sus referencias.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT ... FOR UPDATE). Solo tiene sentido dentro de una tx.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE p.id = $1 FOR UPDATE OF p`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código sin distinguir mayúsculas.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+productFrom+` WHERE upper(p.code) = upper($1)`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables, incluido current_stock (el caso de uso registra el ajuste).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, qc_status = $5, current_stock = $6,
			min_stock = $7, category_id = $8, location_id = $9, supplier_id = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.QCStatus, product.CurrentStock,
		product.MinStock, product.CategoryID, product.LocationID, product.SupplierID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo current_stock (usado por el libro de stock).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		id, stock, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto")
	}
	return nil
}

// Delete elimina el producto; los movimientos caen por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("producto")
	}
	return nil
}

// List lista productos filtrados, ordenados por nombre, y devuelve también el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int64, error) {
	where, args := productWhere(f)

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	query, args := productListQuery(where, args, f.Limit, f.Offset)
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return list, total, nil
}

// productWhere arma la cláusula WHERE (con espacio inicial) y sus argumentos numerados desde $1.
func productWhere(f repository.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.CategoryID != "" {
		add("p.category_id = $%d", f.CategoryID)
	}
	if f.LocationID != "" {
		add("p.location_id = $%d", f.LocationID)
	}
	if f.SupplierID != "" {
		add("p.supplier_id = $%d", f.SupplierID)
	}
	if f.Search != "" {
		args = append(args, containsPattern(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(p.name ILIKE $%d ESCAPE '\' OR p.code ILIKE $%d ESCAPE '\')`, n, n))
	}
	switch f.StockStatus {
	case repository.StockStatusLow:
		conds = append(conds, "p.current_stock < p.min_stock")
	case repository.StockStatusOK:
		conds = append(conds, "p.current_stock >= p.min_stock")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// productListQuery agrega orden y paginación a la consulta de listado; limit y offset van al final.
func productListQuery(where string, args []any, limit, offset int) (string, []any) {
	out := make([]any, 0, len(args)+2)
	out = append(out, args...)
	out = append(out, limit, offset)
	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY p.name, p.code LIMIT $%d OFFSET $%d`,
		productColumns, productFrom, where, len(out)-1, len(out))
	return query, out
}

// ListLowStock lista productos con current_stock < min_stock, los más críticos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.query(ctx, `SELECT `+productColumns+productFrom+`
		WHERE p.current_stock < p.min_stock
		ORDER BY (p.min_stock - p.current_stock) DESC, p.code`)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return list, nil
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
