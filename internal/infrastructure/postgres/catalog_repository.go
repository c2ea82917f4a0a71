package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo persistencia de categorías.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create inserta una categoría; nombre repetido -> ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("la categoría %q ya existe", c.Name)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM categories WHERE id = $1`, id)
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM categories WHERE name = $1`, name)
}

func (r *CategoryRepo) get(ctx context.Context, query string, arg string) (*entity.Category, error) {
	var c entity.Category
	if err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// List lista categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM categories ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// LocationRepo persistencia de ubicaciones.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create inserta una ubicación; nombre repetido -> ErrDuplicate.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.Exec(ctx, `INSERT INTO locations (id, name, created_at) VALUES ($1, $2, $3)`, l.ID, l.Name, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("la ubicación %q ya existe", l.Name)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM locations WHERE id = $1`, id)
}

// GetByName obtiene una ubicación por nombre exacto.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*entity.Location, error) {
	return r.get(ctx, `SELECT id, name, created_at FROM locations WHERE name = $1`, name)
}

func (r *LocationRepo) get(ctx context.Context, query string, arg string) (*entity.Location, error) {
	var l entity.Location
	if err := r.q.QueryRow(ctx, query, arg).Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista ubicaciones ordenadas por nombre.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM locations ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SupplierRepo persistencia de proveedores.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, contact, email, phone, created_at`

// Create inserta un proveedor; nombre repetido -> ErrDuplicate.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO suppliers (`+supplierColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Contact, s.Email, s.Phone, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("el proveedor %q ya existe", s.Name)
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.get(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
}

// GetByName obtiene un proveedor por nombre exacto.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return r.get(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE name = $1`, name)
}

func (r *SupplierRepo) get(ctx context.Context, query string, arg string) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := r.q.QueryRow(ctx, query, arg).Scan(&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// List lista proveedores ordenados por nombre.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Email, &s.Phone, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
