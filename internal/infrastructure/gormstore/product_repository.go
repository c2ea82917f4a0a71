package gormstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación GORM del puerto ProductRepository (usable con db o tx).
type ProductRepo struct {
	db *gorm.DB
}

// NewProductRepository construye el adaptador.
func NewProductRepository(db *gorm.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productSelect = `p.*, COALESCE(c.name, '') AS category_name, COALESCE(l.name, '') AS location_name, COALESCE(s.name, '') AS supplier_name`

func (r *ProductRepo) withNames(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("products AS p").
		Select(productSelect).
		Joins("LEFT JOIN categories c ON c.id = p.category_id").
		Joins("LEFT JOIN locations l ON l.id = p.location_id").
		Joins("LEFT JOIN suppliers s ON s.id = p.supplier_id")
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	m := toProductModel(product)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapNotDuplicate("insert product", err, domain.Duplicate("el código %s ya existe", product.Code))
	}
	return nil
}

// GetByID obtiene un producto por ID con los nombres de sus referencias.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.first(ctx, "p.id = ?", id)
}

// GetByCode obtiene un producto por código sin distinguir mayúsculas.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.first(ctx, "UPPER(p.code) = ?", strings.ToUpper(code))
}

func (r *ProductRepo) first(ctx context.Context, cond string, arg any) (*entity.Product, error) {
	var rows []productRow
	if err := r.withNames(ctx).Where(cond, arg).Limit(1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toEntity(), nil
}

// GetForUpdate obtiene el producto con bloqueo de fila (FOR UPDATE en PostgreSQL;
// en SQLite la transacción ya es exclusiva).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	var m ProductModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Take(&m).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return m.toEntity(), nil
}

// Update actualiza los campos editables, incluido current_stock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	m := toProductModel(product)
	err := r.db.WithContext(ctx).
		Model(&ProductModel{ID: product.ID}).
		Select("name", "description", "price", "qc_status", "current_stock", "min_stock",
			"category_id", "location_id", "supplier_id", "updated_at").
		Updates(&m).Error
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateStock actualiza solo current_stock (usado por el libro de stock).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"current_stock": stock, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return fmt.Errorf("update product stock: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return errNotFoundProduct
	}
	return nil
}

// Delete elimina el producto y sus movimientos en una transacción.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&MovementModel{}).Error; err != nil {
			return fmt.Errorf("delete movements: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&ProductModel{})
		if res.Error != nil {
			return fmt.Errorf("delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return errNotFoundProduct
		}
		return nil
	})
}

// List lista productos filtrados ordenados por nombre y devuelve el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int64, error) {
	filtered := func(q *gorm.DB) *gorm.DB {
		if f.CategoryID != "" {
			q = q.Where("p.category_id = ?", f.CategoryID)
		}
		if f.LocationID != "" {
			q = q.Where("p.location_id = ?", f.LocationID)
		}
		if f.SupplierID != "" {
			q = q.Where("p.supplier_id = ?", f.SupplierID)
		}
		if f.Search != "" {
			pattern := containsPattern(strings.ToLower(f.Search))
			q = q.Where(`(LOWER(p.name) LIKE ? ESCAPE '\' OR LOWER(p.code) LIKE ? ESCAPE '\')`, pattern, pattern)
		}
		switch f.StockStatus {
		case repository.StockStatusLow:
			q = q.Where("p.current_stock < p.min_stock")
		case repository.StockStatusOK:
			q = q.Where("p.current_stock >= p.min_stock")
		}
		return q
	}

	var total int64
	if err := filtered(r.db.WithContext(ctx).Table("products AS p")).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	var rows []productRow
	err := filtered(r.withNames(ctx)).
		Order("p.name, p.code").
		Limit(f.Limit).
		Offset(f.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return toProducts(rows), total, nil
}

// ListLowStock lista productos con current_stock < min_stock, los más críticos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	var rows []productRow
	err := r.withNames(ctx).
		Where("p.current_stock < p.min_stock").
		Order("(p.min_stock - p.current_stock) DESC, p.code").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return toProducts(rows), nil
}

func toProducts(rows []productRow) []*entity.Product {
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
