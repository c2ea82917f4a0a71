package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

// CategoryRepo implementación GORM de CategoryRepository.
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Create inserta una categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	m := categoryModel{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapNotDuplicate("insert category", err, domain.Duplicate("la categoría %q ya existe", c.Name))
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.take(ctx, "id = ?", id)
}

// GetByName obtiene una categoría por nombre exacto.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.take(ctx, "name = ?", name)
}

func (r *CategoryRepo) take(ctx context.Context, cond string, arg string) (*entity.Category, error) {
	var m categoryModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &entity.Category{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

// List lista categorías ordenadas por nombre.
func (r *CategoryRepo) List(ctx context.Context, limit, offset int) ([]*entity.Category, error) {
	var models []categoryModel
	if err := r.db.WithContext(ctx).Order("name").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(models))
	for _, m := range models {
		list = append(list, &entity.Category{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}
	return list, nil
}

// LocationRepo implementación GORM de LocationRepository.
type LocationRepo struct {
	db *gorm.DB
}

// NewLocationRepository construye el adaptador.
func NewLocationRepository(db *gorm.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

// Create inserta una ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	m := locationModel{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapNotDuplicate("insert location", err, domain.Duplicate("la ubicación %q ya existe", l.Name))
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	return r.take(ctx, "id = ?", id)
}

// GetByName obtiene una ubicación por nombre exacto.
func (r *LocationRepo) GetByName(ctx context.Context, name string) (*entity.Location, error) {
	return r.take(ctx, "name = ?", name)
}

func (r *LocationRepo) take(ctx context.Context, cond string, arg string) (*entity.Location, error) {
	var m locationModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &entity.Location{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt}, nil
}

// List lista ubicaciones ordenadas por nombre.
func (r *LocationRepo) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	var models []locationModel
	if err := r.db.WithContext(ctx).Order("name").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	list := make([]*entity.Location, 0, len(models))
	for _, m := range models {
		list = append(list, &entity.Location{ID: m.ID, Name: m.Name, CreatedAt: m.CreatedAt})
	}
	return list, nil
}

// SupplierRepo implementación GORM de SupplierRepository.
type SupplierRepo struct {
	db *gorm.DB
}

// NewSupplierRepository construye el adaptador.
func NewSupplierRepository(db *gorm.DB) *SupplierRepo {
	return &SupplierRepo{db: db}
}

// Create inserta un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	m := supplierModel{ID: s.ID, Name: s.Name, Contact: s.Contact, Email: s.Email, Phone: s.Phone, CreatedAt: s.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapNotDuplicate("insert supplier", err, domain.Duplicate("el proveedor %q ya existe", s.Name))
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	return r.take(ctx, "id = ?", id)
}

// GetByName obtiene un proveedor por nombre exacto.
func (r *SupplierRepo) GetByName(ctx context.Context, name string) (*entity.Supplier, error) {
	return r.take(ctx, "name = ?", name)
}

func (r *SupplierRepo) take(ctx context.Context, cond string, arg string) (*entity.Supplier, error) {
	var m supplierModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return toSupplier(m), nil
}

// List lista proveedores ordenados por nombre.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	var models []supplierModel
	if err := r.db.WithContext(ctx).Order("name").Limit(limit).Offset(offset).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	list := make([]*entity.Supplier, 0, len(models))
	for _, m := range models {
		list = append(list, toSupplier(m))
	}
	return list, nil
}

func toSupplier(m supplierModel) *entity.Supplier {
	return &entity.Supplier{ID: m.ID, Name: m.Name, Contact: m.Contact, Email: m.Email, Phone: m.Phone, CreatedAt: m.CreatedAt}
}
