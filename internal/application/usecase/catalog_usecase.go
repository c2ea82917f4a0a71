package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

// CategoryUseCase alta y listado de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría con nombre único.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("la categoría %q ya existe", name)
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}, nil
}

// List lista categorías por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// LocationUseCase alta y listado de ubicaciones.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una ubicación con nombre único.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("la ubicación %q ya existe", name)
	}
	l := &entity.Location{ID: uuid.New().String(), Name: name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return &dto.LocationResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt}, nil
}

// List lista ubicaciones por nombre.
func (uc *LocationUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.LocationResponse{ID: l.ID, Name: l.Name, CreatedAt: l.CreatedAt})
	}
	return out, nil
}

// SupplierUseCase alta y listado de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor con nombre único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name es requerido")
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("el proveedor %q ya existe", name)
	}
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores por nombre.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, page.Limit, page.Skip)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
	}
}
