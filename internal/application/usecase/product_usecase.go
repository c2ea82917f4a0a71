package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventario-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	domaininv "github.com/jhoicas/inventario-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

// Referencia usada en el libro cuando el stock cambia por edición directa del producto.
const productEditReference = "EDICION-PRODUCTO"

// ProductUseCase casos de uso del catálogo de productos.
// El stock solo cambia junto con una entrada del libro (ver inventory.SetStock).
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	supplierRepo repository.SupplierRepository
	txRunner     inventory.TxRunner
	reports      inventory.StockReportGenerator
}

// NewProductUseCase construye el caso de uso. reports puede ser nil si no se generan PDF.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	supplierRepo repository.SupplierRepository,
	txRunner inventory.TxRunner,
	reports inventory.StockReportGenerator,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		supplierRepo: supplierRepo,
		txRunner:     txRunner,
		reports:      reports,
	}
}

// validateAmounts aplica los límites de columna a los campos presentes, en orden de nombre.
func validateAmounts(fields map[string]*decimal.Decimal) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := fields[name]; v != nil {
			if err := domaininv.ValidateAmount(name, *v); err != nil {
				return err
			}
		}
	}
	return nil
}

// NormalizeCode deja el código sin espacios y en mayúsculas.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create crea un producto. El código se guarda en mayúsculas y es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := NormalizeCode(in.Code)
	if code == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.Invalid("code y name son requeridos")
	}
	if in.CurrentStock == nil || in.MinStock == nil {
		return nil, domain.Invalid("current_stock y min_stock son requeridos")
	}
	if in.CurrentStock.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.Invalid("current_stock y min_stock deben ser >= 0")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.Invalid("price debe ser >= 0")
	}
	if err := validateAmounts(map[string]*decimal.Decimal{
		"current_stock": in.CurrentStock, "min_stock": in.MinStock, "price": in.Price,
	}); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("el código %s ya existe", code)
	}
	categoryID, locationID, supplierID := normalizeRef(in.CategoryID), normalizeRef(in.LocationID), normalizeRef(in.SupplierID)
	if err := uc.checkRefs(ctx, categoryID, locationID, supplierID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        in.Price,
		QCStatus:     in.QCStatus,
		CurrentStock: *in.CurrentStock,
		MinStock:     *in.MinStock,
		CategoryID:   categoryID,
		LocationID:   locationID,
		SupplierID:   supplierID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.reload(ctx, product.ID)
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe o el id no es válido.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound("producto")
	}
	return uc.reload(ctx, id)
}

// List lista productos con filtros y paginación skip/limit.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest, filter dto.ProductFilterRequest) (*dto.ProductListResponse, error) {
	f := repository.ProductFilter{
		CategoryID: filterValue(filter.Category),
		LocationID: filterValue(filter.Location),
		SupplierID: filterValue(filter.Supplier),
		Search:     strings.TrimSpace(filter.Search),
		Limit:      page.Limit,
		Offset:     page.Skip,
	}
	for _, id := range []string{f.CategoryID, f.LocationID, f.SupplierID} {
		if id != "" && !validID(id) {
			return &dto.ProductListResponse{Items: []dto.ProductResponse{}, Page: page.Page(), Limit: page.Limit}, nil
		}
	}
	switch filter.StockStatus {
	case repository.StockStatusLow, repository.StockStatusOK:
		f.StockStatus = filter.StockStatus
	}
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Total: total,
		Page:  page.Page(),
		Pages: page.Pages(total),
		Limit: page.Limit,
	}, nil
}

// Update aplica los campos presentes. Si current_stock cambia, el ajuste queda en el libro
// dentro de la misma transacción. userLabel identifica a quien edita.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, userLabel string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound("producto")
	}
	if in.MinStock != nil && in.MinStock.IsNegative() {
		return nil, domain.Invalid("min_stock debe ser >= 0")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.Invalid("price debe ser >= 0")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.Invalid("name no puede estar vacío")
	}
	if err := validateAmounts(map[string]*decimal.Decimal{
		"current_stock": in.CurrentStock, "min_stock": in.MinStock, "price": in.Price,
	}); err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, normalizeRef(in.CategoryID), normalizeRef(in.LocationID), normalizeRef(in.SupplierID)); err != nil {
		return nil, err
	}

	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.NotFound("producto")
		}
		applyProductChanges(p, in)
		if in.CurrentStock != nil {
			if _, err := inventory.SetStock(ctx, movementRepo, p, *in.CurrentStock, productEditReference, "ajuste por edición del producto", userLabel); err != nil {
				return err
			}
		}
		p.UpdatedAt = time.Now().UTC()
		return productRepo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, id)
}

// Delete elimina un producto y todo su historial de movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NotFound("producto")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("producto")
	}
	return uc.repo.Delete(ctx, id)
}

// Alerts lista los productos con current_stock < min_stock.
func (uc *ProductUseCase) Alerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.StockAlertResponse{
			ID:           p.ID,
			Name:         p.Name,
			Code:         p.Code,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Difference:   p.Shortfall(),
		})
	}
	return out, nil
}

// AlertsReport genera el PDF con los productos bajo mínimo.
func (uc *ProductUseCase) AlertsReport(ctx context.Context) ([]byte, error) {
	if uc.reports == nil {
		return nil, domain.Invalid("generación de reportes no disponible")
	}
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateLowStockReport(ctx, list, time.Now())
}

func (uc *ProductUseCase) reload(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto")
	}
	return toProductResponse(p), nil
}

// checkRefs valida que las referencias indicadas existan.
func (uc *ProductUseCase) checkRefs(ctx context.Context, categoryID, locationID, supplierID *string) error {
	if categoryID != nil {
		if !validID(*categoryID) {
			return domain.Invalid("category_id no existe")
		}
		c, err := uc.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.Invalid("category_id no existe")
		}
	}
	if locationID != nil {
		if !validID(*locationID) {
			return domain.Invalid("location_id no existe")
		}
		l, err := uc.locationRepo.GetByID(ctx, *locationID)
		if err != nil {
			return err
		}
		if l == nil {
			return domain.Invalid("location_id no existe")
		}
	}
	if supplierID != nil {
		if !validID(*supplierID) {
			return domain.Invalid("supplier_id no existe")
		}
		s, err := uc.supplierRepo.GetByID(ctx, *supplierID)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.Invalid("supplier_id no existe")
		}
	}
	return nil
}

func applyProductChanges(p *entity.Product, in dto.UpdateProductRequest) {
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		price := *in.Price
		p.Price = &price
	}
	if in.QCStatus != nil {
		p.QCStatus = *in.QCStatus
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.CategoryID != nil {
		p.CategoryID = normalizeRef(in.CategoryID)
	}
	if in.LocationID != nil {
		p.LocationID = normalizeRef(in.LocationID)
	}
	if in.SupplierID != nil {
		p.SupplierID = normalizeRef(in.SupplierID)
	}
}

// normalizeRef trata "" como referencia ausente.
func normalizeRef(id *string) *string {
	if id == nil {
		return nil
	}
	v := strings.TrimSpace(*id)
	if v == "" {
		return nil
	}
	return &v
}

func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func optionalName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		QCStatus:     p.QCStatus,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		CategoryID:   p.CategoryID,
		LocationID:   p.LocationID,
		SupplierID:   p.SupplierID,
		Category:     optionalName(p.CategoryName),
		Location:     optionalName(p.LocationName),
		Supplier:     optionalName(p.SupplierName),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
