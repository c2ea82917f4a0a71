package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

// Estados de stock aceptados por ProductFilter.StockStatus.
const (
	StockStatusLow = "low"
	StockStatusOK  = "ok"
)

// ProductFilter criterios de listado. Campos vacíos no filtran.
type ProductFilter struct {
	CategoryID  string
	LocationID  string
	SupplierID  string
	Search      string // subcadena de name o code, sin distinguir mayúsculas
	StockStatus string // low | ok
	Limit       int
	Offset      int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get devuelven (nil, nil) cuando no existe el registro.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
	// Delete elimina el producto y sus movimientos.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}
