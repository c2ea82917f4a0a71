package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

type categoryModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (categoryModel) TableName() string { return "categories" }

type locationModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	CreatedAt time.Time
}

func (locationModel) TableName() string { return "locations" }

type supplierModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:100;not null;uniqueIndex"`
	Contact   string `gorm:"size:100;not null"`
	Email     string `gorm:"size:100;not null"`
	Phone     string `gorm:"size:20;not null"`
	CreatedAt time.Time
}

func (supplierModel) TableName() string { return "suppliers" }

// ProductModel guarda code ya en mayúsculas, por eso basta un índice único simple.
type ProductModel struct {
	ID           string           `gorm:"primaryKey;size:36"`
	Code         string           `gorm:"size:50;not null;uniqueIndex"`
	Name         string           `gorm:"size:100;not null;index"`
	Description  string           `gorm:"type:text;not null"`
	Price        *decimal.Decimal `gorm:"type:numeric(18,4)"`
	QCStatus     string           `gorm:"column:qc_status;size:50;not null"`
	CurrentStock decimal.Decimal  `gorm:"type:numeric(18,4);not null"`
	MinStock     decimal.Decimal  `gorm:"type:numeric(18,4);not null"`
	CategoryID   *string          `gorm:"size:36;index"`
	LocationID   *string          `gorm:"size:36;index"`
	SupplierID   *string          `gorm:"size:36;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ProductModel) TableName() string { return "products" }

// productRow es ProductModel con los nombres de sus referencias (LEFT JOIN).
type productRow struct {
	ProductModel
	CategoryName string
	LocationName string
	SupplierName string
}

type MovementModel struct {
	ID             string          `gorm:"primaryKey;size:36"`
	ProductID      string          `gorm:"size:36;not null;index:ix_movements_product_created,priority:1"`
	Type           string          `gorm:"size:20;not null"`
	Quantity       decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	ResultingStock decimal.Decimal `gorm:"type:numeric(18,4);not null"`
	Reference      string          `gorm:"size:50;not null"`
	Notes          string          `gorm:"type:text;not null"`
	UserLabel      string          `gorm:"size:100;not null"`
	CreatedAt      time.Time       `gorm:"index:ix_movements_product_created,priority:2"`
}

func (MovementModel) TableName() string { return "movements" }

type movementRow struct {
	MovementModel
	ProductName string
	ProductCode string
}

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"size:100;not null;uniqueIndex"`
	FullName     string `gorm:"size:100;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         string `gorm:"size:20;not null"`
	IsActive     bool   `gorm:"not null"`
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func toProductModel(p *entity.Product) ProductModel {
	return ProductModel{
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
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m ProductModel) toEntity() *entity.Product {
	return &entity.Product{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Description:  m.Description,
		Price:        m.Price,
		QCStatus:     m.QCStatus,
		CurrentStock: m.CurrentStock,
		MinStock:     m.MinStock,
		CategoryID:   m.CategoryID,
		LocationID:   m.LocationID,
		SupplierID:   m.SupplierID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r productRow) toEntity() *entity.Product {
	p := r.ProductModel.toEntity()
	p.CategoryName = r.CategoryName
	p.LocationName = r.LocationName
	p.SupplierName = r.SupplierName
	return p
}

func (r movementRow) toEntity() *entity.Movement {
	return &entity.Movement{
		ID:             r.ID,
		ProductID:      r.ProductID,
		Type:           entity.MovementType(r.Type),
		Quantity:       r.Quantity,
		ResultingStock: r.ResultingStock,
		Reference:      r.Reference,
		Notes:          r.Notes,
		UserLabel:      r.UserLabel,
		CreatedAt:      r.CreatedAt,
		ProductName:    r.ProductName,
		ProductCode:    r.ProductCode,
	}
}

func (m userModel) toEntity() *entity.User {
	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		FullName:     m.FullName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsActive:     m.IsActive,
		LastLogin:    m.LastLogin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
