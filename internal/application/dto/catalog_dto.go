package dto

import "time"

// CreateCategoryRequest body para POST /categories.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLocationRequest body para POST /locations.
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest body para POST /suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Contact string `json:"contact" validate:"max=100"`
	Email   string `json:"email" validate:"omitempty,email,max=100"`
	Phone   string `json:"phone" validate:"max=20"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}
