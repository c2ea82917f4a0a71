package entity

import "time"

// Category agrupa productos. Nombre único.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Location es una ubicación física (bodega, estante). Nombre único.
type Location struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Supplier proveedor de productos. Nombre único.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	Phone     string
	CreatedAt time.Time
}
