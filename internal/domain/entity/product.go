package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive       = "active"
	ProductStatusDiscontinued = "discontinued"
)

// Product representa un producto o SKU del catálogo.
// CostPrice es nil si el costo no se conoce todavía (sin valorización).
// ReorderPoint/ReorderQuantity alimentan las alertas de reposición;
// un ReorderPoint de 0 desactiva la alerta para ese producto.
type Product struct {
	ID              string
	SKU             string // único
	Name            string
	Description     string
	CategoryID      string // vacío = sin categoría; referencia por id, nunca objeto embebido
	UnitOfMeasure   string
	Barcode         string // único si no vacío
	Status          string
	ReorderPoint    int64
	ReorderQuantity int64
	CostPrice       *decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Category categoría de producto; árbol por ParentID (vacío = raíz).
type Category struct {
	ID        string
	Name      string // único
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
