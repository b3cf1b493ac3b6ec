package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	CategoryID      string           `json:"category_id,omitempty"`
	UnitOfMeasure   string           `json:"unit_of_measure,omitempty"` // por defecto "each"
	Barcode         string           `json:"barcode,omitempty"`
	ReorderPoint    int64            `json:"reorder_point,omitempty"`
	ReorderQuantity int64            `json:"reorder_quantity,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
}

// UpdateProductRequest patch parcial para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	UnitOfMeasure   *string          `json:"unit_of_measure,omitempty"`
	Barcode         *string          `json:"barcode,omitempty"`
	Status          *string          `json:"status,omitempty"`
	ReorderPoint    *int64           `json:"reorder_point,omitempty"`
	ReorderQuantity *int64           `json:"reorder_quantity,omitempty"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID              string           `json:"id"`
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	CategoryID      string           `json:"category_id,omitempty"`
	UnitOfMeasure   string           `json:"unit_of_measure"`
	Barcode         string           `json:"barcode,omitempty"`
	Status          string           `json:"status"`
	ReorderPoint    int64            `json:"reorder_point"`
	ReorderQuantity int64            `json:"reorder_quantity"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
