package dto

import "time"

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// UpdateWarehouseRequest patch parcial para PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name,omitempty"`
	Address  *string `json:"address,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse página de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateZoneRequest body para POST /api/warehouses/:id/zones.
type CreateZoneRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	ZoneType string `json:"zone_type,omitempty"`
}

// ZoneResponse zona en respuestas.
type ZoneResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	ZoneType    string    `json:"zone_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateLocationRequest body para POST /api/zones/:id/locations.
type CreateLocationRequest struct {
	Code        string `json:"code"`
	Label       string `json:"label,omitempty"`
	MaxCapacity int64  `json:"max_capacity,omitempty"`
}

// LocationResponse ubicación en respuestas.
type LocationResponse struct {
	ID          string    `json:"id"`
	ZoneID      string    `json:"zone_id"`
	Code        string    `json:"code"`
	Label       string    `json:"label,omitempty"`
	MaxCapacity int64     `json:"max_capacity,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
