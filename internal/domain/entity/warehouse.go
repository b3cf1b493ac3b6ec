package entity

import "time"

// Warehouse representa una bodega física. Contiene zonas, y las zonas
// contienen ubicaciones (locations) donde efectivamente vive el stock.
type Warehouse struct {
	ID        string
	Code      string // único
	Name      string
	Address   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Zone zona dentro de una bodega (recepción, picking, almacenamiento...).
// Code es único por bodega.
type Zone struct {
	ID          string
	WarehouseID string
	Code        string
	Name        string
	ZoneType    string
	CreatedAt   time.Time
}

// Location ubicación física concreta dentro de una zona (estante, posición).
// Es la granularidad a la que el libro de inventario lleva el stock.
type Location struct {
	ID          string
	ZoneID      string
	Code        string // único por zona
	Label       string
	MaxCapacity int64 // 0 = sin límite declarado
	IsActive    bool
	CreatedAt   time.Time
}
