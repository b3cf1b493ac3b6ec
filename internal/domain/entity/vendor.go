package entity

import "time"

// Vendor representa un proveedor al que se le emiten órdenes de compra.
type Vendor struct {
	ID           string
	Code         string // único
	Name         string
	ContactName  string
	Email        string
	Phone        string
	Address      string
	PaymentTerms string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
