package dto

import "time"

// CreateVendorRequest body para POST /api/vendors.
type CreateVendorRequest struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	ContactName  string `json:"contact_name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Address      string `json:"address,omitempty"`
	PaymentTerms string `json:"payment_terms,omitempty"`
}

// UpdateVendorRequest patch parcial para PUT /api/vendors/:id.
type UpdateVendorRequest struct {
	Name         *string `json:"name,omitempty"`
	ContactName  *string `json:"contact_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	PaymentTerms *string `json:"payment_terms,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// VendorResponse proveedor en respuestas.
type VendorResponse struct {
	ID           string    `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	PaymentTerms string    `json:"payment_terms,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VendorListResponse página de proveedores.
type VendorListResponse struct {
	Items []VendorResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
