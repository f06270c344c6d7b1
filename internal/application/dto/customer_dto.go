package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	TaxID            string `json:"tax_id" validate:"required,min=1,max=50"`
	BusinessType     string `json:"business_type"`
	Address          string `json:"address" validate:"required"`
	Phone            string `json:"phone" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	InternetProvider string `json:"internet_provider"`
	AuthName         string `json:"auth_name" validate:"required"`
	AuthMobile       string `json:"auth_mobile" validate:"required"`
	AuthEmail        string `json:"auth_email" validate:"required,email"`
	Notes            string `json:"notes"`
	MultiBranch      bool   `json:"multi_branch"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TaxID            string    `json:"tax_id"`
	BusinessType     string    `json:"business_type"`
	Address          string    `json:"address"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	InternetProvider string    `json:"internet_provider"`
	AuthName         string    `json:"auth_name"`
	AuthMobile       string    `json:"auth_mobile"`
	AuthEmail        string    `json:"auth_email"`
	Notes            string    `json:"notes"`
	MultiBranch      bool      `json:"multi_branch"`
	CreatedAt        time.Time `json:"created_at"`
}

// CreateBranchRequest entrada para crear una sucursal de un cliente.
type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// BranchResponse salida de una sucursal.
type BranchResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}
