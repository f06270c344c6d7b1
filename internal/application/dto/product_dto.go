package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
// Los precios de cuotas son opcionales: ausencia = cae al precio de contado.
type CreateProductRequest struct {
	Name        string              `json:"name" validate:"required,min=1,max=200"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	Price36     decimal.NullDecimal `json:"price_36"`
	Price48     decimal.NullDecimal `json:"price_48"`
	Type        string              `json:"type"`
	Category    string              `json:"category" validate:"required"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Description *string              `json:"description"`
	Price       *decimal.NullDecimal `json:"price"`
	Price36     *decimal.NullDecimal `json:"price_36"`
	Price48     *decimal.NullDecimal `json:"price_48"`
	Type        *string              `json:"type"`
	Category    *string              `json:"category"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.NullDecimal `json:"price"`
	Price36     decimal.NullDecimal `json:"price_36"`
	Price48     decimal.NullDecimal `json:"price_48"`
	Type        string              `json:"type"`
	Category    string              `json:"category"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
