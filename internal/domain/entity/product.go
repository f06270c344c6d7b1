package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (conjunto cerrado). La categoría determina el
// acumulador de totales al que contribuye cada línea del pedido.
const (
	CategoryOTC     = "OTC"
	CategoryService = "Service"
	CategoryOneTime = "One time"
)

// PaymentPlan selecciona qué precio aplica a todas las líneas de un pedido.
type PaymentPlan string

const (
	PlanOneTime PaymentPlan = "one-time"
	Plan36      PaymentPlan = "36"
	Plan48      PaymentPlan = "48"
)

// Product representa un producto del catálogo con sus tres puntos de precio.
// Los precios en cuotas pueden estar ausentes (NullDecimal); la resolución
// cae al precio de contado y, en última instancia, a cero.
type Product struct {
	ID          string
	Name        string // único en el catálogo
	Description string
	Price       decimal.NullDecimal // pago único (contado)
	Price36     decimal.NullDecimal // precio por cuota a 36 pagos
	Price48     decimal.NullDecimal // precio por cuota a 48 pagos
	Type        string
	Category    string // CategoryOTC | CategoryService | CategoryOneTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
