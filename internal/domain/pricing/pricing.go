// Package pricing implementa la resolución de precios por plan de pagos y la
// agregación de totales por categoría. Ambas funciones son puras: el resultado
// depende solo de las líneas, del snapshot del catálogo y del plan.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// LineItem es una línea de pedido aún no persistida: referencia a producto
// (por ID o por nombre) y cantidad.
type LineItem struct {
	ProductRef string
	Quantity   int
}

// ResolvePrice devuelve el precio unitario aplicable al producto bajo el plan.
// Plan "36": precio de 36 cuotas si existe; si no, cae al precio de contado.
// Plan "48": simétrico. Cualquier otro plan usa el precio de contado.
// La ausencia de precio nunca es error: degrada a cero.
func ResolvePrice(p *entity.Product, plan entity.PaymentPlan) decimal.Decimal {
	switch plan {
	case entity.Plan36:
		if p.Price36.Valid {
			return p.Price36.Decimal
		}
	case entity.Plan48:
		if p.Price48.Valid {
			return p.Price48.Decimal
		}
	}
	if p.Price.Valid {
		return p.Price.Decimal
	}
	return decimal.Zero
}

// ComputeTotals recorre las líneas, resuelve el producto contra el catálogo y
// acumula precio × cantidad en el bucket de la categoría del producto.
// Las líneas cuyo producto no aparece en el catálogo no contribuyen (la
// validación del asistente ya las bloqueó en el flujo normal); las categorías
// desconocidas tampoco.
func ComputeTotals(items []LineItem, catalog []*entity.Product, plan entity.PaymentPlan) entity.Totals {
	var totals entity.Totals
	for _, item := range items {
		product := findProduct(catalog, item.ProductRef)
		if product == nil {
			continue
		}
		lineTotal := ResolvePrice(product, plan).Mul(decimal.NewFromInt(int64(item.Quantity)))
		switch product.Category {
		case entity.CategoryOTC:
			totals.OTC = totals.OTC.Add(lineTotal)
		case entity.CategoryService:
			totals.Service = totals.Service.Add(lineTotal)
		case entity.CategoryOneTime:
			totals.OneTime = totals.OneTime.Add(lineTotal)
		}
	}
	return totals
}

// findProduct resuelve la referencia contra el catálogo: primero por ID,
// después por nombre (el catálogo usa el nombre como clave de negocio).
func findProduct(catalog []*entity.Product, ref string) *entity.Product {
	if ref == "" {
		return nil
	}
	for _, p := range catalog {
		if p.ID == ref {
			return p
		}
	}
	for _, p := range catalog {
		if p.Name == ref {
			return p
		}
	}
	return nil
}
