package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/pricing"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func nd(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d(s), Valid: true}
}

func producto(name, category string, price, price36, price48 decimal.NullDecimal) *entity.Product {
	return &entity.Product{
		ID:       "id-" + name,
		Name:     name,
		Category: category,
		Price:    price,
		Price36:  price36,
		Price48:  price48,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ResolvePrice
// ──────────────────────────────────────────────────────────────────────────────

// Producto con los tres precios: cada plan resuelve su propio campo.
func TestResolvePrice_PlanSeleccionaSuCampo(t *testing.T) {
	p := producto("Router", entity.CategoryOTC, nd("100"), nd("4"), nd("3"))

	assert.True(t, pricing.ResolvePrice(p, entity.PlanOneTime).Equal(d("100")))
	assert.True(t, pricing.ResolvePrice(p, entity.Plan36).Equal(d("4")))
	assert.True(t, pricing.ResolvePrice(p, entity.Plan48).Equal(d("3")))
}

// Precio de cuotas ausente: cae al precio de contado, nunca falla.
func TestResolvePrice_CuotasAusentesCaenAContado(t *testing.T) {
	p := producto("Central", entity.CategoryService, nd("250"), decimal.NullDecimal{}, decimal.NullDecimal{})

	assert.True(t, pricing.ResolvePrice(p, entity.Plan36).Equal(d("250")))
	assert.True(t, pricing.ResolvePrice(p, entity.Plan48).Equal(d("250")))
}

// Sin ningún precio definido: degrada a cero.
func TestResolvePrice_SinPreciosDevuelveCero(t *testing.T) {
	p := producto("Demo", entity.CategoryOTC, decimal.NullDecimal{}, decimal.NullDecimal{}, decimal.NullDecimal{})

	for _, plan := range []entity.PaymentPlan{entity.PlanOneTime, entity.Plan36, entity.Plan48} {
		assert.True(t, pricing.ResolvePrice(p, plan).IsZero(), "plan %s debe resolver cero", plan)
	}
}

// Un plan desconocido se trata como pago único.
func TestResolvePrice_PlanDesconocidoUsaContado(t *testing.T) {
	p := producto("Router", entity.CategoryOTC, nd("100"), nd("4"), nd("3"))

	assert.True(t, pricing.ResolvePrice(p, entity.PaymentPlan("mensual")).Equal(d("100")))
}

// Propiedad: el precio resuelto nunca es negativo para precios válidos.
func TestResolvePrice_NuncaNegativo(t *testing.T) {
	productos := []*entity.Product{
		producto("A", entity.CategoryOTC, nd("0"), decimal.NullDecimal{}, nd("12.5")),
		producto("B", entity.CategoryService, decimal.NullDecimal{}, nd("7"), decimal.NullDecimal{}),
		producto("C", entity.CategoryOneTime, nd("99.99"), nd("3.33"), nd("2.75")),
	}
	for _, p := range productos {
		for _, plan := range []entity.PaymentPlan{entity.PlanOneTime, entity.Plan36, entity.Plan48} {
			assert.False(t, pricing.ResolvePrice(p, plan).IsNegative())
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeTotals
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: Router {contado 100, 36 cuotas 4}, plan "36",
// cantidad 2 → precio unitario 4, total de línea 8.
func TestComputeTotals_EscenarioRouter36(t *testing.T) {
	catalog := []*entity.Product{
		producto("Router", entity.CategoryOTC, nd("100"), nd("4"), nd("3")),
	}
	items := []pricing.LineItem{{ProductRef: "Router", Quantity: 2}}

	totals := pricing.ComputeTotals(items, catalog, entity.Plan36)

	assert.True(t, totals.OTC.Equal(d("8")), "esperado 4 × 2 = 8, obtenido %s", totals.OTC)
	assert.True(t, totals.Service.IsZero())
	assert.True(t, totals.OneTime.IsZero())
}

// Cada categoría acumula en su propio bucket; una línea con producto
// desconocido no contribuye a ninguno.
func TestComputeTotals_BucketsYProductoDesconocido(t *testing.T) {
	catalog := []*entity.Product{
		producto("Router", entity.CategoryOTC, nd("50"), decimal.NullDecimal{}, decimal.NullDecimal{}),
		producto("Soporte", entity.CategoryService, nd("30"), decimal.NullDecimal{}, decimal.NullDecimal{}),
	}
	items := []pricing.LineItem{
		{ProductRef: "Router", Quantity: 1},
		{ProductRef: "Soporte", Quantity: 1},
		{ProductRef: "NoExiste", Quantity: 5},
	}

	totals := pricing.ComputeTotals(items, catalog, entity.PlanOneTime)

	assert.True(t, totals.OTC.Equal(d("50")))
	assert.True(t, totals.Service.Equal(d("30")))
	assert.True(t, totals.OneTime.IsZero())
}

// Una categoría fuera del conjunto cerrado se descarta sin error.
func TestComputeTotals_CategoriaDesconocidaSeDescarta(t *testing.T) {
	catalog := []*entity.Product{
		producto("Raro", "Hardware", nd("999"), decimal.NullDecimal{}, decimal.NullDecimal{}),
	}
	items := []pricing.LineItem{{ProductRef: "Raro", Quantity: 3}}

	totals := pricing.ComputeTotals(items, catalog, entity.PlanOneTime)

	assert.True(t, totals.Grand().IsZero())
}

// El total general es exactamente la suma de los totales de línea resueltos.
func TestComputeTotals_GrandEsSumaDeLineas(t *testing.T) {
	catalog := []*entity.Product{
		producto("Router", entity.CategoryOTC, nd("100"), nd("4"), nd("3")),
		producto("Soporte", entity.CategoryService, nd("25.50"), decimal.NullDecimal{}, decimal.NullDecimal{}),
		producto("Instalación", entity.CategoryOneTime, nd("80"), decimal.NullDecimal{}, decimal.NullDecimal{}),
	}
	items := []pricing.LineItem{
		{ProductRef: "Router", Quantity: 2},
		{ProductRef: "Soporte", Quantity: 3},
		{ProductRef: "Instalación", Quantity: 1},
		{ProductRef: "Fantasma", Quantity: 9}, // no contribuye
	}

	totals := pricing.ComputeTotals(items, catalog, entity.Plan36)

	var want decimal.Decimal
	for _, it := range items {
		for _, p := range catalog {
			if p.Name == it.ProductRef {
				want = want.Add(pricing.ResolvePrice(p, entity.Plan36).Mul(decimal.NewFromInt(int64(it.Quantity))))
			}
		}
	}
	assert.True(t, totals.Grand().Equal(want), "grand %s != suma de líneas %s", totals.Grand(), want)
}

// La referencia de línea también resuelve por ID de producto.
func TestComputeTotals_ResuelvePorID(t *testing.T) {
	p := producto("Router", entity.CategoryOTC, nd("10"), decimal.NullDecimal{}, decimal.NullDecimal{})
	items := []pricing.LineItem{{ProductRef: p.ID, Quantity: 4}}

	totals := pricing.ComputeTotals(items, []*entity.Product{p}, entity.PlanOneTime)

	assert.True(t, totals.OTC.Equal(d("40")))
}

// Idempotencia: dos llamadas con entradas idénticas producen salidas idénticas.
func TestComputeTotals_Idempotente(t *testing.T) {
	catalog := []*entity.Product{
		producto("Router", entity.CategoryOTC, nd("100"), nd("4"), nd("3")),
		producto("Soporte", entity.CategoryService, nd("30"), decimal.NullDecimal{}, decimal.NullDecimal{}),
	}
	items := []pricing.LineItem{
		{ProductRef: "Router", Quantity: 2},
		{ProductRef: "Soporte", Quantity: 1},
	}

	a := pricing.ComputeTotals(items, catalog, entity.Plan48)
	b := pricing.ComputeTotals(items, catalog, entity.Plan48)

	require.True(t, a.OTC.Equal(b.OTC))
	require.True(t, a.Service.Equal(b.Service))
	require.True(t, a.OneTime.Equal(b.OneTime))
}
