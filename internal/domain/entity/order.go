package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un pedido.
const (
	OrderStatusPending   = "pending" // recién creado, pendiente de instalación
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Totals acumula los totales del pedido por categoría de producto.
// El total general nunca se persiste: siempre es derivable con Grand().
type Totals struct {
	OTC     decimal.Decimal
	Service decimal.Decimal
	OneTime decimal.Decimal
}

// Grand devuelve la suma aritmética de los tres acumuladores.
func (t Totals) Grand() decimal.Decimal {
	return t.OTC.Add(t.Service).Add(t.OneTime)
}

// Order representa la cabecera de un pedido. BranchID es nil para clientes
// de una sola ubicación. Los totales son derivados de las líneas bajo el
// plan de pagos elegido, nunca editables de forma independiente.
type Order struct {
	ID           string
	CustomerID   string
	BranchID     *string
	PaymentPlan  PaymentPlan
	TotalOTC     decimal.Decimal
	TotalService decimal.Decimal
	TotalOneTime decimal.Decimal
	Notes        string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Totals devuelve los acumuladores persistidos como estructura de dominio.
func (o *Order) Totals() Totals {
	return Totals{OTC: o.TotalOTC, Service: o.TotalService, OneTime: o.TotalOneTime}
}

// OrderItem representa una línea de un pedido. Quantity siempre es >= 1;
// UnitPrice es el precio resuelto bajo el plan del pedido al momento de crear.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
