package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitOrderRequest es el borrador completo del asistente de pedidos.
// Para clientes de una sola ubicación, Items trae una sola lista y Branches
// queda vacío. Para multi-sucursal, Items[i] corresponde a Branches[i].
type SubmitOrderRequest struct {
	Customer    OrderCustomerRequest `json:"customer"`
	Branches    []OrderBranchRequest `json:"branches"`
	Items       [][]OrderItemRequest `json:"items"`
	PaymentPlan string               `json:"payment_plan"`
	Notes       string               `json:"notes"`
}

// OrderCustomerRequest selección de cliente: existente (por ID) o nuevo.
type OrderCustomerRequest struct {
	ExistingID string                 `json:"existing_id"`
	New        *CreateCustomerRequest `json:"new"`
}

// OrderBranchRequest sucursal destino: existente (por ID) o nueva (nombre+dirección).
type OrderBranchRequest struct {
	ExistingID string `json:"existing_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
}

// OrderItemRequest línea del pedido: referencia de producto (ID o nombre) y cantidad.
type OrderItemRequest struct {
	ProductRef string `json:"product_ref"`
	Quantity   int    `json:"quantity"`
}

// TotalsResponse acumuladores por categoría más el total general derivado.
type TotalsResponse struct {
	OTC     decimal.Decimal `json:"otc"`
	Service decimal.Decimal `json:"service"`
	OneTime decimal.Decimal `json:"one_time"`
	Grand   decimal.Decimal `json:"grand"`
}

// OrderItemResponse línea persistida de un pedido.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse cabecera de un pedido con sus líneas.
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	BranchID    *string             `json:"branch_id"`
	PaymentPlan string              `json:"payment_plan"`
	Totals      TotalsResponse      `json:"totals"`
	Notes       string              `json:"notes"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	Items       []OrderItemResponse `json:"items,omitempty"`
}

// SubmitOrderResponse resultado de la confirmación del borrador: el cliente
// (creado o existente) y un pedido por cada sucursal con líneas válidas.
type SubmitOrderResponse struct {
	CustomerID string          `json:"customer_id"`
	Orders     []OrderResponse `json:"orders"`
}

// UpdateOrderStatusRequest cambio de estado del ciclo de vida del pedido.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
