package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CustomerTxRunner ejecuta una función dentro de una transacción que incluye
// los repos de clientes y sucursales. Se usa para que un cliente nuevo y sus
// sucursales se creen de forma atómica; la persistencia de pedidos entre
// sucursales queda fuera a propósito (mejor esfuerzo, secuencial).
type CustomerTxRunner interface {
	RunCustomer(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		branchRepo repository.BranchRepository,
	) error) error
}

// OrderPDFGenerator genera el resumen imprimible de un pedido.
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context,
		order *entity.Order,
		customer *entity.Customer,
		branch *entity.Branch,
		lines []OrderLineForPDF,
	) ([]byte, error)
}

// OrderLineForPDF línea del pedido enriquecida con los datos del producto
// que necesita la representación gráfica.
type OrderLineForPDF struct {
	Item        *entity.OrderItem
	ProductName string
	Category    string
}
