package orders

import (
	"context"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible de un pedido (resumen para
// el cliente: datos del negocio, sucursal, líneas y totales por categoría).
type PDFUseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	productRepo  repository.ProductRepository
	generator    OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	generator OrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// GenerateOrderPDF carga el pedido con su cliente, sucursal y líneas y
// delega en el generador. Las líneas cuyo producto ya no existe se incluyen
// con el nombre vacío en lugar de fallar.
func (uc *PDFUseCase) GenerateOrderPDF(ctx context.Context, orderID string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(order.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	var branch *entity.Branch
	if order.BranchID != nil {
		branch, err = uc.branchRepo.GetByID(*order.BranchID)
		if err != nil {
			return nil, err
		}
	}

	items, err := uc.orderRepo.ItemsByOrder(orderID)
	if err != nil {
		return nil, err
	}
	lines := make([]OrderLineForPDF, 0, len(items))
	for _, item := range items {
		line := OrderLineForPDF{Item: item}
		if product, err := uc.productRepo.GetByID(item.ProductID); err == nil && product != nil {
			line.ProductName = product.Name
			line.Category = product.Category
		}
		lines = append(lines, line)
	}

	return uc.generator.GenerateOrderPDF(ctx, order, customer, branch, lines)
}
