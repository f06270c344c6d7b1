package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/pricing"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// SubmitOrderUseCase confirma un borrador: crea el cliente y sus sucursales
// (si son nuevos, en una transacción) y después un pedido por sucursal con
// líneas, de forma secuencial y en orden de sucursal. No hay atomicidad entre
// sucursales: si una falla, los pedidos de las anteriores quedan confirmados.
type SubmitOrderUseCase struct {
	txRunner     CustomerTxRunner
	customerRepo repository.CustomerRepository
	branchRepo   repository.BranchRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	log          *logger.Logger
}

// NewSubmitOrderUseCase construye el caso de uso.
func NewSubmitOrderUseCase(
	txRunner CustomerTxRunner,
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	log *logger.Logger,
) *SubmitOrderUseCase {
	return &SubmitOrderUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		branchRepo:   branchRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		log:          log,
	}
}

// branchTarget una sucursal destino con sus líneas ya resueltas.
type branchTarget struct {
	branchID *string
	items    []ItemInput
}

// Submit valida el borrador completo y lo persiste. Devuelve el mapa de
// errores de validación (campo → mensaje) cuando la validación bloquea, o un
// error genérico de persistencia; el borrador queda en Failed con todos sus
// campos intactos para que el usuario reintente sin reingresar datos.
func (uc *SubmitOrderUseCase) Submit(ctx context.Context, d *Draft) (*dto.SubmitOrderResponse, ValidationErrors, error) {
	if errs := d.BeginSubmit(); len(errs) > 0 {
		return nil, errs, nil
	}

	customer, err := uc.resolveCustomer(ctx, d)
	if err != nil {
		d.Fail()
		return nil, nil, err
	}

	targets, err := uc.resolveBranches(d, customer)
	if err != nil {
		d.Fail()
		return nil, nil, err
	}

	catalog, err := uc.loadCatalog(d)
	if err != nil {
		d.Fail()
		return nil, nil, err
	}

	now := time.Now()
	resp := &dto.SubmitOrderResponse{CustomerID: customer.ID}
	for _, target := range targets {
		// Las sucursales sin líneas con producto se omiten: no generan
		// pedido ni error.
		if !hasProductBearingItem(target.items) {
			continue
		}
		order, items := uc.buildOrder(d, customer, target, catalog, now)
		if err := uc.orderRepo.Create(order); err != nil {
			// Los pedidos de sucursales anteriores ya están confirmados.
			uc.log.Error().Err(err).
				Str("customer_id", customer.ID).
				Msg("crear pedido")
			d.Fail()
			return nil, nil, err
		}
		created := make([]dto.OrderItemResponse, 0, len(items))
		for _, item := range items {
			if err := uc.orderRepo.CreateItem(item); err != nil {
				// Mejor esfuerzo: la línea fallida se registra y se omite,
				// sin deshacer el pedido ni las líneas anteriores.
				uc.log.Error().Err(err).
					Str("order_id", order.ID).
					Str("product_id", item.ProductID).
					Msg("crear línea de pedido")
				continue
			}
			created = append(created, dto.OrderItemResponse{
				ID:        item.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}
		resp.Orders = append(resp.Orders, toOrderResponse(order, created))
	}

	d.Confirm()
	return resp, nil, nil
}

// resolveCustomer devuelve el cliente existente o crea uno nuevo junto con
// sus sucursales en una sola transacción.
func (uc *SubmitOrderUseCase) resolveCustomer(ctx context.Context, d *Draft) (*entity.Customer, error) {
	if d.Customer.ExistingID != "" {
		customer, err := uc.customerRepo.GetByID(d.Customer.ExistingID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		return customer, nil
	}

	in := d.Customer.New
	existing, _ := uc.customerRepo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		Name:             in.Name,
		TaxID:            in.TaxID,
		BusinessType:     in.BusinessType,
		Address:          in.Address,
		Phone:            in.Phone,
		Email:            in.Email,
		InternetProvider: in.InternetProvider,
		AuthName:         in.AuthName,
		AuthMobile:       in.AuthMobile,
		AuthEmail:        in.AuthEmail,
		Notes:            in.Notes,
		MultiBranch:      in.MultiBranch,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err := uc.txRunner.RunCustomer(ctx, func(
		customerRepo repository.CustomerRepository,
		branchRepo repository.BranchRepository,
	) error {
		if err := customerRepo.Create(customer); err != nil {
			return err
		}
		for i := range d.Branches {
			branch := &entity.Branch{
				ID:         uuid.New().String(),
				CustomerID: customer.ID,
				Name:       d.Branches[i].Name,
				Address:    d.Branches[i].Address,
				CreatedAt:  now,
			}
			if err := branchRepo.Create(branch); err != nil {
				return err
			}
			d.Branches[i].ExistingID = branch.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// resolveBranches arma la lista de sucursales destino en orden. Para clientes
// de una sola ubicación hay un único destino sin sucursal (ubicación
// principal). Las sucursales nuevas de un cliente existente se crean aquí.
func (uc *SubmitOrderUseCase) resolveBranches(d *Draft, customer *entity.Customer) ([]branchTarget, error) {
	if !d.MultiBranch() {
		return []branchTarget{{branchID: nil, items: d.ItemsForBranch(0)}}, nil
	}

	now := time.Now()
	targets := make([]branchTarget, 0, len(d.Branches))
	for i := range d.Branches {
		b := &d.Branches[i]
		if b.ExistingID == "" {
			branch := &entity.Branch{
				ID:         uuid.New().String(),
				CustomerID: customer.ID,
				Name:       b.Name,
				Address:    b.Address,
				CreatedAt:  now,
			}
			if err := uc.branchRepo.Create(branch); err != nil {
				return nil, err
			}
			b.ExistingID = branch.ID
		}
		id := b.ExistingID
		targets = append(targets, branchTarget{branchID: &id, items: d.ItemsForBranch(i)})
	}
	return targets, nil
}

// loadCatalog resuelve cada referencia de producto del borrador contra el
// repositorio (por ID y por nombre). Una referencia que no existe se omite en
// silencio: la validación previa ya bloqueó el caso normal y la agregación
// trata la línea como contribución cero. Un error del repositorio es otra
// cosa: se propaga y aborta la confirmación, nunca degrada a totales en cero.
func (uc *SubmitOrderUseCase) loadCatalog(d *Draft) ([]*entity.Product, error) {
	seen := make(map[string]bool)
	var catalog []*entity.Product
	for bi := range d.Items {
		for _, item := range d.Items[bi] {
			if item.ProductRef == "" || seen[item.ProductRef] {
				continue
			}
			seen[item.ProductRef] = true
			product, err := uc.productRepo.GetByID(item.ProductRef)
			if err == nil && product == nil {
				product, err = uc.productRepo.GetByName(item.ProductRef)
			}
			if err != nil {
				return nil, fmt.Errorf("resolver producto %q: %w", item.ProductRef, err)
			}
			if product == nil {
				uc.log.Warn().
					Str("product_ref", item.ProductRef).
					Msg("referencia de producto sin resolver, la línea no contribuye")
				continue
			}
			catalog = append(catalog, product)
		}
	}
	return catalog, nil
}

// buildOrder calcula los totales de la sucursal bajo el plan y arma la
// cabecera con sus líneas (precio unitario resuelto al momento de crear).
func (uc *SubmitOrderUseCase) buildOrder(
	d *Draft,
	customer *entity.Customer,
	target branchTarget,
	catalog []*entity.Product,
	now time.Time,
) (*entity.Order, []*entity.OrderItem) {
	lines := make([]pricing.LineItem, 0, len(target.items))
	for _, item := range target.items {
		lines = append(lines, pricing.LineItem{ProductRef: item.ProductRef, Quantity: item.Quantity})
	}
	totals := pricing.ComputeTotals(lines, catalog, d.Plan)

	order := &entity.Order{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		BranchID:     target.branchID,
		PaymentPlan:  d.Plan,
		TotalOTC:     totals.OTC,
		TotalService: totals.Service,
		TotalOneTime: totals.OneTime,
		Notes:        d.Notes,
		Status:       entity.OrderStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var items []*entity.OrderItem
	for _, item := range target.items {
		product := findInCatalog(catalog, item.ProductRef)
		if product == nil {
			continue
		}
		items = append(items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: pricing.ResolvePrice(product, d.Plan),
		})
	}
	return order, items
}

func findInCatalog(catalog []*entity.Product, ref string) *entity.Product {
	for _, p := range catalog {
		if p.ID == ref || p.Name == ref {
			return p
		}
	}
	return nil
}

func hasProductBearingItem(items []ItemInput) bool {
	for _, item := range items {
		if item.ProductRef != "" {
			return true
		}
	}
	return false
}

func toOrderResponse(o *entity.Order, items []dto.OrderItemResponse) dto.OrderResponse {
	totals := o.Totals()
	return dto.OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		BranchID:    o.BranchID,
		PaymentPlan: string(o.PaymentPlan),
		Totals: dto.TotalsResponse{
			OTC:     totals.OTC,
			Service: totals.Service,
			OneTime: totals.OneTime,
			Grand:   totals.Grand(),
		},
		Notes:     o.Notes,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		Items:     items,
	}
}

// GetOrder obtiene un pedido por ID con sus líneas.
func (uc *SubmitOrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ItemsByOrder(id)
	if err != nil {
		return nil, err
	}
	lines := make([]dto.OrderItemResponse, 0, len(items))
	for _, item := range items {
		lines = append(lines, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	resp := toOrderResponse(order, lines)
	return &resp, nil
}

// ListOrders lista pedidos por estado del ciclo de vida.
func (uc *SubmitOrderUseCase) ListOrders(ctx context.Context, status string, limit, offset int) ([]dto.OrderResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.orderRepo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o, nil))
	}
	return out, nil
}

// UpdateStatus cambia el estado del ciclo de vida de un pedido.
func (uc *SubmitOrderUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.OrderStatusPending, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.UpdateStatus(id, status)
}
