package orders_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers []*entity.Customer
	createErr error
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.customers = append(f.customers, c)
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetByTaxID(taxID string) (*entity.Customer, error) {
	for _, c := range f.customers {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) Search(query string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) || strings.Contains(c.TaxID, query) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	return f.customers, nil
}

func (f *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }

type fakeBranchRepo struct {
	branches  []*entity.Branch
	createErr error
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.branches = append(f.branches, b)
	return nil
}

func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	for _, b := range f.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBranchRepo) ListByCustomer(customerID string) ([]*entity.Branch, error) {
	var out []*entity.Branch
	for _, b := range f.branches {
		if b.CustomerID == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products []*entity.Product

	// lookupErr simula una caída del almacén en GetByID/GetByName.
	lookupErr error
}

func (f *fakeProductRepo) Create(p *entity.Product) error { return nil }
func (f *fakeProductRepo) Update(p *entity.Product) error { return nil }

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Search(query string, limit, offset int) ([]*entity.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) FilterByCategory(category string, limit, offset int) ([]*entity.Product, error) {
	return f.products, nil
}

type fakeOrderRepo struct {
	orders []*entity.Order
	items  []*entity.OrderItem

	// failOnCreate hace fallar la N-ésima llamada a Create (1-based).
	failOnCreate int
	createCalls  int
	// failItemProductID hace fallar CreateItem para ese producto.
	failItemProductID string
}

func (f *fakeOrderRepo) Create(o *entity.Order) error {
	f.createCalls++
	if f.failOnCreate > 0 && f.createCalls == f.failOnCreate {
		return errors.New("db caída")
	}
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) CreateItem(item *entity.OrderItem) error {
	if f.failItemProductID != "" && item.ProductID == f.failItemProductID {
		return errors.New("constraint violada")
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	var out []*entity.OrderItem
	for _, item := range f.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListByStatus(status string, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(id, status string) error {
	for _, o := range f.orders {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTxRunner ejecuta el callback directamente con los fakes (sin tx real).
type fakeTxRunner struct {
	customerRepo *fakeCustomerRepo
	branchRepo   *fakeBranchRepo
}

func (f *fakeTxRunner) RunCustomer(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	branchRepo repository.BranchRepository,
) error) error {
	return fn(f.customerRepo, f.branchRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del caso de uso
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *orders.SubmitOrderUseCase
	customers *fakeCustomerRepo
	branches  *fakeBranchRepo
	products  *fakeProductRepo
	orders    *fakeOrderRepo
}

func newFixture() *fixture {
	customers := &fakeCustomerRepo{}
	branches := &fakeBranchRepo{}
	products := &fakeProductRepo{products: []*entity.Product{
		{
			ID:       "p-router",
			Name:     "Router",
			Category: entity.CategoryOTC,
			Price:    decimal.NullDecimal{Decimal: decimal.NewFromInt(100), Valid: true},
			Price36:  decimal.NullDecimal{Decimal: decimal.NewFromInt(4), Valid: true},
			Price48:  decimal.NullDecimal{Decimal: decimal.NewFromInt(3), Valid: true},
		},
		{
			ID:       "p-soporte",
			Name:     "Soporte mensual",
			Category: entity.CategoryService,
			Price:    decimal.NullDecimal{Decimal: decimal.NewFromInt(30), Valid: true},
		},
	}}
	ordersRepo := &fakeOrderRepo{}
	uc := orders.NewSubmitOrderUseCase(
		&fakeTxRunner{customerRepo: customers, branchRepo: branches},
		customers, branches, products, ordersRepo,
		logger.Nop(),
	)
	return &fixture{uc: uc, customers: customers, branches: branches, products: products, orders: ordersRepo}
}

func (fx *fixture) conClienteExistente(multiBranch bool) *entity.Customer {
	c := &entity.Customer{ID: "cliente-1", Name: "Pizzería Roma", TaxID: "514445566", MultiBranch: multiBranch}
	fx.customers.customers = append(fx.customers.customers, c)
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Multi-sucursal con la sucursal B sin líneas: se genera exactamente un
// pedido (para A); B no produce pedido ni error.
func TestSubmit_SucursalSinLineasSeOmite(t *testing.T) {
	fx := newFixture()
	fx.conClienteExistente(true)
	fx.branches.branches = []*entity.Branch{
		{ID: "s-a", CustomerID: "cliente-1", Name: "A"},
		{ID: "s-b", CustomerID: "cliente-1", Name: "B"},
	}

	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Customer.ExistingMultiBranch = true
	d.Branches = []orders.BranchInput{{ExistingID: "s-a"}, {ExistingID: "s-b"}}
	d.Items = [][]orders.ItemInput{
		{{ProductRef: "Router", Quantity: 1}},
		{},
	}

	resp, errs, err := fx.uc.Submit(context.Background(), d)

	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, resp.Orders, 1)
	require.Len(t, fx.orders.orders, 1)
	require.NotNil(t, fx.orders.orders[0].BranchID)
	assert.Equal(t, "s-a", *fx.orders.orders[0].BranchID)
	assert.Equal(t, orders.StepConfirmed, d.Step())
}

// Cliente nuevo multi-sucursal: el cliente y sus sucursales se crean antes de
// los pedidos y las sucursales quedan ligadas por ID.
func TestSubmit_ClienteNuevoCreaClienteYSucursales(t *testing.T) {
	fx := newFixture()

	d := orders.NewDraft()
	d.Customer.New = nuevoClienteCompleto(true)
	d.Branches = []orders.BranchInput{
		{Name: "Centro", Address: "Calle 1"},
		{Name: "Norte", Address: "Calle 2"},
	}
	d.Items = [][]orders.ItemInput{
		{{ProductRef: "Router", Quantity: 2}},
		{},
	}

	resp, errs, err := fx.uc.Submit(context.Background(), d)

	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, fx.customers.customers, 1)
	require.Len(t, fx.branches.branches, 2)
	assert.Equal(t, fx.customers.customers[0].ID, resp.CustomerID)
	assert.Equal(t, fx.customers.customers[0].ID, fx.branches.branches[0].CustomerID)
	require.Len(t, resp.Orders, 1)
	require.NotNil(t, resp.Orders[0].BranchID)
	assert.Equal(t, fx.branches.branches[0].ID, *resp.Orders[0].BranchID)
}

// Un tax id ya registrado bloquea el alta del cliente nuevo.
func TestSubmit_TaxIDDuplicadoFalla(t *testing.T) {
	fx := newFixture()
	fx.conClienteExistente(false)

	d := orders.NewDraft()
	d.Customer.New = nuevoClienteCompleto(false) // mismo tax id 514445566
	d.Items = [][]orders.ItemInput{{{ProductRef: "Router", Quantity: 1}}}

	_, errs, err := fx.uc.Submit(context.Background(), d)

	require.Empty(t, errs)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, orders.StepFailed, d.Step())
	assert.Empty(t, fx.orders.orders)
}

// El escenario Router a 36 cuotas: precio unitario 4, cantidad 2, total OTC 8.
func TestSubmit_TotalesRouter36(t *testing.T) {
	fx := newFixture()
	fx.conClienteExistente(false)

	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Plan = entity.Plan36
	d.Items = [][]orders.ItemInput{{{ProductRef: "Router", Quantity: 2}}}

	resp, errs, err := fx.uc.Submit(context.Background(), d)

	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, resp.Orders, 1)
	assert.True(t, resp.Orders[0].Totals.OTC.Equal(decimal.NewFromInt(8)))
	assert.True(t, resp.Orders[0].Totals.Grand.Equal(decimal.NewFromInt(8)))
	require.Len(t, fx.orders.items, 1)
	assert.True(t, fx.orders.items[0].UnitPrice.Equal(decimal.NewFromInt(4)))
}

// Una línea que falla al persistir se registra y se omite; el pedido y las
// demás líneas quedan confirmados sin error para el usuario.
func TestSubmit_LineaFallidaSeOmite(t *testing.T) {
	fx := newFixture()
	fx.conClienteExistente(false)
	fx.orders.failItemProductID = "p-soporte"

	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Items = [][]orders.ItemInput{{
		{ProductRef: "Router", Quantity: 1},
		{ProductRef: "Soporte mensual", Quantity: 1},
	}}

	resp, errs, err := fx.uc.Submit(context.Background(), d)

	require.NoError(t, err)
	require.Empty(t, errs)
	require.Len(t, resp.Orders, 1)
	assert.Len(t, resp.Orders[0].Items, 1)
	assert.Equal(t, "p-router", resp.Orders[0].Items[0].ProductID)
	assert.Equal(t, orders.StepConfirmed, d.Step())
}

// Si la persistencia de una sucursal posterior falla, los pedidos de las
// sucursales anteriores permanecen confirmados y el borrador queda en Failed
// con todos sus datos.
func TestSubmit_FalloPosteriorConservaAnteriores(t *testing.T) {
	fx := newFixture()
	fx.conClienteExistente(true)
	fx.branches.branches = []*entity.Branch{
		{ID: "s-a", CustomerID: "cliente-1"},
		{ID: "s-b", CustomerID: "cliente-1"},
	}
	fx.orders.failOnCreate = 2

	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Customer.ExistingMultiBranch = true
	d.Branches = []orders.BranchInput{{ExistingID: "s-a"}, {ExistingID: "s-b"}}
	d.Items = [][]orders.ItemInput{
		{{ProductRef: "Router", Quantity: 1}},
		{{ProductRef: "Soporte mensual", Quantity: 1}},
	}

	_, errs, err := fx.uc.Submit(context.Background(), d)

	require.Empty(t, errs)
	require.Error(t, err)
	require.Len(t, fx.orders.orders, 1, "el pedido de la sucursal A queda confirmado")
	assert.Equal(t, "s-a", *fx.orders.orders[0].BranchID)
	assert.Equal(t, orders.StepFailed, d.Step())
	assert.Equal(t, "Router", d.Items[0][0].ProductRef, "el borrador conserva sus datos")
}

// Una caída del repositorio de productos al resolver el catálogo aborta la
// confirmación: no se persiste ningún pedido (nada de totales en cero) y el
// borrador queda en Failed con sus datos intactos. Distinto de la referencia
// inexistente, que sí se omite en silencio.
func TestSubmit_FalloDeCatalogoAbortaSinPersistir(t *testing.T) {
	fx := newFixture()
	fx.conClienteExistente(false)
	fx.products.lookupErr = errors.New("db caída")

	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Plan = entity.Plan36
	d.Items = [][]orders.ItemInput{{{ProductRef: "Router", Quantity: 2}}}

	resp, errs, err := fx.uc.Submit(context.Background(), d)

	require.Error(t, err)
	assert.Nil(t, resp)
	require.Empty(t, errs)
	assert.Empty(t, fx.orders.orders, "no debe quedar ningún pedido persistido")
	assert.Equal(t, orders.StepFailed, d.Step())
	assert.Equal(t, "Router", d.Items[0][0].ProductRef, "el borrador conserva sus datos")
}

// La validación bloquea antes de tocar la persistencia.
func TestSubmit_ValidacionBloqueaSinPersistir(t *testing.T) {
	fx := newFixture()

	d := orders.NewDraft() // sin cliente ni líneas
	resp, errs, err := fx.uc.Submit(context.Background(), d)

	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, errs, "customer")
	assert.Empty(t, fx.customers.customers)
	assert.Empty(t, fx.orders.orders)
}

// Cambio de estado del ciclo de vida: solo estados conocidos.
func TestUpdateStatus_EstadosValidos(t *testing.T) {
	fx := newFixture()
	fx.orders.orders = []*entity.Order{{ID: "o-1", Status: entity.OrderStatusPending}}

	require.NoError(t, fx.uc.UpdateStatus(context.Background(), "o-1", entity.OrderStatusCompleted))
	assert.Equal(t, entity.OrderStatusCompleted, fx.orders.orders[0].Status)

	assert.ErrorIs(t, fx.uc.UpdateStatus(context.Background(), "o-1", "archivado"), domain.ErrInvalidInput)
	assert.ErrorIs(t, fx.uc.UpdateStatus(context.Background(), "o-404", entity.OrderStatusCancelled), domain.ErrNotFound)
}
