package orders_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func nuevoClienteCompleto(multiBranch bool) *orders.NewCustomerInput {
	return &orders.NewCustomerInput{
		Name:        "Pizzería Roma",
		TaxID:       "514445566",
		Address:     "Calle Mayor 1",
		Phone:       "03-5551234",
		Email:       "facturas@roma.example",
		AuthName:    "Dana Levi",
		AuthMobile:  "050-1112233",
		AuthEmail:   "dana@roma.example",
		MultiBranch: multiBranch,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 1: selección de cliente
// ──────────────────────────────────────────────────────────────────────────────

// Sin cliente existente ni datos de cliente nuevo: transición bloqueada con
// el error general "customer".
func TestDraft_Paso1SinClienteBloquea(t *testing.T) {
	d := orders.NewDraft()

	errs := d.Next()

	require.Len(t, errs, 1)
	assert.Contains(t, errs, "customer")
	assert.Equal(t, orders.StepCustomer, d.Step(), "el estado no debe cambiar")
}

// Cliente nuevo con todos los campos obligatorios vacíos: se recolectan los
// ocho errores en una sola pasada (no fail-fast).
func TestDraft_Paso1RecolectaTodosLosErrores(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.New = &orders.NewCustomerInput{}

	errs := d.Next()

	assert.Len(t, errs, 8)
	for _, key := range []string{"name", "ltd", "address", "tel1", "email", "authName", "authMobile", "authEmail"} {
		assert.Contains(t, errs, key)
	}
	assert.Equal(t, orders.StepCustomer, d.Step())
}

// Exactamente N campos inválidos producen exactamente N entradas.
func TestDraft_Paso1ErroresExactosPorCampo(t *testing.T) {
	d := orders.NewDraft()
	in := nuevoClienteCompleto(false)
	in.Phone = ""
	in.AuthMobile = ""
	d.Customer.New = in

	errs := d.Next()

	require.Len(t, errs, 2)
	assert.Contains(t, errs, "tel1")
	assert.Contains(t, errs, "authMobile")
}

// authEmail vacío en el alta de cliente: la transición al paso 2 queda
// bloqueada y el mapa contiene la clave authEmail.
func TestDraft_Paso1AuthEmailVacioBloquea(t *testing.T) {
	d := orders.NewDraft()
	in := nuevoClienteCompleto(false)
	in.AuthEmail = ""
	d.Customer.New = in

	errs := d.Next()

	require.Len(t, errs, 1)
	assert.Contains(t, errs, "authEmail")
	assert.Equal(t, orders.StepCustomer, d.Step())
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 2: sucursales (solo multi-sucursal)
// ──────────────────────────────────────────────────────────────────────────────

// Cliente de una sola ubicación: el paso de sucursales se omite por completo.
func TestDraft_ClienteSimpleOmitePasoSucursales(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.New = nuevoClienteCompleto(false)

	errs := d.Next()

	require.Empty(t, errs)
	assert.Equal(t, orders.StepItems, d.Step())
}

// Cliente multi-sucursal: se entra al paso de sucursales y se validan todas
// las sucursales antes de avanzar (recolección completa).
func TestDraft_MultiSucursalValidaTodasLasSucursales(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.New = nuevoClienteCompleto(true)
	require.Empty(t, d.Next())
	require.Equal(t, orders.StepBranches, d.Step())

	d.Branches = []orders.BranchInput{
		{Name: "", Address: ""},
		{Name: "Centro", Address: ""},
	}
	errs := d.Next()

	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "branchName-0")
	assert.Contains(t, errs, "branchAddress-0")
	assert.Contains(t, errs, "branchAddress-1")
	assert.Equal(t, orders.StepBranches, d.Step())
}

// Una sucursal ya persistida (ExistingID) no exige nombre ni dirección.
func TestDraft_SucursalExistenteNoSeValida(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Customer.ExistingMultiBranch = true
	require.Empty(t, d.Next())

	d.Branches = []orders.BranchInput{{ExistingID: "sucursal-1"}}
	errs := d.Next()

	assert.Empty(t, errs)
	assert.Equal(t, orders.StepItems, d.Step())
}

// ──────────────────────────────────────────────────────────────────────────────
// Paso 3: líneas de pedido
// ──────────────────────────────────────────────────────────────────────────────

// Cada línea inválida aporta su error con clave por índice.
func TestDraft_ItemsInvalidosPorIndice(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	require.Empty(t, d.Next())

	d.Items = [][]orders.ItemInput{{
		{ProductRef: "", Quantity: 1},
		{ProductRef: "Router", Quantity: 0},
	}}
	errs := d.Next()

	require.Len(t, errs, 2)
	assert.Contains(t, errs, "product-0")
	assert.Contains(t, errs, "quantity-1")
	assert.Equal(t, orders.StepItems, d.Step())
}

// Multi-sucursal sin ninguna línea con producto: bloqueado con clave "items".
func TestDraft_MultiSucursalRequiereAlMenosUnaLinea(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Customer.ExistingMultiBranch = true
	require.Empty(t, d.Next())
	d.Branches = []orders.BranchInput{{ExistingID: "s1"}, {ExistingID: "s2"}}
	require.Empty(t, d.Next())

	d.Items = [][]orders.ItemInput{{}, {}}
	errs := d.Next()

	require.Len(t, errs, 1)
	assert.Contains(t, errs, "items")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones hacia atrás y validación completa
// ──────────────────────────────────────────────────────────────────────────────

// Back retrocede un paso por vez y nunca borra lo ya ingresado.
func TestDraft_BackPreservaDatos(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.New = nuevoClienteCompleto(true)
	require.Empty(t, d.Next())
	d.Branches = []orders.BranchInput{{Name: "Centro", Address: "Calle 2"}}
	require.Empty(t, d.Next())
	require.Equal(t, orders.StepItems, d.Step())

	d.Back()
	assert.Equal(t, orders.StepBranches, d.Step())
	d.Back()
	assert.Equal(t, orders.StepCustomer, d.Step())

	assert.Equal(t, "Pizzería Roma", d.Customer.New.Name)
	assert.Equal(t, "Centro", d.Branches[0].Name)
}

// BeginSubmit valida el borrador completo y lo deja en Submitting.
func TestDraft_BeginSubmitValidaTodo(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Items = [][]orders.ItemInput{{{ProductRef: "Router", Quantity: 2}}}
	d.Plan = entity.Plan36

	errs := d.BeginSubmit()

	require.Empty(t, errs)
	assert.Equal(t, orders.StepSubmitting, d.Step())
}

// Fail conserva el borrador para el reintento; Back desde Failed vuelve a
// las líneas.
func TestDraft_FailedConservaBorrador(t *testing.T) {
	d := orders.NewDraft()
	d.Customer.ExistingID = "cliente-1"
	d.Items = [][]orders.ItemInput{{{ProductRef: "Router", Quantity: 2}}}
	require.Empty(t, d.BeginSubmit())

	d.Fail()
	assert.Equal(t, orders.StepFailed, d.Step())
	assert.Equal(t, "Router", d.Items[0][0].ProductRef)

	d.Back()
	assert.Equal(t, orders.StepItems, d.Step())
}
