// Package orders implementa el asistente de creación de pedidos: el borrador
// multi-paso con su máquina de estados de validación y el caso de uso de
// confirmación que persiste cliente, sucursales y pedidos.
package orders

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// Step es el estado actual del asistente.
type Step int

const (
	StepCustomer   Step = iota + 1 // recolectando selección de cliente
	StepBranches                   // recolectando sucursales (solo multi-sucursal)
	StepItems                      // recolectando líneas de pedido
	StepSubmitting                 // validación completa, persistencia en curso
	StepConfirmed
	StepFailed
)

// ValidationErrors mapea campo → mensaje. Se recolectan todos los errores de
// un paso en una sola pasada; nunca se lanza como error de Go.
type ValidationErrors map[string]string

// NewCustomerInput datos de un cliente nuevo capturados en el paso 1.
type NewCustomerInput struct {
	Name             string
	TaxID            string
	Address          string
	Phone            string
	Email            string
	AuthName         string
	AuthMobile       string
	AuthEmail        string
	InternetProvider string
	BusinessType     string
	Notes            string
	MultiBranch      bool
}

// CustomerSelection cliente existente (por ID) o nuevo. ExistingMultiBranch
// replica la bandera del cliente ya persistido para decidir el paso 2.
type CustomerSelection struct {
	ExistingID          string
	ExistingMultiBranch bool
	New                 *NewCustomerInput
}

// BranchInput sucursal destino: ya persistida (ExistingID) o nueva.
type BranchInput struct {
	ExistingID string
	Name       string
	Address    string
}

// ItemInput línea de pedido aún no persistida.
type ItemInput struct {
	ProductRef string
	Quantity   int
}

// Draft es el borrador del pedido a través de los pasos del asistente.
// Es una máquina de estados secuencial para un solo usuario: las transiciones
// hacia adelante validan, las transiciones hacia atrás nunca borran datos.
type Draft struct {
	Customer CustomerSelection
	Branches []BranchInput
	// Items trae una lista de líneas por sucursal (Items[i] ↔ Branches[i]).
	// Para clientes de una sola ubicación se usa únicamente Items[0].
	Items [][]ItemInput
	Plan  entity.PaymentPlan
	Notes string

	step Step
}

// NewDraft crea un borrador vacío en el paso de selección de cliente.
func NewDraft() *Draft {
	return &Draft{
		Items: [][]ItemInput{{}},
		Plan:  entity.PlanOneTime,
		step:  StepCustomer,
	}
}

// Step devuelve el estado actual del asistente.
func (d *Draft) Step() Step {
	return d.step
}

// MultiBranch indica si el borrador corresponde a un cliente multi-sucursal.
func (d *Draft) MultiBranch() bool {
	if d.Customer.New != nil {
		return d.Customer.New.MultiBranch
	}
	return d.Customer.ExistingMultiBranch
}

// ItemsForBranch devuelve las líneas de la sucursal i (lista vacía si no hay).
func (d *Draft) ItemsForBranch(i int) []ItemInput {
	if i < 0 || i >= len(d.Items) {
		return nil
	}
	return d.Items[i]
}

// Next valida el paso actual y avanza. Si hay errores, el estado no cambia y
// se devuelve el mapa campo → mensaje completo del paso.
// El paso de sucursales se omite para clientes de una sola ubicación.
func (d *Draft) Next() ValidationErrors {
	switch d.step {
	case StepCustomer:
		if errs := d.validateCustomer(); len(errs) > 0 {
			return errs
		}
		if d.MultiBranch() {
			d.step = StepBranches
		} else {
			d.step = StepItems
		}
	case StepBranches:
		if errs := d.validateBranches(); len(errs) > 0 {
			return errs
		}
		d.step = StepItems
	case StepItems:
		if errs := d.validateItems(); len(errs) > 0 {
			return errs
		}
		d.step = StepSubmitting
	}
	return nil
}

// Back retrocede al paso inmediatamente anterior sin borrar nada de lo ya
// ingresado. Desde Failed vuelve al paso de líneas para permitir el reintento.
func (d *Draft) Back() {
	switch d.step {
	case StepBranches:
		d.step = StepCustomer
	case StepItems:
		if d.MultiBranch() {
			d.step = StepBranches
		} else {
			d.step = StepCustomer
		}
	case StepFailed:
		d.step = StepItems
	}
}

// BeginSubmit valida el borrador completo desde el inicio y lo deja en
// Submitting. Devuelve el primer mapa de errores no vacío que encuentre.
func (d *Draft) BeginSubmit() ValidationErrors {
	d.step = StepCustomer
	for d.step != StepSubmitting {
		if errs := d.Next(); len(errs) > 0 {
			return errs
		}
	}
	return nil
}

// Confirm marca el borrador como confirmado tras persistir con éxito.
func (d *Draft) Confirm() {
	if d.step == StepSubmitting {
		d.step = StepConfirmed
	}
}

// Fail marca el borrador como fallido. Todos los campos quedan intactos para
// que el usuario pueda reintentar sin reingresar datos.
func (d *Draft) Fail() {
	d.step = StepFailed
}

// ── Validación por paso (recolecta todos los errores, no fail-fast) ──────────

func (d *Draft) validateCustomer() ValidationErrors {
	errs := ValidationErrors{}
	if d.Customer.ExistingID == "" && d.Customer.New == nil {
		errs["customer"] = "seleccione un cliente existente o ingrese los datos de uno nuevo"
		return errs
	}
	if n := d.Customer.New; n != nil {
		if strings.TrimSpace(n.Name) == "" {
			errs["name"] = "ingrese la razón social"
		}
		if strings.TrimSpace(n.TaxID) == "" {
			errs["ltd"] = "ingrese el número de identificación fiscal"
		}
		if strings.TrimSpace(n.Address) == "" {
			errs["address"] = "ingrese la dirección"
		}
		if strings.TrimSpace(n.Phone) == "" {
			errs["tel1"] = "ingrese el teléfono"
		}
		if strings.TrimSpace(n.Email) == "" {
			errs["email"] = "ingrese el email de facturación"
		}
		if strings.TrimSpace(n.AuthName) == "" {
			errs["authName"] = "ingrese el nombre del firmante autorizado"
		}
		if strings.TrimSpace(n.AuthMobile) == "" {
			errs["authMobile"] = "ingrese el móvil del firmante autorizado"
		}
		if strings.TrimSpace(n.AuthEmail) == "" {
			errs["authEmail"] = "ingrese el email del firmante autorizado"
		}
	}
	return errs
}

func (d *Draft) validateBranches() ValidationErrors {
	errs := ValidationErrors{}
	if len(d.Branches) == 0 {
		errs["branches"] = "agregue al menos una sucursal"
		return errs
	}
	for i, b := range d.Branches {
		if b.ExistingID != "" {
			continue
		}
		if strings.TrimSpace(b.Name) == "" {
			errs[fmt.Sprintf("branchName-%d", i)] = "el nombre de la sucursal es obligatorio"
		}
		if strings.TrimSpace(b.Address) == "" {
			errs[fmt.Sprintf("branchAddress-%d", i)] = "la dirección de la sucursal es obligatoria"
		}
	}
	return errs
}

func (d *Draft) validateItems() ValidationErrors {
	errs := ValidationErrors{}
	multi := d.MultiBranch()

	if !multi {
		if len(d.ItemsForBranch(0)) == 0 {
			errs["items"] = "agregue al menos un producto al pedido"
			return errs
		}
		for i, item := range d.ItemsForBranch(0) {
			d.validateItem(errs, item, fmt.Sprintf("product-%d", i), fmt.Sprintf("quantity-%d", i))
		}
		return errs
	}

	// Multi-sucursal: cada línea presente debe ser válida y al menos una
	// sucursal debe tener una línea con producto.
	hasItems := false
	for bi := range d.Branches {
		for i, item := range d.ItemsForBranch(bi) {
			d.validateItem(errs, item,
				fmt.Sprintf("branch%d-product-%d", bi, i),
				fmt.Sprintf("branch%d-quantity-%d", bi, i))
			if item.ProductRef != "" {
				hasItems = true
			}
		}
	}
	if !hasItems {
		errs["items"] = "al menos una sucursal debe tener un producto en el pedido"
	}
	return errs
}

func (d *Draft) validateItem(errs ValidationErrors, item ItemInput, productKey, quantityKey string) {
	if item.ProductRef == "" {
		errs[productKey] = "seleccione un producto"
	}
	if item.Quantity < 1 {
		errs[quantityKey] = "la cantidad debe ser al menos 1"
	}
}
