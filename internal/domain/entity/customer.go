package entity

import "time"

// Customer representa un cliente (empresa) de la operación de ventas.
// TaxID es la clave de negocio: única e inmutable una vez creado el cliente.
type Customer struct {
	ID               string
	Name             string // razón social
	TaxID            string // número de identificación fiscal (único)
	BusinessType     string
	Address          string
	Phone            string
	Email            string // email de facturación
	InternetProvider string
	AuthName         string // firmante autorizado
	AuthMobile       string
	AuthEmail        string
	Notes            string
	MultiBranch      bool // true si el cliente opera varias sucursales
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
