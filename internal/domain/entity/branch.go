package entity

import "time"

// Branch representa una sucursal física de un cliente multi-sucursal.
// Un cliente sin sucursales tiene una ubicación "principal" implícita igual a su propia dirección.
type Branch struct {
	ID         string
	CustomerID string
	Name       string
	Address    string
	CreatedAt  time.Time
}
