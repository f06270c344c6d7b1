package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetByTaxID busca por número de identificación fiscal (clave de negocio).
	GetByTaxID(taxID string) (*entity.Customer, error)
	// Search filtra por substring case-insensitive sobre razón social o tax id.
	Search(query string, limit, offset int) ([]*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
