package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch.
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	ListByCustomer(customerID string) ([]*entity.Branch, error)
}
