package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	ItemsByOrder(orderID string) ([]*entity.OrderItem, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
}
