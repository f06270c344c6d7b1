package repository

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByName busca por nombre (clave de negocio del catálogo).
	GetByName(name string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	// Search filtra por substring case-insensitive sobre nombre o tipo.
	Search(query string, limit, offset int) ([]*entity.Product, error)
	FilterByCategory(category string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
