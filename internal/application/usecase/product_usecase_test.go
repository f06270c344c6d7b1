package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

type fakeProductRepo struct {
	products []*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.products = append(f.products, p)
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetByName(name string) (*entity.Product, error) {
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
	var out []*entity.Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error { return nil }

func TestProductCreate_CategoriaInvalidaRechazada(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductRepo{})

	_, err := uc.Create(dto.CreateProductRequest{Name: "Router", Category: "Hardware"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_NombreDuplicadoRechazado(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{{ID: "p1", Name: "Router", Category: entity.CategoryOTC}}}
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{Name: "Router", Category: entity.CategoryOTC})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_PreciosDeCuotasOpcionales(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductRepo{})

	out, err := uc.Create(dto.CreateProductRequest{
		Name:     "Soporte mensual",
		Category: entity.CategoryService,
		Price:    decimal.NullDecimal{Decimal: decimal.NewFromInt(30), Valid: true},
	})

	require.NoError(t, err)
	assert.True(t, out.Price.Valid)
	assert.False(t, out.Price36.Valid, "sin precio a 36 cuotas")
	assert.False(t, out.Price48.Valid, "sin precio a 48 cuotas")
}

func TestProductList_FiltraPorCategoria(t *testing.T) {
	repo := &fakeProductRepo{products: []*entity.Product{
		{ID: "p1", Name: "Router", Category: entity.CategoryOTC},
		{ID: "p2", Name: "Soporte", Category: entity.CategoryService},
	}}
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.List(entity.CategoryService, 20, 0)

	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Soporte", out.Items[0].Name)

	_, err = uc.List("Hardware", 20, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
