package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes y sus sucursales.
type CustomerUseCase struct {
	repo       repository.CustomerRepository
	branchRepo repository.BranchRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, branchRepo repository.BranchRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, branchRepo: branchRepo}
}

// Create crea un cliente nuevo. El tax id es clave de negocio única.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, _ := uc.repo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		Name:             in.Name,
		TaxID:            in.TaxID,
		BusinessType:     in.BusinessType,
		Address:          in.Address,
		Phone:            in.Phone,
		Email:            in.Email,
		InternetProvider: in.InternetProvider,
		AuthName:         in.AuthName,
		AuthMobile:       in.AuthMobile,
		AuthEmail:        in.AuthEmail,
		Notes:            in.Notes,
		MultiBranch:      in.MultiBranch,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

// Search busca clientes por razón social o tax id (para el autocompletado
// del asistente de pedidos).
func (uc *CustomerUseCase) Search(query string, limit, offset int) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.Search(query, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

// CreateBranch agrega una sucursal a un cliente existente. Marca el cliente
// como multi-sucursal si aún no lo era.
func (uc *CustomerUseCase) CreateBranch(customerID string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	branch := &entity.Branch{
		ID:         uuid.New().String(),
		CustomerID: customerID,
		Name:       in.Name,
		Address:    in.Address,
		CreatedAt:  time.Now(),
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	if !customer.MultiBranch {
		customer.MultiBranch = true
		customer.UpdatedAt = time.Now()
		if err := uc.repo.Update(customer); err != nil {
			return nil, err
		}
	}
	return toBranchResponse(branch), nil
}

// ListBranches lista las sucursales de un cliente.
func (uc *CustomerUseCase) ListBranches(customerID string) ([]dto.BranchResponse, error) {
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.branchRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.BranchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return items, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxID:            c.TaxID,
		BusinessType:     c.BusinessType,
		Address:          c.Address,
		Phone:            c.Phone,
		Email:            c.Email,
		InternetProvider: c.InternetProvider,
		AuthName:         c.AuthName,
		AuthMobile:       c.AuthMobile,
		AuthEmail:        c.AuthEmail,
		Notes:            c.Notes,
		MultiBranch:      c.MultiBranch,
		CreatedAt:        c.CreatedAt,
	}
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	if b == nil {
		return nil
	}
	return &dto.BranchResponse{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		Name:       b.Name,
		Address:    b.Address,
	}
}
