package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/orders"
	"github.com/jhoicas/Pedidos-api/internal/application/usecase"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	submitUC   *orders.SubmitOrderUseCase
	pdfUC      *orders.PDFUseCase
	customerUC *usecase.CustomerUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(submitUC *orders.SubmitOrderUseCase, pdfUC *orders.PDFUseCase, customerUC *usecase.CustomerUseCase) *OrderHandler {
	return &OrderHandler{submitUC: submitUC, pdfUC: pdfUC, customerUC: customerUC}
}

// Create godoc
// @Summary      Confirmar borrador de pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitOrderRequest  true  "borrador completo"
// @Success      201   {object}  dto.SubmitOrderResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.SubmitOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	d, err := h.buildDraft(in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out, errs, err := h.submitUC.Submit(c.Context(), d)
	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    "VALIDATION",
			Message: "el borrador tiene campos inválidos",
			Fields:  errs,
		})
	}
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un cliente con ese tax_id"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo confirmar el pedido"})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// buildDraft arma el borrador desde el request. Para clientes existentes se
// consulta su condición multi-sucursal antes de validar.
func (h *OrderHandler) buildDraft(in dto.SubmitOrderRequest) (*orders.Draft, error) {
	d := orders.NewDraft()

	if in.Customer.ExistingID != "" {
		d.Customer.ExistingID = in.Customer.ExistingID
		customer, err := h.customerUC.GetByID(in.Customer.ExistingID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		d.Customer.ExistingMultiBranch = customer.MultiBranch
	} else if in.Customer.New != nil {
		d.Customer.New = &orders.NewCustomerInput{
			Name:             in.Customer.New.Name,
			TaxID:            in.Customer.New.TaxID,
			BusinessType:     in.Customer.New.BusinessType,
			Address:          in.Customer.New.Address,
			Phone:            in.Customer.New.Phone,
			Email:            in.Customer.New.Email,
			InternetProvider: in.Customer.New.InternetProvider,
			AuthName:         in.Customer.New.AuthName,
			AuthMobile:       in.Customer.New.AuthMobile,
			AuthEmail:        in.Customer.New.AuthEmail,
			Notes:            in.Customer.New.Notes,
			MultiBranch:      in.Customer.New.MultiBranch,
		}
	}

	for _, b := range in.Branches {
		d.Branches = append(d.Branches, orders.BranchInput{
			ExistingID: b.ExistingID,
			Name:       b.Name,
			Address:    b.Address,
		})
	}

	if len(in.Items) > 0 {
		d.Items = make([][]orders.ItemInput, 0, len(in.Items))
		for _, branchItems := range in.Items {
			list := make([]orders.ItemInput, 0, len(branchItems))
			for _, item := range branchItems {
				list = append(list, orders.ItemInput{ProductRef: item.ProductRef, Quantity: item.Quantity})
			}
			d.Items = append(d.Items, list)
		}
	}

	switch in.PaymentPlan {
	case string(entity.Plan36):
		d.Plan = entity.Plan36
	case string(entity.Plan48):
		d.Plan = entity.Plan48
	default:
		d.Plan = entity.PlanOneTime
	}
	d.Notes = in.Notes
	return d, nil
}

// GetByID obtiene un pedido con sus líneas.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	order, err := h.submitUC.GetOrder(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(order)
}

// List lista pedidos, opcionalmente por estado.
// GET /api/orders?status=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.submitUC.ListOrders(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// UpdateStatus cambia el estado del ciclo de vida de un pedido.
// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.submitUC.UpdateStatus(c.Context(), id, in.Status); err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado desconocido"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF devuelve el resumen imprimible del pedido.
// GET /api/orders/:id/pdf
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.pdfUC.GenerateOrderPDF(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "no se pudo generar el PDF"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+id+`.pdf"`)
	return c.Send(data)
}
