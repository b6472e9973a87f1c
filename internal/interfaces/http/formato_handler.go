package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/formatos"
)

// FormatoHandler maneja las peticiones HTTP para Formato.
type FormatoHandler struct {
	uc *formatos.FormatoUseCase
}

// NewFormatoHandler construye el handler.
func NewFormatoHandler(uc *formatos.FormatoUseCase) *FormatoHandler {
	return &FormatoHandler{uc: uc}
}

// List lista formatos; con pedido_id en query limita a ese pedido.
func (h *FormatoHandler) List(c *fiber.Ctx) error {
	if pedidoID := c.Query("pedido_id"); pedidoID != "" {
		out, err := h.uc.ListByPedido(c.Context(), pedidoID)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func (h *FormatoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "formato no encontrado"})
	}
	return c.JSON(out)
}

// Update edita los campos de custodia de un formato individual. La numeración
// y el pedido dueño no se tocan por esta vía.
func (h *FormatoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFormatoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
