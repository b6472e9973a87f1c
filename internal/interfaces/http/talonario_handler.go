package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/talonarios"
)

// TalonarioHandler maneja las peticiones HTTP de la gestión de talonarios.
// Todas las operaciones trabajan sobre el par (empresa, formato).
type TalonarioHandler struct {
	uc *talonarios.TalonarioUseCase
}

// NewTalonarioHandler construye el handler.
func NewTalonarioHandler(uc *talonarios.TalonarioUseCase) *TalonarioHandler {
	return &TalonarioHandler{uc: uc}
}

// Cargar devuelve el conjunto guardado del par.
func (h *TalonarioHandler) Cargar(c *fiber.Ctx) error {
	empresa := c.Query("empresa")
	formato := c.Query("formato")
	if empresa == "" || formato == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa y formato son requeridos"})
	}
	out, err := h.uc.Cargar(c.Context(), empresa, formato)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Generar particiona la numeración disponible del par en talonarios del
// tamaño pedido. No persiste: devuelve la vista propuesta y, si hay
// numeración nueva, la marca pendiente de incorporar.
func (h *TalonarioHandler) Generar(c *fiber.Ctx) error {
	var in dto.GenerarTalonariosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Empresa == "" || in.Formato == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa y formato son requeridos"})
	}
	out, err := h.uc.Generar(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// IncorporarNuevos tila el incremento de numeración pendiente con su propio
// tamaño y lo agrega a la cola del par.
func (h *TalonarioHandler) IncorporarNuevos(c *fiber.Ctx) error {
	var in dto.IncorporarNuevosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Empresa == "" || in.Formato == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa y formato son requeridos"})
	}
	out, err := h.uc.IncorporarNuevos(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Guardar persiste el conjunto mostrado como el estado del par.
func (h *TalonarioHandler) Guardar(c *fiber.Ctx) error {
	var in dto.GuardarTalonariosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Empresa == "" || in.Formato == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa y formato son requeridos"})
	}
	if err := h.uc.Guardar(c.Context(), in); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Redimensionar retila los talonarios disponibles seleccionados con otro tamaño.
func (h *TalonarioHandler) Redimensionar(c *fiber.Ctx) error {
	var in dto.RedimensionarRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Empresa == "" || in.Formato == "" || len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa, formato e ids son requeridos"})
	}
	out, err := h.uc.Redimensionar(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Enviar despacha en lote los talonarios seleccionados que sigan disponibles.
func (h *TalonarioHandler) Enviar(c *fiber.Ctx) error {
	var in dto.EnviarTalonariosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Empresa == "" || in.Formato == "" || len(in.IDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa, formato e ids son requeridos"})
	}
	enviados, err := h.uc.Enviar(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.EnviarTalonariosResponse{Enviados: enviados})
}

// Actualizar edita un talonario individual. Limpiar la fecha de salida lo
// devuelve a disponible; fijarla lo marca enviado.
func (h *TalonarioHandler) Actualizar(c *fiber.Ctx) error {
	var in dto.ActualizarTalonarioRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Empresa == "" || in.Formato == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa y formato son requeridos"})
	}
	out, err := h.uc.Actualizar(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
