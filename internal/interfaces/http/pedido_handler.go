package http

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/numeracion"
	"github.com/sgv-soluciones/control-formatos/internal/application/pedidos"
)

// PedidoHandler maneja las peticiones HTTP para Pedido.
type PedidoHandler struct {
	crearUC   *pedidos.CrearPedidoUseCase
	uc        *pedidos.PedidoUseCase
	allocator *numeracion.Allocator
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(crearUC *pedidos.CrearPedidoUseCase, uc *pedidos.PedidoUseCase, allocator *numeracion.Allocator) *PedidoHandler {
	return &PedidoHandler{crearUC: crearUC, uc: uc, allocator: allocator}
}

func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.crearUC.Crear(c.Context(), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista pedidos; con filtros en query se delega a Filtrar y con q a Buscar.
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	if q := c.Query("q"); q != "" {
		out, err := h.uc.Buscar(c.Context(), q)
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(out)
	}

	var filtro dto.FiltroPedidosRequest
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	if filtro == (dto.FiltroPedidosRequest{}) {
		out, err := h.uc.List(c.Context())
		if err != nil {
			return responderError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.Filtrar(c.Context(), filtro)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return responderError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
	}
	return c.JSON(out)
}

func (h *PedidoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina el pedido y todos sus formatos en una sola operación.
func (h *PedidoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return responderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SiguienteNumeracion calcula la próxima numeración inicial del par para
// precargar el formulario. No crea ningún pedido, pero si la numeración sale
// del fondo de reservas ese número queda retirado del fondo.
func (h *PedidoHandler) SiguienteNumeracion(c *fiber.Ctx) error {
	empresa := c.Query("empresa")
	formato := c.Query("formato")
	if empresa == "" || formato == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "empresa y formato son requeridos"})
	}
	n, err := h.allocator.NextNumeracion(c.Context(), formato, empresa)
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(dto.NumeracionResponse{Empresa: empresa, Formato: formato, Numeracion: n})
}

// ExportarCSV descarga el listado filtrado como reporte CSV.
func (h *PedidoHandler) ExportarCSV(c *fiber.Ctx) error {
	var filtro dto.FiltroPedidosRequest
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "filtros inválidos"})
	}
	lista, err := h.uc.Filtrar(c.Context(), filtro)
	if err != nil {
		return responderError(c, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"fecha", "empresa", "formato", "cantidad", "numeracion_inicial", "numeracion_final",
		"estado", "fecha_recojo", "pagado", "fecha_pago", "monto",
	})
	for _, p := range lista {
		pagado := "no"
		if p.Pagado {
			pagado = "si"
		}
		_ = w.Write([]string{
			p.Fecha, p.Empresa, p.Formato,
			strconv.Itoa(p.Cantidad), strconv.Itoa(p.NumeracionInicial), strconv.Itoa(p.NumeracionFinal),
			p.Estado, p.FechaRecojo, pagado, p.FechaPago, p.Monto.String(),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return responderError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte_pedidos.csv"`)
	return c.Send(buf.Bytes())
}
