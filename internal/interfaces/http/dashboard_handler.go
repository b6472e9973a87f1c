package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sgv-soluciones/control-formatos/internal/application/analytics"
)

// DashboardHandler expone las métricas globales del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.Context())
	if err != nil {
		return responderError(c, err)
	}
	return c.JSON(out)
}
