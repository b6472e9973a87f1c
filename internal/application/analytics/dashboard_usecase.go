// Package analytics calcula las métricas del tablero. Con un almacén local y
// volúmenes de una sola imprenta, agregar en memoria sobre las listas de los
// repositorios evita duplicar SQL de agregación en cada driver.
package analytics

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// DashboardUseCase agrega métricas de pedidos y formatos.
type DashboardUseCase struct {
	pedidoRepo  repository.PedidoRepository
	formatoRepo repository.FormatoRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(pedidoRepo repository.PedidoRepository, formatoRepo repository.FormatoRepository) *DashboardUseCase {
	return &DashboardUseCase{pedidoRepo: pedidoRepo, formatoRepo: formatoRepo}
}

// Resumen devuelve los totales del tablero.
func (uc *DashboardUseCase) Resumen(ctx context.Context) (*dto.DashboardResponse, error) {
	pedidos, err := uc.pedidoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	formatos, err := uc.formatoRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.DashboardResponse{
		TotalPedidos:   len(pedidos),
		MontoTotal:     decimal.Zero,
		MontoPagado:    decimal.Zero,
		MontoPendiente: decimal.Zero,
	}
	for _, p := range pedidos {
		switch p.Estado {
		case entity.PedidoPorRecoger:
			out.PedidosPendientes++
		case entity.PedidoRecogido:
			out.PedidosRecogidos++
		}
		out.MontoTotal = out.MontoTotal.Add(p.Monto)
		if p.Pagado {
			out.MontoPagado = out.MontoPagado.Add(p.Monto)
		} else {
			out.MontoPendiente = out.MontoPendiente.Add(p.Monto)
		}
	}
	for _, f := range formatos {
		switch f.Estado {
		case entity.FormatoDisponible:
			out.FormatosDisponibles++
		case entity.FormatoAsignado:
			out.FormatosAsignados++
		case entity.FormatoEntregado:
			out.FormatosEntregados++
		}
	}
	return out, nil
}
