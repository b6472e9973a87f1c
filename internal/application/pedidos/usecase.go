package pedidos

import (
	"context"
	"fmt"
	"time"

	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// PedidoUseCase operaciones de consulta y mantenimiento sobre pedidos.
type PedidoUseCase struct {
	repo     repository.PedidoRepository
	txRunner TxRunner
}

// NewPedidoUseCase construye el caso de uso.
func NewPedidoUseCase(repo repository.PedidoRepository, txRunner TxRunner) *PedidoUseCase {
	return &PedidoUseCase{repo: repo, txRunner: txRunner}
}

// GetByID obtiene un pedido; (nil, nil) si no existe.
func (uc *PedidoUseCase) GetByID(ctx context.Context, id string) (*dto.PedidoResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return pedidoToResponse(p), nil
}

// List devuelve todos los pedidos, más recientes primero.
func (uc *PedidoUseCase) List(ctx context.Context) ([]dto.PedidoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return pedidosToResponses(list), nil
}

// Buscar busca por empresa, formato o estado.
func (uc *PedidoUseCase) Buscar(ctx context.Context, query string) ([]dto.PedidoResponse, error) {
	list, err := uc.repo.Buscar(ctx, query)
	if err != nil {
		return nil, err
	}
	return pedidosToResponses(list), nil
}

// Filtrar lista con filtros de igualdad y rango de fechas.
func (uc *PedidoUseCase) Filtrar(ctx context.Context, in dto.FiltroPedidosRequest) ([]dto.PedidoResponse, error) {
	list, err := uc.repo.Filtrar(ctx, repository.FiltroPedidos{
		Empresa:    in.Empresa,
		Estado:     in.Estado,
		FechaDesde: in.FechaDesde,
		FechaHasta: in.FechaHasta,
	})
	if err != nil {
		return nil, err
	}
	return pedidosToResponses(list), nil
}

// Update aplica los campos presentes y revalida los invariantes de estado.
func (uc *PedidoUseCase) Update(ctx context.Context, id string, in dto.UpdatePedidoRequest) (*dto.PedidoResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}

	if in.Fecha != nil {
		p.Fecha = *in.Fecha
	}
	if in.Estado != nil {
		if *in.Estado != entity.PedidoPorRecoger && *in.Estado != entity.PedidoRecogido {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, *in.Estado)
		}
		p.Estado = *in.Estado
	}
	if in.FechaRecojo != nil {
		p.FechaRecojo = *in.FechaRecojo
	}
	if in.Pagado != nil {
		p.Pagado = *in.Pagado
	}
	if in.FechaPago != nil {
		p.FechaPago = *in.FechaPago
	}
	if in.Monto != nil {
		p.Monto = *in.Monto
	}

	if p.Estado == entity.PedidoRecogido {
		if p.FechaRecojo == "" {
			return nil, fmt.Errorf("%w: un pedido recogido requiere fecha de recojo", domain.ErrInvalidInput)
		}
		if p.Monto.IsZero() {
			return nil, fmt.Errorf("%w: un pedido recogido requiere monto", domain.ErrInvalidInput)
		}
	}
	if p.Pagado && p.FechaPago == "" {
		return nil, fmt.Errorf("%w: un pedido pagado requiere fecha de pago", domain.ErrInvalidInput)
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return pedidoToResponse(p), nil
}

// Delete elimina el pedido y en cascada todos sus formatos, como una sola
// transacción. Los números liberados vuelven a estar asignables: el asignador
// recalcula desde los formatos existentes (reutilización de huecos
// intencional del diseño).
func (uc *PedidoUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.Run(ctx, func(pedidoRepo repository.PedidoRepository, formatoRepo repository.FormatoRepository, _ repository.NumeracionRepository) error {
		if err := formatoRepo.DeleteByPedidoID(ctx, id); err != nil {
			return fmt.Errorf("eliminar formatos del pedido: %w", err)
		}
		if err := pedidoRepo.Delete(ctx, id); err != nil {
			return fmt.Errorf("eliminar pedido: %w", err)
		}
		return nil
	})
}

func pedidoToResponse(p *entity.Pedido) *dto.PedidoResponse {
	if p == nil {
		return nil
	}
	return &dto.PedidoResponse{
		ID:                p.ID,
		Fecha:             p.Fecha,
		Formato:           p.Formato,
		Empresa:           p.Empresa,
		Cantidad:          p.Cantidad,
		NumeracionInicial: p.NumeracionInicial,
		NumeracionFinal:   p.NumeracionFinal(),
		Estado:            p.Estado,
		FechaRecojo:       p.FechaRecojo,
		Pagado:            p.Pagado,
		FechaPago:         p.FechaPago,
		Monto:             p.Monto,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func pedidosToResponses(list []*entity.Pedido) []dto.PedidoResponse {
	out := make([]dto.PedidoResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *pedidoToResponse(p))
	}
	return out
}
