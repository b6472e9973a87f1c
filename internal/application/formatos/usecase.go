// Package formatos expone consulta y edición individual de formatos.
package formatos

import (
	"context"
	"fmt"
	"time"

	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// FormatoUseCase consulta y edita formatos individuales.
type FormatoUseCase struct {
	repo repository.FormatoRepository
}

// NewFormatoUseCase construye el caso de uso.
func NewFormatoUseCase(repo repository.FormatoRepository) *FormatoUseCase {
	return &FormatoUseCase{repo: repo}
}

// List devuelve todos los formatos.
func (uc *FormatoUseCase) List(ctx context.Context) ([]dto.FormatoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return formatosToResponses(list), nil
}

// ListByPedido devuelve los formatos de un pedido, orden por numeración.
func (uc *FormatoUseCase) ListByPedido(ctx context.Context, pedidoID string) ([]dto.FormatoResponse, error) {
	list, err := uc.repo.ListByPedido(ctx, pedidoID)
	if err != nil {
		return nil, err
	}
	return formatosToResponses(list), nil
}

// GetByID obtiene un formato; (nil, nil) si no existe.
func (uc *FormatoUseCase) GetByID(ctx context.Context, id string) (*dto.FormatoResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	r := formatoToResponse(f)
	return &r, nil
}

// Update aplica una edición de custodia. La numeración y el pedido dueño no
// se tocan; solo cambian ubicación, estado y datos de salida.
func (uc *FormatoUseCase) Update(ctx context.Context, id string, in dto.UpdateFormatoRequest) (*dto.FormatoResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, nil
	}

	if in.Estado != nil {
		switch *in.Estado {
		case entity.FormatoDisponible, entity.FormatoAsignado, entity.FormatoEntregado:
			f.Estado = *in.Estado
		default:
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, *in.Estado)
		}
	}
	if in.UbicacionActual != nil {
		f.UbicacionActual = *in.UbicacionActual
	}
	if in.UbicacionDestino != nil {
		f.UbicacionDestino = *in.UbicacionDestino
	}
	if in.Destinatario != nil {
		f.Destinatario = *in.Destinatario
	}
	if in.Observaciones != nil {
		f.Observaciones = *in.Observaciones
	}
	if in.FechaSalida != nil {
		f.FechaSalida = *in.FechaSalida
	}

	f.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	r := formatoToResponse(f)
	return &r, nil
}

func formatoToResponse(f *entity.Formato) dto.FormatoResponse {
	return dto.FormatoResponse{
		ID:               f.ID,
		Numeracion:       f.Numeracion,
		PedidoID:         f.PedidoID,
		Estado:           f.Estado,
		UbicacionActual:  f.UbicacionActual,
		UbicacionDestino: f.UbicacionDestino,
		Destinatario:     f.Destinatario,
		Observaciones:    f.Observaciones,
		FechaIngreso:     f.FechaIngreso,
		FechaSalida:      f.FechaSalida,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
}

func formatosToResponses(list []*entity.Formato) []dto.FormatoResponse {
	out := make([]dto.FormatoResponse, 0, len(list))
	for _, f := range list {
		out = append(out, formatoToResponse(f))
	}
	return out
}
