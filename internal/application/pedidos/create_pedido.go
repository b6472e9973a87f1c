package pedidos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/application/numeracion"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// CrearPedidoUseCase crea un pedido y materializa sus formatos en una sola
// transacción.
type CrearPedidoUseCase struct {
	txRunner  TxRunner
	allocator *numeracion.Allocator
}

// NewCrearPedidoUseCase construye el caso de uso.
func NewCrearPedidoUseCase(txRunner TxRunner, allocator *numeracion.Allocator) *CrearPedidoUseCase {
	return &CrearPedidoUseCase{txRunner: txRunner, allocator: allocator}
}

// Crear valida el pedido, resuelve la numeración inicial si viene en cero y
// crea el pedido junto con sus Cantidad formatos, numerados de forma
// consecutiva desde la inicial. Asignar la numeración y materializar el lote
// ocurren dentro de la misma transacción, con el par bloqueado: dos
// creaciones concurrentes sobre el mismo par no pueden leer el mismo máximo.
// O se insertan todos los formatos o ninguno: un error de asignación o de
// materialización es fatal para el flujo y no deja un pedido a medio crear.
func (uc *CrearPedidoUseCase) Crear(ctx context.Context, in dto.CreatePedidoRequest) (*dto.PedidoResponse, error) {
	if err := validarCreacion(in); err != nil {
		return nil, err
	}

	var pedido *entity.Pedido
	err := uc.txRunner.Run(ctx, func(pedidoRepo repository.PedidoRepository, formatoRepo repository.FormatoRepository, reservaRepo repository.NumeracionRepository) error {
		if err := formatoRepo.BloquearPar(ctx, in.Empresa, in.Formato); err != nil {
			return fmt.Errorf("bloquear par: %w", err)
		}

		inicial := in.NumeracionInicial
		if inicial == 0 {
			n, err := uc.allocator.NextNumeracionEn(ctx, formatoRepo, reservaRepo, in.Formato, in.Empresa)
			if err != nil {
				return err
			}
			inicial = n
		}

		now := time.Now()
		estado := in.Estado
		if estado == "" {
			estado = entity.PedidoPorRecoger
		}
		pedido = &entity.Pedido{
			ID:                uuid.New().String(),
			Fecha:             in.Fecha,
			Formato:           in.Formato,
			Empresa:           in.Empresa,
			Cantidad:          in.Cantidad,
			NumeracionInicial: inicial,
			Estado:            estado,
			FechaRecojo:       in.FechaRecojo,
			Pagado:            in.Pagado,
			FechaPago:         in.FechaPago,
			Monto:             in.Monto,
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		formatos := materializar(pedido, now)
		if err := pedidoRepo.Create(ctx, pedido); err != nil {
			return fmt.Errorf("crear pedido: %w", err)
		}
		if err := formatoRepo.CreateBatch(ctx, formatos); err != nil {
			return fmt.Errorf("materializar %d formatos: %w", len(formatos), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pedidoToResponse(pedido), nil
}

// materializar construye un formato por cada entero del rango del pedido,
// todos disponibles en almacén. La fecha de ingreso es la fecha de recojo del
// pedido si existe, si no la fecha actual.
func materializar(pedido *entity.Pedido, now time.Time) []*entity.Formato {
	ingreso := pedido.FechaRecojo
	if ingreso == "" {
		ingreso = now.Format("2006-01-02")
	}
	formatos := make([]*entity.Formato, 0, pedido.Cantidad)
	for i := 0; i < pedido.Cantidad; i++ {
		formatos = append(formatos, &entity.Formato{
			ID:              uuid.New().String(),
			Numeracion:      pedido.NumeracionInicial + i,
			PedidoID:        pedido.ID,
			Estado:          entity.FormatoDisponible,
			UbicacionActual: entity.UbicacionAlmacen,
			FechaIngreso:    ingreso,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return formatos
}

func validarCreacion(in dto.CreatePedidoRequest) error {
	if in.Empresa == "" || in.Formato == "" {
		return fmt.Errorf("%w: empresa y formato son requeridos", domain.ErrInvalidInput)
	}
	if in.Cantidad <= 0 {
		return fmt.Errorf("%w: cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.NumeracionInicial < 0 {
		return fmt.Errorf("%w: numeración inicial inválida", domain.ErrInvalidInput)
	}
	if in.Estado != "" && in.Estado != entity.PedidoPorRecoger && in.Estado != entity.PedidoRecogido {
		return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Estado)
	}
	if in.Estado == entity.PedidoRecogido {
		if in.FechaRecojo == "" {
			return fmt.Errorf("%w: un pedido recogido requiere fecha de recojo", domain.ErrInvalidInput)
		}
		if in.Monto.IsZero() {
			return fmt.Errorf("%w: un pedido recogido requiere monto", domain.ErrInvalidInput)
		}
	}
	if in.Pagado && in.FechaPago == "" {
		return fmt.Errorf("%w: un pedido pagado requiere fecha de pago", domain.ErrInvalidInput)
	}
	return nil
}
