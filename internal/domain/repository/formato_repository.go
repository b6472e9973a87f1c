package repository

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// FormatoRepository define el puerto de persistencia para Formato. Las
// consultas por par (empresa, tipo) resuelven la pertenencia vía el pedido
// dueño, nunca por el ID del tipo de formato.
type FormatoRepository interface {
	// BloquearPar serializa a los escritores del par hasta el fin de la
	// transacción en curso; leer el máximo y después insertar el lote queda
	// libre de carreras entre transacciones concurrentes. Fuera de una
	// transacción no garantiza nada.
	BloquearPar(ctx context.Context, empresa, tipo string) error
	// CreateBatch inserta todos los formatos o ninguno. Si algún número del
	// lote ya existe para el par del pedido dueño devuelve domain.ErrIntegridad
	// sin persistir nada.
	CreateBatch(ctx context.Context, formatos []*entity.Formato) error
	GetByID(ctx context.Context, id string) (*entity.Formato, error)
	Update(ctx context.Context, formato *entity.Formato) error
	List(ctx context.Context) ([]*entity.Formato, error)
	ListByPedido(ctx context.Context, pedidoID string) ([]*entity.Formato, error)
	// ListarDisponibles devuelve los formatos disponibles del par cuyos
	// pedidos ya fueron recogidos, orden ascendente por numeración.
	ListarDisponibles(ctx context.Context, empresa, tipo string) ([]*entity.Formato, error)
	// MaxNumeracion devuelve la numeración máxima existente para el par, 0 si
	// el par no tiene historia. Un fallo del almacén es error, nunca 0.
	MaxNumeracion(ctx context.Context, empresa, tipo string) (int, error)
	// PrimeroEnRango devuelve algún formato disponible del par con numeración
	// en [desde, hasta], o nil si no hay.
	PrimeroEnRango(ctx context.Context, empresa, tipo string, desde, hasta int) (*entity.Formato, error)
	DeleteByPedidoID(ctx context.Context, pedidoID string) error
}
