package pedidos

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando
// repositorios atados a esa transacción. Garantiza que asignar numeración y
// materializar los formatos de un pedido sea una unidad atómica: dos
// creaciones concurrentes sobre el mismo par no pueden leer el mismo máximo
// y duplicar numeración, y una inserción fallida a mitad de lote revierte
// todo (la materialización parcial rompe la contigüidad del par). El fondo de
// reservas también va atado a la transacción: retirar un número reservado se
// revierte junto con el pedido que lo iba a usar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		pedidoRepo repository.PedidoRepository,
		formatoRepo repository.FormatoRepository,
		reservaRepo repository.NumeracionRepository,
	) error) error
}
