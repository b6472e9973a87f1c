package repository

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// FiltroPedidos filtros simples de igualdad/rango para listar pedidos.
// Campos vacíos no filtran. Las fechas son YYYY-MM-DD inclusive.
type FiltroPedidos struct {
	Empresa    string
	Estado     string
	FechaDesde string
	FechaHasta string
}

// PedidoRepository define el puerto de persistencia para Pedido.
type PedidoRepository interface {
	Create(ctx context.Context, pedido *entity.Pedido) error
	GetByID(ctx context.Context, id string) (*entity.Pedido, error)
	Update(ctx context.Context, pedido *entity.Pedido) error
	List(ctx context.Context) ([]*entity.Pedido, error)
	// Buscar busca por empresa, formato o estado, ignorando mayúsculas y tildes.
	Buscar(ctx context.Context, query string) ([]*entity.Pedido, error)
	Filtrar(ctx context.Context, filtro FiltroPedidos) ([]*entity.Pedido, error)
	Delete(ctx context.Context, id string) error
}
