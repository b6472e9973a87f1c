package jsonfile

import (
	"context"
	"sort"

	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
	"github.com/sgv-soluciones/control-formatos/pkg/texto"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementación del puerto PedidoRepository sobre archivos JSON.
// Con tx != nil opera sobre el estado clonado de una transacción en curso y
// la persistencia queda a cargo del TxRunner.
type PedidoRepo struct {
	store *Store
	tx    *datos
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos.
func NewPedidoRepository(store *Store) *PedidoRepo {
	return &PedidoRepo{store: store}
}

func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	if r.tx != nil {
		return crearPedido(r.tx, p)
	}
	return r.store.mutar(func(d *datos) error {
		return crearPedido(d, p)
	}, archivoPedidos)
}

func (r *PedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	var encontrado *entity.Pedido
	r.ver(func(d *datos) {
		encontrado = buscarPedido(d, id)
	})
	return encontrado, nil
}

func (r *PedidoRepo) Update(ctx context.Context, p *entity.Pedido) error {
	if r.tx != nil {
		return actualizarPedido(r.tx, p)
	}
	return r.store.mutar(func(d *datos) error {
		return actualizarPedido(d, p)
	}, archivoPedidos)
}

func (r *PedidoRepo) List(ctx context.Context) ([]*entity.Pedido, error) {
	var pedidos []*entity.Pedido
	r.ver(func(d *datos) {
		for _, p := range d.pedidos {
			v := *p
			pedidos = append(pedidos, &v)
		}
	})
	ordenarPedidos(pedidos)
	return pedidos, nil
}

// Buscar busca por empresa, formato o estado, ignorando mayúsculas y tildes.
func (r *PedidoRepo) Buscar(ctx context.Context, query string) ([]*entity.Pedido, error) {
	var pedidos []*entity.Pedido
	r.ver(func(d *datos) {
		for _, p := range d.pedidos {
			if texto.Contiene(p.Empresa, query) || texto.Contiene(p.Formato, query) || texto.Contiene(p.Estado, query) {
				v := *p
				pedidos = append(pedidos, &v)
			}
		}
	})
	ordenarPedidos(pedidos)
	return pedidos, nil
}

// Filtrar lista pedidos según filtros de igualdad/rango. Campos vacíos no filtran.
func (r *PedidoRepo) Filtrar(ctx context.Context, filtro repository.FiltroPedidos) ([]*entity.Pedido, error) {
	var pedidos []*entity.Pedido
	r.ver(func(d *datos) {
		for _, p := range d.pedidos {
			if filtro.Empresa != "" && p.Empresa != filtro.Empresa {
				continue
			}
			if filtro.Estado != "" && p.Estado != filtro.Estado {
				continue
			}
			if filtro.FechaDesde != "" && p.Fecha < filtro.FechaDesde {
				continue
			}
			if filtro.FechaHasta != "" && p.Fecha > filtro.FechaHasta {
				continue
			}
			v := *p
			pedidos = append(pedidos, &v)
		}
	})
	ordenarPedidos(pedidos)
	return pedidos, nil
}

func (r *PedidoRepo) Delete(ctx context.Context, id string) error {
	if r.tx != nil {
		return borrarPedido(r.tx, id)
	}
	return r.store.mutar(func(d *datos) error {
		return borrarPedido(d, id)
	}, archivoPedidos)
}

func (r *PedidoRepo) ver(fn func(d *datos)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	r.store.leer(fn)
}

func crearPedido(d *datos, p *entity.Pedido) error {
	v := *p
	d.pedidos = append(d.pedidos, &v)
	return nil
}

func buscarPedido(d *datos, id string) *entity.Pedido {
	for _, p := range d.pedidos {
		if p.ID == id {
			v := *p
			return &v
		}
	}
	return nil
}

func actualizarPedido(d *datos, p *entity.Pedido) error {
	for i, existente := range d.pedidos {
		if existente.ID == p.ID {
			v := *p
			d.pedidos[i] = &v
			return nil
		}
	}
	return domain.ErrNotFound
}

func borrarPedido(d *datos, id string) error {
	for i, p := range d.pedidos {
		if p.ID == id {
			d.pedidos = append(d.pedidos[:i], d.pedidos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ordenarPedidos deja los más recientes primero, igual que el listado histórico.
func ordenarPedidos(pedidos []*entity.Pedido) {
	sort.Slice(pedidos, func(i, j int) bool {
		if pedidos[i].Fecha != pedidos[j].Fecha {
			return pedidos[i].Fecha > pedidos[j].Fecha
		}
		return pedidos[i].CreatedAt.After(pedidos[j].CreatedAt)
	})
}
