package jsonfile

import (
	"context"
	"sort"

	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ repository.FormatoRepository = (*FormatoRepo)(nil)

// FormatoRepo implementación del puerto FormatoRepository sobre archivos JSON.
// Con tx != nil opera sobre el estado clonado de una transacción en curso.
type FormatoRepo struct {
	store *Store
	tx    *datos
}

// NewFormatoRepository construye el adaptador de persistencia para formatos.
func NewFormatoRepository(store *Store) *FormatoRepo {
	return &FormatoRepo{store: store}
}

// BloquearPar no hace nada: el TxRunner de archivos retiene el mutex del
// almacén durante toda la transacción, así que los escritores ya están
// serializados entre sí (para todos los pares).
func (r *FormatoRepo) BloquearPar(ctx context.Context, empresa, tipo string) error {
	return nil
}

// CreateBatch inserta todos los formatos o ninguno. Si algún número del lote
// ya existe para el par del pedido dueño devuelve domain.ErrIntegridad.
func (r *FormatoRepo) CreateBatch(ctx context.Context, formatos []*entity.Formato) error {
	if r.tx != nil {
		return crearFormatos(r.tx, formatos)
	}
	return r.store.mutar(func(d *datos) error {
		return crearFormatos(d, formatos)
	}, archivoFormatos)
}

func (r *FormatoRepo) GetByID(ctx context.Context, id string) (*entity.Formato, error) {
	var encontrado *entity.Formato
	r.ver(func(d *datos) {
		for _, f := range d.formatos {
			if f.ID == id {
				v := *f
				encontrado = &v
				return
			}
		}
	})
	return encontrado, nil
}

func (r *FormatoRepo) Update(ctx context.Context, f *entity.Formato) error {
	if r.tx != nil {
		return actualizarFormato(r.tx, f)
	}
	return r.store.mutar(func(d *datos) error {
		return actualizarFormato(d, f)
	}, archivoFormatos)
}

func (r *FormatoRepo) List(ctx context.Context) ([]*entity.Formato, error) {
	var formatos []*entity.Formato
	r.ver(func(d *datos) {
		for _, f := range d.formatos {
			v := *f
			formatos = append(formatos, &v)
		}
	})
	ordenarFormatos(formatos)
	return formatos, nil
}

func (r *FormatoRepo) ListByPedido(ctx context.Context, pedidoID string) ([]*entity.Formato, error) {
	var formatos []*entity.Formato
	r.ver(func(d *datos) {
		for _, f := range d.formatos {
			if f.PedidoID == pedidoID {
				v := *f
				formatos = append(formatos, &v)
			}
		}
	})
	ordenarFormatos(formatos)
	return formatos, nil
}

// ListarDisponibles devuelve los formatos disponibles del par cuyos pedidos
// ya fueron recogidos, orden ascendente por numeración.
func (r *FormatoRepo) ListarDisponibles(ctx context.Context, empresa, tipo string) ([]*entity.Formato, error) {
	var formatos []*entity.Formato
	r.ver(func(d *datos) {
		recogidos := pedidosDelPar(d, empresa, tipo, true)
		for _, f := range d.formatos {
			if f.Estado == entity.FormatoDisponible && recogidos[f.PedidoID] {
				v := *f
				formatos = append(formatos, &v)
			}
		}
	})
	ordenarFormatos(formatos)
	return formatos, nil
}

// MaxNumeracion devuelve la numeración máxima existente para el par, 0 si el
// par no tiene historia.
func (r *FormatoRepo) MaxNumeracion(ctx context.Context, empresa, tipo string) (int, error) {
	max := 0
	r.ver(func(d *datos) {
		delPar := pedidosDelPar(d, empresa, tipo, false)
		for _, f := range d.formatos {
			if delPar[f.PedidoID] && f.Numeracion > max {
				max = f.Numeracion
			}
		}
	})
	return max, nil
}

// PrimeroEnRango devuelve algún formato del par con numeración en [desde, hasta].
func (r *FormatoRepo) PrimeroEnRango(ctx context.Context, empresa, tipo string, desde, hasta int) (*entity.Formato, error) {
	var encontrado *entity.Formato
	r.ver(func(d *datos) {
		delPar := pedidosDelPar(d, empresa, tipo, false)
		for _, f := range d.formatos {
			if !delPar[f.PedidoID] || f.Numeracion < desde || f.Numeracion > hasta {
				continue
			}
			if encontrado == nil || f.Numeracion < encontrado.Numeracion {
				v := *f
				encontrado = &v
			}
		}
	})
	return encontrado, nil
}

func (r *FormatoRepo) DeleteByPedidoID(ctx context.Context, pedidoID string) error {
	if r.tx != nil {
		borrarFormatosDePedido(r.tx, pedidoID)
		return nil
	}
	return r.store.mutar(func(d *datos) error {
		borrarFormatosDePedido(d, pedidoID)
		return nil
	}, archivoFormatos)
}

func (r *FormatoRepo) ver(fn func(d *datos)) {
	if r.tx != nil {
		fn(r.tx)
		return
	}
	r.store.leer(fn)
}

// pedidosDelPar indexa los IDs de pedido del par (empresa, tipo). Con
// soloRecogidos, limita a pedidos ya recogidos.
func pedidosDelPar(d *datos, empresa, tipo string, soloRecogidos bool) map[string]bool {
	ids := make(map[string]bool)
	for _, p := range d.pedidos {
		if p.Empresa != empresa || p.Formato != tipo {
			continue
		}
		if soloRecogidos && p.Estado != entity.PedidoRecogido {
			continue
		}
		ids[p.ID] = true
	}
	return ids
}

func crearFormatos(d *datos, formatos []*entity.Formato) error {
	if len(formatos) == 0 {
		return nil
	}
	delPar := parDelPedido(d, formatos[0].PedidoID)
	ocupados := make(map[int]bool)
	for _, f := range d.formatos {
		if delPar[f.PedidoID] {
			ocupados[f.Numeracion] = true
		}
	}
	for _, f := range formatos {
		if ocupados[f.Numeracion] {
			return domain.ErrIntegridad
		}
	}
	for _, f := range formatos {
		v := *f
		d.formatos = append(d.formatos, &v)
	}
	return nil
}

// parDelPedido indexa los pedidos que comparten par (empresa, tipo) con el
// pedido dado, incluido él mismo.
func parDelPedido(d *datos, pedidoID string) map[string]bool {
	for _, p := range d.pedidos {
		if p.ID == pedidoID {
			return pedidosDelPar(d, p.Empresa, p.Formato, false)
		}
	}
	// Pedido aún no insertado en esta transacción: sin par conocido, el lote
	// no choca con nada.
	return map[string]bool{pedidoID: true}
}

func actualizarFormato(d *datos, f *entity.Formato) error {
	for i, existente := range d.formatos {
		if existente.ID == f.ID {
			v := *f
			d.formatos[i] = &v
			return nil
		}
	}
	return domain.ErrNotFound
}

func borrarFormatosDePedido(d *datos, pedidoID string) {
	restantes := d.formatos[:0]
	for _, f := range d.formatos {
		if f.PedidoID != pedidoID {
			restantes = append(restantes, f)
		}
	}
	d.formatos = restantes
}

func ordenarFormatos(formatos []*entity.Formato) {
	sort.Slice(formatos, func(i, j int) bool { return formatos[i].Numeracion < formatos[j].Numeracion })
}
