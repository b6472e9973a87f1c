package jsonfile

import (
	"context"
	"sort"
	"strings"

	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ repository.TipoFormatoRepository = (*TipoFormatoRepo)(nil)

// TipoFormatoRepo implementación del puerto TipoFormatoRepository sobre archivos JSON.
type TipoFormatoRepo struct {
	store *Store
}

// NewTipoFormatoRepository construye el adaptador de persistencia para tipos de formato.
func NewTipoFormatoRepository(store *Store) *TipoFormatoRepo {
	return &TipoFormatoRepo{store: store}
}

func (r *TipoFormatoRepo) Create(ctx context.Context, t *entity.TipoFormato) error {
	return r.store.mutar(func(d *datos) error {
		for _, existente := range d.tipos {
			if existente.EmpresaID == t.EmpresaID && strings.EqualFold(existente.Nombre, t.Nombre) {
				return domain.ErrDuplicate
			}
		}
		v := *t
		d.tipos = append(d.tipos, &v)
		return nil
	}, archivoTipos)
}

func (r *TipoFormatoRepo) GetByID(ctx context.Context, id string) (*entity.TipoFormato, error) {
	var encontrado *entity.TipoFormato
	r.store.leer(func(d *datos) {
		for _, t := range d.tipos {
			if t.ID == id {
				v := *t
				encontrado = &v
				return
			}
		}
	})
	return encontrado, nil
}

func (r *TipoFormatoRepo) Update(ctx context.Context, t *entity.TipoFormato) error {
	return r.store.mutar(func(d *datos) error {
		for i, existente := range d.tipos {
			if existente.ID == t.ID {
				v := *t
				d.tipos[i] = &v
				return nil
			}
		}
		return domain.ErrNotFound
	}, archivoTipos)
}

func (r *TipoFormatoRepo) List(ctx context.Context) ([]*entity.TipoFormato, error) {
	var tipos []*entity.TipoFormato
	r.store.leer(func(d *datos) {
		for _, t := range d.tipos {
			v := *t
			tipos = append(tipos, &v)
		}
	})
	sort.Slice(tipos, func(i, j int) bool { return tipos[i].Nombre < tipos[j].Nombre })
	return tipos, nil
}

// ListByEmpresa devuelve los tipos activos de una empresa.
func (r *TipoFormatoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.TipoFormato, error) {
	var tipos []*entity.TipoFormato
	r.store.leer(func(d *datos) {
		for _, t := range d.tipos {
			if t.EmpresaID == empresaID && t.Activo {
				v := *t
				tipos = append(tipos, &v)
			}
		}
	})
	sort.Slice(tipos, func(i, j int) bool { return tipos[i].Nombre < tipos[j].Nombre })
	return tipos, nil
}

// Delete elimina el tipo solo si ningún pedido lo referencia por nombre.
func (r *TipoFormatoRepo) Delete(ctx context.Context, id string) error {
	return r.store.mutar(func(d *datos) error {
		idx := -1
		for i, t := range d.tipos {
			if t.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		tipo := d.tipos[idx]

		// Los pedidos referencian el par por nombre, no por ID.
		var empresaNombre string
		for _, e := range d.empresas {
			if e.ID == tipo.EmpresaID {
				empresaNombre = e.Nombre
				break
			}
		}
		for _, p := range d.pedidos {
			if p.Formato == tipo.Nombre && p.Empresa == empresaNombre {
				return domain.ErrConReferencias
			}
		}
		d.tipos = append(d.tipos[:idx], d.tipos[idx+1:]...)
		return nil
	}, archivoTipos)
}
