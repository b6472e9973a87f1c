package jsonfile

import (
	"context"
	"sort"
	"strings"

	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaRepository sobre archivos JSON.
type EmpresaRepo struct {
	store *Store
}

// NewEmpresaRepository construye el adaptador de persistencia para empresas.
func NewEmpresaRepository(store *Store) *EmpresaRepo {
	return &EmpresaRepo{store: store}
}

func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	return r.store.mutar(func(d *datos) error {
		for _, existente := range d.empresas {
			if strings.EqualFold(existente.Nombre, e.Nombre) {
				return domain.ErrDuplicate
			}
		}
		v := *e
		d.empresas = append(d.empresas, &v)
		return nil
	}, archivoEmpresas)
}

func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	var encontrada *entity.Empresa
	r.store.leer(func(d *datos) {
		for _, e := range d.empresas {
			if e.ID == id {
				v := *e
				encontrada = &v
				return
			}
		}
	})
	return encontrada, nil
}

func (r *EmpresaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Empresa, error) {
	var encontrada *entity.Empresa
	r.store.leer(func(d *datos) {
		for _, e := range d.empresas {
			if strings.EqualFold(e.Nombre, nombre) {
				v := *e
				encontrada = &v
				return
			}
		}
	})
	return encontrada, nil
}

func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	return r.store.mutar(func(d *datos) error {
		for i, existente := range d.empresas {
			if existente.ID == e.ID {
				v := *e
				d.empresas[i] = &v
				return nil
			}
		}
		return domain.ErrNotFound
	}, archivoEmpresas)
}

func (r *EmpresaRepo) List(ctx context.Context) ([]*entity.Empresa, error) {
	var empresas []*entity.Empresa
	r.store.leer(func(d *datos) {
		for _, e := range d.empresas {
			v := *e
			empresas = append(empresas, &v)
		}
	})
	sort.Slice(empresas, func(i, j int) bool { return empresas[i].Nombre < empresas[j].Nombre })
	return empresas, nil
}

// Delete elimina la empresa solo si no tiene tipos de formato ni pedidos asociados.
func (r *EmpresaRepo) Delete(ctx context.Context, id string) error {
	return r.store.mutar(func(d *datos) error {
		idx := -1
		for i, e := range d.empresas {
			if e.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return domain.ErrNotFound
		}
		nombre := d.empresas[idx].Nombre
		for _, t := range d.tipos {
			if t.EmpresaID == id {
				return domain.ErrConReferencias
			}
		}
		for _, p := range d.pedidos {
			if p.Empresa == nombre {
				return domain.ErrConReferencias
			}
		}
		d.empresas = append(d.empresas[:idx], d.empresas[idx+1:]...)
		return nil
	}, archivoEmpresas)
}
