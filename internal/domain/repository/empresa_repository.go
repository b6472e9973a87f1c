package repository

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure.
type EmpresaRepository interface {
	Create(ctx context.Context, empresa *entity.Empresa) error
	GetByID(ctx context.Context, id string) (*entity.Empresa, error)
	GetByNombre(ctx context.Context, nombre string) (*entity.Empresa, error)
	Update(ctx context.Context, empresa *entity.Empresa) error
	List(ctx context.Context) ([]*entity.Empresa, error)
	// Delete elimina la empresa solo si no tiene tipos de formato ni pedidos
	// asociados; en ese caso devuelve domain.ErrConReferencias.
	Delete(ctx context.Context, id string) error
}
