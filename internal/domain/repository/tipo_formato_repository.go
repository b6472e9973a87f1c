package repository

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// TipoFormatoRepository define el puerto de persistencia para TipoFormato.
type TipoFormatoRepository interface {
	Create(ctx context.Context, tipo *entity.TipoFormato) error
	GetByID(ctx context.Context, id string) (*entity.TipoFormato, error)
	Update(ctx context.Context, tipo *entity.TipoFormato) error
	List(ctx context.Context) ([]*entity.TipoFormato, error)
	// ListByEmpresa devuelve los tipos activos de una empresa.
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.TipoFormato, error)
	// Delete elimina el tipo solo si ningún pedido lo referencia por nombre;
	// si hay referencias devuelve domain.ErrConReferencias.
	Delete(ctx context.Context, id string) error
}
