package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// TipoFormatoUseCase aplica reglas de negocio para tipos de formato.
type TipoFormatoUseCase struct {
	repo        repository.TipoFormatoRepository
	empresaRepo repository.EmpresaRepository
}

// NewTipoFormatoUseCase construye el caso de uso.
func NewTipoFormatoUseCase(repo repository.TipoFormatoRepository, empresaRepo repository.EmpresaRepository) *TipoFormatoUseCase {
	return &TipoFormatoUseCase{repo: repo, empresaRepo: empresaRepo}
}

// Create configura un tipo de formato para una empresa existente.
func (uc *TipoFormatoUseCase) Create(ctx context.Context, in dto.CreateTipoFormatoRequest) (*dto.TipoFormatoResponse, error) {
	if in.Nombre == "" || in.EmpresaID == "" {
		return nil, domain.ErrInvalidInput
	}
	empresa, err := uc.empresaRepo.GetByID(ctx, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	// El nombre debe ser único dentro de la empresa: es la mitad de la clave
	// de asignación (empresa, tipo).
	existentes, err := uc.repo.ListByEmpresa(ctx, in.EmpresaID)
	if err != nil {
		return nil, err
	}
	for _, t := range existentes {
		if t.Nombre == in.Nombre {
			return nil, domain.ErrDuplicate
		}
	}
	now := time.Now()
	tipo := &entity.TipoFormato{
		ID:          uuid.New().String(),
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		EmpresaID:   in.EmpresaID,
		Imagen:      in.Imagen,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, tipo); err != nil {
		return nil, err
	}
	return tipoToResponse(tipo), nil
}

// GetByID obtiene un tipo de formato; (nil, nil) si no existe.
func (uc *TipoFormatoUseCase) GetByID(ctx context.Context, id string) (*dto.TipoFormatoResponse, error) {
	tipo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tipo == nil {
		return nil, nil
	}
	return tipoToResponse(tipo), nil
}

// List devuelve todos los tipos de formato.
func (uc *TipoFormatoUseCase) List(ctx context.Context) ([]dto.TipoFormatoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return tiposToResponses(list), nil
}

// ListByEmpresa devuelve los tipos activos de una empresa.
func (uc *TipoFormatoUseCase) ListByEmpresa(ctx context.Context, empresaID string) ([]dto.TipoFormatoResponse, error) {
	list, err := uc.repo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	return tiposToResponses(list), nil
}

// Update aplica los campos presentes.
func (uc *TipoFormatoUseCase) Update(ctx context.Context, id string, in dto.UpdateTipoFormatoRequest) (*dto.TipoFormatoResponse, error) {
	tipo, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tipo == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		tipo.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		tipo.Descripcion = *in.Descripcion
	}
	if in.Imagen != nil {
		tipo.Imagen = *in.Imagen
	}
	if in.Activo != nil {
		tipo.Activo = *in.Activo
	}
	tipo.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, tipo); err != nil {
		return nil, err
	}
	return tipoToResponse(tipo), nil
}

// Delete elimina el tipo; domain.ErrConReferencias si algún pedido lo usa.
func (uc *TipoFormatoUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func tipoToResponse(t *entity.TipoFormato) *dto.TipoFormatoResponse {
	if t == nil {
		return nil
	}
	return &dto.TipoFormatoResponse{
		ID:          t.ID,
		Nombre:      t.Nombre,
		Descripcion: t.Descripcion,
		EmpresaID:   t.EmpresaID,
		Imagen:      t.Imagen,
		Activo:      t.Activo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tiposToResponses(list []*entity.TipoFormato) []dto.TipoFormatoResponse {
	out := make([]dto.TipoFormatoResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *tipoToResponse(t))
	}
	return out
}
