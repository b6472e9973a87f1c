package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sgv-soluciones/control-formatos/internal/application/dto"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// EmpresaUseCase aplica reglas de negocio para empresas (casos de uso).
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase construye el caso de uso con el puerto de persistencia.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// Create registra una empresa. Devuelve domain.ErrDuplicate si el nombre ya
// existe: el nombre es la clave de agrupación de pedidos y talonarios.
func (uc *EmpresaUseCase) Create(ctx context.Context, in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByNombre(ctx, in.Nombre)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	empresa := &entity.Empresa{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		RUC:       in.RUC,
		Direccion: in.Direccion,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Contacto:  in.Contacto,
		Activa:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, empresa); err != nil {
		return nil, err
	}
	return empresaToResponse(empresa), nil
}

// GetByID obtiene una empresa; (nil, nil) si no existe.
func (uc *EmpresaUseCase) GetByID(ctx context.Context, id string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, nil
	}
	return empresaToResponse(empresa), nil
}

// List devuelve todas las empresas.
func (uc *EmpresaUseCase) List(ctx context.Context) ([]dto.EmpresaResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *empresaToResponse(e))
	}
	return items, nil
}

// Update aplica los campos presentes.
func (uc *EmpresaUseCase) Update(ctx context.Context, id string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, nil
	}
	if in.Nombre != nil && *in.Nombre != empresa.Nombre {
		otra, err := uc.repo.GetByNombre(ctx, *in.Nombre)
		if err != nil {
			return nil, err
		}
		if otra != nil {
			return nil, domain.ErrDuplicate
		}
		empresa.Nombre = *in.Nombre
	}
	if in.RUC != nil {
		empresa.RUC = *in.RUC
	}
	if in.Direccion != nil {
		empresa.Direccion = *in.Direccion
	}
	if in.Telefono != nil {
		empresa.Telefono = *in.Telefono
	}
	if in.Email != nil {
		empresa.Email = *in.Email
	}
	if in.Contacto != nil {
		empresa.Contacto = *in.Contacto
	}
	if in.Activa != nil {
		empresa.Activa = *in.Activa
	}
	empresa.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, empresa); err != nil {
		return nil, err
	}
	return empresaToResponse(empresa), nil
}

// Delete elimina la empresa; si tiene registros relacionados la desactiva en
// su lugar y devuelve domain.ErrConReferencias.
func (uc *EmpresaUseCase) Delete(ctx context.Context, id string) error {
	err := uc.repo.Delete(ctx, id)
	if errors.Is(err, domain.ErrConReferencias) {
		empresa, gerr := uc.repo.GetByID(ctx, id)
		if gerr == nil && empresa != nil {
			empresa.Activa = false
			empresa.UpdatedAt = time.Now()
			_ = uc.repo.Update(ctx, empresa)
		}
	}
	return err
}

func empresaToResponse(e *entity.Empresa) *dto.EmpresaResponse {
	if e == nil {
		return nil
	}
	return &dto.EmpresaResponse{
		ID:        e.ID,
		Nombre:    e.Nombre,
		RUC:       e.RUC,
		Direccion: e.Direccion,
		Telefono:  e.Telefono,
		Email:     e.Email,
		Contacto:  e.Contacto,
		Activa:    e.Activa,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
