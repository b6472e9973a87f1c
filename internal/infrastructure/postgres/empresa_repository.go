package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación del puerto EmpresaRepository sobre PostgreSQL (usable con pool o tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador de persistencia para empresas. Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *EmpresaRepo) Create(ctx context.Context, e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (id, nombre, ruc, direccion, telefono, email, contacto, activa, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.Nombre, e.RUC, e.Direccion, e.Telefono, e.Email, e.Contacto,
		e.Activa, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *EmpresaRepo) GetByID(ctx context.Context, id string) (*entity.Empresa, error) {
	query := `
		SELECT id, nombre, ruc, direccion, telefono, email, contacto, activa, created_at, updated_at
		FROM empresas WHERE id = $1`
	var e entity.Empresa
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Nombre, &e.RUC, &e.Direccion, &e.Telefono, &e.Email, &e.Contacto,
		&e.Activa, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// GetByNombre obtiene una empresa por nombre exacto.
func (r *EmpresaRepo) GetByNombre(ctx context.Context, nombre string) (*entity.Empresa, error) {
	query := `
		SELECT id, nombre, ruc, direccion, telefono, email, contacto, activa, created_at, updated_at
		FROM empresas WHERE nombre = $1`
	var e entity.Empresa
	err := r.q.QueryRow(ctx, query, nombre).Scan(
		&e.ID, &e.Nombre, &e.RUC, &e.Direccion, &e.Telefono, &e.Email, &e.Contacto,
		&e.Activa, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa by nombre: %w", err)
	}
	return &e, nil
}

// Update actualiza una empresa existente.
func (r *EmpresaRepo) Update(ctx context.Context, e *entity.Empresa) error {
	query := `
		UPDATE empresas SET nombre = $2, ruc = $3, direccion = $4, telefono = $5, email = $6, contacto = $7, activa = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, e.Nombre, e.RUC, e.Direccion, e.Telefono, e.Email, e.Contacto,
		e.Activa, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todas las empresas, orden alfabético.
func (r *EmpresaRepo) List(ctx context.Context) ([]*entity.Empresa, error) {
	query := `
		SELECT id, nombre, ruc, direccion, telefono, email, contacto, activa, created_at, updated_at
		FROM empresas ORDER BY nombre`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var empresas []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(
			&e.ID, &e.Nombre, &e.RUC, &e.Direccion, &e.Telefono, &e.Email, &e.Contacto,
			&e.Activa, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		empresas = append(empresas, &e)
	}
	return empresas, rows.Err()
}

// Delete elimina la empresa solo si no tiene tipos de formato ni pedidos asociados.
func (r *EmpresaRepo) Delete(ctx context.Context, id string) error {
	var nombre string
	err := r.q.QueryRow(ctx, `SELECT nombre FROM empresas WHERE id = $1`, id).Scan(&nombre)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get empresa: %w", err)
	}

	var refs int
	err = r.q.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM tipos_formato WHERE empresa_id = $1)
		     + (SELECT COUNT(*) FROM pedidos WHERE empresa = $2)`, id, nombre).Scan(&refs)
	if err != nil {
		return fmt.Errorf("contar referencias: %w", err)
	}
	if refs > 0 {
		return domain.ErrConReferencias
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM empresas WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConReferencias
		}
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}
