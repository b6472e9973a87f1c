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

var _ repository.TipoFormatoRepository = (*TipoFormatoRepo)(nil)

// TipoFormatoRepo implementación del puerto TipoFormatoRepository sobre PostgreSQL.
type TipoFormatoRepo struct {
	q Querier
}

// NewTipoFormatoRepository construye el adaptador de persistencia para tipos de formato.
func NewTipoFormatoRepository(q Querier) *TipoFormatoRepo {
	return &TipoFormatoRepo{q: q}
}

// Create persiste un nuevo tipo de formato.
func (r *TipoFormatoRepo) Create(ctx context.Context, t *entity.TipoFormato) error {
	query := `
		INSERT INTO tipos_formato (id, nombre, descripcion, empresa_id, imagen, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.Nombre, t.Descripcion, t.EmpresaID, t.Imagen, t.Activo, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tipo formato: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de formato por ID.
func (r *TipoFormatoRepo) GetByID(ctx context.Context, id string) (*entity.TipoFormato, error) {
	query := `
		SELECT id, nombre, descripcion, empresa_id, imagen, activo, created_at, updated_at
		FROM tipos_formato WHERE id = $1`
	var t entity.TipoFormato
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Nombre, &t.Descripcion, &t.EmpresaID, &t.Imagen, &t.Activo, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo formato: %w", err)
	}
	return &t, nil
}

// Update actualiza un tipo de formato existente.
func (r *TipoFormatoRepo) Update(ctx context.Context, t *entity.TipoFormato) error {
	query := `
		UPDATE tipos_formato SET nombre = $2, descripcion = $3, imagen = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		t.ID, t.Nombre, t.Descripcion, t.Imagen, t.Activo, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tipo formato: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los tipos de formato.
func (r *TipoFormatoRepo) List(ctx context.Context) ([]*entity.TipoFormato, error) {
	query := `
		SELECT id, nombre, descripcion, empresa_id, imagen, activo, created_at, updated_at
		FROM tipos_formato ORDER BY nombre`
	return r.listar(ctx, query)
}

// ListByEmpresa devuelve los tipos activos de una empresa.
func (r *TipoFormatoRepo) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.TipoFormato, error) {
	query := `
		SELECT id, nombre, descripcion, empresa_id, imagen, activo, created_at, updated_at
		FROM tipos_formato WHERE empresa_id = $1 AND activo ORDER BY nombre`
	return r.listar(ctx, query, empresaID)
}

func (r *TipoFormatoRepo) listar(ctx context.Context, query string, args ...any) ([]*entity.TipoFormato, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tipos formato: %w", err)
	}
	defer rows.Close()

	var tipos []*entity.TipoFormato
	for rows.Next() {
		var t entity.TipoFormato
		if err := rows.Scan(
			&t.ID, &t.Nombre, &t.Descripcion, &t.EmpresaID, &t.Imagen, &t.Activo, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tipo formato: %w", err)
		}
		tipos = append(tipos, &t)
	}
	return tipos, rows.Err()
}

// Delete elimina el tipo solo si ningún pedido lo referencia por nombre.
func (r *TipoFormatoRepo) Delete(ctx context.Context, id string) error {
	var nombre, empresaID string
	err := r.q.QueryRow(ctx, `SELECT nombre, empresa_id FROM tipos_formato WHERE id = $1`, id).
		Scan(&nombre, &empresaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get tipo formato: %w", err)
	}

	// Los pedidos referencian el par por nombre, no por ID.
	var refs int
	err = r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM pedidos p
		JOIN empresas e ON e.nombre = p.empresa
		WHERE p.formato = $1 AND e.id = $2`, nombre, empresaID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("contar referencias: %w", err)
	}
	if refs > 0 {
		return domain.ErrConReferencias
	}

	if _, err := r.q.Exec(ctx, `DELETE FROM tipos_formato WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete tipo formato: %w", err)
	}
	return nil
}
