package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ repository.TalonarioRepository = (*TalonarioRepo)(nil)

const talonarioColumnas = `id, formato_tipo, empresa, numeracion_desde, numeracion_hasta, cantidad,
		fecha_ingreso, ubicacion_almacen, fecha_salida, ubicacion_destino, observaciones, estado,
		created_at, updated_at`

// TalonarioRepo persiste el conjunto de talonarios de un par sobre PostgreSQL.
// Guardar reemplaza el conjunto completo del par en una transacción, por eso
// recibe el pool y no un Querier.
type TalonarioRepo struct {
	pool *pgxpool.Pool
}

// NewTalonarioRepository construye el adaptador de persistencia para talonarios.
func NewTalonarioRepository(pool *pgxpool.Pool) *TalonarioRepo {
	return &TalonarioRepo{pool: pool}
}

// Cargar devuelve el conjunto guardado del par, orden ascendente por rango.
func (r *TalonarioRepo) Cargar(ctx context.Context, empresa, tipo string) ([]entity.Talonario, error) {
	query := `
		SELECT ` + talonarioColumnas + `
		FROM talonarios WHERE empresa = $1 AND formato_tipo = $2
		ORDER BY numeracion_desde`
	rows, err := r.pool.Query(ctx, query, empresa, tipo)
	if err != nil {
		return nil, fmt.Errorf("cargar talonarios: %w", err)
	}
	defer rows.Close()

	var talonarios []entity.Talonario
	for rows.Next() {
		var t entity.Talonario
		if err := rows.Scan(
			&t.ID, &t.FormatoTipo, &t.Empresa, &t.NumeracionDesde, &t.NumeracionHasta, &t.Cantidad,
			&t.FechaIngreso, &t.UbicacionAlmacen, &t.FechaSalida, &t.UbicacionDestino, &t.Observaciones,
			&t.Estado, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan talonario: %w", err)
		}
		talonarios = append(talonarios, t)
	}
	return talonarios, rows.Err()
}

// Guardar reemplaza el conjunto completo del par (delete + insert en una tx).
func (r *TalonarioRepo) Guardar(ctx context.Context, empresa, tipo string, talonarios []entity.Talonario) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM talonarios WHERE empresa = $1 AND formato_tipo = $2`, empresa, tipo); err != nil {
		return fmt.Errorf("limpiar talonarios: %w", err)
	}
	for i := range talonarios {
		t := &talonarios[i]
		_, err := tx.Exec(ctx, `
			INSERT INTO talonarios (`+talonarioColumnas+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			t.ID, t.FormatoTipo, t.Empresa, t.NumeracionDesde, t.NumeracionHasta, t.Cantidad,
			t.FechaIngreso, t.UbicacionAlmacen, t.FechaSalida, t.UbicacionDestino, t.Observaciones,
			t.Estado, t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert talonario: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
