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

var _ repository.FormatoRepository = (*FormatoRepo)(nil)

const formatoColumnas = `id, numeracion, pedido_id, estado, ubicacion_actual, ubicacion_destino,
		destinatario, observaciones, fecha_ingreso, fecha_salida, created_at, updated_at`

// FormatoRepo implementación del puerto FormatoRepository sobre PostgreSQL (usable con pool o tx).
type FormatoRepo struct {
	q Querier
}

// NewFormatoRepository construye el adaptador de persistencia para formatos. Pasar pool o tx (Querier).
func NewFormatoRepository(q Querier) *FormatoRepo {
	return &FormatoRepo{q: q}
}

// BloquearPar toma un advisory lock de transacción sobre el par: el segundo
// escritor del mismo par espera a que el primero haga commit o rollback, y
// recién entonces lee el máximo. Invocado fuera de una transacción el lock se
// libera de inmediato y no serializa nada.
func (r *FormatoRepo) BloquearPar(ctx context.Context, empresa, tipo string) error {
	if _, err := r.q.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`,
		empresa+"/"+tipo,
	); err != nil {
		return fmt.Errorf("bloquear par %s/%s: %w", empresa, tipo, err)
	}
	return nil
}

// CreateBatch inserta todos los formatos o ninguno. Verifica primero que
// ningún número del lote exista ya para el par del pedido dueño; la llamada
// debe ir dentro de una transacción para que la verificación y las
// inserciones sean atómicas.
func (r *FormatoRepo) CreateBatch(ctx context.Context, formatos []*entity.Formato) error {
	if len(formatos) == 0 {
		return nil
	}

	pedidoID := formatos[0].PedidoID
	minNum, maxNum := formatos[0].Numeracion, formatos[0].Numeracion
	for _, f := range formatos {
		if f.Numeracion < minNum {
			minNum = f.Numeracion
		}
		if f.Numeracion > maxNum {
			maxNum = f.Numeracion
		}
	}

	var ocupados int
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM formatos f
		JOIN pedidos p ON p.id = f.pedido_id
		JOIN pedidos dueno ON dueno.id = $1
		WHERE p.empresa = dueno.empresa AND p.formato = dueno.formato
		  AND f.numeracion BETWEEN $2 AND $3`,
		pedidoID, minNum, maxNum).Scan(&ocupados)
	if err != nil {
		return fmt.Errorf("verificar rango: %w", err)
	}
	if ocupados > 0 {
		return domain.ErrIntegridad
	}

	for _, f := range formatos {
		_, err := r.q.Exec(ctx, `
			INSERT INTO formatos (`+formatoColumnas+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			f.ID, f.Numeracion, f.PedidoID, f.Estado, f.UbicacionActual, f.UbicacionDestino,
			f.Destinatario, f.Observaciones, f.FechaIngreso, f.FechaSalida, f.CreatedAt, f.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrIntegridad
			}
			return fmt.Errorf("insert formato: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un formato por ID.
func (r *FormatoRepo) GetByID(ctx context.Context, id string) (*entity.Formato, error) {
	query := `SELECT ` + formatoColumnas + ` FROM formatos WHERE id = $1`
	var f entity.Formato
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Numeracion, &f.PedidoID, &f.Estado, &f.UbicacionActual, &f.UbicacionDestino,
		&f.Destinatario, &f.Observaciones, &f.FechaIngreso, &f.FechaSalida, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formato: %w", err)
	}
	return &f, nil
}

// Update actualiza un formato existente.
func (r *FormatoRepo) Update(ctx context.Context, f *entity.Formato) error {
	query := `
		UPDATE formatos SET estado = $2, ubicacion_actual = $3, ubicacion_destino = $4,
			destinatario = $5, observaciones = $6, fecha_salida = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		f.ID, f.Estado, f.UbicacionActual, f.UbicacionDestino,
		f.Destinatario, f.Observaciones, f.FechaSalida, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update formato: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los formatos por numeración ascendente.
func (r *FormatoRepo) List(ctx context.Context) ([]*entity.Formato, error) {
	query := `SELECT ` + formatoColumnas + ` FROM formatos ORDER BY numeracion`
	return r.listar(ctx, query)
}

// ListByPedido lista los formatos de un pedido por numeración ascendente.
func (r *FormatoRepo) ListByPedido(ctx context.Context, pedidoID string) ([]*entity.Formato, error) {
	query := `SELECT ` + formatoColumnas + ` FROM formatos WHERE pedido_id = $1 ORDER BY numeracion`
	return r.listar(ctx, query, pedidoID)
}

// ListarDisponibles devuelve los formatos disponibles del par cuyos pedidos
// ya fueron recogidos, orden ascendente por numeración.
func (r *FormatoRepo) ListarDisponibles(ctx context.Context, empresa, tipo string) ([]*entity.Formato, error) {
	query := `
		SELECT ` + formatoColumnasConAlias + `
		FROM formatos f
		JOIN pedidos p ON p.id = f.pedido_id
		WHERE p.empresa = $1 AND p.formato = $2 AND p.estado = $3 AND f.estado = $4
		ORDER BY f.numeracion`
	return r.listar(ctx, query, empresa, tipo, entity.PedidoRecogido, entity.FormatoDisponible)
}

// MaxNumeracion devuelve la numeración máxima existente para el par, 0 si el
// par no tiene historia.
func (r *FormatoRepo) MaxNumeracion(ctx context.Context, empresa, tipo string) (int, error) {
	var max int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(f.numeracion), 0)
		FROM formatos f
		JOIN pedidos p ON p.id = f.pedido_id
		WHERE p.empresa = $1 AND p.formato = $2`,
		empresa, tipo).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max numeracion: %w", err)
	}
	return max, nil
}

// PrimeroEnRango devuelve algún formato disponible del par con numeración en
// [desde, hasta], o nil si no hay.
func (r *FormatoRepo) PrimeroEnRango(ctx context.Context, empresa, tipo string, desde, hasta int) (*entity.Formato, error) {
	query := `
		SELECT ` + formatoColumnasConAlias + `
		FROM formatos f
		JOIN pedidos p ON p.id = f.pedido_id
		WHERE p.empresa = $1 AND p.formato = $2 AND f.numeracion BETWEEN $3 AND $4
		ORDER BY f.numeracion LIMIT 1`
	var f entity.Formato
	err := r.q.QueryRow(ctx, query, empresa, tipo, desde, hasta).Scan(
		&f.ID, &f.Numeracion, &f.PedidoID, &f.Estado, &f.UbicacionActual, &f.UbicacionDestino,
		&f.Destinatario, &f.Observaciones, &f.FechaIngreso, &f.FechaSalida, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("formato en rango: %w", err)
	}
	return &f, nil
}

// DeleteByPedidoID elimina todos los formatos de un pedido.
func (r *FormatoRepo) DeleteByPedidoID(ctx context.Context, pedidoID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM formatos WHERE pedido_id = $1`, pedidoID); err != nil {
		return fmt.Errorf("delete formatos de pedido: %w", err)
	}
	return nil
}

const formatoColumnasConAlias = `f.id, f.numeracion, f.pedido_id, f.estado, f.ubicacion_actual, f.ubicacion_destino,
		f.destinatario, f.observaciones, f.fecha_ingreso, f.fecha_salida, f.created_at, f.updated_at`

func (r *FormatoRepo) listar(ctx context.Context, query string, args ...any) ([]*entity.Formato, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list formatos: %w", err)
	}
	defer rows.Close()

	var formatos []*entity.Formato
	for rows.Next() {
		var f entity.Formato
		if err := rows.Scan(
			&f.ID, &f.Numeracion, &f.PedidoID, &f.Estado, &f.UbicacionActual, &f.UbicacionDestino,
			&f.Destinatario, &f.Observaciones, &f.FechaIngreso, &f.FechaSalida, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan formato: %w", err)
		}
		formatos = append(formatos, &f)
	}
	return formatos, rows.Err()
}
