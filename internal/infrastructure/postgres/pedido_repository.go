package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
	"github.com/sgv-soluciones/control-formatos/pkg/texto"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

const pedidoColumnas = `id, fecha, formato, empresa, cantidad, numeracion_inicial, estado,
		fecha_recojo, pagado, fecha_pago, monto, created_at, updated_at`

// PedidoRepo implementación del puerto PedidoRepository sobre PostgreSQL (usable con pool o tx).
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// Create persiste un nuevo pedido.
func (r *PedidoRepo) Create(ctx context.Context, p *entity.Pedido) error {
	query := `
		INSERT INTO pedidos (` + pedidoColumnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Fecha, p.Formato, p.Empresa, p.Cantidad, p.NumeracionInicial, p.Estado,
		p.FechaRecojo, p.Pagado, p.FechaPago, p.Monto, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pedido: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *PedidoRepo) GetByID(ctx context.Context, id string) (*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumnas + ` FROM pedidos WHERE id = $1`
	var p entity.Pedido
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Fecha, &p.Formato, &p.Empresa, &p.Cantidad, &p.NumeracionInicial, &p.Estado,
		&p.FechaRecojo, &p.Pagado, &p.FechaPago, &p.Monto, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &p, nil
}

// Update actualiza un pedido existente.
func (r *PedidoRepo) Update(ctx context.Context, p *entity.Pedido) error {
	query := `
		UPDATE pedidos SET fecha = $2, formato = $3, empresa = $4, cantidad = $5,
			numeracion_inicial = $6, estado = $7, fecha_recojo = $8, pagado = $9,
			fecha_pago = $10, monto = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Fecha, p.Formato, p.Empresa, p.Cantidad, p.NumeracionInicial, p.Estado,
		p.FechaRecojo, p.Pagado, p.FechaPago, p.Monto, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos los pedidos, más recientes primero.
func (r *PedidoRepo) List(ctx context.Context) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumnas + ` FROM pedidos ORDER BY fecha DESC, created_at DESC`
	return r.listar(ctx, query)
}

// Buscar busca por empresa, formato o estado, ignorando mayúsculas y tildes.
// La normalización de tildes se hace en Go para mantener el mismo resultado
// que el driver de archivo sin depender de la extensión unaccent.
func (r *PedidoRepo) Buscar(ctx context.Context, query string) ([]*entity.Pedido, error) {
	todos, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var resultado []*entity.Pedido
	for _, p := range todos {
		if texto.Contiene(p.Empresa, query) || texto.Contiene(p.Formato, query) || texto.Contiene(p.Estado, query) {
			resultado = append(resultado, p)
		}
	}
	return resultado, nil
}

// Filtrar lista pedidos según filtros de igualdad/rango. Campos vacíos no filtran.
func (r *PedidoRepo) Filtrar(ctx context.Context, filtro repository.FiltroPedidos) ([]*entity.Pedido, error) {
	query := `SELECT ` + pedidoColumnas + ` FROM pedidos WHERE 1=1`
	var args []any
	n := 0
	next := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if filtro.Empresa != "" {
		query += ` AND empresa = ` + next(filtro.Empresa)
	}
	if filtro.Estado != "" {
		query += ` AND estado = ` + next(filtro.Estado)
	}
	if filtro.FechaDesde != "" {
		query += ` AND fecha >= ` + next(filtro.FechaDesde)
	}
	if filtro.FechaHasta != "" {
		query += ` AND fecha <= ` + next(filtro.FechaHasta)
	}
	query += ` ORDER BY fecha DESC, created_at DESC`
	return r.listar(ctx, query, args...)
}

func (r *PedidoRepo) listar(ctx context.Context, query string, args ...any) ([]*entity.Pedido, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	defer rows.Close()

	var pedidos []*entity.Pedido
	for rows.Next() {
		var p entity.Pedido
		if err := rows.Scan(
			&p.ID, &p.Fecha, &p.Formato, &p.Empresa, &p.Cantidad, &p.NumeracionInicial, &p.Estado,
			&p.FechaRecojo, &p.Pagado, &p.FechaPago, &p.Monto, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		pedidos = append(pedidos, &p)
	}
	return pedidos, rows.Err()
}

// Delete elimina un pedido. Los formatos del pedido caen por ON DELETE CASCADE,
// pero el caso de uso los borra explícitamente para mantener paridad con el
// driver de archivo.
func (r *PedidoRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pedidos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pedido: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
