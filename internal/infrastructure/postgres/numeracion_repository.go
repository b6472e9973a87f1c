package postgres

import (
	"context"
	"fmt"

	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

var _ repository.NumeracionRepository = (*NumeracionRepo)(nil)

// NumeracionRepo administra el fondo de numeraciones reservadas de un par.
type NumeracionRepo struct {
	q Querier
}

// NewNumeracionRepository construye el adaptador del fondo de reservas.
func NewNumeracionRepository(q Querier) *NumeracionRepo {
	return &NumeracionRepo{q: q}
}

// Reservados devuelve los números reservados del par, orden ascendente.
func (r *NumeracionRepo) Reservados(ctx context.Context, empresa, tipo string) ([]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT numeracion FROM numeraciones_reservadas
		WHERE empresa = $1 AND formato_tipo = $2
		ORDER BY numeracion`, empresa, tipo)
	if err != nil {
		return nil, fmt.Errorf("listar reservados: %w", err)
	}
	defer rows.Close()

	var numeros []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan reservado: %w", err)
		}
		numeros = append(numeros, n)
	}
	return numeros, rows.Err()
}

// Reservar agrega un número al fondo del par. Reservar dos veces el mismo
// número no es error.
func (r *NumeracionRepo) Reservar(ctx context.Context, empresa, tipo string, numeracion int) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO numeraciones_reservadas (empresa, formato_tipo, numeracion)
		VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, empresa, tipo, numeracion)
	if err != nil {
		return fmt.Errorf("reservar numeracion: %w", err)
	}
	return nil
}

// Retirar quita un número del fondo de reserva.
func (r *NumeracionRepo) Retirar(ctx context.Context, empresa, tipo string, numeracion int) error {
	_, err := r.q.Exec(ctx, `
		DELETE FROM numeraciones_reservadas
		WHERE empresa = $1 AND formato_tipo = $2 AND numeracion = $3`, empresa, tipo, numeracion)
	if err != nil {
		return fmt.Errorf("retirar numeracion: %w", err)
	}
	return nil
}
