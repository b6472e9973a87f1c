package repository

import (
	"context"

	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// TalonarioRepository persiste el conjunto guardado de talonarios de un par
// (empresa, tipo de formato). Se guarda y carga como conjunto completo: los
// talonarios son una vista derivada que se reconcilia contra los formatos en
// cada carga, no entidades de primera clase del almacén autoritativo.
type TalonarioRepository interface {
	Cargar(ctx context.Context, empresa, tipo string) ([]entity.Talonario, error)
	Guardar(ctx context.Context, empresa, tipo string, talonarios []entity.Talonario) error
}

// NumeracionRepository administra la reserva de numeraciones retiradas pero
// aún no usadas de un par (camino de optimización de uno de los backends).
type NumeracionRepository interface {
	// Reservados devuelve los números reservados del par, orden ascendente.
	Reservados(ctx context.Context, empresa, tipo string) ([]int, error)
	Reservar(ctx context.Context, empresa, tipo string, numeracion int) error
	// Retirar quita un número del fondo de reserva (al consumirse).
	Retirar(ctx context.Context, empresa, tipo string, numeracion int) error
}
