// Package numeracion calcula la siguiente numeración secuencial de un par
// (empresa, tipo de formato). La numeración nunca se comparte entre pares.
package numeracion

import (
	"context"
	"fmt"

	"github.com/sgv-soluciones/control-formatos/internal/domain/repository"
)

// Allocator asigna numeraciones consultando los formatos ya emitidos y el
// fondo de números reservados del par.
type Allocator struct {
	formatoRepo repository.FormatoRepository
	reservaRepo repository.NumeracionRepository
}

// NewAllocator construye el asignador con sus puertos de lectura.
func NewAllocator(formatoRepo repository.FormatoRepository, reservaRepo repository.NumeracionRepository) *Allocator {
	return &Allocator{formatoRepo: formatoRepo, reservaRepo: reservaRepo}
}

// NextNumeracion devuelve el siguiente entero no usado del par: el máximo
// existente más uno, o el menor número reservado que no sea menor que ese
// candidato (retirándolo del fondo). Un par sin historia empieza en 1.
//
// Un fallo del almacén se propaga como error: devolver 1 en silencio
// produciría numeración duplicada.
func (a *Allocator) NextNumeracion(ctx context.Context, tipo, empresa string) (int, error) {
	return a.NextNumeracionEn(ctx, a.formatoRepo, a.reservaRepo, tipo, empresa)
}

// NextNumeracionEn es NextNumeracion sobre los repositorios dados en lugar de
// los del constructor. Dentro de una transacción se invoca con los repos
// atados a ella, de modo que leer el máximo del par y materializar el lote
// sean una sola unidad atómica.
func (a *Allocator) NextNumeracionEn(ctx context.Context, formatoRepo repository.FormatoRepository, reservaRepo repository.NumeracionRepository, tipo, empresa string) (int, error) {
	max, err := formatoRepo.MaxNumeracion(ctx, empresa, tipo)
	if err != nil {
		return 0, fmt.Errorf("numeración máxima de %s/%s: %w", empresa, tipo, err)
	}
	siguiente := max + 1

	reservados, err := reservaRepo.Reservados(ctx, empresa, tipo)
	if err != nil {
		return 0, fmt.Errorf("numeraciones reservadas de %s/%s: %w", empresa, tipo, err)
	}
	// Preferir el menor reservado >= siguiente; los menores que el máximo ya
	// emitido quedaron obsoletos y se ignoran.
	mejor := 0
	for _, n := range reservados {
		if n >= siguiente && (mejor == 0 || n < mejor) {
			mejor = n
		}
	}
	if mejor == 0 {
		return siguiente, nil
	}
	if err := reservaRepo.Retirar(ctx, empresa, tipo, mejor); err != nil {
		return 0, fmt.Errorf("retirar numeración reservada %d: %w", mejor, err)
	}
	return mejor, nil
}
