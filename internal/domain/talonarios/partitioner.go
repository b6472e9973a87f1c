// Package talonarios contiene el particionado puro de rangos de numeración en
// talonarios de tamaño fijo. No toca almacenamiento: recibe los talonarios
// guardados y los límites del rango de formatos disponibles, y devuelve la
// nueva partición. Los talonarios enviados nunca se recalculan.
package talonarios

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sgv-soluciones/control-formatos/internal/domain"
	"github.com/sgv-soluciones/control-formatos/internal/domain/entity"
)

// TamanioDefecto es el tamaño habitual de un talonario (50 o 100 hojas).
const TamanioDefecto = 100

// FechaIngresoResolver devuelve la fecha de ingreso (YYYY-MM-DD) para un
// subrango de numeración, típicamente la fecha de recojo del pedido dueño de
// algún formato disponible dentro del subrango, o la fecha de hoy.
type FechaIngresoResolver func(desde, hasta int) string

// Particion es el resultado de reconciliar los talonarios guardados con los
// formatos existentes del par (empresa, tipo).
type Particion struct {
	// Talonarios: enviados intactos + cola disponible retilada, orden
	// ascendente por NumeracionDesde.
	Talonarios []entity.Talonario
	// NuevosDesde/NuevosHasta delimitan la numeración materializada después
	// del último guardado. Queda fuera de Talonarios hasta que el llamador
	// elija un tamaño para el incremento (puede diferir del de la cola) e
	// invoque IncorporarNuevos. Ambos cero si no hay números nuevos.
	NuevosDesde int
	NuevosHasta int
}

// Nuevos informa cuántos números quedaron pendientes de incorporar.
func (p *Particion) Nuevos() int {
	if p.NuevosHasta < p.NuevosDesde {
		return 0
	}
	if p.NuevosDesde == 0 {
		return 0
	}
	return p.NuevosHasta - p.NuevosDesde + 1
}

// Particionar separa los guardados en enviados (intactos) y disponibles,
// retila la cola disponible en talonarios consecutivos de tamanio hojas (el
// último puede ser más corto) y detecta los números nuevos posteriores al
// máximo ya guardado. Llamarla dos veces sin cambios en los formatos produce
// rangos idénticos (los IDs pueden variar).
//
// minUnidad y maxUnidad son los extremos de numeración de los formatos
// actualmente disponibles del par; ambos cero significa que no hay formatos.
func Particionar(tipo, empresa string, guardados []entity.Talonario, minUnidad, maxUnidad, tamanio int, fechas FechaIngresoResolver) (Particion, error) {
	if tamanio <= 0 {
		return Particion{}, domain.ErrInvalidInput
	}

	var enviados, disponibles []entity.Talonario
	maxGuardado := 0
	for _, t := range guardados {
		if t.NumeracionHasta > maxGuardado {
			maxGuardado = t.NumeracionHasta
		}
		if t.Disponible() {
			disponibles = append(disponibles, t)
		} else {
			enviados = append(enviados, t)
		}
	}

	p := Particion{Talonarios: enviados}

	// Retilar solo la cola disponible ya guardada; los enviados conservan sus
	// fronteras aunque cambie el tamaño.
	if len(disponibles) > 0 {
		low, high := disponibles[0].NumeracionDesde, disponibles[0].NumeracionHasta
		for _, t := range disponibles[1:] {
			if t.NumeracionDesde < low {
				low = t.NumeracionDesde
			}
			if t.NumeracionHasta > high {
				high = t.NumeracionHasta
			}
		}
		p.Talonarios = append(p.Talonarios, Tilar(tipo, empresa, low, high, tamanio, fechas)...)
	}

	// Números materializados después del último guardado: se ofrecen como
	// incremento pendiente, no se mezclan todavía. Un par sin talonarios
	// guardados no tiene incremento que ofrecer: su rango completo se tila
	// de una vez con el tamaño pedido.
	if maxUnidad > 0 {
		switch {
		case maxGuardado == 0 && minUnidad > 0:
			p.Talonarios = append(p.Talonarios, Tilar(tipo, empresa, minUnidad, maxUnidad, tamanio, fechas)...)
		case maxUnidad > maxGuardado:
			p.NuevosDesde, p.NuevosHasta = maxGuardado+1, maxUnidad
		}
	}

	Ordenar(p.Talonarios)
	return p, nil
}

// IncorporarNuevos tila el incremento pendiente de una partición con su propio
// tamaño y devuelve la lista completa fusionada en orden ascendente.
func IncorporarNuevos(tipo, empresa string, p Particion, tamanioNuevos int, fechas FechaIngresoResolver) ([]entity.Talonario, error) {
	if p.Nuevos() == 0 {
		return p.Talonarios, nil
	}
	if tamanioNuevos <= 0 {
		return nil, domain.ErrInvalidInput
	}
	todos := append([]entity.Talonario{}, p.Talonarios...)
	todos = append(todos, Tilar(tipo, empresa, p.NuevosDesde, p.NuevosHasta, tamanioNuevos, fechas)...)
	Ordenar(todos)
	return todos, nil
}

// Tilar corta [desde, hasta] en talonarios consecutivos de tamanio hojas.
// El último absorbe el resto si el rango no es múltiplo exacto.
func Tilar(tipo, empresa string, desde, hasta, tamanio int, fechas FechaIngresoResolver) []entity.Talonario {
	if hasta < desde {
		return nil
	}
	now := time.Now()
	var out []entity.Talonario
	for d := desde; d <= hasta; d += tamanio {
		h := d + tamanio - 1
		if h > hasta {
			h = hasta
		}
		out = append(out, entity.Talonario{
			ID:               uuid.New().String(),
			FormatoTipo:      tipo,
			Empresa:          empresa,
			NumeracionDesde:  d,
			NumeracionHasta:  h,
			Cantidad:         h - d + 1,
			FechaIngreso:     fechas(d, h),
			UbicacionAlmacen: entity.UbicacionAlmacen,
			Estado:           entity.TalonarioDisponible,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	return out
}

// Redimensionar retila exactamente el rango cubierto por los talonarios
// seleccionados con nuevoTamanio y empalma el resultado, dejando intactos los
// no seleccionados. Los nuevos heredan fechas, ubicación y estado del primer
// seleccionado (orden por numeración).
func Redimensionar(todos []entity.Talonario, ids []string, nuevoTamanio int) ([]entity.Talonario, error) {
	if nuevoTamanio <= 0 || len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}
	seleccion := make(map[string]bool, len(ids))
	for _, id := range ids {
		seleccion[id] = true
	}

	var elegidos, resto []entity.Talonario
	for _, t := range todos {
		if seleccion[t.ID] {
			elegidos = append(elegidos, t)
		} else {
			resto = append(resto, t)
		}
	}
	if len(elegidos) == 0 {
		return nil, domain.ErrNotFound
	}
	Ordenar(elegidos)

	low, high := elegidos[0].NumeracionDesde, elegidos[0].NumeracionHasta
	for _, t := range elegidos[1:] {
		if t.NumeracionDesde < low {
			low = t.NumeracionDesde
		}
		if t.NumeracionHasta > high {
			high = t.NumeracionHasta
		}
	}

	primero := elegidos[0]
	now := time.Now()
	for d := low; d <= high; d += nuevoTamanio {
		h := d + nuevoTamanio - 1
		if h > high {
			h = high
		}
		resto = append(resto, entity.Talonario{
			ID:               uuid.New().String(),
			FormatoTipo:      primero.FormatoTipo,
			Empresa:          primero.Empresa,
			NumeracionDesde:  d,
			NumeracionHasta:  h,
			Cantidad:         h - d + 1,
			FechaIngreso:     primero.FechaIngreso,
			UbicacionAlmacen: primero.UbicacionAlmacen,
			FechaSalida:      primero.FechaSalida,
			UbicacionDestino: primero.UbicacionDestino,
			Observaciones:    primero.Observaciones,
			Estado:           primero.Estado,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	Ordenar(resto)
	return resto, nil
}

// Ordenar deja la lista en orden ascendente por NumeracionDesde.
func Ordenar(ts []entity.Talonario) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].NumeracionDesde < ts[j].NumeracionDesde })
}
