package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrAlmacen indica que el almacén de datos no está disponible. Se propaga
	// hacia arriba y la operación aborta sin mutaciones parciales; nunca se
	// degrada a un resultado vacío (un asignador que devuelve 1 ante un fallo
	// de lectura produciría numeración duplicada).
	ErrAlmacen = errors.New("almacén de datos no disponible")

	// ErrIntegridad indica que la operación violaría la unicidad o contigüidad
	// de la numeración de un par (empresa, tipo de formato). Aborta el lote
	// completo, nunca se omite el elemento ofensor.
	ErrIntegridad = errors.New("violación de integridad de numeración")

	// ErrSinDisponibles indica un envío masivo donde ningún talonario
	// seleccionado estaba disponible.
	ErrSinDisponibles = errors.New("ningún talonario disponible en la selección")

	// ErrConReferencias impide borrar una empresa o tipo de formato con
	// registros asociados; se desactiva en su lugar.
	ErrConReferencias = errors.New("tiene registros relacionados")
)
