package entity

import "time"

// TipoFormato representa un modelo de hoja numerada configurado para una
// empresa. El nombre solo tiene sentido dentro de su empresa: la clave de
// asignación de numeración en todo el sistema es el par
// (Empresa.Nombre, TipoFormato.Nombre), no este ID.
type TipoFormato struct {
	ID          string
	Nombre      string
	Descripcion string
	EmpresaID   string
	Imagen      string // ruta de la imagen de referencia, opcional
	Activo      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
