package entity

import "time"

// Empresa representa al cliente de la imprenta. El nombre es la clave de
// agrupación usada por pedidos y talonarios (denormalizado, no el ID).
type Empresa struct {
	ID        string
	Nombre    string
	RUC       string
	Direccion string
	Telefono  string
	Email     string
	Contacto  string
	Activa    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
