package dto

import "time"

// CreateEmpresaRequest datos para registrar una empresa cliente.
type CreateEmpresaRequest struct {
	Nombre    string `json:"nombre"`
	RUC       string `json:"ruc"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Contacto  string `json:"contacto"`
}

// UpdateEmpresaRequest campos actualizables; los punteros nil no modifican.
type UpdateEmpresaRequest struct {
	Nombre    *string `json:"nombre"`
	RUC       *string `json:"ruc"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
	Email     *string `json:"email"`
	Contacto  *string `json:"contacto"`
	Activa    *bool   `json:"activa"`
}

// EmpresaResponse representación pública de una empresa.
type EmpresaResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	RUC       string    `json:"ruc,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Contacto  string    `json:"contacto,omitempty"`
	Activa    bool      `json:"activa"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
