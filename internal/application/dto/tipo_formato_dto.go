package dto

import "time"

// CreateTipoFormatoRequest datos para configurar un tipo de formato.
type CreateTipoFormatoRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	EmpresaID   string `json:"empresa_id"`
	Imagen      string `json:"imagen"`
}

// UpdateTipoFormatoRequest campos actualizables; los punteros nil no modifican.
type UpdateTipoFormatoRequest struct {
	Nombre      *string `json:"nombre"`
	Descripcion *string `json:"descripcion"`
	Imagen      *string `json:"imagen"`
	Activo      *bool   `json:"activo"`
}

// TipoFormatoResponse representación pública de un tipo de formato.
type TipoFormatoResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion,omitempty"`
	EmpresaID   string    `json:"empresa_id"`
	Imagen      string    `json:"imagen,omitempty"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
