package dto

import "time"

// UpdateFormatoRequest edición individual de custodia de un formato; los
// punteros nil no modifican. La numeración y el pedido dueño son inmutables.
type UpdateFormatoRequest struct {
	Estado           *string `json:"estado"`
	UbicacionActual  *string `json:"ubicacion_actual"`
	UbicacionDestino *string `json:"ubicacion_destino"`
	Destinatario     *string `json:"destinatario"`
	Observaciones    *string `json:"observaciones"`
	FechaSalida      *string `json:"fecha_salida"`
}

// FormatoResponse representación pública de un formato individual.
type FormatoResponse struct {
	ID               string    `json:"id"`
	Numeracion       int       `json:"numeracion"`
	PedidoID         string    `json:"pedido_id"`
	Estado           string    `json:"estado"`
	UbicacionActual  string    `json:"ubicacion_actual"`
	UbicacionDestino string    `json:"ubicacion_destino,omitempty"`
	Destinatario     string    `json:"destinatario,omitempty"`
	Observaciones    string    `json:"observaciones,omitempty"`
	FechaIngreso     string    `json:"fecha_ingreso"`
	FechaSalida      string    `json:"fecha_salida,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
