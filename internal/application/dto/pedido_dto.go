package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePedidoRequest datos para registrar un pedido de impresión. Si
// NumeracionInicial es 0 el asignador calcula la siguiente del par
// (empresa, formato).
type CreatePedidoRequest struct {
	Fecha             string          `json:"fecha"`
	Formato           string          `json:"formato"`
	Empresa           string          `json:"empresa"`
	Cantidad          int             `json:"cantidad"`
	NumeracionInicial int             `json:"numeracion_inicial"`
	Estado            string          `json:"estado"`
	FechaRecojo       string          `json:"fecha_recojo"`
	Pagado            bool            `json:"pagado"`
	FechaPago         string          `json:"fecha_pago"`
	Monto             decimal.Decimal `json:"monto"`
}

// UpdatePedidoRequest campos actualizables; los punteros nil no modifican.
// Cantidad y numeración inicial no se editan: el rango de un pedido es
// inmutable tras la materialización.
type UpdatePedidoRequest struct {
	Fecha       *string          `json:"fecha"`
	Estado      *string          `json:"estado"`
	FechaRecojo *string          `json:"fecha_recojo"`
	Pagado      *bool            `json:"pagado"`
	FechaPago   *string          `json:"fecha_pago"`
	Monto       *decimal.Decimal `json:"monto"`
}

// PedidoResponse representación pública de un pedido.
type PedidoResponse struct {
	ID                string          `json:"id"`
	Fecha             string          `json:"fecha"`
	Formato           string          `json:"formato"`
	Empresa           string          `json:"empresa"`
	Cantidad          int             `json:"cantidad"`
	NumeracionInicial int             `json:"numeracion_inicial"`
	NumeracionFinal   int             `json:"numeracion_final"`
	Estado            string          `json:"estado"`
	FechaRecojo       string          `json:"fecha_recojo,omitempty"`
	Pagado            bool            `json:"pagado"`
	FechaPago         string          `json:"fecha_pago,omitempty"`
	Monto             decimal.Decimal `json:"monto"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// FiltroPedidosRequest filtros de listado (igualdad y rango de fechas).
type FiltroPedidosRequest struct {
	Empresa    string `json:"empresa" query:"empresa"`
	Estado     string `json:"estado" query:"estado"`
	FechaDesde string `json:"fecha_desde" query:"fecha_desde"`
	FechaHasta string `json:"fecha_hasta" query:"fecha_hasta"`
}

// NumeracionResponse respuesta del asignador de numeración.
type NumeracionResponse struct {
	Empresa    string `json:"empresa"`
	Formato    string `json:"formato"`
	Numeracion int    `json:"numeracion"`
}
